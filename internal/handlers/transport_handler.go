package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"transportcoin-service/internal/middleware"
	"transportcoin-service/internal/services"
)

type TransportHandler struct {
	Transport *services.TransportService
}

func NewTransportHandler(transport *services.TransportService) *TransportHandler {
	return &TransportHandler{Transport: transport}
}

func (h *TransportHandler) ListEvents(c *gin.Context) {
	user := middleware.GetAuthUser(c)
	res, err := h.Transport.ListForUser(user.UserId)
	respond(c, res, err)
}

type CreateEventRequest struct {
	UserId           int     `json:"userId" binding:"required"`
	Type             string  `json:"type" binding:"required"`
	Label            string  `json:"label" binding:"required"`
	Route            *string `json:"route"`
	VehicleId        *string `json:"vehicleId"`
	Location         *string `json:"location"`
	AmountFuelLitres *int64  `json:"amountFuelLitres"`
	AmountTcn        *int64  `json:"amountTcn"`
	AmountTcg        *int64  `json:"amountTcg"`
}

func (h *TransportHandler) AdminCreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "userId, type and label are required")
		return
	}

	res, err := h.Transport.AdminCreate(services.AdminCreateEventDTO{
		UserId:           req.UserId,
		Type:             req.Type,
		Label:            req.Label,
		Route:            req.Route,
		VehicleId:        req.VehicleId,
		Location:         req.Location,
		AmountFuelLitres: req.AmountFuelLitres,
		AmountTcn:        req.AmountTcn,
		AmountTcg:        req.AmountTcg,
	})
	respond(c, res, err)
}

func (h *TransportHandler) AdminListEvents(c *gin.Context) {
	userId, _ := strconv.Atoi(c.Query("userId"))
	res, err := h.Transport.AdminList(userId)
	respond(c, res, err)
}
