package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"transportcoin-service/internal/middleware"
	"transportcoin-service/internal/services"
)

type PurchaseHandler struct {
	Purchases *services.PurchaseService
}

func NewPurchaseHandler(purchases *services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{Purchases: purchases}
}

type PurchaseRequest struct {
	TcgAmount int64 `json:"tcgAmount" binding:"required"`
}

func (h *PurchaseHandler) Request(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "tcgAmount is required and must be an integer TCGold count")
		return
	}

	user := middleware.GetAuthUser(c)
	res, err := h.Purchases.Request(services.PurchaseRequestDTO{
		UserId:    user.UserId,
		TcgAmount: req.TcgAmount,
	})
	respond(c, res, err)
}

func (h *PurchaseHandler) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	res, err := h.Purchases.AdminList(services.AdminListPurchasesDTO{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	})
	respond(c, res, err)
}

type PurchaseDecisionRequest struct {
	BtcTxId string `json:"btcTxId"`
	Note    string `json:"note"`
}

func (h *PurchaseHandler) AdminConfirm(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid purchase id")
		return
	}

	var req PurchaseDecisionRequest
	_ = c.ShouldBindJSON(&req) // btcTxId is optional

	res, err := h.Purchases.Confirm(id, req.BtcTxId)
	respond(c, res, err)
}

func (h *PurchaseHandler) AdminReject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid purchase id")
		return
	}

	var req PurchaseDecisionRequest
	_ = c.ShouldBindJSON(&req)

	res, err := h.Purchases.Reject(id, req.Note)
	respond(c, res, err)
}
