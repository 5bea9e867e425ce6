package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"transportcoin-service/internal/middleware"
	"transportcoin-service/internal/services"
)

type SupportHandler struct {
	Support *services.SupportService
}

func NewSupportHandler(support *services.SupportService) *SupportHandler {
	return &SupportHandler{Support: support}
}

func (h *SupportHandler) ListThreads(c *gin.Context) {
	user := middleware.GetAuthUser(c)
	res, err := h.Support.ListForUser(user.UserId)
	respond(c, res, err)
}

type CreateThreadRequest struct {
	WithdrawalRequestId int `json:"withdrawalRequestId" binding:"required"`
}

func (h *SupportHandler) CreateThread(c *gin.Context) {
	var req CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "withdrawalRequestId is required")
		return
	}

	user := middleware.GetAuthUser(c)
	res, err := h.Support.CreateForWithdrawal(user.UserId, req.WithdrawalRequestId)
	respond(c, res, err)
}

func (h *SupportHandler) GetThread(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid thread id")
		return
	}

	user := middleware.GetAuthUser(c)
	res, err := h.Support.GetThread(user.UserId, id)
	respond(c, res, err)
}

type PostMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h *SupportHandler) PostMessage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid thread id")
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body is required")
		return
	}

	user := middleware.GetAuthUser(c)
	res, err := h.Support.PostUserMessage(user.UserId, id, req.Body)
	respond(c, res, err)
}

func (h *SupportHandler) ThreadForTransaction(c *gin.Context) {
	transactionId, err := strconv.Atoi(c.Query("transactionId"))
	if err != nil {
		badRequest(c, "transactionId query parameter is required")
		return
	}

	user := middleware.GetAuthUser(c)
	res, err := h.Support.ThreadForTransaction(user.UserId, transactionId)
	respond(c, res, err)
}

func (h *SupportHandler) AdminListThreads(c *gin.Context) {
	res, err := h.Support.AdminList()
	respond(c, res, err)
}

func (h *SupportHandler) AdminPostMessage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid thread id")
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body is required")
		return
	}

	res, err := h.Support.AdminPostMessage(id, req.Body)
	respond(c, res, err)
}

func (h *SupportHandler) AdminCloseThread(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid thread id")
		return
	}

	res, err := h.Support.CloseThread(id)
	respond(c, res, err)
}
