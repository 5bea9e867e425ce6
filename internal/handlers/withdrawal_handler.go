package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"transportcoin-service/internal/middleware"
	"transportcoin-service/internal/services"
)

type WithdrawalHandler struct {
	Withdrawals *services.WithdrawalService
}

func NewWithdrawalHandler(withdrawals *services.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{Withdrawals: withdrawals}
}

type WithdrawCryptoRequest struct {
	Amount  int64  `json:"amount" binding:"required"`
	Asset   string `json:"asset"`
	Network string `json:"network"`
	Address string `json:"address" binding:"required"`
}

func (h *WithdrawalHandler) RequestCrypto(c *gin.Context) {
	var req WithdrawCryptoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "amount and address are required")
		return
	}

	user := middleware.GetAuthUser(c)
	res, err := h.Withdrawals.RequestCryptoWithdrawal(services.WithdrawCryptoDTO{
		UserId:  user.UserId,
		Amount:  req.Amount,
		Asset:   req.Asset,
		Network: req.Network,
		Address: req.Address,
	})
	respond(c, res, err)
}

func (h *WithdrawalHandler) List(c *gin.Context) {
	user := middleware.GetAuthUser(c)
	res, err := h.Withdrawals.ListForUser(user.UserId)
	respond(c, res, err)
}

func (h *WithdrawalHandler) Meta(c *gin.Context) {
	user := middleware.GetAuthUser(c)
	res, err := h.Withdrawals.Meta(user.UserId)
	respond(c, res, err)
}

func (h *WithdrawalHandler) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	res, err := h.Withdrawals.AdminList(services.AdminListWithdrawalsDTO{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	})
	respond(c, res, err)
}

func (h *WithdrawalHandler) AdminApprove(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid withdrawal id")
		return
	}

	res, err := h.Withdrawals.Approve(id)
	respond(c, res, err)
}

type RejectWithdrawalRequest struct {
	Note string `json:"note"`
}

func (h *WithdrawalHandler) AdminReject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid withdrawal id")
		return
	}

	var req RejectWithdrawalRequest
	_ = c.ShouldBindJSON(&req) // note is optional

	res, err := h.Withdrawals.Reject(id, req.Note)
	respond(c, res, err)
}
