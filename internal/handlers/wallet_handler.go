package handlers

import (
	"github.com/gin-gonic/gin"

	"transportcoin-service/internal/middleware"
	"transportcoin-service/internal/services"
)

type WalletHandler struct {
	Wallets *services.WalletService
}

func NewWalletHandler(wallets *services.WalletService) *WalletHandler {
	return &WalletHandler{Wallets: wallets}
}

type DepositRequest struct {
	Amount      int64  `json:"amount" binding:"required"`
	Description string `json:"description"`
}

func (h *WalletHandler) Deposit(c *gin.Context) {
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "amount is required and must be an integer TCN value")
		return
	}

	user := middleware.GetAuthUser(c)
	res, err := h.Wallets.Deposit(services.DepositDTO{
		UserId:      user.UserId,
		Amount:      req.Amount,
		Description: req.Description,
	})
	respond(c, res, err)
}

func (h *WalletHandler) Summary(c *gin.Context) {
	user := middleware.GetAuthUser(c)
	res, err := h.Wallets.Summary(user.UserId)
	respond(c, res, err)
}

type TradeRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

func (h *WalletHandler) BuyTcGold(c *gin.Context) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "amount is required and must be an integer TCGold count")
		return
	}

	user := middleware.GetAuthUser(c)
	res, err := h.Wallets.BuyTcGold(services.TradeDTO{UserId: user.UserId, Amount: req.Amount})
	respond(c, res, err)
}

func (h *WalletHandler) SellTcGold(c *gin.Context) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "amount is required and must be an integer TCGold count")
		return
	}

	user := middleware.GetAuthUser(c)
	res, err := h.Wallets.SellTcGold(services.TradeDTO{UserId: user.UserId, Amount: req.Amount})
	respond(c, res, err)
}
