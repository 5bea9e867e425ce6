package handlers

import (
	"github.com/gin-gonic/gin"

	"transportcoin-service/internal/services"
)

type ConfigHandler struct {
	Config *services.ConfigService
}

func NewConfigHandler(config *services.ConfigService) *ConfigHandler {
	return &ConfigHandler{Config: config}
}

func (h *ConfigHandler) AdminGet(c *gin.Context) {
	res, err := h.Config.Get()
	respond(c, res, err)
}

type UpdateConfigRequest struct {
	WithdrawalDelayDays *int    `json:"withdrawalDelayDays"`
	BtcDepositAddress   *string `json:"btcDepositAddress"`
}

func (h *ConfigHandler) AdminUpdate(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid config payload")
		return
	}

	res, err := h.Config.Update(services.UpdateConfigDTO{
		WithdrawalDelayDays: req.WithdrawalDelayDays,
		BtcDepositAddress:   req.BtcDepositAddress,
	})
	respond(c, res, err)
}
