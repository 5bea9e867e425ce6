package consumers

import (
	"errors"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"transportcoin-service/internal/models"
)

// PayoutDispatchDTO mirrors the payload enqueued by the withdrawal service
// when an admin approves a crypto withdrawal.
type PayoutDispatchDTO struct {
	WithdrawalId int    `json:"withdrawalId"`
	UserId       int    `json:"userId"`
	AmountTcn    int64  `json:"amountTcn"`
	Asset        string `json:"asset"`
	Network      string `json:"network"`
	Address      string `json:"address"`
}

// PayoutProcessor handles approved-withdrawal dispatch jobs. The ledger debit
// already happened at request time, so this never touches balances; it only
// records the dispatch so an operator can action the on-chain transfer.
type PayoutProcessor struct {
	DB *gorm.DB
}

func NewPayoutProcessor(db *gorm.DB) *PayoutProcessor {
	return &PayoutProcessor{DB: db}
}

func (p *PayoutProcessor) ProcessPayoutDispatch(data PayoutDispatchDTO) {
	fields := log.Fields{
		"withdrawalId": data.WithdrawalId,
		"userId":       data.UserId,
		"amountTcn":    data.AmountTcn,
		"asset":        data.Asset,
		"network":      data.Network,
	}

	var wr models.WithdrawalRequest
	err := p.DB.First(&wr, data.WithdrawalId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.WithFields(fields).Warn("payout dispatch for unknown withdrawal, dropping")
		return
	}
	if err != nil {
		log.WithFields(fields).WithError(err).Error("failed to load withdrawal for payout dispatch")
		return
	}

	if wr.Status != models.WithdrawalCompleted {
		log.WithFields(fields).WithField("status", wr.Status).
			Warn("withdrawal no longer COMPLETED, skipping payout dispatch")
		return
	}

	log.WithFields(fields).WithField("address", data.Address).
		Info("Payout ready for on-chain dispatch")
}
