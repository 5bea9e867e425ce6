package models

import (
	"time"
)

// Transaction types.
const (
	TrxDeposit           = "DEPOSIT"
	TrxWithdrawalRequest = "WITHDRAWAL_REQUEST"
	TrxWithdrawCryptoReq = "WITHDRAW_CRYPTO_REQUEST"
	TrxBuyTcGold         = "BUY_TCGOLD"
	TrxSellTcGold        = "SELL_TCGOLD"
	TrxTcGoldPurchase    = "TCG_PURCHASE"
)

// Transaction statuses.
const (
	TrxPending = "PENDING"
	TrxSuccess = "SUCCESS"
	TrxFailed  = "FAILED"
)

// Transaction is an immutable audit row written in the same database
// transaction as the wallet mutation it documents. Admin approve/reject flows
// flip Status through the WithdrawalRequestId / PurchaseId links; rows are
// never matched by amount.
type Transaction struct {
	ID                  int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId              int       `gorm:"column:user_id;not null;index" json:"user_id"`
	WalletId            *int      `gorm:"column:wallet_id;index" json:"wallet_id"`
	Reference           string    `gorm:"column:reference;size:64;index" json:"reference"`
	Type                string    `gorm:"column:type;size:40;not null" json:"type"`
	Amount              int64     `gorm:"column:amount;not null" json:"amount"`
	Status              string    `gorm:"column:status;size:20;not null;default:PENDING" json:"status"`
	Description         string    `gorm:"column:description;type:text" json:"description"`
	AdminNote           *string   `gorm:"column:admin_note;type:text" json:"admin_note"`
	WithdrawalRequestId *int      `gorm:"column:withdrawal_request_id;index" json:"withdrawal_request_id"`
	PurchaseId          *int      `gorm:"column:purchase_id;index" json:"purchase_id"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
