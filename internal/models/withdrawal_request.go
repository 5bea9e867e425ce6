package models

import (
	"time"
)

// Withdrawal request statuses. PENDING is the only non-terminal state.
const (
	WithdrawalPending   = "PENDING"
	WithdrawalCompleted = "COMPLETED"
	WithdrawalRejected  = "REJECTED"
)

// WithdrawalRequest records one crypto withdrawal ask. The TCN amount is
// debited from the wallet when the request is created; rejecting refunds it
// exactly once.
type WithdrawalRequest struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId    int       `gorm:"column:user_id;not null;index" json:"user_id"`
	Asset     string    `gorm:"column:asset;size:20;not null" json:"asset"`
	Network   string    `gorm:"column:network;size:40;not null" json:"network"`
	Address   string    `gorm:"column:address;size:128;not null" json:"address"`
	AmountTcn int64     `gorm:"column:amount_tcn;not null" json:"amount_tcn"`
	Status    string    `gorm:"column:status;size:20;not null;default:PENDING;index" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}
