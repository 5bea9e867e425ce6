package models

import (
	"time"
)

// ArchivedTransaction mirrors Transaction for rows moved out of the hot table
// by the archive scheduler. Only terminal rows are archived.
type ArchivedTransaction struct {
	ID                  uint      `gorm:"primaryKey"`
	UserId              int       `gorm:"column:user_id;index"`
	WalletId            *int      `gorm:"column:wallet_id"`
	Reference           string    `gorm:"column:reference;size:64;index"`
	Type                string    `gorm:"column:type;size:40"`
	Amount              int64     `gorm:"column:amount"`
	Status              string    `gorm:"column:status;size:20"`
	Description         string    `gorm:"column:description;type:text"`
	AdminNote           *string   `gorm:"column:admin_note;type:text"`
	WithdrawalRequestId *int      `gorm:"column:withdrawal_request_id"`
	PurchaseId          *int      `gorm:"column:purchase_id"`
	CreatedAt           time.Time `gorm:"column:created_at"`
	ArchivedAt          time.Time `gorm:"column:archived_at;autoCreateTime"`
}

func (ArchivedTransaction) TableName() string {
	return "archived_transactions"
}
