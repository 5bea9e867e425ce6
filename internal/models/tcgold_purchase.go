package models

import (
	"time"
)

// TCGold purchase statuses.
const (
	PurchasePending   = "PENDING"
	PurchaseConfirmed = "CONFIRMED"
	PurchaseRejected  = "REJECTED"
)

// TcGoldPurchase is one BTC-funded TCGold buy request. The wallet is only
// credited when an admin confirms the purchase.
type TcGoldPurchase struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId        int       `gorm:"column:user_id;not null;index" json:"user_id"`
	TcgAmount     int64     `gorm:"column:tcg_amount;not null" json:"tcg_amount"`
	UsdValueCents int64     `gorm:"column:usd_value_cents;not null" json:"usd_value_cents"`
	BtcAddress    string    `gorm:"column:btc_address;size:128;not null" json:"btc_address"`
	BtcTxId       *string   `gorm:"column:btc_tx_id;size:128" json:"btc_tx_id"`
	Status        string    `gorm:"column:status;size:20;not null;default:PENDING;index" json:"status"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TcGoldPurchase) TableName() string {
	return "tc_gold_purchases"
}
