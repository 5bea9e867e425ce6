package models

import (
	"time"
)

// Wallet holds both token balances for a user. Balances are integer token
// units and must never go negative; every mutation happens through a guarded
// UPDATE inside a database transaction.
type Wallet struct {
	ID                int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId            int       `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	TcnBalance        int64     `gorm:"column:tcn_balance;not null;default:0" json:"tcn_balance"`
	TcGoldBalance     int64     `gorm:"column:tc_gold_balance;not null;default:0" json:"tc_gold_balance"`
	UsableUsdCents    int64     `gorm:"column:usable_usd_cents;not null;default:0" json:"usable_usd_cents"`
	BtcDepositAddress *string   `gorm:"column:btc_deposit_address;size:128" json:"btc_deposit_address"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Wallet) TableName() string {
	return "wallets"
}
