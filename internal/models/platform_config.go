package models

import (
	"time"
)

// PlatformConfigId is the fixed primary key of the singleton row.
const PlatformConfigId = 1

// DefaultWithdrawalDelayDays is the SLA used when the row is lazily created.
const DefaultWithdrawalDelayDays = 3

// PlatformConfig is a single global row holding the BTC deposit address and
// the withdrawal SLA shown to users. Loaded (or created with defaults) by
// every purchase and withdrawal-meta path.
type PlatformConfig struct {
	ID                  int       `gorm:"primaryKey" json:"id"`
	BtcDepositAddress   *string   `gorm:"column:btc_deposit_address;size:128" json:"btc_deposit_address"`
	WithdrawalDelayDays int       `gorm:"column:withdrawal_delay_days;not null;default:3" json:"withdrawal_delay_days"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PlatformConfig) TableName() string {
	return "platform_configs"
}
