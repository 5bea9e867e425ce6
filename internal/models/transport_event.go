package models

import (
	"time"
)

// TransportEvent is an append-only activity log entry used for display and
// aggregation. Reward-type events never credit wallet balances; crediting
// only happens through deposits and confirmed purchases.
type TransportEvent struct {
	ID               int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId           int       `gorm:"column:user_id;not null;index" json:"user_id"`
	Type             string    `gorm:"column:type;size:40;not null" json:"type"`
	Label            string    `gorm:"column:label;size:255;not null" json:"label"`
	Route            *string   `gorm:"column:route;size:255" json:"route"`
	VehicleId        *string   `gorm:"column:vehicle_id;size:64" json:"vehicle_id"`
	Location         *string   `gorm:"column:location;size:255" json:"location"`
	AmountFuelLitres *int64    `gorm:"column:amount_fuel_litres" json:"amount_fuel_litres"`
	AmountTcn        *int64    `gorm:"column:amount_tcn" json:"amount_tcn"`
	AmountTcg        *int64    `gorm:"column:amount_tcg" json:"amount_tcg"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (TransportEvent) TableName() string {
	return "transport_events"
}
