package model

import (
	"stay/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldPropertyID = "property_id"
	FieldTenantID   = "tenant_id"
	FieldName       = "name"
	FieldTotalUnits = "total_units"
	FieldBasePrice  = "base_price"
	FieldDeletedAt  = "deleted_at"
)

// Room is a unit type with TotalUnits identical, interchangeable slots.
type Room struct {
	ID         string          `db:"id"`
	PropertyID string          `db:"property_id"`
	TenantID   string          `db:"tenant_id"`
	Name       string          `db:"name"`
	TotalUnits int             `db:"total_units"`
	BasePrice  decimal.Decimal `db:"base_price"`
	DeletedAt  *time.Time      `db:"deleted_at"`
	model.Metadata
}

func (r Room) Exists() bool {
	return r.ID != "" && r.DeletedAt == nil
}
