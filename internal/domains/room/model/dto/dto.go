package dto

import (
	pricingDto "stay/internal/domains/pricing/model/dto"
	"stay/internal/domains/room/model"
	gDto "stay/shared/dto"
	gModel "stay/shared/model"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRoomRequest struct {
	PropertyID string                       `json:"property_id" validate:"required,uuid"`
	Name       string                       `json:"name"        validate:"required,max=100"`
	TotalUnits int                          `json:"total_units" validate:"min=0"`
	BasePrice  decimal.Decimal              `json:"base_price"  validate:"gte=0"`
	PeakRates  []pricingDto.PeakRateRequest `json:"peak_rates"  validate:"omitempty,dive"`
}

func (c *CreateRoomRequest) ToModel(tenantID string, now time.Time) model.Room {
	return model.Room{
		ID:         uuid.NewString(),
		PropertyID: c.PropertyID,
		TenantID:   tenantID,
		Name:       c.Name,
		TotalUnits: c.TotalUnits,
		BasePrice:  c.BasePrice,
		Metadata:   gModel.NewMetadata(tenantID, now),
	}
}

type RoomResponse struct {
	ID         string                        `json:"id"`
	PropertyID string                        `json:"property_id"`
	TenantID   string                        `json:"tenant_id"`
	Name       string                        `json:"name"`
	TotalUnits int                           `json:"total_units"`
	BasePrice  decimal.Decimal               `json:"base_price"`
	PeakRates  []pricingDto.PeakRateResponse `json:"peak_rates"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(room model.Room, rates []pricingDto.PeakRateResponse) {
	r.ID = room.ID
	r.PropertyID = room.PropertyID
	r.TenantID = room.TenantID
	r.Name = room.Name
	r.TotalUnits = room.TotalUnits
	r.BasePrice = room.BasePrice
	r.PeakRates = rates
	r.Metadata.FromModel(room.Metadata)
}
