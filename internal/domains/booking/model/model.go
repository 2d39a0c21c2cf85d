package model

import (
	"stay/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldGuestID         = "guest_id"
	FieldGuestEmail      = "guest_email"
	FieldGuestName       = "guest_name"
	FieldPropertyID      = "property_id"
	FieldTenantID        = "tenant_id"
	FieldCheckIn         = "check_in"
	FieldCheckOut        = "check_out"
	FieldTotalPrice      = "total_price"
	FieldStatus          = "status"
	FieldPaymentMethod   = "payment_method"
	FieldPaymentProof    = "payment_proof"
	FieldPaymentDeadline = "payment_deadline"
	FieldPaidAt          = "paid_at"
	FieldCanceledAt      = "canceled_at"
	FieldRejectCount     = "reject_count"
)

const (
	LineTableName  = "booking_lines"
	LineEntityName = "booking_line"

	FieldLineID        = "id"
	FieldLineBookingID = "booking_id"
	FieldLineRoomID    = "room_id"
)

type PaymentMethod string

const (
	PaymentGateway PaymentMethod = "gateway"
	PaymentManual  PaymentMethod = "manual"
)

// Booking is the header of a reservation. Its range spans every line and is kept for display.
type Booking struct {
	ID              string          `db:"id"`
	GuestID         string          `db:"guest_id"`
	GuestEmail      string          `db:"guest_email"`
	GuestName       string          `db:"guest_name"`
	PropertyID      string          `db:"property_id"`
	TenantID        string          `db:"tenant_id"`
	CheckIn         time.Time       `db:"check_in"`
	CheckOut        time.Time       `db:"check_out"`
	TotalPrice      decimal.Decimal `db:"total_price"`
	Status          Status          `db:"status"`
	PaymentMethod   PaymentMethod   `db:"payment_method"`
	PaymentProof    string          `db:"payment_proof"`
	PaymentDeadline *time.Time      `db:"payment_deadline"`
	PaidAt          *time.Time      `db:"paid_at"`
	CanceledAt      *time.Time      `db:"canceled_at"`
	RejectCount     int             `db:"reject_count"`
	model.Metadata
}

func (b Booking) Exists() bool {
	return b.ID != ""
}

// Line reserves Quantity units of one room for [CheckIn, CheckOut).
type Line struct {
	ID        string          `db:"id"`
	BookingID string          `db:"booking_id"`
	RoomID    string          `db:"room_id"`
	Quantity  int             `db:"quantity"`
	CheckIn   time.Time       `db:"check_in"`
	CheckOut  time.Time       `db:"check_out"`
	Guests    int             `db:"guests"`
	Nights    int             `db:"nights"`
	Subtotal  decimal.Decimal `db:"subtotal"`
	model.Metadata
}

// RoomIDs lists the rooms referenced by lines, in line order and without repeats.
func RoomIDs(lines []Line) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))

	for _, line := range lines {
		if _, ok := seen[line.RoomID]; ok {
			continue
		}

		seen[line.RoomID] = struct{}{}
		ids = append(ids, line.RoomID)
	}

	return ids
}
