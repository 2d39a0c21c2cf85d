package dto

import (
	"stay/internal/domains/booking/model"
	resModel "stay/internal/domains/reservation/model"
	"stay/shared"
	"stay/shared/calendar"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/timezone"
	"time"

	"github.com/shopspring/decimal"
)

type LineRequest struct {
	RoomID   string `json:"room_id"   validate:"required,uuid"`
	Quantity int    `json:"quantity"  validate:"required,min=1"`
	CheckIn  string `json:"check_in"  validate:"required,day"`
	CheckOut string `json:"check_out" validate:"required,day"`
	Guests   int    `json:"guests"    validate:"min=0"`
}

type CreateBookingRequest struct {
	GuestName     string        `json:"guest_name"     validate:"required,max=100"`
	GuestEmail    string        `json:"guest_email"    validate:"required,email,max=100"`
	PaymentMethod string        `json:"payment_method" validate:"required,oneof=gateway manual"`
	Lines         []LineRequest `json:"lines"          validate:"required,min=1,dive"`
}

// ToRequest parses the lines into a reservation request. Guest counts are returned by line index.
func (c *CreateBookingRequest) ToRequest() (resModel.Request, []int, error) {
	req := resModel.Request{Lines: make([]resModel.Line, len(c.Lines))}
	guests := make([]int, len(c.Lines))

	for i, line := range c.Lines {
		checkIn, checkOut, err := calendar.ParseRange(line.CheckIn, line.CheckOut)
		if err != nil {
			return req, nil, err //nolint:wrapcheck
		}

		req.Lines[i] = resModel.Line{
			RoomID:   line.RoomID,
			Quantity: line.Quantity,
			CheckIn:  checkIn,
			CheckOut: checkOut,
		}
		guests[i] = line.Guests
	}

	return req, guests, nil
}

type LineResponse struct {
	ID       string          `json:"id"`
	RoomID   string          `json:"room_id"`
	Quantity int             `json:"quantity"`
	CheckIn  string          `json:"check_in"`
	CheckOut string          `json:"check_out"`
	Guests   int             `json:"guests"`
	Nights   int             `json:"nights"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

func (r *LineResponse) FromModel(line model.Line) {
	r.ID = line.ID
	r.RoomID = line.RoomID
	r.Quantity = line.Quantity
	r.CheckIn = calendar.Format(line.CheckIn)
	r.CheckOut = calendar.Format(line.CheckOut)
	r.Guests = line.Guests
	r.Nights = line.Nights
	r.Subtotal = line.Subtotal
}

type BookingResponse struct {
	ID              string          `json:"id"`
	GuestID         string          `json:"guest_id"`
	GuestName       string          `json:"guest_name"`
	GuestEmail      string          `json:"guest_email"`
	PropertyID      string          `json:"property_id"`
	TenantID        string          `json:"tenant_id"`
	CheckIn         string          `json:"check_in"`
	CheckOut        string          `json:"check_out"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentProof    string          `json:"payment_proof,omitempty"`
	PaymentDeadline string          `json:"payment_deadline,omitempty"`
	PaidAt          string          `json:"paid_at,omitempty"`
	CanceledAt      string          `json:"canceled_at,omitempty"`
	Lines           []LineResponse  `json:"lines,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking, lines []model.Line) {
	r.ID = booking.ID
	r.GuestID = booking.GuestID
	r.GuestName = booking.GuestName
	r.GuestEmail = booking.GuestEmail
	r.PropertyID = booking.PropertyID
	r.TenantID = booking.TenantID
	r.CheckIn = calendar.Format(booking.CheckIn)
	r.CheckOut = calendar.Format(booking.CheckOut)
	r.TotalPrice = booking.TotalPrice
	r.Status = string(booking.Status)
	r.PaymentMethod = string(booking.PaymentMethod)
	r.PaymentProof = booking.PaymentProof
	r.PaymentDeadline = formatOptional(booking.PaymentDeadline)
	r.PaidAt = formatOptional(booking.PaidAt)
	r.CanceledAt = formatOptional(booking.CanceledAt)
	r.Metadata.FromModel(booking.Metadata)

	if len(lines) > 0 {
		r.Lines = make([]LineResponse, len(lines))
		for i, line := range lines {
			r.Lines[i].FromModel(line)
		}
	}
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return constant.Empty
	}

	return timezone.Format(*t, constant.DateFormat)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, nil)
	}
}

// UploadProofRequest carries the file part of a multipart proof upload. Size is in megabytes.
type UploadProofRequest struct {
	FileName string `validate:"required"`
	Data     []byte `validate:"required,mimetypes=image/jpeg image/png application/pdf,maxfilesize=1"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"max=255"`
}
