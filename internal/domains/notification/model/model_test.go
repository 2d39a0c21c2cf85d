package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	bookingModel "stay/internal/domains/booking/model"
	"stay/internal/domains/notification/model"
)

func TestNewMessage(t *testing.T) {
	checkIn := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 2)

	booking := bookingModel.Booking{
		ID:         "b-1",
		GuestEmail: "guest@example.com",
		GuestName:  "Guest",
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		TotalPrice: decimal.NewFromInt(250),
		Status:     bookingModel.StatusConfirmed,
	}
	lines := []bookingModel.Line{{RoomID: "r-1", Quantity: 2, CheckIn: checkIn, CheckOut: checkOut, Nights: 2, Subtotal: decimal.NewFromInt(250)}}

	msg := model.NewMessage(model.TemplateConfirmation, booking, lines)

	assert.Equal(t, "guest@example.com", msg.To)
	assert.Equal(t, model.TemplateConfirmation, msg.Template)
	assert.NotEmpty(t, msg.Subject)
	assert.Equal(t, "2026-05-01", msg.Data["check_in"])
	assert.Equal(t, "250.00", msg.Data["total_price"])
	assert.NotContains(t, msg.Data, "payment_deadline")

	items, ok := msg.Data["lines"].([]model.LineData)
	assert.True(t, ok)
	assert.Equal(t, []model.LineData{{RoomID: "r-1", Quantity: 2, CheckIn: "2026-05-01", CheckOut: "2026-05-03", Nights: 2, Subtotal: "250.00"}}, items)
}

func TestTemplateExpects(t *testing.T) {
	tests := []struct {
		template model.Template
		status   bookingModel.Status
		want     bool
	}{
		{model.TemplateConfirmation, bookingModel.StatusConfirmed, true},
		{model.TemplateReminder, bookingModel.StatusConfirmed, true},
		{model.TemplateReminder, bookingModel.StatusCanceledByTenant, false},
		{model.TemplateRejected, bookingModel.StatusWaitingPayment, true},
		{model.TemplateRejected, bookingModel.StatusWaitingConfirmation, false},
		{model.TemplateCanceled, bookingModel.StatusCanceledByTenant, true},
		{model.TemplateCanceled, bookingModel.StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.template)+"/"+string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.template.Expects(tt.status))
		})
	}
}
