package model

import (
	bookingModel "stay/internal/domains/booking/model"
	"stay/shared/calendar"
	"stay/shared/constant"
	"stay/shared/timezone"
)

type Template string

const (
	TemplateConfirmation Template = "booking-confirmation"
	TemplateReminder     Template = "booking-reminder"
	TemplateRejected     Template = "booking-rejected"
	TemplateCanceled     Template = "booking-canceled"
)

var subjects = map[Template]string{
	TemplateConfirmation: "Your booking is confirmed",
	TemplateReminder:     "Your stay starts soon",
	TemplateRejected:     "Your payment proof was rejected",
	TemplateCanceled:     "Your booking was canceled",
}

// Message is published as structured data. Rendering belongs to the consumer.
type Message struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject"`
	Template Template       `json:"template"`
	Data     map[string]any `json:"data"`
}

type LineData struct {
	RoomID   string `json:"room_id"`
	Quantity int    `json:"quantity"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Nights   int    `json:"nights"`
	Subtotal string `json:"subtotal"`
}

func NewMessage(template Template, booking bookingModel.Booking, lines []bookingModel.Line) Message {
	items := make([]LineData, len(lines))
	for i, line := range lines {
		items[i] = LineData{
			RoomID:   line.RoomID,
			Quantity: line.Quantity,
			CheckIn:  calendar.Format(line.CheckIn),
			CheckOut: calendar.Format(line.CheckOut),
			Nights:   line.Nights,
			Subtotal: line.Subtotal.StringFixed(2),
		}
	}

	data := map[string]any{
		"booking_id":     booking.ID,
		"guest_name":     booking.GuestName,
		"status":         string(booking.Status),
		"check_in":       calendar.Format(booking.CheckIn),
		"check_out":      calendar.Format(booking.CheckOut),
		"total_price":    booking.TotalPrice.StringFixed(2),
		"payment_method": string(booking.PaymentMethod),
		"lines":          items,
	}

	if booking.PaymentDeadline != nil {
		data["payment_deadline"] = timezone.Format(*booking.PaymentDeadline, constant.DateFormat)
	}

	return Message{
		To:       booking.GuestEmail,
		Subject:  subjects[template],
		Template: template,
		Data:     data,
	}
}

// Expects reports the booking status a template still applies to.
func (t Template) Expects(status bookingModel.Status) bool {
	switch t {
	case TemplateConfirmation, TemplateReminder:
		return status == bookingModel.StatusConfirmed
	case TemplateRejected:
		return status == bookingModel.StatusWaitingPayment
	case TemplateCanceled:
		return status == bookingModel.StatusCanceledByTenant
	default:
		return false
	}
}
