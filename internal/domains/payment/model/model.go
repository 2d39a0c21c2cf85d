package model

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	bookingModel "stay/internal/domains/booking/model"
	"stay/shared/constant"
	"strings"
)

const (
	TransactionSettlement = "settlement"
	TransactionCapture    = "capture"
	TransactionPending    = "pending"
	TransactionDeny       = "deny"
	TransactionCancel     = "cancel"
	TransactionExpire     = "expire"

	FraudAccept    = "accept"
	FraudChallenge = "challenge"
	FraudDeny      = "deny"
)

// Notification is a status update pushed by the payment gateway. OrderID is the booking id.
type Notification struct {
	OrderID           string
	StatusCode        string
	GrossAmount       string
	TransactionStatus string
	FraudStatus       string
	SignatureKey      string
}

// Signature is hex(sha512(order_id + status_code + gross_amount + server_key)).
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))

	return hex.EncodeToString(sum[:])
}

func (n Notification) Verify(serverKey string) bool {
	want := Signature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)
	got := strings.ToLower(strings.TrimSpace(n.SignatureKey))

	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

// Event maps the gateway status onto a booking event. ok is false for statuses that change nothing.
func (n Notification) Event() (event bookingModel.Event, ok bool) {
	switch n.TransactionStatus {
	case TransactionSettlement:
		return bookingModel.EventGatewaySettle, true
	case TransactionCapture:
		if n.FraudStatus == constant.Empty || n.FraudStatus == FraudAccept {
			return bookingModel.EventGatewaySettle, true
		}

		if n.FraudStatus == FraudDeny {
			return bookingModel.EventGatewayCancel, true
		}

		return "", false
	case TransactionDeny, TransactionCancel, TransactionExpire:
		return bookingModel.EventGatewayCancel, true
	default:
		return "", false
	}
}
