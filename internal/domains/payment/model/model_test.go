package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	bookingModel "stay/internal/domains/booking/model"
	"stay/internal/domains/payment/model"
)

const serverKey = "SB-Mid-server-key"

func signed(n model.Notification) model.Notification {
	n.SignatureKey = model.Signature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)

	return n
}

func TestSignature(t *testing.T) {
	// sha512 of the empty string, the degenerate concatenation.
	assert.Equal(t,
		"cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
		model.Signature("", "", "", ""))
	assert.Len(t, model.Signature("b-1", "200", "100000.00", serverKey), 128)
}

func TestVerify(t *testing.T) {
	n := signed(model.Notification{OrderID: "b-1", StatusCode: "200", GrossAmount: "100000.00"})

	assert.True(t, n.Verify(serverKey))
	assert.False(t, n.Verify("other-key"))

	tampered := n
	tampered.GrossAmount = "1.00"
	assert.False(t, tampered.Verify(serverKey))

	upper := n
	upper.SignatureKey = " " + strings.ToUpper(n.SignatureKey) + " "
	assert.True(t, upper.Verify(serverKey))
}

func TestEvent(t *testing.T) {
	tests := []struct {
		status string
		fraud  string
		want   bookingModel.Event
		ok     bool
	}{
		{status: "settlement", want: bookingModel.EventGatewaySettle, ok: true},
		{status: "capture", want: bookingModel.EventGatewaySettle, ok: true},
		{status: "capture", fraud: "accept", want: bookingModel.EventGatewaySettle, ok: true},
		{status: "capture", fraud: "challenge"},
		{status: "capture", fraud: "deny", want: bookingModel.EventGatewayCancel, ok: true},
		{status: "deny", want: bookingModel.EventGatewayCancel, ok: true},
		{status: "cancel", want: bookingModel.EventGatewayCancel, ok: true},
		{status: "expire", want: bookingModel.EventGatewayCancel, ok: true},
		{status: "pending"},
		{status: "refund"},
	}

	for _, tt := range tests {
		t.Run(tt.status+"/"+tt.fraud, func(t *testing.T) {
			got, ok := model.Notification{TransactionStatus: tt.status, FraudStatus: tt.fraud}.Event()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
