package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stay/internal/domains/booking/model"
	"stay/shared/failure"
)

var allStatuses = []model.Status{
	model.StatusWaitingPayment,
	model.StatusWaitingConfirmation,
	model.StatusConfirmed,
	model.StatusCanceled,
	model.StatusCanceledByTenant,
	model.StatusExpired,
}

var allEvents = []model.Event{
	model.EventUploadProof,
	model.EventAccept,
	model.EventReject,
	model.EventGuestCancel,
	model.EventTenantCancel,
	model.EventExpire,
	model.EventGatewaySettle,
	model.EventGatewayCancel,
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		from        model.Status
		event       model.Event
		want        model.Status
		wantChanged bool
		wantErr     bool
	}{
		{name: "proof uploaded", from: model.StatusWaitingPayment, event: model.EventUploadProof, want: model.StatusWaitingConfirmation, wantChanged: true},
		{name: "tenant accepts", from: model.StatusWaitingConfirmation, event: model.EventAccept, want: model.StatusConfirmed, wantChanged: true},
		{name: "tenant rejects", from: model.StatusWaitingConfirmation, event: model.EventReject, want: model.StatusWaitingPayment, wantChanged: true},
		{name: "guest cancels before proof", from: model.StatusWaitingPayment, event: model.EventGuestCancel, want: model.StatusCanceled, wantChanged: true},
		{name: "tenant cancels confirmed", from: model.StatusConfirmed, event: model.EventTenantCancel, want: model.StatusCanceledByTenant, wantChanged: true},
		{name: "deadline elapsed", from: model.StatusWaitingPayment, event: model.EventExpire, want: model.StatusExpired, wantChanged: true},
		{name: "gateway settles waiting payment", from: model.StatusWaitingPayment, event: model.EventGatewaySettle, want: model.StatusConfirmed, wantChanged: true},
		{name: "gateway denies", from: model.StatusWaitingConfirmation, event: model.EventGatewayCancel, want: model.StatusCanceledByTenant, wantChanged: true},
		{name: "settlement redelivered", from: model.StatusConfirmed, event: model.EventGatewaySettle, want: model.StatusConfirmed},
		{name: "accept repeated", from: model.StatusConfirmed, event: model.EventAccept, want: model.StatusConfirmed},
		{name: "deny redelivered", from: model.StatusCanceledByTenant, event: model.EventGatewayCancel, want: model.StatusCanceledByTenant},
		{name: "expire repeated", from: model.StatusExpired, event: model.EventExpire, want: model.StatusExpired},
		{name: "accept without proof", from: model.StatusWaitingPayment, event: model.EventAccept, wantErr: true},
		{name: "reject confirmed", from: model.StatusConfirmed, event: model.EventReject, wantErr: true},
		{name: "settle expired", from: model.StatusExpired, event: model.EventGatewaySettle, wantErr: true},
		{name: "expire confirmed", from: model.StatusConfirmed, event: model.EventExpire, wantErr: true},
		{name: "gateway cancel after confirmation", from: model.StatusConfirmed, event: model.EventGatewayCancel, wantErr: true},
		{name: "upload twice", from: model.StatusWaitingConfirmation, event: model.EventUploadProof, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed, err := model.Resolve(tt.from, tt.event)
			if tt.wantErr {
				assert.True(t, failure.Is(err, failure.KindInvalidStateTransition))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestResolve_TerminalStatusesNeverMove(t *testing.T) {
	for _, from := range allStatuses {
		if !from.IsTerminal() {
			continue
		}

		for _, event := range allEvents {
			got, changed, err := model.Resolve(from, event)
			assert.False(t, changed, "%s + %s", from, event)

			if err == nil {
				assert.Equal(t, from, got, "%s + %s", from, event)
			}
		}
	}
}

func TestStatus_Sets(t *testing.T) {
	for _, status := range allStatuses {
		assert.True(t, status.Valid())
		assert.NotEqual(t, status.IsTerminal(), status.HoldsInventory(), status)
	}

	assert.ElementsMatch(t, []model.Status{
		model.StatusWaitingPayment,
		model.StatusWaitingConfirmation,
		model.StatusConfirmed,
	}, model.ActiveStatuses)
	assert.False(t, model.Status("pending").Valid())
}

func TestRoomIDs(t *testing.T) {
	lines := []model.Line{{RoomID: "b"}, {RoomID: "a"}, {RoomID: "b"}}

	assert.Equal(t, []string{"b", "a"}, model.RoomIDs(lines))
}
