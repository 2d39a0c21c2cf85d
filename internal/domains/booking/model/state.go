package model

import (
	"stay/shared/failure"
)

type Status string

const (
	StatusWaitingPayment      Status = "waiting_payment"
	StatusWaitingConfirmation Status = "waiting_confirmation"
	StatusConfirmed           Status = "confirmed"
	StatusCanceled            Status = "canceled"
	StatusCanceledByTenant    Status = "canceled_by_tenant"
	StatusExpired             Status = "expired"
)

// ActiveStatuses hold inventory. Every capacity check counts exactly this set.
var ActiveStatuses = []Status{StatusWaitingPayment, StatusWaitingConfirmation, StatusConfirmed}

func (s Status) Valid() bool {
	switch s {
	case StatusWaitingPayment, StatusWaitingConfirmation, StatusConfirmed,
		StatusCanceled, StatusCanceledByTenant, StatusExpired:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCanceled || s == StatusCanceledByTenant || s == StatusExpired
}

func (s Status) HoldsInventory() bool {
	return s == StatusWaitingPayment || s == StatusWaitingConfirmation || s == StatusConfirmed
}

type Event string

const (
	EventUploadProof   Event = "upload_proof"
	EventAccept        Event = "accept"
	EventReject        Event = "reject"
	EventGuestCancel   Event = "guest_cancel"
	EventTenantCancel  Event = "tenant_cancel"
	EventExpire        Event = "expire"
	EventGatewaySettle Event = "gateway_settle"
	EventGatewayCancel Event = "gateway_cancel"
)

type transitionKey struct {
	from  Status
	event Event
}

var transitions = map[transitionKey]Status{
	{StatusWaitingPayment, EventUploadProof}:        StatusWaitingConfirmation,
	{StatusWaitingConfirmation, EventAccept}:        StatusConfirmed,
	{StatusWaitingConfirmation, EventReject}:        StatusWaitingPayment,
	{StatusWaitingPayment, EventGuestCancel}:        StatusCanceled,
	{StatusWaitingConfirmation, EventGuestCancel}:   StatusCanceled,
	{StatusWaitingConfirmation, EventTenantCancel}:  StatusCanceledByTenant,
	{StatusConfirmed, EventTenantCancel}:            StatusCanceledByTenant,
	{StatusWaitingPayment, EventExpire}:             StatusExpired,
	{StatusWaitingPayment, EventGatewaySettle}:      StatusConfirmed,
	{StatusWaitingConfirmation, EventGatewaySettle}: StatusConfirmed,
	{StatusWaitingPayment, EventGatewayCancel}:      StatusCanceledByTenant,
	{StatusWaitingConfirmation, EventGatewayCancel}: StatusCanceledByTenant,
}

// settled maps events that may be redelivered to the status they lead to.
// Receiving one of them when the booking already sits in that status is a no-op.
var settled = map[Event]Status{
	EventAccept:        StatusConfirmed,
	EventGatewaySettle: StatusConfirmed,
	EventTenantCancel:  StatusCanceledByTenant,
	EventGatewayCancel: StatusCanceledByTenant,
	EventGuestCancel:   StatusCanceled,
	EventExpire:        StatusExpired,
}

// Resolve returns the status event leads to from.
// changed is false when the booking already reached the target of a redelivered event.
func Resolve(from Status, event Event) (to Status, changed bool, err error) {
	if to, ok := transitions[transitionKey{from, event}]; ok {
		return to, true, nil
	}

	if target, ok := settled[event]; ok && target == from {
		return from, false, nil
	}

	return from, false, failure.InvalidStateTransition(string(from), string(event)) //nolint:wrapcheck
}
