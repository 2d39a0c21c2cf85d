package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a Failure independently of its HTTP code.
type Kind string

const (
	KindBadRequest             Kind = "bad_request"
	KindNotFound               Kind = "not_found"
	KindInvalidRange           Kind = "invalid_range"
	KindInsufficientInventory  Kind = "insufficient_inventory"
	KindInvalidStateTransition Kind = "invalid_state_transition"
	KindSignatureMismatch      Kind = "signature_mismatch"
	KindUnauthorized           Kind = "unauthorized"
	KindUnauthenticated        Kind = "unauthenticated"
	KindForbidden              Kind = "forbidden"
	KindConflict               Kind = "conflict"
	KindInternal               Kind = "internal"
	KindUnimplemented          Kind = "unimplemented"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Kind: KindBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Kind: KindBadRequest, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Kind: KindForbidden, Message: "You don't have the required permissions"}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Kind: KindForbidden, Message: "You don't have permission to access this resource"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Kind:    KindBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindBadRequest,
		Message: msg,
	}
}

// Unauthenticated returns a new Failure for requests without a valid identity.
func Unauthenticated(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Kind:    KindUnauthenticated,
		Message: msg,
	}
}

// Unauthorized returns a new Failure for an actor acting on a resource it does not own.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Kind:    KindUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Kind:    KindInternal,
			Message: err.Error(),
		}
	}

	return nil
}

// Unimplemented returns a new Failure with code for unimplemented method.
func Unimplemented(methodName string) error {
	return &Failure{
		Code:    http.StatusNotImplemented,
		Kind:    KindUnimplemented,
		Message: methodName,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Kind:    KindForbidden,
		Message: msg,
	}
}

// InvalidRange returns a new Failure for a malformed or empty date range.
func InvalidRange(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidRange,
		Message: msg,
	}
}

// InsufficientInventory returns a new Failure carrying the days that could not be reserved.
func InsufficientInventory(msg string, details any) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindInsufficientInventory,
		Message: msg,
		Details: details,
	}
}

// InvalidStateTransition returns a new Failure for an event that is not legal from the current status.
func InvalidStateTransition(from, event string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindInvalidStateTransition,
		Message: fmt.Sprintf("cannot apply %s to a booking in status %s", event, from),
	}
}

// SignatureMismatch returns a new Failure for a payload that failed verification.
func SignatureMismatch(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Kind:    KindSignatureMismatch,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the kind of an error interface, KindInternal when it is not a Failure.
func GetKind(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return KindInternal
}

// Is reports whether err wraps a Failure of the given kind.
func Is(err error, kind Kind) bool {
	var fail *Failure

	return errors.As(err, &fail) && fail.Kind == kind
}
