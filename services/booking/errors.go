package booking

import (
	"errors"
	"fmt"
)

// Error codes for the booking flow.
const (
	CodeDataUnavailable       = "dataUnavailable"
	CodeNotAuthenticated      = "notAuthenticated"
	CodePaymentInit           = "paymentInitError"
	CodePaymentResult         = "paymentResultError"
	CodeNotificationWrite     = "notificationWriteError"
	CodeInvalidOrderID        = "invalidOrderID"
	CodeSessionNotFound       = "sessionNotFound"
	CodeEmptySelection        = "emptySelection"
	CodeInvalidFlowTransition = "invalidFlowTransition"
)

// FlowError is a coded booking-flow error.
type FlowError struct {
	Code    string
	Message string
	Err     error
}

func (e *FlowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *FlowError) Unwrap() error { return e.Err }

// NewFlowError creates a coded error wrapping an optional cause.
func NewFlowError(code, message string, cause error) error {
	return &FlowError{Code: code, Message: message, Err: cause}
}

// IsCode reports whether err carries the given flow error code.
func IsCode(err error, code string) bool {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Code == code
	}
	return false
}
