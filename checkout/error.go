package checkout

import "fmt"

type ErrorReason string

const (
	REASON_HANDICAP_OUT_OF_RANGE ErrorReason = "HANDICAP_OUT_OF_RANGE"
	REASON_MISSING_CONTACT       ErrorReason = "MISSING_CONTACT"
	REASON_MISSING_TOKEN         ErrorReason = "MISSING_TOKEN"
	REASON_PAYMENT_REQUIRED      ErrorReason = "PAYMENT_REQUIRED"
	REASON_IDENTITY_REQUIRED     ErrorReason = "IDENTITY_REQUIRED"
	REASON_SUBMISSION_IN_FLIGHT  ErrorReason = "SUBMISSION_IN_FLIGHT"
	REASON_INVALID_FLOW_STATE    ErrorReason = "INVALID_FLOW_STATE"
	REASON_PAYMENT_DECLINED      ErrorReason = "PAYMENT_DECLINED"
	REASON_BACKEND_FAILURE       ErrorReason = "BACKEND_FAILURE"
	REASON_INVALID_RESPONSE      ErrorReason = "INVALID_RESPONSE"
)

type Error struct {
	Reason  ErrorReason
	Message string
	Cause   error

	// RegistrationID is set only on PAYMENT_DECLINED when the backend already
	// created a registration record; the next retry must settle payment on it.
	RegistrationID *int64
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s. Cause: %s", e.Reason, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newCheckoutError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewHandicapOutOfRangeError(handicap float64) *Error {
	return newCheckoutError(REASON_HANDICAP_OUT_OF_RANGE, fmt.Sprintf("Handicap must be within %.0f and %.0f. Handicap is %g", MinHandicap, MaxHandicap, handicap), nil)
}

func NewMissingContactError(message string) *Error {
	return newCheckoutError(REASON_MISSING_CONTACT, message, nil)
}

func NewMissingTokenError(message string) *Error {
	return newCheckoutError(REASON_MISSING_TOKEN, message, nil)
}

func NewPaymentRequiredError(message string) *Error {
	return newCheckoutError(REASON_PAYMENT_REQUIRED, message, nil)
}

func NewIdentityRequiredError(message string, cause error) *Error {
	return newCheckoutError(REASON_IDENTITY_REQUIRED, message, cause)
}

func NewSubmissionInFlightError(message string) *Error {
	return newCheckoutError(REASON_SUBMISSION_IN_FLIGHT, message, nil)
}

func NewInvalidFlowStateError(message string) *Error {
	return newCheckoutError(REASON_INVALID_FLOW_STATE, message, nil)
}

func NewPaymentDeclinedError(message string, registrationID *int64) *Error {
	err := newCheckoutError(REASON_PAYMENT_DECLINED, message, nil)
	err.RegistrationID = registrationID
	return err
}

func NewBackendFailureError(message string, cause error) *Error {
	return newCheckoutError(REASON_BACKEND_FAILURE, message, cause)
}

func NewInvalidResponseError(message string, cause error) *Error {
	return newCheckoutError(REASON_INVALID_RESPONSE, message, cause)
}
