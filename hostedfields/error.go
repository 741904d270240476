package hostedfields

import "fmt"

type ErrorReason string

const (
	REASON_MISSING_CREDENTIAL  ErrorReason = "MISSING_CREDENTIAL"
	REASON_SCRIPT_LOAD_FAILED  ErrorReason = "SCRIPT_LOAD_FAILED"
	REASON_NOT_READY           ErrorReason = "NOT_READY"
	REASON_NOT_CONFIGURED      ErrorReason = "NOT_CONFIGURED"
	REASON_TOKENIZE_IN_FLIGHT  ErrorReason = "TOKENIZE_IN_FLIGHT"
	REASON_TOKENIZATION_FAILED ErrorReason = "TOKENIZATION_FAILED"
)

type Error struct {
	Reason  ErrorReason
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s. Cause: %s", e.Reason, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newHostedFieldsError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewMissingCredentialError(message string) *Error {
	return newHostedFieldsError(REASON_MISSING_CREDENTIAL, message, nil)
}

func NewScriptLoadFailedError(message string, cause error) *Error {
	return newHostedFieldsError(REASON_SCRIPT_LOAD_FAILED, message, cause)
}

func NewNotReadyError(message string) *Error {
	return newHostedFieldsError(REASON_NOT_READY, message, nil)
}

func NewNotConfiguredError(message string) *Error {
	return newHostedFieldsError(REASON_NOT_CONFIGURED, message, nil)
}

func NewTokenizeInFlightError(message string) *Error {
	return newHostedFieldsError(REASON_TOKENIZE_IN_FLIGHT, message, nil)
}

func NewTokenizationFailedError(message string, cause error) *Error {
	return newHostedFieldsError(REASON_TOKENIZATION_FAILED, message, cause)
}
