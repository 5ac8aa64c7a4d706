package Models

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a rejected operation. Every business-rule violation
// is reported through an OpError rather than a bare error so the handlers
// can map it to a status code and a user-facing message.
type ErrorCode string

const (
	ErrMissingField           ErrorCode = "MISSING_FIELD"
	ErrInvalidAmount          ErrorCode = "INVALID_AMOUNT"
	ErrDuplicateKey           ErrorCode = "DUPLICATE_KEY"
	ErrUnknownCostArea        ErrorCode = "UNKNOWN_COST_AREA"
	ErrBudgetExceeded         ErrorCode = "BUDGET_EXCEEDED"
	ErrNonZeroUtilization     ErrorCode = "NON_ZERO_UTILIZATION_RENAME"
	ErrBudgetBelowUtilization ErrorCode = "BUDGET_BELOW_UTILIZATION"
	ErrNotFound               ErrorCode = "NOT_FOUND"
	ErrStoreFailure           ErrorCode = "STORE_FAILURE"
)

type OpError struct {
	Code    ErrorCode `json:"code"`
	Field   string    `json:"field,omitempty"`
	Message string    `json:"message"`
}

func (e *OpError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func missingField(field string) *OpError {
	return &OpError{Code: ErrMissingField, Field: field, Message: fmt.Sprintf("%s is mandatory", field)}
}

func invalidAmount(message string) *OpError {
	return &OpError{Code: ErrInvalidAmount, Message: message}
}

func duplicateKey(message string) *OpError {
	return &OpError{Code: ErrDuplicateKey, Message: message}
}

func unknownCostArea(area string) *OpError {
	return &OpError{Code: ErrUnknownCostArea, Field: "cost_area", Message: fmt.Sprintf("no budget head found for cost area %q", area)}
}

func notFound(message string) *OpError {
	return &OpError{Code: ErrNotFound, Message: message}
}

func storeFailure(err error) *OpError {
	return &OpError{Code: ErrStoreFailure, Message: err.Error()}
}

// CodeOf extracts the business error code, or ErrStoreFailure for anything
// that escaped the validators (driver errors, broken transactions).
func CodeOf(err error) ErrorCode {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Code
	}
	return ErrStoreFailure
}

// AsOpError wraps unexpected store errors so callers always receive the
// typed form.
func AsOpError(err error) *OpError {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr
	}
	return storeFailure(err)
}
