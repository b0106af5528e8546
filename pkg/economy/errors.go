package economy

import (
	"errors"
	"fmt"
)

// Domain-level error values returned by the economy engine.
var (
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidLimit           = errors.New("invalid limit")
	ErrTierNotEligible        = errors.New("tier not eligible")
	ErrConcurrentModification = errors.New("concurrent modification conflict")
	ErrUnknownModel           = errors.New("unknown model")
	ErrUnknownAction          = errors.New("unknown action")
	ErrUnknownTier            = errors.New("unknown tier")
	ErrUnknownDetailLevel     = errors.New("unknown detail level")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidUserID          = errors.New("invalid user id")
	ErrStateNotFound          = errors.New("ledger state not found")
	ErrStateExists            = errors.New("ledger state already exists")
	ErrCorruptState           = errors.New("corrupt ledger state")
	ErrUnknownTransaction     = errors.New("unknown transaction")
	ErrAlreadyRefunded        = errors.New("transaction already refunded")
	ErrNotRefundable          = errors.New("transaction not refundable")
	ErrInvalidServiceConfig   = errors.New("invalid service config")
	ErrInvalidPolicy          = errors.New("invalid policy")
	ErrDuplicateTransactionID = errors.New("duplicate transaction id")
	ErrActionCategoryMismatch = errors.New("action category mismatch")
	errStateUnchanged         = errors.New("state unchanged")
)

// InsufficientBalanceError reports a rejected deduction and how much INK was missing.
type InsufficientBalanceError struct {
	Required  Ink
	Available Ink
}

// Shortfall is the amount the balance lacks to cover the charge.
func (insufficient *InsufficientBalanceError) Shortfall() Ink {
	return insufficient.Required - insufficient.Available
}

// Error returns the formatted error message.
func (insufficient *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%v: required %d, available %d, shortfall %d", ErrInsufficientBalance, insufficient.Required, insufficient.Available, insufficient.Shortfall())
}

// Unwrap returns ErrInsufficientBalance.
func (insufficient *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// ShortfallOf extracts the shortfall from an insufficient balance error.
func ShortfallOf(err error) (Ink, bool) {
	var insufficient *InsufficientBalanceError
	if errors.As(err, &insufficient) {
		return insufficient.Shortfall(), true
	}
	return 0, false
}

// OperationError wraps a failure with a stable operation code.
type OperationError struct {
	operation string
	subject   string
	code      string
	err       error
}

// Error returns the formatted error message.
func (operationError OperationError) Error() string {
	return fmt.Sprintf("%s.%s.%s: %v", operationError.operation, operationError.subject, operationError.code, operationError.err)
}

// Unwrap returns the underlying error.
func (operationError OperationError) Unwrap() error {
	return operationError.err
}

// Operation returns the operation segment.
func (operationError OperationError) Operation() string {
	return operationError.operation
}

// Subject returns the subject segment.
func (operationError OperationError) Subject() string {
	return operationError.subject
}

// Code returns the stable error code segment.
func (operationError OperationError) Code() string {
	return operationError.code
}

// WrapError wraps an error with operation, subject, and code metadata.
func WrapError(operation string, subject string, code string, err error) error {
	if err == nil {
		return nil
	}
	return OperationError{
		operation: operation,
		subject:   subject,
		code:      code,
		err:       err,
	}
}

var rejectionCodes = []struct {
	err  error
	code string
}{
	{ErrInsufficientBalance, "insufficient_balance"},
	{ErrTierNotEligible, "tier_not_eligible"},
	{ErrInvalidAmount, "invalid_amount"},
	{ErrInvalidLimit, "invalid_limit"},
	{ErrInvalidUserID, "invalid_user_id"},
	{ErrUnknownModel, "unknown_model"},
	{ErrUnknownAction, "unknown_action"},
	{ErrUnknownTier, "unknown_tier"},
	{ErrUnknownDetailLevel, "unknown_detail_level"},
	{ErrInvalidTransactionType, "invalid_transaction_type"},
	{ErrActionCategoryMismatch, "action_category_mismatch"},
	{ErrUnknownTransaction, "unknown_transaction"},
	{ErrAlreadyRefunded, "already_refunded"},
	{ErrNotRefundable, "not_refundable"},
}

// RejectionCode returns the stable code of a business rejection.
// Infrastructure failures, including exhausted compare-and-swap retries, are not rejections.
func RejectionCode(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	for _, rejection := range rejectionCodes {
		if errors.Is(err, rejection.err) {
			return rejection.code, true
		}
	}
	return "", false
}

// IsRejection reports whether err is a business rejection rather than a fault.
func IsRejection(err error) bool {
	_, ok := RejectionCode(err)
	return ok
}
