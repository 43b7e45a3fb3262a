package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrorCode classifies a rejection so hosts and metrics can tell rejections apart without
// matching on message text.
type ErrorCode string

const (
	// Structural errors
	ErrCodeMalformedTransaction ErrorCode = "malformed_transaction"
	ErrCodeNoInputs             ErrorCode = "no_inputs"

	// Numeric errors
	ErrCodeInvalidAmount    ErrorCode = "invalid_amount"
	ErrCodeNegativeAmount   ErrorCode = "negative_amount"
	ErrCodeNonIntegerAmount ErrorCode = "non_integer_amount"
	ErrCodeAmountTooLarge   ErrorCode = "amount_too_large"
	ErrCodeAmountOverflow   ErrorCode = "amount_overflow"
	ErrCodeAmountMismatch   ErrorCode = "amount_mismatch"

	// Dispatch errors
	ErrCodeUnknownHandlerType ErrorCode = "unknown_handler_type"
	ErrCodeMissingCapability  ErrorCode = "missing_capability"

	// Fee policy errors
	ErrCodeMustPayFee          ErrorCode = "must_pay_fee"
	ErrCodeMustPayFeeOfAtLeast ErrorCode = "must_pay_fee_of_at_least"

	// Account errors
	ErrCodeInsufficientFunds ErrorCode = "insufficient_funds"

	// Configuration errors
	ErrCodeInvalidConfig       ErrorCode = "invalid_config"
	ErrCodeReservedHandlerName ErrorCode = "reserved_handler_name"

	// Handler errors
	ErrCodeInvalidSignature ErrorCode = "invalid_signature"
	ErrCodeInvalidSequence  ErrorCode = "invalid_sequence"
	ErrCodeInvalidAddress   ErrorCode = "invalid_address"
	ErrCodeHandlerPanic     ErrorCode = "handler_panic"

	ErrCodeUnknown ErrorCode = "other"
)

// Error message constants
const (
	ErrMsgMalformedTransaction = `Not a valid coins transaction, must have "to" and "from"`
	ErrMsgNoInputs             = "Must have at least 1 input"
	ErrMsgInvalidAmount        = "Inputs and outputs must have a number `amount`"
	ErrMsgNegativeAmount       = "Amount must be >= 0"
	ErrMsgNonIntegerAmount     = "Amount must be an integer"
	ErrMsgAmountTooLarge       = "Amount must be < 2^53"
	ErrMsgAmountOverflow       = "Amount overflow"
	ErrMsgAmountMismatch       = "Sum of inputs and outputs must match"
	ErrMsgUnknownHandlerType   = "Unknown handler type: %q"
	ErrMsgMissingCapability    = "Handler %q does not implement %q"
	ErrMsgMustPayFee           = "Must pay fee"
	ErrMsgMustPayFeeOfAtLeast  = "Must pay fee of at least %d"
	ErrMsgInsufficientFunds    = "Insufficient funds"
	ErrMsgReservedHandlerName  = "Handler name %q is reserved"
	ErrMsgInvalidSignature     = "Invalid signature"
	ErrMsgInvalidSequence      = "Sequence number mismatch, expected %d, got %d"
	ErrMsgInvalidAddress       = "Invalid address %q"
	ErrMsgHandlerPanic         = "Handler %q panicked: %v"
)

// CoinsError is a deterministic rejection of the current call.
type CoinsError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface
func (e *CoinsError) Error() string {
	return e.Message
}

// Is reports whether target is a CoinsError with the same code, so the sentinels below can be
// used with errors.Is regardless of the formatted message.
func (e *CoinsError) Is(target error) bool {
	t, ok := target.(*CoinsError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is
var (
	ErrMalformedTransaction = &CoinsError{Code: ErrCodeMalformedTransaction, Message: ErrMsgMalformedTransaction}
	ErrNoInputs             = &CoinsError{Code: ErrCodeNoInputs, Message: ErrMsgNoInputs}
	ErrInvalidAmount        = &CoinsError{Code: ErrCodeInvalidAmount, Message: ErrMsgInvalidAmount}
	ErrNegativeAmount       = &CoinsError{Code: ErrCodeNegativeAmount, Message: ErrMsgNegativeAmount}
	ErrNonIntegerAmount     = &CoinsError{Code: ErrCodeNonIntegerAmount, Message: ErrMsgNonIntegerAmount}
	ErrAmountTooLarge       = &CoinsError{Code: ErrCodeAmountTooLarge, Message: ErrMsgAmountTooLarge}
	ErrAmountOverflow       = &CoinsError{Code: ErrCodeAmountOverflow, Message: ErrMsgAmountOverflow}
	ErrAmountMismatch       = &CoinsError{Code: ErrCodeAmountMismatch, Message: ErrMsgAmountMismatch}
	ErrUnknownHandlerType   = &CoinsError{Code: ErrCodeUnknownHandlerType}
	ErrMissingCapability    = &CoinsError{Code: ErrCodeMissingCapability}
	ErrMustPayFee           = &CoinsError{Code: ErrCodeMustPayFee, Message: ErrMsgMustPayFee}
	ErrMustPayFeeOfAtLeast  = &CoinsError{Code: ErrCodeMustPayFeeOfAtLeast}
	ErrInsufficientFunds    = &CoinsError{Code: ErrCodeInsufficientFunds, Message: ErrMsgInsufficientFunds}
	ErrInvalidConfig        = &CoinsError{Code: ErrCodeInvalidConfig}
	ErrReservedHandlerName  = &CoinsError{Code: ErrCodeReservedHandlerName}
	ErrInvalidSignature     = &CoinsError{Code: ErrCodeInvalidSignature, Message: ErrMsgInvalidSignature}
	ErrInvalidSequence      = &CoinsError{Code: ErrCodeInvalidSequence}
	ErrInvalidAddress       = &CoinsError{Code: ErrCodeInvalidAddress}
	ErrHandlerPanic         = &CoinsError{Code: ErrCodeHandlerPanic}
)

// NewError creates a new CoinsError and returns it as error interface
func NewError(code ErrorCode, message string) error {
	return &CoinsError{
		Code:    code,
		Message: message,
	}
}

// NewErrorf is NewError with a formatted message
func NewErrorf(code ErrorCode, format string, args ...interface{}) error {
	return NewError(code, fmt.Sprintf(format, args...))
}

func UnknownHandlerType(typeName string) error {
	return NewErrorf(ErrCodeUnknownHandlerType, ErrMsgUnknownHandlerType, typeName)
}

func MissingCapability(handlerName, capability string) error {
	return NewErrorf(ErrCodeMissingCapability, ErrMsgMissingCapability, handlerName, capability)
}

func MustPayFeeOfAtLeast(minFee uint64) error {
	return NewErrorf(ErrCodeMustPayFeeOfAtLeast, ErrMsgMustPayFeeOfAtLeast, minFee)
}

// CodeOf returns the code of the first CoinsError in err's chain, or ErrCodeUnknown.
func CodeOf(err error) ErrorCode {
	var ce *CoinsError
	if pkgerrors.As(err, &ce) {
		return ce.Code
	}
	return ErrCodeUnknown
}
