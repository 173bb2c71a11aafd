package types

import (
	"fmt"
	"net/http"
)

type ErrorCode string

func (e ErrorCode) String() string {
	return string(e)
}

const (
	// Validation errors: rejected before any state mutation.
	ZeroAmount    ErrorCode = "ZERO_AMOUNT"
	InvalidCycle  ErrorCode = "INVALID_CYCLE"
	InvalidConfig ErrorCode = "INVALID_CONFIG"

	// Precondition errors: state-dependent rejections.
	AlreadyBound    ErrorCode = "ALREADY_BOUND"
	InvalidReferrer ErrorCode = "INVALID_REFERRER"
	CyclicReferral  ErrorCode = "CYCLIC_REFERRAL"
	NoReferrer      ErrorCode = "NO_REFERRER"
	InactiveTicket  ErrorCode = "INACTIVE_TICKET"
	LowLiquidity    ErrorCode = "LOW_LIQUIDITY"
	NotAccruing     ErrorCode = "NOT_ACCRUING"
	AlreadyExited   ErrorCode = "ALREADY_EXITED"
	ProtocolPaused  ErrorCode = "PROTOCOL_PAUSED"

	// Resource errors: insufficient reserve / timing gates.
	InsufficientLiquidity ErrorCode = "INSUFFICIENT_LIQUIDITY"
	TooEarly              ErrorCode = "TOO_EARLY"
	EmptyReserve          ErrorCode = "EMPTY_RESERVE"

	AccountNotFound      ErrorCode = "ACCOUNT_NOT_FOUND"
	Unauthorized         ErrorCode = "UNAUTHORIZED"
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
)

// Error carries a distinguishable error kind so callers can branch on
// semantics rather than parse messages.
type Error struct {
	StatusCode int
	ErrorCode  ErrorCode
	Err        error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.ErrorCode.String()
	}
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Err)
}

func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.ErrorCode == other.ErrorCode
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

// NewValidationError is for bad input shape or range, rejected at the boundary.
func NewValidationError(errorCode ErrorCode, format string, args ...any) *Error {
	return NewError(http.StatusBadRequest, errorCode, fmt.Errorf(format, args...))
}

// NewPreconditionError is for operations invalid in the current ledger state.
func NewPreconditionError(errorCode ErrorCode, format string, args ...any) *Error {
	return NewError(http.StatusUnprocessableEntity, errorCode, fmt.Errorf(format, args...))
}

func NewInternalError(err error) *Error {
	return NewError(http.StatusInternalServerError, InternalServiceError, err)
}

// HasErrorCode reports whether err is a *types.Error carrying the given code.
func HasErrorCode(err error, code ErrorCode) bool {
	e, ok := err.(*Error)
	return ok && e.ErrorCode == code
}
