// Package errors defines error types used throughout the brewstake engine.
//
// The StakeError type captures the error cases that can occur while applying
// staking operations, carrying a stable code alongside a human-readable
// message and optional cause.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the brewstake engine.
const (
	ErrCodeInvalidAmount            = "INVALID_AMOUNT"
	ErrCodeInsufficientStake        = "INSUFFICIENT_STAKE"
	ErrCodePoolNotActive            = "POOL_NOT_ACTIVE"
	ErrCodePoolAlreadyStarted       = "POOL_ALREADY_STARTED"
	ErrCodeArithmeticOverflow       = "ARITHMETIC_OVERFLOW"
	ErrCodeInsufficientVaultBalance = "INSUFFICIENT_VAULT_BALANCE"
	ErrCodeUnauthorized             = "UNAUTHORIZED"
	ErrCodePoolNotFound             = "POOL_NOT_FOUND"
	ErrCodePoolExists               = "POOL_EXISTS"
	ErrCodePositionNotFound         = "POSITION_NOT_FOUND"
	ErrCodePlatformNotInitialized   = "PLATFORM_NOT_INITIALIZED"
	ErrCodeInvalidFee               = "INVALID_FEE"
	ErrCodeInvalidDuration          = "INVALID_DURATION"
	ErrCodeMintMismatch             = "MINT_MISMATCH"
	ErrCodeInvalidPoolID            = "INVALID_POOL_ID"
	ErrCodeLedgerFailed             = "LEDGER_FAILED"
	ErrCodeStoreFailed              = "STORE_FAILED"
)

// StakeError represents an error produced by the staking engine.
type StakeError struct {
	// Code is a unique error code for this error type.
	Code string

	// Message is a human-readable error message.
	Message string

	// Cause is the underlying error, if any.
	Cause error

	// Details contains additional error context.
	Details map[string]any
}

// Error implements the error interface.
func (e *StakeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *StakeError) Unwrap() error {
	return e.Cause
}

// Is reports whether the error matches the target.
func (e *StakeError) Is(target error) bool {
	t, ok := target.(*StakeError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause adds a cause to the error.
func (e *StakeError) WithCause(cause error) *StakeError {
	return &StakeError{Code: e.Code, Message: e.Message, Cause: cause, Details: e.Details}
}

// WithDetails adds details to the error.
func (e *StakeError) WithDetails(details map[string]any) *StakeError {
	return &StakeError{Code: e.Code, Message: e.Message, Cause: e.Cause, Details: details}
}

// NewError creates a new StakeError.
func NewError(code, message string) *StakeError {
	return &StakeError{
		Code:    code,
		Message: message,
	}
}

// Pre-defined errors for common error cases.
var (
	// ErrInvalidAmount is returned when an operation names a zero token amount.
	ErrInvalidAmount = NewError(ErrCodeInvalidAmount, "amount must be greater than zero")

	// ErrInsufficientStake is returned when a withdrawal exceeds the staked position.
	ErrInsufficientStake = NewError(ErrCodeInsufficientStake, "withdrawal exceeds staked amount")

	// ErrPoolNotActive is returned when stake/unstake/claim is attempted before start_reward.
	ErrPoolNotActive = NewError(ErrCodePoolNotActive, "pool reward emission has not started")

	// ErrPoolAlreadyStarted is returned on a second start_reward call.
	ErrPoolAlreadyStarted = NewError(ErrCodePoolAlreadyStarted, "pool reward emission already started")

	// ErrArithmeticOverflow is returned when an intermediate value exceeds the integer width.
	ErrArithmeticOverflow = NewError(ErrCodeArithmeticOverflow, "arithmetic overflow")

	// ErrInsufficientVaultBalance is returned when a payout exceeds the vault balance.
	ErrInsufficientVaultBalance = NewError(ErrCodeInsufficientVaultBalance, "vault balance below requested payout")

	// ErrUnauthorized is returned when the caller is not the required signer.
	ErrUnauthorized = NewError(ErrCodeUnauthorized, "caller is not authorized")

	// ErrPoolNotFound is returned when the named pool does not exist.
	ErrPoolNotFound = NewError(ErrCodePoolNotFound, "pool not found")

	// ErrPoolExists is returned when a pool id collides with an existing pool.
	ErrPoolExists = NewError(ErrCodePoolExists, "pool already exists")

	// ErrPositionNotFound is returned when no staking position exists for the user.
	ErrPositionNotFound = NewError(ErrCodePositionNotFound, "staking position not found")

	// ErrPlatformNotInitialized is returned when the platform registry is missing.
	ErrPlatformNotInitialized = NewError(ErrCodePlatformNotInitialized, "platform registry not initialized")

	// ErrInvalidFee is returned when a basis-point rate is outside 0..10000.
	ErrInvalidFee = NewError(ErrCodeInvalidFee, "fee basis points out of range")

	// ErrInvalidDuration is returned when a pool duration is zero.
	ErrInvalidDuration = NewError(ErrCodeInvalidDuration, "pool duration must be greater than zero")

	// ErrMintMismatch is returned when compounding on a pool whose stake and reward mints differ.
	ErrMintMismatch = NewError(ErrCodeMintMismatch, "stake and reward mints differ")

	// ErrInvalidPoolID is returned when a pool id is empty or too long to seed derivation.
	ErrInvalidPoolID = NewError(ErrCodeInvalidPoolID, "pool id empty or too long")
)

// LedgerFailed creates an error for a failed token movement.
func LedgerFailed(what string, cause error) *StakeError {
	return NewError(ErrCodeLedgerFailed, fmt.Sprintf("ledger transfer failed: %s", what)).WithCause(cause)
}

// StoreFailed creates an error for a failed record read or write.
func StoreFailed(what string, cause error) *StakeError {
	return NewError(ErrCodeStoreFailed, fmt.Sprintf("store access failed: %s", what)).WithCause(cause)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
