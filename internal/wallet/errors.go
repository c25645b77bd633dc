package wallet

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

// Error kinds returned by the treasury services. Callers classify with errors.Is / errors.As,
// the message of the wrapped cause is passed through unchanged.
var (
	ErrNoConnectivity      = errors.New("no connectivity")
	ErrSignerUnavailable   = errors.New("treasury signer not configured")
	ErrSigning             = errors.New("failed to sign transaction")
	ErrBroadcast           = errors.New("failed to broadcast transaction")
	ErrTransactionReverted = errors.New("transaction reverted")
	ErrConfirmationTimeout = errors.New("timed out waiting for confirmation")
	ErrBusy                = errors.New("another withdrawal is in flight")
	ErrInvalidAmount       = errors.New("Invalid amount")              //nolint:stylecheck // message is part of the public API
	ErrInvalidDestination  = errors.New("Invalid destination address") //nolint:stylecheck // message is part of the public API
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind.Error(), e.cause.Error())
}

func (e *kindError) Is(target error) bool {
	return target == e.kind //nolint:errorlint // kinds are sentinel values
}

func (e *kindError) Unwrap() error {
	return e.cause
}

// WithKind tags cause with one of the sentinel kinds above.
func WithKind(kind error, cause error) error {
	if cause == nil {
		return kind
	}

	return &kindError{kind: kind, cause: cause}
}

// ValidationError is returned when a requested amount cannot be withdrawn.
// Balance and MaxWithdrawable are in wei and may be nil when the amount was rejected
// before the balance was read. MaxWithdrawable may be negative.
type ValidationError struct {
	Reason          error
	Message         string
	Balance         *big.Int
	MaxWithdrawable *big.Int
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return e.Reason.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// HasBalance reports whether balance data is attached.
func (e *ValidationError) HasBalance() bool {
	return e.Balance != nil && e.MaxWithdrawable != nil
}
