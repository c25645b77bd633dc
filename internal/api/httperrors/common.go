package httperrors

import (
	"net/http"

	"github.com/chapool/treasury-api/internal/wallet"
	"github.com/pkg/errors"
)

var (
	ErrBadRequestInvalidAmount      = NewHTTPError(http.StatusBadRequest, wallet.ErrInvalidAmount.Error())
	ErrBadRequestInvalidDestination = NewHTTPError(http.StatusBadRequest, wallet.ErrInvalidDestination.Error())
	ErrBadRequestMalformedBody      = NewHTTPError(http.StatusBadRequest, "Malformed request body")
)

// NewFromWallet classifies an error returned by the treasury services.
// Anything that is neither a validation error nor busy becomes a 500 carrying the message.
func NewFromWallet(err error) *HTTPError {
	var verr *wallet.ValidationError
	if errors.As(err, &verr) {
		return NewFromValidation(verr)
	}

	if errors.Is(err, wallet.ErrBusy) {
		return &HTTPError{Code: http.StatusConflict, Message: err.Error(), Internal: err}
	}

	return &HTTPError{Code: http.StatusInternalServerError, Message: err.Error(), Internal: err}
}
