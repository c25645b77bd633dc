package httperrors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/chapool/treasury-api/internal/wallet"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

const etherPlaces = 6

// HTTPError is rendered as {"error": "..."} plus the balance fields for balance violations.
type HTTPError struct {
	Code            int     `json:"-"`
	Message         string  `json:"error"`
	TreasuryBalance *string `json:"treasuryBalance,omitempty"`
	MaxWithdrawable *string `json:"maxWithdrawable,omitempty"`
	Internal        error   `json:"-"`
}

func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

func NewFromEcho(e *echo.HTTPError) *HTTPError {
	msg := http.StatusText(e.Code)
	if s, ok := e.Message.(string); ok && s != "" {
		msg = s
	}

	return &HTTPError{
		Code:     e.Code,
		Message:  msg,
		Internal: e.Internal,
	}
}

// NewFromValidation maps a rejected withdrawal amount to a 400.
func NewFromValidation(e *wallet.ValidationError) *HTTPError {
	httpErr := &HTTPError{
		Code:     http.StatusBadRequest,
		Message:  e.Error(),
		Internal: e,
	}

	if e.HasBalance() {
		httpErr.TreasuryBalance = swag.String(wallet.FormatEther(e.Balance, etherPlaces))
		httpErr.MaxWithdrawable = swag.String(wallet.FormatEther(e.MaxWithdrawable, etherPlaces))
	}

	return httpErr
}

func (e *HTTPError) Error() string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "HTTPError %d: %s", e.Code, e.Message)

	if e.TreasuryBalance != nil {
		fmt.Fprintf(&builder, " (treasuryBalance=%s, maxWithdrawable=%s)", *e.TreasuryBalance, swag.StringValue(e.MaxWithdrawable))
	}
	if e.Internal != nil {
		fmt.Fprintf(&builder, ", %v", e.Internal)
	}

	return builder.String()
}
