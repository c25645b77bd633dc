package treasury

import (
	"net/http"

	"github.com/chapool/treasury-api/internal/api"
	"github.com/chapool/treasury-api/internal/api/httperrors"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func PostCreditEarningsRoute(s *api.Server) *echo.Route {
	return s.Router.Root.POST("/credit-earnings", postCreditEarningsHandler(s))
}

func postCreditEarningsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body CreditEarningsPayload
		if err := c.Bind(&body); err != nil {
			return httperrors.ErrBadRequestMalformedBody
		}

		if body.OutOfRange() {
			return httperrors.ErrBadRequestInvalidAmount
		}

		amount := decimal.Zero
		switch {
		case body.AmountUSD.NonZero():
			amount = body.AmountUSD.Value
		case body.Amount.Set:
			amount = body.Amount.Value
		}

		credited := s.Ledger.CreditEarnings(amount)

		return c.JSON(http.StatusOK, &CreditEarningsResponse{
			Success:       true,
			Credited:      number(credited),
			TotalEarnings: s.Ledger.Totals().Earnings.StringFixed(usdPlaces),
		})
	}
}
