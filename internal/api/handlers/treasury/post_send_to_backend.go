package treasury

import (
	"net/http"

	"github.com/chapool/treasury-api/internal/api"
	"github.com/chapool/treasury-api/internal/api/httperrors"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// PostSendToBackendRoutes only acknowledges an allocation. No funds are moved.
func PostSendToBackendRoutes(s *api.Server) []*echo.Route {
	handler := postSendToBackendHandler(s)

	return []*echo.Route{
		s.Router.Root.POST("/send-to-backend", handler),
		s.Router.Root.POST("/fund-backend", handler),
		s.Router.Root.POST("/fund-from-earnings", handler),
	}
}

func postSendToBackendHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body SendToBackendPayload
		if err := c.Bind(&body); err != nil {
			return httperrors.ErrBadRequestMalformedBody
		}

		if body.OutOfRange() {
			return httperrors.ErrBadRequestInvalidAmount
		}

		allocated := decimal.Zero
		rate := s.Config.Treasury.USDRate
		switch {
		case body.AmountETH.NonZero():
			allocated = body.AmountETH.Value
		case body.AmountUSD.NonZero() && !rate.IsZero():
			allocated = body.AmountUSD.Value.Div(rate)
		}

		return c.JSON(http.StatusOK, &SendToBackendResponse{
			Success:   true,
			Allocated: number(allocated),
			To:        s.Config.Treasury.TreasuryWallet,
		})
	}
}
