package treasury

import (
	"net/http"

	"github.com/chapool/treasury-api/internal/api"
	"github.com/chapool/treasury-api/internal/config"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// fixed figures reported to the dashboard
const (
	totalStrategies  = 450
	activeStrategies = 360
)

var minTradeETH = decimal.RequireFromString(config.DefaultTradeMinETH)

func GetStrategiesLiveRoute(s *api.Server) *echo.Route {
	return s.Router.APIApex.GET("/strategies/live", getStrategiesLiveHandler(s))
}

func getStrategiesLiveHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		balance := treasuryBalance(c.Request().Context(), s)

		return c.JSON(http.StatusOK, &StrategiesLiveResponse{
			TotalPnL:         number(s.Ledger.Totals().Earnings),
			ProjectedHourly:  config.DefaultProjectedHourly,
			TotalStrategies:  totalStrategies,
			ActiveStrategies: activeStrategies,
			TreasuryBalance:  balance.StringFixed(etherPlaces),
			FeeRecipient:     s.Config.Treasury.CoinbaseWallet,
			CanTrade:         balance.GreaterThanOrEqual(minTradeETH),
		})
	}
}
