package treasury

import (
	"net/http"

	"github.com/chapool/treasury-api/internal/api"
	"github.com/chapool/treasury-api/internal/config"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

var minWithdrawETH = decimal.RequireFromString(config.DefaultWithdrawMinETH)

func GetStatusRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/status", getStatusHandler(s))
}

func getStatusHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		balance := treasuryBalance(c.Request().Context(), s)

		return c.JSON(http.StatusOK, &StatusResponse{
			Status:          "online",
			GasMode:         config.DefaultGasModeShort,
			TreasuryBalance: balance.StringFixed(etherPlaces),
			CanWithdraw:     balance.GreaterThanOrEqual(minWithdrawETH),
			TotalEarnings:   s.Ledger.Totals().Earnings.StringFixed(usdPlaces),
		})
	}
}
