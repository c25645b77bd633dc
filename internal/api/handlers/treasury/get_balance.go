package treasury

import (
	"net/http"

	"github.com/chapool/treasury-api/internal/api"
	"github.com/chapool/treasury-api/internal/wallet"
	"github.com/labstack/echo/v4"
)

func GetBalanceRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/balance", getBalanceHandler(s))
}

func getBalanceHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		balance := treasuryBalance(c.Request().Context(), s)

		return c.JSON(http.StatusOK, &BalanceResponse{
			TreasuryWallet: treasuryAddress(s),
			Balance:        balance.StringFixed(etherPlaces),
			BalanceUSD:     wallet.ToUSD(balance, s.Config.Treasury.USDRate).StringFixed(usdPlaces),
		})
	}
}
