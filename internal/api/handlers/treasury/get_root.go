package treasury

import (
	"net/http"

	"github.com/chapool/treasury-api/internal/api"
	"github.com/chapool/treasury-api/internal/config"
	"github.com/labstack/echo/v4"
)

func GetRootRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/", getRootHandler(s))
}

func getRootHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, &RootResponse{
			Name:           config.DefaultAPIName,
			Version:        config.Version,
			Status:         "online",
			GasMode:        config.DefaultGasMode,
			CoinbaseWallet: s.Config.Treasury.CoinbaseWallet,
			TreasuryWallet: s.Config.Treasury.TreasuryWallet,
		})
	}
}
