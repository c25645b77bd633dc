package treasury

import (
	"net/http"

	"github.com/chapool/treasury-api/internal/api"
	"github.com/labstack/echo/v4"
)

func GetHealthRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/health", getHealthHandler(s))
}

func getHealthHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		balance := treasuryBalance(c.Request().Context(), s)

		return c.JSON(http.StatusOK, &HealthResponse{
			Status:          "healthy",
			TreasuryBalance: balance.StringFixed(etherPlaces),
		})
	}
}
