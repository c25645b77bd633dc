package common

import (
	"context"
	"net/http"

	"github.com/chapool/treasury-api/internal/api"
	"github.com/chapool/treasury-api/internal/util"
	"github.com/labstack/echo/v4"
)

// statusNotReady is the go-starter convention for a failed readiness probe
const statusNotReady = 521

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

// Readiness: all components are initialized and an RPC endpoint is committed or can be committed.
func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Ready() {
			return c.String(statusNotReady, "Not ready.")
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), s.Config.Management.ReadinessTimeout)
		defer cancel()

		if _, err := s.Network.Connect(ctx); err != nil {
			util.LogFromEchoContext(c).Warn().Err(err).Msg("Readiness probe failed")
			return c.String(statusNotReady, "Not ready.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
