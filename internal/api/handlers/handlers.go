package handlers

import (
	"github.com/chapool/treasury-api/internal/api"
	"github.com/chapool/treasury-api/internal/api/handlers/common"
	"github.com/chapool/treasury-api/internal/api/handlers/treasury"
	"github.com/labstack/echo/v4"
)

func AttachAllRoutes(s *api.Server) {
	// attach our routes
	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetMetricsRoute(s),
		common.GetReadyRoute(s),
		treasury.GetRootRoute(s),
		treasury.GetStatusRoute(s),
		treasury.GetHealthRoute(s),
		treasury.GetBalanceRoute(s),
		treasury.GetStrategiesLiveRoute(s),
		treasury.PostCreditEarningsRoute(s),
	}

	s.Router.Routes = append(s.Router.Routes, treasury.PostWithdrawRoutes(s)...)
	s.Router.Routes = append(s.Router.Routes, treasury.PostBackendToCoinbaseRoutes(s)...)
	s.Router.Routes = append(s.Router.Routes, treasury.PostSendToBackendRoutes(s)...)
}
