package router

import (
	"net/http"

	"github.com/chapool/treasury-api/internal/api"
	"github.com/chapool/treasury-api/internal/api/handlers"
	"github.com/chapool/treasury-api/internal/api/middleware"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// metricsPath is scraped every few seconds and kept out of request logs and request metrics
const metricsPath = "/-/metrics"

func skipMetrics(c echo.Context) bool {
	return c.Path() == metricsPath
}

func Init(s *api.Server) error {
	s.Echo = echo.New()

	s.Echo.Debug = s.Config.Echo.Debug
	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.Echo.HTTPErrorHandler = HTTPErrorHandlerWithConfig(HTTPErrorHandlerConfig{
		HideInternalServerErrorDetails: s.Config.Echo.HideInternalServerErrorDetails,
	})

	// ---
	// General middleware
	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(echoMiddleware.Recover())
	} else {
		log.Warn().Msg("Disabling recover middleware due to environment config")
	}

	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(echoMiddleware.RequestID())
	} else {
		log.Warn().Msg("Disabling request ID middleware due to environment config")
	}

	if s.Config.Echo.EnableLoggerMiddleware {
		s.Echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Level:   s.Config.Logger.RequestLevel,
			Skipper: skipMetrics,
			Clock:   s.Clock,
		}))
	} else {
		log.Warn().Msg("Disabling logger middleware due to environment config")
	}

	if s.Config.Echo.EnableCORSMiddleware {
		s.Echo.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		}))
	} else {
		log.Warn().Msg("Disabling CORS middleware due to environment config")
	}

	requestMetrics, err := echoprometheus.MiddlewareConfig{
		Namespace:  "treasury",
		Subsystem:  "http",
		Skipper:    skipMetrics,
		Registerer: s.Metrics.Registry(),
	}.ToMiddleware()
	if err != nil {
		return errors.Wrap(err, "failed to create request metrics middleware")
	}
	s.Echo.Use(requestMetrics)

	s.Echo.Use(echoMiddleware.BodyLimit("64K"))

	// ---
	// Initialize our general groups and set middleware to use above them
	s.Router = &api.Router{
		Routes: nil, // will be populated by handlers.AttachAllRoutes(s)

		// Unsecured base group available at /**
		Root: s.Echo.Group(""),

		// Management endpoints, /-/**
		Management: s.Echo.Group("/-"),

		// Compatibility surface for the trading dashboard, /api/apex/**
		APIApex: s.Echo.Group("/api/apex"),
	}

	// ---
	// Finally attach our handlers
	handlers.AttachAllRoutes(s)

	return nil
}
