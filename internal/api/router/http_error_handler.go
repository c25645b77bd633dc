package router

import (
	"errors"
	"net/http"

	"github.com/chapool/treasury-api/internal/api/httperrors"
	"github.com/chapool/treasury-api/internal/util"
	"github.com/labstack/echo/v4"
)

type HTTPErrorHandlerConfig struct {
	HideInternalServerErrorDetails bool
}

// HTTPErrorHandlerWithConfig renders every error as JSON {"error": ...}.
// Errors from the treasury services are classified with httperrors.NewFromWallet.
func HTTPErrorHandlerWithConfig(config HTTPErrorHandlerConfig) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *httperrors.HTTPError
		var echoErr *echo.HTTPError

		switch {
		case errors.As(err, &httpErr):
		case errors.As(err, &echoErr):
			httpErr = httperrors.NewFromEcho(echoErr)
		default:
			httpErr = httperrors.NewFromWallet(err)
		}

		log := util.LogFromEchoContext(c)
		if httpErr.Code >= http.StatusInternalServerError {
			log.Error().Err(err).Int("status", httpErr.Code).Msg("Request failed")

			if config.HideInternalServerErrorDetails {
				httpErr = httperrors.NewHTTPError(httpErr.Code, http.StatusText(httpErr.Code))
			}
		} else {
			log.Debug().Err(err).Int("status", httpErr.Code).Msg("Request rejected")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(httpErr.Code)
		} else {
			writeErr = c.JSON(httpErr.Code, httpErr)
		}

		if writeErr != nil {
			log.Error().Err(writeErr).AnErr("originalErr", err).Msg("Failed to write error response")
		}
	}
}
