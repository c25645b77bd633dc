package treasury

import (
	"net/http"

	"github.com/chapool/treasury-api/internal/api"
	"github.com/chapool/treasury-api/internal/api/httperrors"
	"github.com/chapool/treasury-api/internal/util"
	"github.com/chapool/treasury-api/internal/wallet"
	"github.com/chapool/treasury-api/internal/wallet/withdraw"
	"github.com/labstack/echo/v4"
)

// PostBackendToCoinbaseRoutes registers the treasury sweep and its aliases. The destination
// is always the coinbase wallet; without an amount everything above the gas reserve is sent.
func PostBackendToCoinbaseRoutes(s *api.Server) []*echo.Route {
	handler := postBackendToCoinbaseHandler(s)

	return []*echo.Route{
		s.Router.Root.POST("/backend-to-coinbase", handler),
		s.Router.Root.POST("/transfer-to-coinbase", handler),
		s.Router.Root.POST("/treasury-to-coinbase", handler),
	}
}

func postBackendToCoinbaseHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body WithdrawPayload
		if err := c.Bind(&body); err != nil {
			return httperrors.ErrBadRequestMalformedBody
		}

		// amountUSD is not honored by the sweep
		body.AmountUSD = FlexibleAmount{}

		// an unusable amount must not turn into a full sweep
		if body.OutOfRange() {
			return httperrors.ErrBadRequestInvalidAmount
		}

		to, ok := parseDestination("", s.Config.Treasury.CoinbaseWallet)
		if !ok {
			return httperrors.ErrBadRequestInvalidDestination
		}

		// negative amounts sweep as well
		amount := wallet.EtherToWei(body.ETHAmount(s.Config.Treasury.USDRate))
		if amount.Sign() < 0 {
			amount.SetInt64(0)
		}

		log.Info().Str("to", to.Hex()).Str("amount_wei", amount.String()).Msg("Treasury sweep requested")

		receipt, err := s.Withdraw.Sweep(ctx, withdraw.Request{
			ToAddress: to,
			Amount:    amount,
		})
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, newWithdrawResponse(s, receipt))
	}
}
