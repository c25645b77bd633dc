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

// PostWithdrawRoutes registers the withdrawal endpoint and its aliases. All of them send to
// the "to" address of the body, defaulting to the coinbase wallet, except /coinbase-withdraw
// which always sends to the coinbase wallet.
func PostWithdrawRoutes(s *api.Server) []*echo.Route {
	handler := postWithdrawHandler(s, false)

	return []*echo.Route{
		s.Router.Root.POST("/withdraw", handler),
		s.Router.Root.POST("/send-to-coinbase", handler),
		s.Router.Root.POST("/send-eth", handler),
		s.Router.Root.POST("/transfer", handler),
		s.Router.Root.POST("/coinbase-withdraw", postWithdrawHandler(s, true)),
	}
}

func postWithdrawHandler(s *api.Server, forceCoinbase bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body WithdrawPayload
		if err := c.Bind(&body); err != nil {
			return httperrors.ErrBadRequestMalformedBody
		}

		if forceCoinbase {
			body.To = ""
		}

		if body.OutOfRange() {
			return httperrors.ErrBadRequestInvalidAmount
		}

		amount := wallet.EtherToWei(body.ETHAmount(s.Config.Treasury.USDRate))
		if amount.Sign() <= 0 {
			return httperrors.ErrBadRequestInvalidAmount
		}

		to, ok := parseDestination(body.To, s.Config.Treasury.CoinbaseWallet)
		if !ok {
			return httperrors.ErrBadRequestInvalidDestination
		}

		log.Info().Str("to", to.Hex()).Str("amount_wei", amount.String()).Msg("Withdrawal requested")

		receipt, err := s.Withdraw.Withdraw(ctx, withdraw.Request{
			ToAddress: to,
			Amount:    amount,
		})
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, newWithdrawResponse(s, receipt))
	}
}
