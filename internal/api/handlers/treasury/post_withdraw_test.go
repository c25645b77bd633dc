package treasury_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/chapool/treasury-api/internal/api"
	"github.com/chapool/treasury-api/internal/api/handlers/treasury"
	"github.com/chapool/treasury-api/internal/config"
	"github.com/chapool/treasury-api/internal/test"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var coinbase = common.HexToAddress(config.DefaultCoinbaseWallet)

type errorBody struct {
	Error           string  `json:"error"`
	TreasuryBalance *string `json:"treasuryBalance"`
	MaxWithdrawable *string `json:"maxWithdrawable"`
}

func TestPostWithdraw(t *testing.T) {
	test.WithTestTreasury(t, func(s *api.Server, rpc *test.FakeClient) {
		rpc.SetBalance(test.TreasuryAddress(t), eth("1.0"))

		res := test.PerformRequest(t, s, "POST", "/withdraw", test.GenericPayload{"amountETH": 0.5}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var body treasury.WithdrawResponse
		test.ParseResponseBody(t, res, &body)

		sent := rpc.SentTransactions()
		require.Len(t, sent, 1)

		assert.True(t, body.Success)
		assert.Equal(t, sent[0].Hash().Hex(), body.TxHash)
		assert.Equal(t, "0.5", body.Amount.String())
		assert.Equal(t, "1725.00", body.AmountUSD)
		assert.Equal(t, coinbase.Hex(), body.To)
		assert.Equal(t, test.TreasuryAddress(t).Hex(), body.From)
		assert.Equal(t, rpc.Height+1, body.BlockNumber)
		assert.Equal(t, "21000", body.GasUsed)
		assert.Equal(t, "https://etherscan.io/tx/"+body.TxHash, body.EtherscanURL)

		assert.True(t, s.Ledger.Totals().Withdrawn.Equal(decimal.NewFromInt(1725)))
	})
}

func TestPostWithdrawAliases(t *testing.T) {
	for _, path := range []string{"/send-to-coinbase", "/send-eth", "/transfer"} {
		t.Run(path, func(t *testing.T) {
			test.WithTestTreasury(t, func(s *api.Server, rpc *test.FakeClient) {
				rpc.SetBalance(test.TreasuryAddress(t), eth("1.0"))
				to := common.HexToAddress("0x00000000000000000000000000000000000000aa")

				res := test.PerformRequest(t, s, "POST", path, test.GenericPayload{"amount": "0.1", "to": to.Hex()}, nil)
				require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

				assert.Equal(t, 0, rpc.Balance(to).Cmp(eth("0.1")))
			})
		})
	}
}

func TestPostCoinbaseWithdrawIgnoresDestination(t *testing.T) {
	test.WithTestTreasury(t, func(s *api.Server, rpc *test.FakeClient) {
		rpc.SetBalance(test.TreasuryAddress(t), eth("1.0"))

		res := test.PerformRequest(t, s, "POST", "/coinbase-withdraw", test.GenericPayload{
			"amountETH": "0.2",
			"to":        "0x00000000000000000000000000000000000000aa",
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		assert.Equal(t, 0, rpc.Balance(coinbase).Cmp(eth("0.2")))
	})
}

func TestPostWithdrawUSD(t *testing.T) {
	test.WithTestTreasury(t, func(s *api.Server, rpc *test.FakeClient) {
		rpc.SetBalance(test.TreasuryAddress(t), eth("1.0"))

		res := test.PerformRequest(t, s, "POST", "/withdraw", test.GenericPayload{"amountUSD": 345}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		assert.Equal(t, 0, rpc.Balance(coinbase).Cmp(eth("0.1")))
		assert.True(t, s.Ledger.Totals().Withdrawn.Equal(decimal.NewFromInt(345)))
	})
}

func TestPostWithdrawInvalidAmount(t *testing.T) {
	payloads := []any{
		nil,
		test.GenericPayload{},
		test.GenericPayload{"amountETH": 0},
		test.GenericPayload{"amountETH": -1},
		test.GenericPayload{"amount": "lots"},
	}

	for i, payload := range payloads {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.WithTestTreasury(t, func(s *api.Server, rpc *test.FakeClient) {
				rpc.SetBalance(test.TreasuryAddress(t), eth("1.0"))

				res := test.PerformRequest(t, s, "POST", "/withdraw", payload, nil)
				require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

				var body errorBody
				test.ParseResponseBody(t, res, &body)
				assert.Equal(t, "Invalid amount", body.Error)
				assert.Nil(t, body.TreasuryBalance)
				assert.Empty(t, rpc.SentTransactions())
			})
		})
	}
}

func TestPostWithdrawInvalidDestination(t *testing.T) {
	test.WithTestTreasury(t, func(s *api.Server, rpc *test.FakeClient) {
		res := test.PerformRequest(t, s, "POST", "/withdraw", test.GenericPayload{"amountETH": 0.1, "to": "coinbase"}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var body errorBody
		test.ParseResponseBody(t, res, &body)
		assert.Equal(t, "Invalid destination address", body.Error)
		assert.Empty(t, rpc.SentTransactions())
	})
}

func TestPostWithdrawInsufficientBalance(t *testing.T) {
	test.WithTestTreasury(t, func(s *api.Server, rpc *test.FakeClient) {
		rpc.SetBalance(test.TreasuryAddress(t), eth("0.005"))

		res := test.PerformRequest(t, s, "POST", "/withdraw", test.GenericPayload{"amountETH": 0.5}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var body errorBody
		test.ParseResponseBody(t, res, &body)
		assert.Equal(t, "Insufficient balance (need 0.01 ETH for high gas)", body.Error)
		require.NotNil(t, body.TreasuryBalance)
		require.NotNil(t, body.MaxWithdrawable)
		assert.Equal(t, "0.005000", *body.TreasuryBalance)
		assert.Equal(t, "-0.005000", *body.MaxWithdrawable)

		assert.Empty(t, rpc.SentTransactions())
		assert.True(t, s.Ledger.Totals().Withdrawn.IsZero())
	})
}

func TestPostWithdrawNoConnectivity(t *testing.T) {
	test.WithTestTreasury(t, func(s *api.Server, rpc *test.FakeClient) {
		rpc.Hang = true

		res := test.PerformRequest(t, s, "POST", "/withdraw", test.GenericPayload{"amountETH": 0.1}, nil)
		require.Equal(t, http.StatusInternalServerError, res.Result().StatusCode)

		var body errorBody
		test.ParseResponseBody(t, res, &body)
		assert.Contains(t, body.Error, "no connectivity")
	})
}

func TestPostWithdrawReverted(t *testing.T) {
	test.WithTestTreasury(t, func(s *api.Server, rpc *test.FakeClient) {
		rpc.SetBalance(test.TreasuryAddress(t), eth("1.0"))
		rpc.ReceiptStatus = types.ReceiptStatusFailed

		res := test.PerformRequest(t, s, "POST", "/withdraw", test.GenericPayload{"amountETH": 0.1}, nil)
		require.Equal(t, http.StatusInternalServerError, res.Result().StatusCode)

		var body errorBody
		test.ParseResponseBody(t, res, &body)
		assert.Contains(t, body.Error, "transaction reverted")
		assert.True(t, s.Ledger.Totals().Withdrawn.IsZero())
	})
}

func TestPostBackendToCoinbaseSweep(t *testing.T) {
	for _, path := range []string{"/backend-to-coinbase", "/transfer-to-coinbase", "/treasury-to-coinbase"} {
		t.Run(path, func(t *testing.T) {
			test.WithTestTreasury(t, func(s *api.Server, rpc *test.FakeClient) {
				rpc.SetBalance(test.TreasuryAddress(t), eth("0.51"))

				res := test.PerformRequest(t, s, "POST", path, nil, nil)
				require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

				var body treasury.WithdrawResponse
				test.ParseResponseBody(t, res, &body)
				assert.Equal(t, "0.5", body.Amount.String())
				assert.Equal(t, coinbase.Hex(), body.To)
				assert.Equal(t, 0, rpc.Balance(coinbase).Cmp(eth("0.5")))
			})
		})
	}
}

func TestPostBackendToCoinbaseAmount(t *testing.T) {
	test.WithTestTreasury(t, func(s *api.Server, rpc *test.FakeClient) {
		rpc.SetBalance(test.TreasuryAddress(t), eth("1"))

		res := test.PerformRequest(t, s, "POST", "/backend-to-coinbase", test.GenericPayload{"amountETH": "0.25"}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		assert.Equal(t, 0, rpc.Balance(coinbase).Cmp(eth("0.25")))
	})
}

func TestPostBackendToCoinbaseEmptyTreasury(t *testing.T) {
	test.WithTestTreasury(t, func(s *api.Server, rpc *test.FakeClient) {
		rpc.SetBalance(test.TreasuryAddress(t), eth("0.008"))

		res := test.PerformRequest(t, s, "POST", "/backend-to-coinbase", nil, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var body errorBody
		test.ParseResponseBody(t, res, &body)
		assert.Equal(t, "Insufficient treasury balance", body.Error)
		require.NotNil(t, body.MaxWithdrawable)
		assert.Equal(t, "-0.002000", *body.MaxWithdrawable)
	})
}

func TestPostWithdrawWithoutSigner(t *testing.T) {
	cfg := test.TestServerConfig()
	cfg.Treasury.PrivateKey = ""

	rpc := test.NewFakeClient()
	fake := test.NewFakeNetwork()
	fake.Add(test.TestRPCURL, rpc)

	test.WithTestServerConfigurable(t, cfg, fake.Dial, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/withdraw", test.GenericPayload{"amountETH": 0.1}, nil)
		require.Equal(t, http.StatusInternalServerError, res.Result().StatusCode)

		var body errorBody
		test.ParseResponseBody(t, res, &body)
		assert.Equal(t, "treasury signer not configured", body.Error)
	})
}

func TestPostWithdrawUnboundedAmountRejectedQuickly(t *testing.T) {
	payloads := map[string]test.GenericPayload{
		"/withdraw amountETH":         {"amountETH": "1e200000000"},
		"/withdraw amountUSD":         {"amountUSD": "1e200000000"},
		"/withdraw tiny":              {"amount": "1e-200000000"},
		"/backend-to-coinbase amount": {"amountETH": "1e200000000"},
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			test.WithTestTreasury(t, func(s *api.Server, rpc *test.FakeClient) {
				rpc.SetBalance(test.TreasuryAddress(t), eth("1.0"))

				path := name[:strings.Index(name, " ")]
				start := time.Now()
				res := test.PerformRequest(t, s, "POST", path, payload, nil)
				assert.Less(t, time.Since(start), 2*time.Second)

				require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

				var body errorBody
				test.ParseResponseBody(t, res, &body)
				assert.Equal(t, "Invalid amount", body.Error)

				// in particular the sweep must not fall back to sending everything
				assert.Empty(t, rpc.SentTransactions())
				assert.True(t, s.Ledger.Totals().Withdrawn.IsZero())
			})
		})
	}
}
