package withdraw_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/chapool/treasury-api/internal/test"
	"github.com/chapool/treasury-api/internal/wallet/balance"
	"github.com/chapool/treasury-api/internal/wallet/fee"
	"github.com/chapool/treasury-api/internal/wallet/ledger"
	"github.com/chapool/treasury-api/internal/wallet/network"
	"github.com/chapool/treasury-api/internal/wallet/withdraw"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simulatedChainID = 1337

// simulatedClient mines a block right after every accepted transaction
type simulatedClient struct {
	simulated.Client
	backend *simulated.Backend
}

func (c *simulatedClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if err := c.Client.SendTransaction(ctx, tx); err != nil {
		return err
	}
	c.backend.Commit()
	return nil
}

func (c *simulatedClient) Close() {}

func TestWithdrawSimulatedChain(t *testing.T) {
	treasury := test.TreasuryAddress(t)

	backend := simulated.NewBackend(types.GenesisAlloc{
		treasury: {Balance: eth("10")},
	})
	t.Cleanup(func() { _ = backend.Close() })

	client := &simulatedClient{Client: backend.Client(), backend: backend}

	selector := network.NewSelector(network.SelectorConfig{
		URLs:         []string{"simulated"},
		ChainID:      big.NewInt(simulatedChainID),
		ProbeTimeout: time.Second,
		PrivateKey:   test.TreasuryKeyHex,
	}, func(context.Context, string) (network.Client, error) {
		return client, nil
	}, nil, nil)

	cfg := withdraw.DefaultConfig()
	cfg.PollInterval = 10 * time.Millisecond
	cfg.ConfirmationTimeout = 5 * time.Second

	l := ledger.New(nil)
	svc := withdraw.NewService(
		cfg,
		selector,
		balance.NewService(eth(balance.DefaultReserveETH), nil),
		fee.NewCalculator(fee.DefaultPolicy()),
		l,
		nil,
		nil,
	)

	receipt, err := svc.Withdraw(t.Context(), withdraw.Request{ToAddress: coinbase, Amount: eth("1")})
	require.NoError(t, err)

	assert.True(t, receipt.Success)
	assert.Equal(t, uint64(withdraw.DefaultGasLimit), receipt.GasUsed)
	assert.Equal(t, uint64(1), receipt.BlockNumber)

	got, err := backend.Client().BalanceAt(t.Context(), coinbase, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Cmp(eth("1")))

	remaining, err := backend.Client().BalanceAt(t.Context(), treasury, nil)
	require.NoError(t, err)
	assert.Negative(t, remaining.Cmp(eth("9")), "gas must have been paid")

	assert.True(t, l.Totals().Withdrawn.Equal(decimal.NewFromInt(3450)))
}
