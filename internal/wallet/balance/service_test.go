package balance_test

import (
	"math/big"
	"testing"

	"github.com/chapool/treasury-api/internal/test"
	"github.com/chapool/treasury-api/internal/wallet"
	"github.com/chapool/treasury-api/internal/wallet/balance"
	"github.com/chapool/treasury-api/internal/wallet/network"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eth(t *testing.T, v string) *big.Int {
	t.Helper()
	return wallet.EtherToWei(decimal.RequireFromString(v))
}

func connect(t *testing.T, rpc *test.FakeClient, key string) *network.Connection {
	t.Helper()

	fake := test.NewFakeNetwork()
	fake.Add("https://rpc.test", rpc)

	conn, err := network.NewSelector(network.SelectorConfig{
		URLs:       []string{"https://rpc.test"},
		PrivateKey: key,
	}, fake.Dial, nil, nil).Connect(t.Context())
	require.NoError(t, err)

	return conn
}

func newGuard(t *testing.T) balance.Service {
	t.Helper()
	return balance.NewService(eth(t, balance.DefaultReserveETH), nil)
}

func TestCheckAccepted(t *testing.T) {
	rpc := test.NewFakeClient()
	rpc.SetBalance(test.TreasuryAddress(t), eth(t, "1.0"))
	conn := connect(t, rpc, test.TreasuryKeyHex)

	check, err := newGuard(t).Check(t.Context(), conn, eth(t, "0.5"))
	require.NoError(t, err)

	assert.Equal(t, 0, check.MaxWithdrawable.Cmp(eth(t, "0.99")))
	assert.Equal(t, 0, check.Amount.Cmp(eth(t, "0.5")))
	assert.Equal(t, 0, check.Balance.Cmp(eth(t, "1")))
}

func TestCheckAcceptsExactMaximum(t *testing.T) {
	rpc := test.NewFakeClient()
	rpc.SetBalance(test.TreasuryAddress(t), eth(t, "1.0"))
	conn := connect(t, rpc, test.TreasuryKeyHex)

	_, err := newGuard(t).Check(t.Context(), conn, eth(t, "0.99"))
	require.NoError(t, err)

	_, err = newGuard(t).Check(t.Context(), conn, new(big.Int).Add(eth(t, "0.99"), big.NewInt(1)))
	require.ErrorIs(t, err, wallet.ErrInsufficientBalance)
}

func TestCheckInsufficientBalance(t *testing.T) {
	rpc := test.NewFakeClient()
	rpc.SetBalance(test.TreasuryAddress(t), eth(t, "0.005"))
	conn := connect(t, rpc, test.TreasuryKeyHex)

	_, err := newGuard(t).Check(t.Context(), conn, eth(t, "0.5"))
	require.Error(t, err)
	require.ErrorIs(t, err, wallet.ErrInsufficientBalance)

	var verr *wallet.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Insufficient balance (need 0.01 ETH for high gas)", verr.Error())
	assert.True(t, verr.HasBalance())
	assert.Equal(t, 0, verr.MaxWithdrawable.Cmp(eth(t, "-0.005")))
	assert.Equal(t, "-0.005000", wallet.FormatEther(verr.MaxWithdrawable, 6))
}

func TestCheckInvalidAmount(t *testing.T) {
	rpc := test.NewFakeClient()
	conn := connect(t, rpc, test.TreasuryKeyHex)
	guard := newGuard(t)

	for _, amount := range []*big.Int{nil, big.NewInt(0), big.NewInt(-1)} {
		_, err := guard.Check(t.Context(), conn, amount)
		require.ErrorIs(t, err, wallet.ErrInvalidAmount)

		var verr *wallet.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.False(t, verr.HasBalance())
		assert.Equal(t, "Invalid amount", verr.Error())
	}

	// rejected before the node is asked
	assert.Equal(t, 0, rpc.Calls("BalanceAt"))
}

func TestResolveSweep(t *testing.T) {
	rpc := test.NewFakeClient()
	rpc.SetBalance(test.TreasuryAddress(t), eth(t, "2.5"))
	conn := connect(t, rpc, test.TreasuryKeyHex)

	check, err := newGuard(t).Resolve(t.Context(), conn, nil, true)
	require.NoError(t, err)
	assert.Equal(t, 0, check.Amount.Cmp(eth(t, "2.49")))

	check, err = newGuard(t).Resolve(t.Context(), conn, eth(t, "1"), true)
	require.NoError(t, err)
	assert.Equal(t, 0, check.Amount.Cmp(eth(t, "1")))
}

func TestResolveSweepEmptyTreasury(t *testing.T) {
	rpc := test.NewFakeClient()
	rpc.SetBalance(test.TreasuryAddress(t), eth(t, "0.004"))
	conn := connect(t, rpc, test.TreasuryKeyHex)

	_, err := newGuard(t).Resolve(t.Context(), conn, big.NewInt(0), true)

	var verr *wallet.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Insufficient treasury balance", verr.Error())
	assert.Equal(t, "-0.006000", wallet.FormatEther(verr.MaxWithdrawable, 6))
}

func TestBalanceErrors(t *testing.T) {
	rpc := test.NewFakeClient()
	rpc.BalanceErr = assert.AnError
	guard := newGuard(t)

	_, err := guard.Balance(t.Context(), connect(t, rpc, test.TreasuryKeyHex))
	require.ErrorIs(t, err, wallet.ErrNoConnectivity)

	_, err = guard.Balance(t.Context(), connect(t, test.NewFakeClient(), ""))
	require.ErrorIs(t, err, wallet.ErrSignerUnavailable)

	_, err = guard.Balance(t.Context(), nil)
	require.ErrorIs(t, err, wallet.ErrNoConnectivity)
}
