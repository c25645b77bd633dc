package api

import (
	"math/big"
	"testing"
	"time"

	"github.com/chapool/treasury-api/internal/config"
	"github.com/chapool/treasury-api/internal/metrics"
	"github.com/chapool/treasury-api/internal/wallet"
	"github.com/chapool/treasury-api/internal/wallet/balance"
	"github.com/chapool/treasury-api/internal/wallet/fee"
	"github.com/chapool/treasury-api/internal/wallet/ledger"
	"github.com/chapool/treasury-api/internal/wallet/network"
	"github.com/chapool/treasury-api/internal/wallet/withdraw"
	"github.com/dropbox/godropbox/time2"
)

// PROVIDERS - define here only providers that for various reasons (e.g. cyclic dependency) can't live in their corresponding packages
// or for wrapping providers that only accept sub-configs to prevent the requirements for defining providers for sub-configs.
// https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

func NewClock(t ...*testing.T) time2.Clock {
	var clock time2.Clock

	useMock := len(t) > 0 && t[0] != nil

	if useMock {
		clock = time2.NewMockClock(time.Now())
	} else {
		clock = time2.DefaultClock
	}

	return clock
}

func NoTest() []*testing.T {
	return nil
}

// NewDialer returns the production ethclient dialer.
func NewDialer() network.Dialer {
	return network.DialEthereum
}

func NewSelector(cfg config.Server, dial network.Dialer, clock time2.Clock, m *metrics.Service) *network.Selector {
	return network.NewSelector(network.SelectorConfig{
		URLs:         cfg.Treasury.RPCURLs,
		ChainID:      big.NewInt(cfg.Treasury.ChainID),
		ProbeTimeout: cfg.Treasury.ProbeTimeout,
		PrivateKey:   cfg.Treasury.PrivateKey,
	}, dial, clock, m)
}

func NewFeeCalculator(cfg config.Server) *fee.Calculator {
	f := cfg.Treasury.Fee

	return fee.NewCalculator(fee.Policy{
		PriorityMultiplier:  f.PriorityMultiplier,
		MaxFeeMultiplier:    f.MaxFeeMultiplier,
		MinPriorityFee:      wallet.GweiToWei(f.MinPriorityFeeGwei),
		MinMaxFee:           wallet.GweiToWei(f.MinMaxFeeGwei),
		FallbackMaxFee:      wallet.GweiToWei(f.FallbackMaxFeeGwei),
		FallbackPriorityFee: wallet.GweiToWei(f.FallbackPriorityFeeGwei),
	})
}

func NewLedger(clock time2.Clock) *ledger.Ledger {
	return ledger.New(clock)
}

//nolint:ireturn
func NewBalanceService(cfg config.Server, m *metrics.Service) BalanceService {
	return balance.NewService(wallet.EtherToWei(cfg.Treasury.GasReserveETH), m)
}

//nolint:ireturn
func NewWithdrawService(
	cfg config.Server,
	selector *network.Selector,
	balanceService BalanceService,
	fees *fee.Calculator,
	l *ledger.Ledger,
	m *metrics.Service,
	clock time2.Clock,
) WithdrawService {
	return withdraw.NewService(withdraw.Config{
		GasLimit:            cfg.Treasury.GasLimit,
		ConfirmationTimeout: cfg.Treasury.ConfirmationTimeout,
		PollInterval:        cfg.Treasury.PollInterval,
		QueueTimeout:        cfg.Treasury.SubmitQueueTimeout,
		USDRate:             cfg.Treasury.USDRate,
	}, selector, balanceService, fees, l, m, clock)
}
