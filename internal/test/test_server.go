package test

import (
	"context"
	"testing"
	"time"

	"github.com/chapool/treasury-api/internal/api"
	"github.com/chapool/treasury-api/internal/api/router"
	"github.com/chapool/treasury-api/internal/config"
	"github.com/chapool/treasury-api/internal/wallet"
	"github.com/chapool/treasury-api/internal/wallet/network"
)

// TestRPCURL is the single endpoint the test treasury is reachable at
const TestRPCURL = "https://rpc.test"

// WithTestServer executes closure with a fully initialized server whose RPC endpoint is
// an in-memory FakeClient.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestTreasury(t, func(s *api.Server, _ *FakeClient) {
		closure(s)
	})
}

// WithTestTreasury is WithTestServer, additionally handing out the FakeClient behind the
// treasury so that tests can set balances and inject RPC failures.
func WithTestTreasury(t *testing.T, closure func(s *api.Server, rpc *FakeClient)) {
	t.Helper()

	rpc := NewFakeClient()
	rpc.BaseFee = wallet.GweiToWei(10)
	rpc.TipCap = wallet.GweiToWei(1)

	fake := NewFakeNetwork()
	fake.Add(TestRPCURL, rpc)

	WithTestServerConfigurable(t, TestServerConfig(), fake.Dial, func(s *api.Server) {
		closure(s, rpc)
	})
}

// TestServerConfig returns the default config pointed at TestRPCURL with the test treasury key
// and short timeouts.
func TestServerConfig() config.Server {
	cfg := config.DefaultServiceConfigFromEnv()

	cfg.Logger.PrettyPrintConsole = false
	cfg.Treasury.RPCURLs = []string{TestRPCURL}
	cfg.Treasury.PrivateKey = TreasuryKeyHex
	cfg.Treasury.ProbeTimeout = 100 * time.Millisecond
	cfg.Treasury.PollInterval = time.Millisecond
	cfg.Treasury.ConfirmationTimeout = 2 * time.Second
	cfg.Treasury.SubmitQueueTimeout = 50 * time.Millisecond
	cfg.Treasury.ProbeOnStartup = false

	return cfg
}

// WithTestServerConfigurable executes closure with a server built from config, dialing
// RPC endpoints through dial.
func WithTestServerConfigurable(t *testing.T, config config.Server, dial network.Dialer, closure func(s *api.Server)) {
	t.Helper()

	s, err := api.InitNewServerWithDialer(config, dial, t)
	if err != nil {
		t.Fatalf("failed to init server: %v", err)
	}

	if err := router.Init(s); err != nil {
		t.Fatalf("failed to init router: %v", err)
	}

	closure(s)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if errs := s.Shutdown(ctx); len(errs) > 0 {
		t.Fatalf("failed to shutdown server: %v", errs)
	}
}
