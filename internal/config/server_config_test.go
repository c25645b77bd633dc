package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chapool/treasury-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintServiceEnv(t *testing.T) {
	config := config.DefaultServiceConfigFromEnv()
	_, err := json.MarshalIndent(config, "", "  ")

	if err != nil {
		t.Fatal(err)
	}
}

func TestDefaultServiceConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TREASURY_PRIVATE_KEY", "0xsecret")
	t.Setenv("TREASURY_RPC_URLS", "https://a.test,https://b.test")

	cfg := config.DefaultServiceConfigFromEnv()

	assert.Equal(t, ":9090", cfg.Echo.ListenAddress)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.Treasury.RPCURLs)
	assert.Equal(t, int64(config.DefaultChainID), cfg.Treasury.ChainID)
	assert.Equal(t, config.DefaultCoinbaseWallet, cfg.Treasury.CoinbaseWallet)
	assert.Equal(t, "0.01", cfg.Treasury.GasReserveETH.String())
	assert.Equal(t, "3450", cfg.Treasury.USDRate.String())
	assert.Equal(t, 5*time.Second, cfg.Treasury.ProbeTimeout)

	out, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "0xsecret")
}

func TestDefaultRPCURLs(t *testing.T) {
	cfg := config.DefaultServiceConfigFromEnv()
	require.Len(t, cfg.Treasury.RPCURLs, 6)
	assert.Equal(t, "https://ethereum-rpc.publicnode.com", cfg.Treasury.RPCURLs[0])
	assert.Equal(t, "https://cloudflare-eth.com", cfg.Treasury.RPCURLs[5])
}

func TestApplyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "treasury.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rpc_urls:
  - https://primary.test
  - https://secondary.test
probe_timeout: 2s
privatekey: "0xfromfile"
fee:
  min_priority_fee_gwei: 7
`), 0o600))

	cfg := config.DefaultServiceConfigFromEnv().Treasury
	cfg.PrivateKey = "0xfromenv"

	require.NoError(t, cfg.ApplyFile(path))

	assert.Equal(t, []string{"https://primary.test", "https://secondary.test"}, cfg.RPCURLs)
	assert.Equal(t, 2*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, int64(7), cfg.Fee.MinPriorityFeeGwei)
	// untouched keys keep their defaults
	assert.Equal(t, int64(50), cfg.Fee.MinMaxFeeGwei)
	assert.Equal(t, "0xfromenv", cfg.PrivateKey)
}

func TestApplyFileMissing(t *testing.T) {
	cfg := config.DefaultServiceConfigFromEnv().Treasury
	require.Error(t, cfg.ApplyFile(filepath.Join(t.TempDir(), "missing.yaml")))
}
