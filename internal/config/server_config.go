package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chapool/treasury-api/internal/util"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	EnableCORSMiddleware           bool
	EnableLoggerMiddleware         bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
}

type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	PrettyPrintConsole bool
}

type ManagementServer struct {
	ReadinessTimeout time.Duration
}

type Server struct {
	Echo       EchoServer
	Management ManagementServer
	Logger     LoggerServer
	Treasury   Treasury
}

var (
	dotEnvOnce sync.Once
)

// DefaultServiceConfigFromEnv returns the server config as parsed from environment variables
// and their respective defaults defined below.
// We don't expect that ENV_VARs change while we are running our application or our tests
// (and it would be a bad thing to do anyways with parallel testing).
// Do NOT use os.Setenv / os.Unsetenv in tests utilizing DefaultServiceConfigFromEnv()!
func DefaultServiceConfigFromEnv() Server {
	// An `.env.local` file in your project root can override the currently set ENV variables.
	//
	// We never automatically apply `.env.local` when running "go test" as these ENV variables
	// may be sensitive (e.g. secrets to external APIs) and applying them modifies the process
	// global "os.Env" state (it should be applied via t.SetEnv instead).
	//
	// If you need dotenv ENV variables available in a test, do that explicitly within that
	// test before executing DefaultServiceConfigFromEnv.
	dotEnvOnce.Do(func() {
		if !runningTests() {
			DotEnvTryLoad(filepath.Join(util.GetEnv("PROJECT_ROOT_DIR", "."), ".env.local"), os.Setenv)
		}
	})

	cfg := Server{
		Echo: EchoServer{
			Debug:                          util.GetEnvAsBool("SERVER_ECHO_DEBUG", false),
			ListenAddress:                  fmt.Sprintf(":%d", util.GetEnvAsInt("PORT", 8080)),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", false),
			EnableCORSMiddleware:           util.GetEnvAsBool("SERVER_ECHO_ENABLE_CORS_MIDDLEWARE", true),
			EnableLoggerMiddleware:         util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
		},
		Management: ManagementServer{
			ReadinessTimeout: util.GetEnvAsDuration("SERVER_MANAGEMENT_READINESS_TIMEOUT", 30*time.Second),
		},
		Logger: LoggerServer{
			Level:              util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_LEVEL", zerolog.DebugLevel.String())),
			RequestLevel:       util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_REQUEST_LEVEL", zerolog.DebugLevel.String())),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Treasury: Treasury{
			RPCURLs:      util.GetEnvAsStringArr("TREASURY_RPC_URLS", DefaultRPCURLs),
			ChainID:      util.GetEnvAsInt64("TREASURY_CHAIN_ID", DefaultChainID),
			ProbeTimeout: util.GetEnvAsDuration("TREASURY_PROBE_TIMEOUT", 5*time.Second),

			PrivateKey: util.GetEnv("TREASURY_PRIVATE_KEY", ""),

			CoinbaseWallet: util.GetEnv("TREASURY_COINBASE_WALLET", DefaultCoinbaseWallet),
			TreasuryWallet: util.GetEnv("TREASURY_WALLET", DefaultTreasuryWallet),
			ExplorerTxURL:  util.GetEnv("TREASURY_EXPLORER_TX_URL", DefaultExplorerTxURL),

			GasLimit:      uint64(util.GetEnvAsInt64("TREASURY_GAS_LIMIT", 21000)), //nolint:gosec
			GasReserveETH: util.GetEnvAsDecimal("TREASURY_GAS_RESERVE_ETH", decimal.RequireFromString(DefaultGasReserveETH)),
			USDRate:       util.GetEnvAsDecimal("TREASURY_USD_RATE", decimal.NewFromInt(DefaultUSDRate)),
			Fee: FeeConfig{
				PriorityMultiplier:      util.GetEnvAsInt64("TREASURY_FEE_PRIORITY_MULTIPLIER", 3),
				MaxFeeMultiplier:        util.GetEnvAsInt64("TREASURY_FEE_MAX_FEE_MULTIPLIER", 2),
				MinPriorityFeeGwei:      util.GetEnvAsInt64("TREASURY_FEE_MIN_PRIORITY_FEE_GWEI", 5),
				MinMaxFeeGwei:           util.GetEnvAsInt64("TREASURY_FEE_MIN_MAX_FEE_GWEI", 50),
				FallbackMaxFeeGwei:      util.GetEnvAsInt64("TREASURY_FEE_FALLBACK_MAX_FEE_GWEI", 30),
				FallbackPriorityFeeGwei: util.GetEnvAsInt64("TREASURY_FEE_FALLBACK_PRIORITY_FEE_GWEI", 2),
			},
			ConfirmationTimeout: util.GetEnvAsDuration("TREASURY_CONFIRMATION_TIMEOUT", 10*time.Minute),
			PollInterval:        util.GetEnvAsDuration("TREASURY_POLL_INTERVAL", 2*time.Second),
			SubmitQueueTimeout:  util.GetEnvAsDuration("TREASURY_SUBMIT_QUEUE_TIMEOUT", 30*time.Second),

			ProbeOnStartup: util.GetEnvAsBool("TREASURY_PROBE_ON_STARTUP", true),

			ConfigFile: util.GetEnv("SERVER_TREASURY_CONFIG_FILE", ""),
		},
	}

	if cfg.Treasury.ConfigFile != "" {
		if err := cfg.Treasury.ApplyFile(cfg.Treasury.ConfigFile); err != nil {
			log.Fatal().Err(err).Str("file", cfg.Treasury.ConfigFile).Msg("Failed to apply treasury config file")
		}
	}

	return cfg
}

// runningTests reports whether the binary is a go test binary
func runningTests() bool {
	return filepath.Ext(os.Args[0]) == ".test" || util.GetEnv("GO_TESTING", "") != ""
}
