package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultRPCURLs are public mainnet endpoints, probed in this order
var DefaultRPCURLs = []string{
	"https://ethereum-rpc.publicnode.com",
	"https://eth.drpc.org",
	"https://rpc.ankr.com/eth",
	"https://eth.llamarpc.com",
	"https://1rpc.io/eth",
	"https://cloudflare-eth.com",
}

const (
	DefaultChainID         = 1
	DefaultCoinbaseWallet  = "0x4024Fd78E2AD5532FBF3ec2B3eC83870FAe45fC7"
	DefaultTreasuryWallet  = "0x0fF31D4cdCE8B3f7929c04EbD4cd852608DC09f4"
	DefaultExplorerTxURL   = "https://etherscan.io/tx/"
	DefaultAPIName         = "Unified Earnings & Withdrawal API (HIGH GAS)"
	DefaultGasMode         = "HIGH - 2x-3x multiplier for fast confirmations"
	DefaultGasModeShort    = "HIGH"
	DefaultUSDRate         = 3450
	DefaultWithdrawMinETH  = "0.005"
	DefaultTradeMinETH     = "0.01"
	DefaultGasReserveETH   = "0.01"
	DefaultProjectedHourly = 15000
)

// FeeConfig holds the fee policy knobs. Fees are in whole gwei.
type FeeConfig struct {
	PriorityMultiplier      int64 `mapstructure:"priority_multiplier"`
	MaxFeeMultiplier        int64 `mapstructure:"max_fee_multiplier"`
	MinPriorityFeeGwei      int64 `mapstructure:"min_priority_fee_gwei"`
	MinMaxFeeGwei           int64 `mapstructure:"min_max_fee_gwei"`
	FallbackMaxFeeGwei      int64 `mapstructure:"fallback_max_fee_gwei"`
	FallbackPriorityFeeGwei int64 `mapstructure:"fallback_priority_fee_gwei"`
}

type Treasury struct {
	RPCURLs      []string      `mapstructure:"rpc_urls"`
	ChainID      int64         `mapstructure:"chain_id"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`

	PrivateKey string `json:"-" mapstructure:"-"` // never read from the config file

	CoinbaseWallet string `mapstructure:"coinbase_wallet"`
	TreasuryWallet string `mapstructure:"treasury_wallet"`
	ExplorerTxURL  string `mapstructure:"explorer_tx_url"`

	GasLimit            uint64          `mapstructure:"gas_limit"`
	GasReserveETH       decimal.Decimal `mapstructure:"-"`
	USDRate             decimal.Decimal `mapstructure:"-"`
	Fee                 FeeConfig       `mapstructure:"fee"`
	ConfirmationTimeout time.Duration   `mapstructure:"confirmation_timeout"`
	PollInterval        time.Duration   `mapstructure:"poll_interval"`
	SubmitQueueTimeout  time.Duration   `mapstructure:"submit_queue_timeout"`

	// ProbeOnStartup selects an endpoint in the background when the server starts
	ProbeOnStartup bool `mapstructure:"probe_on_startup"`

	// ConfigFile is an optional yaml/toml/json file overriding the values above
	ConfigFile string `mapstructure:"-"`
}
