package withdraw

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

const (
	// DefaultGasLimit covers a plain native transfer
	DefaultGasLimit = 21000

	DefaultConfirmationTimeout = 10 * time.Minute
	DefaultPollInterval        = 2 * time.Second
	DefaultQueueTimeout        = 30 * time.Second
	DefaultBroadcastTimeout    = 30 * time.Second
)

// DefaultUSDRate is the fixed ETH price used for ledger accounting
var DefaultUSDRate = decimal.NewFromInt(3450)

// Request is a single transfer of native coin from the treasury. Amount is in wei;
// Sweep accepts a nil or zero Amount meaning everything above the reserve.
type Request struct {
	ToAddress common.Address
	Amount    *big.Int
}

// Config tunes the submission lifecycle
type Config struct {
	GasLimit            uint64
	ConfirmationTimeout time.Duration
	PollInterval        time.Duration
	QueueTimeout        time.Duration
	BroadcastTimeout    time.Duration
	USDRate             decimal.Decimal
}

func DefaultConfig() Config {
	return Config{
		GasLimit:            DefaultGasLimit,
		ConfirmationTimeout: DefaultConfirmationTimeout,
		PollInterval:        DefaultPollInterval,
		QueueTimeout:        DefaultQueueTimeout,
		BroadcastTimeout:    DefaultBroadcastTimeout,
		USDRate:             DefaultUSDRate,
	}
}

// State is a step of one submission attempt
type State string

const (
	StateIdle         State = "idle"
	StateValidating   State = "validating"
	StateFeeComputing State = "fee_computing"
	StateBroadcasting State = "broadcasting"
	StateConfirming   State = "confirming"
	StateConfirmed    State = "confirmed"
	StateFailed       State = "failed"
)
