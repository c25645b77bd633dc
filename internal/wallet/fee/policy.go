package fee

import (
	"math/big"

	"github.com/chapool/treasury-api/internal/wallet"
)

const (
	DefaultPriorityMultiplier = 3
	DefaultMaxFeeMultiplier   = 2

	DefaultMinPriorityFeeGwei      = 5
	DefaultMinMaxFeeGwei           = 50
	DefaultFallbackMaxFeeGwei      = 30
	DefaultFallbackPriorityFeeGwei = 2
)

// Policy turns observed network fee conditions into an aggressive fee offer.
// All amounts are in wei.
type Policy struct {
	PriorityMultiplier int64
	MaxFeeMultiplier   int64

	MinPriorityFee *big.Int
	MinMaxFee      *big.Int

	// used when the node does not report a value
	FallbackMaxFee      *big.Int
	FallbackPriorityFee *big.Int
}

// DefaultPolicy returns the policy tuned for fast mainnet inclusion.
func DefaultPolicy() Policy {
	return Policy{
		PriorityMultiplier:  DefaultPriorityMultiplier,
		MaxFeeMultiplier:    DefaultMaxFeeMultiplier,
		MinPriorityFee:      wallet.GweiToWei(DefaultMinPriorityFeeGwei),
		MinMaxFee:           wallet.GweiToWei(DefaultMinMaxFeeGwei),
		FallbackMaxFee:      wallet.GweiToWei(DefaultFallbackMaxFeeGwei),
		FallbackPriorityFee: wallet.GweiToWei(DefaultFallbackPriorityFeeGwei),
	}
}

// Conditions are the fee values observed on the network. Nil or zero means not reported.
type Conditions struct {
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

// Offer is the pair of EIP-1559 fee caps attached to a transaction.
// MaxFeePerGas >= MaxPriorityFeePerGas always holds.
type Offer struct {
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

// Offer computes the fee offer for the given conditions. It never fails.
func (p Policy) Offer(c Conditions) Offer {
	observedMax := orFallback(c.MaxFeePerGas, p.FallbackMaxFee)
	observedPriority := orFallback(c.MaxPriorityFeePerGas, p.FallbackPriorityFee)

	priority := new(big.Int).Mul(observedPriority, big.NewInt(p.PriorityMultiplier))
	maxFee := new(big.Int).Mul(observedMax, big.NewInt(p.MaxFeeMultiplier))
	maxFee.Add(maxFee, priority)

	priority = maxOf(priority, p.MinPriorityFee)
	maxFee = maxOf(maxFee, p.MinMaxFee)
	maxFee = maxOf(maxFee, priority)

	return Offer{
		MaxFeePerGas:         maxFee,
		MaxPriorityFeePerGas: priority,
	}
}

func orFallback(v *big.Int, fallback *big.Int) *big.Int {
	if v == nil || v.Sign() <= 0 {
		if fallback == nil {
			return new(big.Int)
		}
		return fallback
	}

	return v
}

func maxOf(v *big.Int, floor *big.Int) *big.Int {
	if floor != nil && v.Cmp(floor) < 0 {
		return new(big.Int).Set(floor)
	}

	return v
}
