package wallet

import (
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	// EtherDecimals is the number of decimals between ether and wei
	EtherDecimals = 18
	// GweiDecimals is the number of decimals between gwei and wei
	GweiDecimals = 9

	// exponent bounds for amounts taken from requests
	minAmountExponent = -EtherDecimals
	maxAmountExponent = 15
)

// MaxAmount is the largest ETH or USD amount accepted from a request.
var MaxAmount = decimal.New(1, maxAmountExponent)

// AmountInRange reports whether d is an amount that requests may carry: at most wei precision
// and at most MaxAmount in magnitude. The exponent is checked before anything that rescales d.
func AmountInRange(d decimal.Decimal) bool {
	if d.Exponent() < minAmountExponent || d.Exponent() > maxAmountExponent {
		return false
	}

	return d.Abs().LessThanOrEqual(MaxAmount)
}

// EtherToWei converts an ether amount to wei, truncating anything below one wei.
func EtherToWei(eth decimal.Decimal) *big.Int {
	return eth.Shift(EtherDecimals).BigInt()
}

// WeiToEther converts a wei amount to an exact ether decimal.
func WeiToEther(wei *big.Int) decimal.Decimal {
	if wei == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(wei, -EtherDecimals)
}

// GweiToWei converts a whole gwei amount to wei.
func GweiToWei(gwei int64) *big.Int {
	return decimal.NewFromInt(gwei).Shift(GweiDecimals).BigInt()
}

// WeiToGwei converts a wei amount to gwei for logging.
func WeiToGwei(wei *big.Int) decimal.Decimal {
	if wei == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(wei, -GweiDecimals)
}

// FormatEther renders wei as ether with a fixed number of decimals.
func FormatEther(wei *big.Int, places int32) string {
	return WeiToEther(wei).StringFixed(places)
}

// ToUSD converts an ether amount using the fixed conversion rate.
func ToUSD(eth decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	return eth.Mul(rate)
}

// FromUSD converts a USD amount to ether using the fixed conversion rate.
func FromUSD(usd decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return decimal.Zero
	}

	return usd.Div(rate)
}
