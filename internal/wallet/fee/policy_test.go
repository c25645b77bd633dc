package fee_test

import (
	"math/big"
	"testing"

	"github.com/chapool/treasury-api/internal/wallet"
	"github.com/chapool/treasury-api/internal/wallet/fee"
	"github.com/stretchr/testify/assert"
)

func gwei(v int64) *big.Int {
	return wallet.GweiToWei(v)
}

func assertOfferBounds(t *testing.T, p fee.Policy, offer fee.Offer) {
	t.Helper()

	assert.GreaterOrEqual(t, offer.MaxFeePerGas.Cmp(offer.MaxPriorityFeePerGas), 0, "max fee below priority fee")
	assert.GreaterOrEqual(t, offer.MaxPriorityFeePerGas.Cmp(p.MinPriorityFee), 0, "priority fee below floor")
	assert.GreaterOrEqual(t, offer.MaxFeePerGas.Cmp(p.MinMaxFee), 0, "max fee below floor")
}

func TestOfferAboveFloors(t *testing.T) {
	p := fee.DefaultPolicy()

	offer := p.Offer(fee.Conditions{
		MaxFeePerGas:         gwei(40),
		MaxPriorityFeePerGas: gwei(3),
	})

	// priority 3*3 = 9, max 40*2 + 9 = 89
	assert.Equal(t, gwei(9), offer.MaxPriorityFeePerGas)
	assert.Equal(t, gwei(89), offer.MaxFeePerGas)
	assertOfferBounds(t, p, offer)
}

func TestOfferAppliesFloors(t *testing.T) {
	p := fee.DefaultPolicy()

	offer := p.Offer(fee.Conditions{
		MaxFeePerGas:         big.NewInt(1_000_000),
		MaxPriorityFeePerGas: big.NewInt(1),
	})

	assert.Equal(t, gwei(5), offer.MaxPriorityFeePerGas)
	assert.Equal(t, gwei(50), offer.MaxFeePerGas)
	assertOfferBounds(t, p, offer)
}

func TestOfferFallbacks(t *testing.T) {
	p := fee.DefaultPolicy()

	tests := []struct {
		name string
		in   fee.Conditions
	}{
		{"absent", fee.Conditions{}},
		{"zero", fee.Conditions{MaxFeePerGas: big.NewInt(0), MaxPriorityFeePerGas: big.NewInt(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offer := p.Offer(tt.in)

			// fallback priority 2*3 = 6, max 30*2 + 6 = 66
			assert.Equal(t, gwei(6), offer.MaxPriorityFeePerGas)
			assert.Equal(t, gwei(66), offer.MaxFeePerGas)
			assertOfferBounds(t, p, offer)
		})
	}
}

func TestOfferKeepsMaxAbovePriority(t *testing.T) {
	p := fee.DefaultPolicy()
	p.MinPriorityFee = gwei(100)
	p.MinMaxFee = gwei(10)

	offer := p.Offer(fee.Conditions{})

	assert.Equal(t, gwei(100), offer.MaxPriorityFeePerGas)
	assert.Equal(t, gwei(100), offer.MaxFeePerGas)
	assertOfferBounds(t, p, offer)
}

func TestOfferDoesNotAliasInputs(t *testing.T) {
	p := fee.DefaultPolicy()
	floor := new(big.Int).Set(p.MinMaxFee)

	offer := p.Offer(fee.Conditions{})
	offer.MaxFeePerGas.SetInt64(0)
	offer.MaxPriorityFeePerGas.SetInt64(0)

	assert.Equal(t, floor, p.MinMaxFee)
	assert.Equal(t, gwei(2), p.FallbackPriorityFee)
}
