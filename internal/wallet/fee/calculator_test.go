package fee_test

import (
	"testing"

	"github.com/chapool/treasury-api/internal/test"
	"github.com/chapool/treasury-api/internal/wallet/fee"
	"github.com/stretchr/testify/assert"
)

func TestReadConditions(t *testing.T) {
	rpc := test.NewFakeClient()
	rpc.BaseFee = gwei(20)
	rpc.TipCap = gwei(1)

	c := fee.ReadConditions(t.Context(), rpc)

	assert.Equal(t, gwei(41), c.MaxFeePerGas)
	assert.Equal(t, gwei(1), c.MaxPriorityFeePerGas)
}

func TestReadConditionsPreLondonHeader(t *testing.T) {
	rpc := test.NewFakeClient()
	rpc.TipCap = gwei(1)

	c := fee.ReadConditions(t.Context(), rpc)

	assert.Nil(t, c.MaxFeePerGas)
	assert.Nil(t, c.MaxPriorityFeePerGas)
}

func TestQuoteDegradesOnRPCErrors(t *testing.T) {
	rpc := test.NewFakeClient()
	rpc.HeaderErr = assert.AnError
	rpc.TipCapErr = assert.AnError

	calc := fee.NewCalculator(fee.DefaultPolicy())
	offer := calc.Quote(t.Context(), rpc)

	assert.Equal(t, gwei(6), offer.MaxPriorityFeePerGas)
	assert.Equal(t, gwei(66), offer.MaxFeePerGas)
	assertOfferBounds(t, calc.Policy(), offer)
}

func TestQuoteTipUnavailable(t *testing.T) {
	rpc := test.NewFakeClient()
	rpc.BaseFee = gwei(30)

	offer := fee.NewCalculator(fee.DefaultPolicy()).Quote(t.Context(), rpc)

	// observed max 30*2 = 60 with no tip; priority falls back to 2*3 = 6; max 60*2 + 6
	assert.Equal(t, gwei(6), offer.MaxPriorityFeePerGas)
	assert.Equal(t, gwei(126), offer.MaxFeePerGas)
}
