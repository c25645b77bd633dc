package fee

import (
	"context"
	"math/big"

	"github.com/chapool/treasury-api/internal/wallet"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"
)

// Source is the part of the RPC client the fee read needs.
type Source interface {
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
}

const baseFeeMultiplier = 2

// ReadConditions reads the suggested priority fee and the latest base fee.
// Failed reads leave the corresponding value nil; a missing base fee leaves both nil.
func ReadConditions(ctx context.Context, src Source) Conditions {
	var c Conditions

	tip, err := src.SuggestGasTipCap(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("Priority fee suggestion unavailable, using fallback")
		tip = nil
	}

	header, err := src.HeaderByNumber(ctx, nil)
	if err != nil {
		log.Debug().Err(err).Msg("Latest header unavailable, using fallback fees")
		return c
	}
	if header == nil || header.BaseFee == nil {
		return c
	}

	c.MaxPriorityFeePerGas = tip
	c.MaxFeePerGas = new(big.Int).Mul(header.BaseFee, big.NewInt(baseFeeMultiplier))
	if tip != nil {
		c.MaxFeePerGas.Add(c.MaxFeePerGas, tip)
	}

	return c
}

// Calculator quotes fee offers from live network conditions.
type Calculator struct {
	policy Policy
}

func NewCalculator(policy Policy) *Calculator {
	return &Calculator{policy: policy}
}

func (c *Calculator) Policy() Policy {
	return c.policy
}

// Quote reads the network and applies the policy. Missing data degrades to the fallbacks.
func (c *Calculator) Quote(ctx context.Context, src Source) Offer {
	offer := c.policy.Offer(ReadConditions(ctx, src))

	log.Debug().
		Str("priority_fee_gwei", wallet.WeiToGwei(offer.MaxPriorityFeePerGas).String()).
		Str("max_fee_gwei", wallet.WeiToGwei(offer.MaxFeePerGas).String()).
		Msg("Quoted transaction fees")

	return offer
}
