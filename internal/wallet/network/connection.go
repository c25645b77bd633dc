package network

import (
	"math/big"
	"time"

	"github.com/chapool/treasury-api/internal/wallet"
	"github.com/chapool/treasury-api/internal/wallet/signer"
	"github.com/ethereum/go-ethereum/common"
)

// Connection is the commitment to one responsive endpoint. It exclusively owns the
// treasury signer, which is absent when no private key is configured.
type Connection struct {
	URL         string
	ChainID     *big.Int
	Client      Client
	BlockNumber uint64 // height reported by the liveness probe
	ConnectedAt time.Time

	signer signer.Signer
}

// Signer returns the treasury signer or wallet.ErrSignerUnavailable.
//
//nolint:ireturn
func (c *Connection) Signer() (signer.Signer, error) {
	if c == nil || c.signer == nil {
		return nil, wallet.ErrSignerUnavailable
	}

	return c.signer, nil
}

// Address returns the treasury address and whether a signer is present.
func (c *Connection) Address() (common.Address, bool) {
	if c == nil || c.signer == nil {
		return common.Address{}, false
	}

	return c.signer.Address(), true
}
