package wallet

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Receipt describes a transfer after the network reported its inclusion.
type Receipt struct {
	AttemptID   string
	TxHash      common.Hash
	From        common.Address
	To          common.Address
	AmountWei   *big.Int
	BlockNumber uint64
	GasUsed     uint64
	Success     bool
}
