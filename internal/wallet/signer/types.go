package signer

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Signer authorizes transfers for the treasury account.
type Signer interface {
	// Address returns the treasury account controlled by this signer
	Address() common.Address

	// SignTransfer builds and signs a native-currency transfer (EIP-1559)
	SignTransfer(req *TransferRequest) (*SignedTransfer, error)
}

// TransferRequest represents a native-currency transfer to be signed
type TransferRequest struct {
	ChainID              *big.Int       // Chain ID (1 for Ethereum mainnet)
	To                   common.Address // Recipient address
	Value                *big.Int       // Amount in wei
	GasLimit             uint64         // Gas limit
	MaxFeePerGas         *big.Int       // Max fee per gas (EIP-1559, in wei)
	MaxPriorityFeePerGas *big.Int       // Max priority fee per gas (EIP-1559, in wei)
	Nonce                uint64         // Transaction nonce
}

// SignedTransfer represents a signed transfer ready for broadcast
type SignedTransfer struct {
	Tx             *types.Transaction
	RawTransaction []byte      // RLP-encoded signed transaction
	TxHash         common.Hash // Transaction hash
}
