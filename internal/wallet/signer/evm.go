package signer

import (
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// SignTransfer signs an EIP-1559 transfer
func (s *privateKeySigner) SignTransfer(req *TransferRequest) (*SignedTransfer, error) {
	if req.ChainID == nil || req.ChainID.Sign() <= 0 {
		return nil, errors.New("invalid chain ID")
	}

	if req.Value == nil || req.Value.Sign() <= 0 {
		return nil, errors.New("invalid value")
	}

	if req.MaxFeePerGas == nil || req.MaxPriorityFeePerGas == nil {
		return nil, errors.New("fee caps are required")
	}

	if req.MaxFeePerGas.Cmp(req.MaxPriorityFeePerGas) < 0 {
		return nil, errors.New("maxFeePerGas must not be lower than maxPriorityFeePerGas")
	}

	to := req.To

	//nolint:varnamelen // tx is a common abbreviation for transaction
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   req.ChainID,
		Nonce:     req.Nonce,
		GasTipCap: req.MaxPriorityFeePerGas,
		GasFeeCap: req.MaxFeePerGas,
		Gas:       req.GasLimit,
		To:        &to,
		Value:     req.Value,
	})

	signedTx, err := types.SignTx(tx, types.NewLondonSigner(req.ChainID), s.key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	// Encode transaction to RLP
	txBytes, err := signedTx.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal transaction")
	}

	return &SignedTransfer{
		Tx:             signedTx,
		RawTransaction: txBytes,
		TxHash:         signedTx.Hash(),
	}, nil
}
