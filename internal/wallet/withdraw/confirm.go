package withdraw

import (
	"context"
	"time"

	"github.com/chapool/treasury-api/internal/wallet"
	"github.com/chapool/treasury-api/internal/wallet/network"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// waitForReceipt polls until the transaction is included or the confirmation timeout
// elapses. A broadcast transfer is followed to the end even if the caller goes away, so that
// confirmed transfers always reach the ledger. Lookup errors other than not-found are logged
// and retried.
func (s *service) waitForReceipt(ctx context.Context, client network.Client, txHash common.Hash, logger zerolog.Logger) (*types.Receipt, error) {
	localCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ConfirmationTimeout)
	defer cancel()

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		receipt, err := client.TransactionReceipt(localCtx, txHash)
		if err == nil && receipt != nil {
			return receipt, nil
		}

		if err != nil && localCtx.Err() == nil && !errors.Is(err, ethereum.NotFound) {
			logger.Warn().Err(err).Msg("Receipt lookup failed, retrying")
		}

		select {
		case <-localCtx.Done():
			return nil, wallet.WithKind(
				wallet.ErrConfirmationTimeout,
				errors.Wrapf(localCtx.Err(), "transaction %s not confirmed", txHash.Hex()),
			)
		case <-ticker.C:
			continue
		}
	}
}
