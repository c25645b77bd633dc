package tx

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chapool/treasury-api/internal/api"
	"github.com/chapool/treasury-api/internal/config"
	"github.com/chapool/treasury-api/internal/util/command"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	timeoutFlag    = "timeout"
	defaultTimeout = 30 * time.Second
)

type CheckFlags struct {
	Timeout time.Duration
}

// CheckResult is printed as JSON by "tx check".
type CheckResult struct {
	TxHash       string `json:"txHash"`
	Status       string `json:"status"`
	BlockNumber  uint64 `json:"blockNumber,omitempty"`
	GasUsed      uint64 `json:"gasUsed,omitempty"`
	EndpointURL  string `json:"endpoint"`
	EtherscanURL string `json:"etherscanUrl"`
}

func newCheck() *cobra.Command {
	var flags CheckFlags

	cmd := &cobra.Command{
		Use:   "check <tx-hash>",
		Short: "Looks up the receipt of a treasury transaction",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			checkCmdFunc(args[0], flags)
		},
	}

	cmd.Flags().DurationVarP(&flags.Timeout, timeoutFlag, "t", defaultTimeout, "Timeout for endpoint selection and the receipt lookup.")

	return cmd
}

func checkCmdFunc(hash string, flags CheckFlags) {
	err := command.WithServer(context.Background(), config.DefaultServiceConfigFromEnv(), func(ctx context.Context, s *api.Server) error {
		ctx, cancel := context.WithTimeout(ctx, flags.Timeout)
		defer cancel()

		res, err := Check(ctx, s, hash)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal result")
		}

		fmt.Println(string(out))

		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check transaction")
	}
}

// Check reports whether the transaction was included and succeeded. Transactions without a
// receipt are reported as pending.
func Check(ctx context.Context, s *api.Server, hash string) (*CheckResult, error) {
	raw, err := hexHash(hash)
	if err != nil {
		return nil, err
	}

	conn, err := s.Network.Connect(ctx)
	if err != nil {
		return nil, err
	}

	res := &CheckResult{
		TxHash:       raw.Hex(),
		EndpointURL:  conn.URL,
		EtherscanURL: s.Config.Treasury.ExplorerTxURL + raw.Hex(),
	}

	receipt, err := conn.Client.TransactionReceipt(ctx, raw)
	if errors.Is(err, ethereum.NotFound) {
		res.Status = "pending"
		return res, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction receipt")
	}

	res.Status = "reverted"
	if receipt.Status == types.ReceiptStatusSuccessful {
		res.Status = "confirmed"
	}
	res.BlockNumber = receipt.BlockNumber.Uint64()
	res.GasUsed = receipt.GasUsed

	return res, nil
}

func hexHash(s string) (common.Hash, error) {
	b, err := hexutil.Decode(s)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, errors.Errorf("invalid transaction hash %q", s)
	}

	return common.BytesToHash(b), nil
}
