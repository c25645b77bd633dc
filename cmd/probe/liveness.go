package probe

import (
	"context"
	"fmt"

	"github.com/chapool/treasury-api/internal/config"
	"github.com/chapool/treasury-api/internal/util"
	"github.com/chapool/treasury-api/internal/util/command"
	"github.com/chapool/treasury-api/internal/wallet/signer"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type LivenessFlags struct {
	Verbose bool
}

func newLiveness() *cobra.Command {
	var flags LivenessFlags

	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Runs liveness probes",
		Long: `Validates the treasury configuration

Checks the configured wallet addresses, RPC endpoints and
the private key format without touching the network.
Fails with non zero exitcode on encountered errors.`,
		Run: func(_ *cobra.Command, _ []string /* args */) {
			livenessCmdFunc(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.Verbose, verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func livenessCmdFunc(flags LivenessFlags) {
	cfg := config.DefaultServiceConfigFromEnv()
	command.ConfigureLogger(cfg.Logger)

	ctx := log.Logger.WithContext(context.Background())

	if errs := RunLiveness(ctx, cfg.Treasury, flags); len(errs) > 0 {
		log.Fatal().Errs("errs", errs).Msg("Unhealthy.")
	}
}

// RunLiveness validates cfg. A missing private key is reported but is not an error, read-only
// endpoints work without one.
func RunLiveness(ctx context.Context, cfg config.Treasury, flags LivenessFlags) []error {
	log := util.LogFromContext(ctx)

	var errs []error

	if len(cfg.RPCURLs) == 0 {
		errs = append(errs, fmt.Errorf("no RPC endpoints configured"))
	}

	for name, addr := range map[string]string{
		"coinbase wallet": cfg.CoinbaseWallet,
		"treasury wallet": cfg.TreasuryWallet,
	} {
		if !common.IsHexAddress(addr) {
			errs = append(errs, fmt.Errorf("invalid %s address %q", name, addr))
		}
	}

	if cfg.PrivateKey == "" {
		log.Warn().Msg("No treasury private key configured, withdrawals are disabled")
	} else if s, err := signer.NewPrivateKeySigner(cfg.PrivateKey); err != nil {
		errs = append(errs, fmt.Errorf("invalid treasury private key: %w", err))
	} else if flags.Verbose {
		log.Info().Str("treasury_address", s.Address().Hex()).Msg("Treasury key loaded")
	}

	if flags.Verbose && len(errs) == 0 {
		log.Info().Msg("Liveness check passed")
	}

	return errs
}
