package probe

import (
	"context"

	"github.com/chapool/treasury-api/internal/api"
	"github.com/chapool/treasury-api/internal/config"
	"github.com/chapool/treasury-api/internal/util"
	"github.com/chapool/treasury-api/internal/util/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type ReadinessFlags struct {
	Verbose bool
}

func newReadiness() *cobra.Command {
	var flags ReadinessFlags

	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Runs readiness probes",
		Long: `Runs RPC endpoint readiness probes

This command runs the same endpoint selection as
/-/ready and prints the results to stdout. Fails
with non zero exitcode if no endpoint responds.

Use it to ensure the treasury can reach the chain
before starting the app server.`,
		Run: func(_ *cobra.Command, _ []string /* args */) {
			readinessCmdFunc(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.Verbose, verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func readinessCmdFunc(flags ReadinessFlags) {
	err := command.WithServer(context.Background(), config.DefaultServiceConfigFromEnv(), func(ctx context.Context, s *api.Server) error {
		log := util.LogFromContext(ctx)

		if errs := RunReadiness(ctx, s, flags); len(errs) > 0 {
			log.Fatal().Errs("errs", errs).Msg("Unhealthy.")
		}

		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to run readiness probes")
	}
}

// RunReadiness selects an RPC endpoint within the management readiness timeout.
func RunReadiness(ctx context.Context, s *api.Server, flags ReadinessFlags) []error {
	log := util.LogFromContext(ctx)

	readinessCtx, cancel := context.WithTimeout(ctx, s.Config.Management.ReadinessTimeout)
	defer cancel()

	conn, err := s.Network.Connect(readinessCtx)
	if err != nil {
		return []error{err}
	}

	if flags.Verbose {
		e := log.Info().Str("url", conn.URL).Uint64("block_number", conn.BlockNumber)
		if addr, ok := conn.Address(); ok {
			e = e.Str("treasury_address", addr.Hex())
		}
		e.Msg("Readiness check passed")
	}

	return nil
}
