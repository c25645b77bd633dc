package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chapool/treasury-api/internal/api"
	"github.com/chapool/treasury-api/internal/api/router"
	"github.com/chapool/treasury-api/internal/config"
	"github.com/chapool/treasury-api/internal/util/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	probeFlag       = "probe"
	shutdownTimeout = 10 * time.Second
)

type Flags struct {
	Probe bool
}

func New() *cobra.Command {
	var flags Flags

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Starts the server",
		Long: `Starts the treasury HTTP server

RPC endpoints are probed in the background right after
startup unless TREASURY_PROBE_ON_STARTUP=false. Pass
--probe to force the startup probe.`,
		Run: func(_ *cobra.Command, _ []string /* args */) {
			runServer(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.Probe, probeFlag, "p", false, "Probe the RPC endpoints on startup.")

	return cmd
}

func runServer(flags Flags) {
	cfg := config.DefaultServiceConfigFromEnv()
	if flags.Probe {
		cfg.Treasury.ProbeOnStartup = true
	}

	command.ConfigureLogger(cfg.Logger)

	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	if err := router.Init(s); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize router")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Treasury.ProbeOnStartup {
		go func() {
			if err := s.ProbeNetwork(ctx); err != nil {
				log.Error().Err(err).Msg("Startup probe failed, retrying on the next request")
			}
		}()
	}

	go func() {
		if err := s.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info().Msg("Server closed")
			} else {
				log.Fatal().Err(err).Msg("Failed to start server")
			}
		}
	}()

	log.Info().
		Str("name", config.DefaultAPIName).
		Str("version", config.Version).
		Str("listen_address", cfg.Echo.ListenAddress).
		Str("gas_mode", config.DefaultGasModeShort).
		Str("coinbase_wallet", cfg.Treasury.CoinbaseWallet).
		Int("rpc_endpoints", len(cfg.Treasury.RPCURLs)).
		Bool("signer_configured", cfg.Treasury.PrivateKey != "").
		Msg("Treasury API started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
		log.Fatal().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
	}

	log.Info().Msg("Server shutdown")
}
