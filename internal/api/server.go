package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/chapool/treasury-api/internal/config"
	"github.com/chapool/treasury-api/internal/metrics"
	"github.com/chapool/treasury-api/internal/util"
	"github.com/chapool/treasury-api/internal/wallet"
	"github.com/chapool/treasury-api/internal/wallet/balance"
	"github.com/chapool/treasury-api/internal/wallet/fee"
	"github.com/chapool/treasury-api/internal/wallet/ledger"
	"github.com/chapool/treasury-api/internal/wallet/network"
	"github.com/chapool/treasury-api/internal/wallet/withdraw"
	"github.com/dropbox/godropbox/time2"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// BalanceService is the balance guard
// Alias to balance.Service for API access
type BalanceService = balance.Service

// WithdrawService is the transaction submitter
// Alias to withdraw.Service for API access
type WithdrawService = withdraw.Service

type Router struct {
	Routes     []*echo.Route
	Root       *echo.Group
	Management *echo.Group
	APIApex    *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the components
// in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized after the InitNewServer* call.
// For more information about wire refer to https://pkg.go.dev/github.com/google/wire
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config   config.Server
	Clock    time2.Clock
	Metrics  *metrics.Service
	Network  *network.Selector
	Fees     *fee.Calculator
	Ledger   *ledger.Ledger
	Balance  BalanceService
	Withdraw WithdrawService
}

// newServerWithComponents is used by wire to initialize the server components.
// Components not listed here won't be handled by wire and should be initialized separately.
// Components which shouldn't be handled must be labeled `wire:"-"` in Server struct.
func newServerWithComponents(
	cfg config.Server,
	clock time2.Clock,
	metrics *metrics.Service,
	selector *network.Selector,
	fees *fee.Calculator,
	l *ledger.Ledger,
	balanceService BalanceService,
	withdrawService WithdrawService,
) *Server {
	return &Server{
		Config:   cfg,
		Clock:    clock,
		Metrics:  metrics,
		Network:  selector,
		Fees:     fees,
		Ledger:   l,
		Balance:  balanceService,
		Withdraw: withdrawService,
	}
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

// ProbeNetwork commits an RPC endpoint ahead of the first request.
func (s *Server) ProbeNetwork(ctx context.Context) error {
	conn, err := s.Network.Connect(ctx)
	if err != nil {
		return err
	}

	if addr, ok := conn.Address(); ok {
		if bal, err := s.Balance.Balance(ctx, conn); err == nil {
			log.Info().Str("treasury_address", addr.Hex()).Str("balance_eth", wallet.FormatEther(bal, 6)).Msg("Treasury ready")
		}
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Network != nil {
		log.Debug().Msg("Closing RPC connection")
		s.Network.Reset()
	}

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	return errs
}
