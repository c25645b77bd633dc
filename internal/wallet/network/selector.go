package network

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/chapool/treasury-api/internal/metrics"
	"github.com/chapool/treasury-api/internal/wallet"
	"github.com/chapool/treasury-api/internal/wallet/signer"
	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultProbeTimeout bounds each liveness probe
	DefaultProbeTimeout = 5 * time.Second

	connectKey = "connect"
)

// SelectorConfig configures endpoint selection
type SelectorConfig struct {
	URLs         []string
	ChainID      *big.Int
	ProbeTimeout time.Duration
	PrivateKey   string //nolint:gosec // never logged
}

// Selector holds the ordered candidate endpoints and the committed Connection.
// Probing happens lazily on the first Connect and after Reset.
type Selector struct {
	urls         []string
	chainID      *big.Int
	probeTimeout time.Duration
	privateKey   string
	dial         Dialer
	clock        time2.Clock
	metrics      *metrics.Service

	mu    sync.RWMutex
	conn  *Connection
	group singleflight.Group
}

// NewSelector creates a Selector. It does not touch the network.
func NewSelector(cfg SelectorConfig, dial Dialer, clock time2.Clock, m *metrics.Service) *Selector {
	probeTimeout := cfg.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = DefaultProbeTimeout
	}

	chainID := cfg.ChainID
	if chainID == nil {
		chainID = big.NewInt(1)
	}

	if clock == nil {
		clock = time2.DefaultClock
	}

	urls := make([]string, len(cfg.URLs))
	copy(urls, cfg.URLs)

	return &Selector{
		urls:         urls,
		chainID:      new(big.Int).Set(chainID),
		probeTimeout: probeTimeout,
		privateKey:   cfg.PrivateKey,
		dial:         dial,
		clock:        clock,
		metrics:      m,
	}
}

// Candidates returns the configured endpoint URLs in probe order.
func (s *Selector) Candidates() []string {
	urls := make([]string, len(s.urls))
	copy(urls, s.urls)
	return urls
}

// ChainID returns the network identity every client is bound to.
func (s *Selector) ChainID() *big.Int {
	return new(big.Int).Set(s.chainID)
}

// Current returns the committed Connection or nil without probing.
func (s *Selector) Current() *Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.conn
}

// Connect returns the committed Connection, probing the candidates in order when there is none.
// Concurrent callers share a single probe run. Returns wallet.ErrNoConnectivity if no
// candidate responds; the next call probes again.
func (s *Selector) Connect(ctx context.Context) (*Connection, error) {
	if conn := s.Current(); conn != nil {
		return conn, nil
	}

	// The probe run is shared, so it must not die with the first caller's context.
	resultCh := s.group.DoChan(connectKey, func() (any, error) {
		return s.selectEndpoint(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, wallet.WithKind(wallet.ErrNoConnectivity, ctx.Err())
	case res := <-resultCh:
		if res.Err != nil {
			return nil, res.Err
		}

		conn, ok := res.Val.(*Connection)
		if !ok {
			return nil, errors.New("unexpected endpoint selection result")
		}

		return conn, nil
	}
}

// Reset drops the committed Connection so that the next Connect probes again.
func (s *Selector) Reset() {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	if conn != nil {
		log.Info().Str("url", conn.URL).Msg("Dropping committed RPC endpoint")
		conn.Client.Close()
	}
}

func (s *Selector) selectEndpoint(ctx context.Context) (*Connection, error) {
	// another run may have committed while this one was queued
	if conn := s.Current(); conn != nil {
		return conn, nil
	}

	if len(s.urls) == 0 {
		return nil, wallet.WithKind(wallet.ErrNoConnectivity, errors.New("no RPC endpoints configured"))
	}

	for _, url := range s.urls {
		log.Info().Str("url", url).Msg("Trying RPC endpoint")

		client, height, err := s.probe(ctx, url)
		if err != nil {
			s.metrics.ObserveEndpointProbe(false)
			log.Warn().Str("url", url).Err(err).Msg("RPC endpoint probe failed")
			continue
		}
		s.metrics.ObserveEndpointProbe(true)

		conn := &Connection{
			URL:         url,
			ChainID:     new(big.Int).Set(s.chainID),
			Client:      client,
			BlockNumber: height,
			ConnectedAt: s.clock.Now(),
			signer:      s.newSigner(),
		}

		s.mu.Lock()
		s.conn = conn
		s.mu.Unlock()

		event := log.Info().Str("url", url).Uint64("block_number", height)
		if addr, ok := conn.Address(); ok {
			event = event.Str("treasury_address", addr.Hex())
		}
		event.Msg("Connected to RPC endpoint")

		return conn, nil
	}

	log.Error().Int("candidates", len(s.urls)).Msg("No RPC endpoint reachable")

	return nil, wallet.WithKind(wallet.ErrNoConnectivity, errors.Errorf("all %d RPC endpoints unreachable", len(s.urls)))
}

//nolint:ireturn
func (s *Selector) probe(ctx context.Context, url string) (Client, uint64, error) {
	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	client, err := s.dial(probeCtx, url)
	if err != nil {
		return nil, 0, err
	}

	height, err := client.BlockNumber(probeCtx)
	if err != nil {
		client.Close()
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, 0, errors.Errorf("timeout after %s", s.probeTimeout)
		}
		return nil, 0, errors.Wrap(err, "failed to get block number")
	}

	return client, height, nil
}

//nolint:ireturn
func (s *Selector) newSigner() signer.Signer {
	if s.privateKey == "" {
		log.Warn().Msg("No treasury private key configured, signing is disabled")
		return nil
	}

	sgn, err := signer.NewPrivateKeySigner(s.privateKey)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create treasury signer, signing is disabled")
		return nil
	}

	return sgn
}
