//nolint:ireturn
package withdraw

import (
	"context"

	"github.com/chapool/treasury-api/internal/metrics"
	"github.com/chapool/treasury-api/internal/wallet"
	"github.com/chapool/treasury-api/internal/wallet/balance"
	"github.com/chapool/treasury-api/internal/wallet/fee"
	"github.com/chapool/treasury-api/internal/wallet/ledger"
	"github.com/chapool/treasury-api/internal/wallet/network"
	"github.com/chapool/treasury-api/internal/wallet/signer"
	"github.com/dropbox/godropbox/time2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

// Service submits treasury transfers one at a time
type Service interface {
	// Withdraw sends a strictly positive amount to the destination and waits for confirmation
	Withdraw(ctx context.Context, req Request) (*wallet.Receipt, error)

	// Sweep is Withdraw, except that a zero or nil amount sends the maximum withdrawable
	Sweep(ctx context.Context, req Request) (*wallet.Receipt, error)
}

// Connector provides the committed network connection; *network.Selector implements it
type Connector interface {
	Connect(ctx context.Context) (*network.Connection, error)
}

type service struct {
	cfg       Config
	connector Connector
	balance   balance.Service
	fees      *fee.Calculator
	ledger    *ledger.Ledger
	metrics   *metrics.Service
	clock     time2.Clock

	// held from validation until the attempt reaches a terminal state
	guard *semaphore.Weighted
}

// NewService creates the transaction submitter
func NewService(
	cfg Config,
	connector Connector,
	balanceService balance.Service,
	fees *fee.Calculator,
	l *ledger.Ledger,
	m *metrics.Service,
	clock time2.Clock,
) Service {
	if cfg.GasLimit == 0 {
		cfg.GasLimit = DefaultGasLimit
	}
	if cfg.ConfirmationTimeout <= 0 {
		cfg.ConfirmationTimeout = DefaultConfirmationTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.BroadcastTimeout <= 0 {
		cfg.BroadcastTimeout = DefaultBroadcastTimeout
	}
	if cfg.USDRate.IsZero() {
		cfg.USDRate = DefaultUSDRate
	}
	if clock == nil {
		clock = time2.DefaultClock
	}

	return &service{
		cfg:       cfg,
		connector: connector,
		balance:   balanceService,
		fees:      fees,
		ledger:    l,
		metrics:   m,
		clock:     clock,
		guard:     semaphore.NewWeighted(1),
	}
}

func (s *service) Withdraw(ctx context.Context, req Request) (*wallet.Receipt, error) {
	return s.submit(ctx, req, false)
}

func (s *service) Sweep(ctx context.Context, req Request) (*wallet.Receipt, error) {
	return s.submit(ctx, req, true)
}

type attempt struct {
	id     string
	state  State
	logger zerolog.Logger
}

func (a *attempt) transition(next State) {
	a.logger.Debug().Str("from", string(a.state)).Str("to", string(next)).Msg("Withdrawal state transition")
	a.state = next
}

func (s *service) submit(ctx context.Context, req Request, sweep bool) (*wallet.Receipt, error) {
	id := uuid.NewString()
	a := &attempt{
		id:    id,
		state: StateIdle,
		logger: log.With().
			Str("attempt_id", id).
			Str("to", req.ToAddress.Hex()).
			Bool("sweep", sweep).
			Logger(),
	}

	if req.ToAddress == (common.Address{}) {
		s.metrics.ObserveWithdrawal(metrics.OutcomeRejected)
		return nil, &wallet.ValidationError{Reason: wallet.ErrInvalidDestination}
	}

	release, err := s.acquire(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Withdrawal rejected, submission slot busy")
		s.metrics.ObserveWithdrawal(metrics.OutcomeBusy)
		return nil, err
	}
	defer release()

	receipt, err := s.run(ctx, a, req, sweep)
	if err != nil {
		a.transition(StateFailed)

		var verr *wallet.ValidationError
		if errors.As(err, &verr) {
			a.logger.Info().Err(err).Msg("Withdrawal rejected")
			s.metrics.ObserveWithdrawal(metrics.OutcomeRejected)
		} else {
			a.logger.Error().Err(err).Msg("Withdrawal failed")
			s.metrics.ObserveWithdrawal(metrics.OutcomeFailed)
		}

		return nil, err
	}

	a.transition(StateConfirmed)
	s.metrics.ObserveWithdrawal(metrics.OutcomeConfirmed)

	return receipt, nil
}

func (s *service) acquire(ctx context.Context) (func(), error) {
	if s.guard.TryAcquire(1) {
		return func() { s.guard.Release(1) }, nil
	}

	if s.cfg.QueueTimeout <= 0 {
		return nil, wallet.ErrBusy
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.QueueTimeout)
	defer cancel()

	if err := s.guard.Acquire(waitCtx, 1); err != nil {
		return nil, wallet.WithKind(wallet.ErrBusy, err)
	}

	return func() { s.guard.Release(1) }, nil
}

func (s *service) run(ctx context.Context, a *attempt, req Request, sweep bool) (*wallet.Receipt, error) {
	a.transition(StateValidating)

	conn, err := s.connector.Connect(ctx)
	if err != nil {
		return nil, err
	}

	sgn, err := conn.Signer()
	if err != nil {
		return nil, err
	}

	check, err := s.balance.Resolve(ctx, conn, req.Amount, sweep)
	if err != nil {
		return nil, err
	}

	a.transition(StateFeeComputing)
	offer := s.fees.Quote(ctx, conn.Client)

	nonce, err := conn.Client.PendingNonceAt(ctx, sgn.Address())
	if err != nil {
		return nil, wallet.WithKind(wallet.ErrNoConnectivity, errors.Wrap(err, "failed to fetch pending nonce"))
	}

	signed, err := sgn.SignTransfer(&signer.TransferRequest{
		ChainID:              conn.ChainID,
		To:                   req.ToAddress,
		Value:                check.Amount,
		GasLimit:             s.cfg.GasLimit,
		MaxFeePerGas:         offer.MaxFeePerGas,
		MaxPriorityFeePerGas: offer.MaxPriorityFeePerGas,
		Nonce:                nonce,
	})
	if err != nil {
		return nil, wallet.WithKind(wallet.ErrSigning, err)
	}

	a.transition(StateBroadcasting)
	a.logger.Info().
		Str("from", sgn.Address().Hex()).
		Str("amount_wei", check.Amount.String()).
		Uint64("nonce", nonce).
		Str("max_fee_gwei", wallet.WeiToGwei(offer.MaxFeePerGas).String()).
		Str("priority_fee_gwei", wallet.WeiToGwei(offer.MaxPriorityFeePerGas).String()).
		Msg("Broadcasting treasury transfer")

	if err := s.broadcast(ctx, conn.Client, signed.Tx); err != nil {
		return nil, err
	}

	a.transition(StateConfirming)
	a.logger.Info().Str("tx_hash", signed.TxHash.Hex()).Msg("Waiting for confirmation")

	sentAt := s.clock.Now()
	receipt, err := s.waitForReceipt(ctx, conn.Client, signed.TxHash, a.logger)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveConfirmation(s.clock.Now().Sub(sentAt))

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, wallet.WithKind(
			wallet.ErrBroadcast,
			errors.Wrapf(wallet.ErrTransactionReverted, "transaction %s", signed.TxHash.Hex()),
		)
	}

	usd := wallet.ToUSD(wallet.WeiToEther(check.Amount), s.cfg.USDRate)
	s.ledger.RecordWithdrawal(usd)

	result := &wallet.Receipt{
		AttemptID: a.id,
		TxHash:    signed.TxHash,
		From:      sgn.Address(),
		To:        req.ToAddress,
		AmountWei: check.Amount,
		GasUsed:   receipt.GasUsed,
		Success:   true,
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}

	a.logger.Info().
		Str("tx_hash", result.TxHash.Hex()).
		Uint64("block_number", result.BlockNumber).
		Uint64("gas_used", result.GasUsed).
		Str("amount_usd", usd.StringFixed(2)).
		Msg("Treasury transfer confirmed")

	return result, nil
}

// broadcast runs to completion even if the caller goes away
func (s *service) broadcast(ctx context.Context, client network.Client, tx *types.Transaction) error {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.BroadcastTimeout)
	defer cancel()

	if err := client.SendTransaction(sendCtx, tx); err != nil {
		return wallet.WithKind(wallet.ErrBroadcast, err)
	}

	return nil
}
