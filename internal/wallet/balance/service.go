//nolint:ireturn
package balance

import (
	"context"
	"fmt"
	"math/big"

	"github.com/chapool/treasury-api/internal/metrics"
	"github.com/chapool/treasury-api/internal/wallet"
	"github.com/chapool/treasury-api/internal/wallet/network"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DefaultReserveETH is kept back on every withdrawal to pay for high-priority gas
const DefaultReserveETH = "0.01"

const insufficientTreasuryBalance = "Insufficient treasury balance"

// Service validates withdrawal amounts against the live treasury balance
type Service interface {
	// Balance reads the treasury balance in wei
	Balance(ctx context.Context, conn *network.Connection) (*big.Int, error)

	// Check accepts a strictly positive amount that leaves the reserve untouched
	Check(ctx context.Context, conn *network.Connection, requested *big.Int) (*Check, error)

	// Resolve is Check, except that with sweep a zero or absent amount becomes the maximum withdrawable
	Resolve(ctx context.Context, conn *network.Connection, requested *big.Int, sweep bool) (*Check, error)
}

// Check is an accepted withdrawal amount together with the balance it was checked against. All values in wei.
type Check struct {
	Balance         *big.Int
	Reserve         *big.Int
	MaxWithdrawable *big.Int
	Amount          *big.Int
}

type service struct {
	reserve *big.Int
	metrics *metrics.Service
}

// NewService creates the balance guard. reserve is in wei.
func NewService(reserve *big.Int, m *metrics.Service) Service {
	r := new(big.Int)
	if reserve != nil && reserve.Sign() > 0 {
		r.Set(reserve)
	}

	return &service{
		reserve: r,
		metrics: m,
	}
}

func (s *service) Balance(ctx context.Context, conn *network.Connection) (*big.Int, error) {
	if conn == nil {
		return nil, wallet.WithKind(wallet.ErrNoConnectivity, errors.New("no committed RPC endpoint"))
	}

	addr, ok := conn.Address()
	if !ok {
		return nil, wallet.ErrSignerUnavailable
	}

	bal, err := conn.Client.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, wallet.WithKind(wallet.ErrNoConnectivity, errors.Wrap(err, "failed to fetch treasury balance"))
	}

	eth, _ := wallet.WeiToEther(bal).Float64()
	s.metrics.SetTreasuryBalance(eth)

	return bal, nil
}

func (s *service) Check(ctx context.Context, conn *network.Connection, requested *big.Int) (*Check, error) {
	return s.Resolve(ctx, conn, requested, false)
}

func (s *service) Resolve(ctx context.Context, conn *network.Connection, requested *big.Int, sweep bool) (*Check, error) {
	positive := requested != nil && requested.Sign() > 0
	if !sweep && !positive {
		return nil, &wallet.ValidationError{Reason: wallet.ErrInvalidAmount}
	}

	bal, err := s.Balance(ctx, conn)
	if err != nil {
		return nil, err
	}

	check := &Check{
		Balance:         bal,
		Reserve:         new(big.Int).Set(s.reserve),
		MaxWithdrawable: new(big.Int).Sub(bal, s.reserve),
	}

	if positive {
		check.Amount = new(big.Int).Set(requested)
	} else {
		check.Amount = new(big.Int).Set(check.MaxWithdrawable)
	}

	if check.Amount.Sign() > 0 && check.Amount.Cmp(check.MaxWithdrawable) <= 0 {
		return check, nil
	}

	msg := fmt.Sprintf("Insufficient balance (need %s ETH for high gas)", wallet.WeiToEther(s.reserve).String())
	if sweep {
		msg = insufficientTreasuryBalance
	}

	log.Debug().
		Str("balance_wei", bal.String()).
		Str("requested_wei", check.Amount.String()).
		Str("max_withdrawable_wei", check.MaxWithdrawable.String()).
		Msg("Rejected withdrawal amount")

	return nil, &wallet.ValidationError{
		Reason:          wallet.ErrInsufficientBalance,
		Message:         msg,
		Balance:         bal,
		MaxWithdrawable: check.MaxWithdrawable,
	}
}
