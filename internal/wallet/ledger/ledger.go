package ledger

import (
	"sync"
	"time"

	"github.com/chapool/treasury-api/internal/wallet"
	"github.com/dropbox/godropbox/time2"
	"github.com/shopspring/decimal"
)

// Totals is a snapshot of the process-local USD counters
type Totals struct {
	Earnings  decimal.Decimal
	Withdrawn decimal.Decimal
	UpdatedAt time.Time // zero until the first change
}

// Ledger keeps running USD totals. Both totals only ever grow and are lost on restart.
type Ledger struct {
	clock time2.Clock

	mu     sync.Mutex
	totals Totals
}

func New(clock time2.Clock) *Ledger {
	if clock == nil {
		clock = time2.DefaultClock
	}

	return &Ledger{
		clock: clock,
		totals: Totals{
			Earnings:  decimal.Zero,
			Withdrawn: decimal.Zero,
		},
	}
}

// CreditEarnings adds usd to the earnings total and returns the amount credited.
// Non-positive amounts are ignored and reported as credited, amounts outside
// wallet.AmountInRange are ignored and reported as zero.
func (l *Ledger) CreditEarnings(usd decimal.Decimal) decimal.Decimal {
	if !wallet.AmountInRange(usd) {
		return decimal.Zero
	}

	if !usd.IsPositive() {
		return usd
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.totals.Earnings = l.totals.Earnings.Add(usd)
	l.totals.UpdatedAt = l.clock.Now()

	return usd
}

// RecordWithdrawal adds a confirmed withdrawal to the withdrawn total.
func (l *Ledger) RecordWithdrawal(usd decimal.Decimal) {
	if !usd.IsPositive() || !wallet.AmountInRange(usd) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.totals.Withdrawn = l.totals.Withdrawn.Add(usd)
	l.totals.UpdatedAt = l.clock.Now()
}

func (l *Ledger) Totals() Totals {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.totals
}
