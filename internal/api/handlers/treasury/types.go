package treasury

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/chapool/treasury-api/internal/wallet"
	"github.com/shopspring/decimal"
)

// FlexibleAmount accepts a JSON number or a numeric string. Anything else, including
// null, leaves it unset. Numbers outside wallet.AmountInRange are unset and OutOfRange.
type FlexibleAmount struct {
	Value      decimal.Decimal
	Set        bool
	OutOfRange bool
}

func (a *FlexibleAmount) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		*a = FlexibleAmount{}
		return nil //nolint:nilerr // unparseable amounts count as absent
	}

	if !wallet.AmountInRange(d) {
		*a = FlexibleAmount{OutOfRange: true}
		return nil
	}

	*a = FlexibleAmount{Value: d, Set: true}

	return nil
}

// NonZero reports whether a usable amount was given
func (a FlexibleAmount) NonZero() bool {
	return a.Set && !a.Value.IsZero()
}

type WithdrawPayload struct {
	AmountETH FlexibleAmount `json:"amountETH"`
	Amount    FlexibleAmount `json:"amount"`
	AmountUSD FlexibleAmount `json:"amountUSD"`
	To        string         `json:"to"`
}

// OutOfRange reports whether any of the amounts is unusable
func (p WithdrawPayload) OutOfRange() bool {
	return p.AmountETH.OutOfRange || p.Amount.OutOfRange || p.AmountUSD.OutOfRange
}

// ETHAmount picks amountETH, then amount, then amountUSD converted at rate. Zero if none is given.
func (p WithdrawPayload) ETHAmount(rate decimal.Decimal) decimal.Decimal {
	switch {
	case p.AmountETH.NonZero():
		return p.AmountETH.Value
	case p.Amount.NonZero():
		return p.Amount.Value
	case p.AmountUSD.NonZero() && !rate.IsZero():
		return p.AmountUSD.Value.Div(rate)
	default:
		return decimal.Zero
	}
}

type CreditEarningsPayload struct {
	Amount    FlexibleAmount `json:"amount"`
	AmountUSD FlexibleAmount `json:"amountUSD"`
}

func (p CreditEarningsPayload) OutOfRange() bool {
	return p.Amount.OutOfRange || p.AmountUSD.OutOfRange
}

type SendToBackendPayload struct {
	AmountETH FlexibleAmount `json:"amountETH"`
	AmountUSD FlexibleAmount `json:"amountUSD"`
}

func (p SendToBackendPayload) OutOfRange() bool {
	return p.AmountETH.OutOfRange || p.AmountUSD.OutOfRange
}

type RootResponse struct {
	Name           string `json:"name"`
	Version        string `json:"version"`
	Status         string `json:"status"`
	GasMode        string `json:"gasMode"`
	CoinbaseWallet string `json:"coinbaseWallet"`
	TreasuryWallet string `json:"treasuryWallet"`
}

type StatusResponse struct {
	Status          string `json:"status"`
	GasMode         string `json:"gasMode"`
	TreasuryBalance string `json:"treasuryBalance"`
	CanWithdraw     bool   `json:"canWithdraw"`
	TotalEarnings   string `json:"totalEarnings"`
}

type HealthResponse struct {
	Status          string `json:"status"`
	TreasuryBalance string `json:"treasuryBalance"`
}

type BalanceResponse struct {
	TreasuryWallet string `json:"treasuryWallet"`
	Balance        string `json:"balance"`
	BalanceUSD     string `json:"balanceUSD"`
}

type StrategiesLiveResponse struct {
	TotalPnL         json.Number `json:"totalPnL"`
	ProjectedHourly  int         `json:"projectedHourly"`
	TotalStrategies  int         `json:"totalStrategies"`
	ActiveStrategies int         `json:"activeStrategies"`
	TreasuryBalance  string      `json:"treasuryBalance"`
	FeeRecipient     string      `json:"feeRecipient"`
	CanTrade         bool        `json:"canTrade"`
}

type WithdrawResponse struct {
	Success      bool        `json:"success"`
	TxHash       string      `json:"txHash"`
	Amount       json.Number `json:"amount"`
	AmountUSD    string      `json:"amountUSD"`
	To           string      `json:"to"`
	From         string      `json:"from"`
	BlockNumber  uint64      `json:"blockNumber"`
	GasUsed      string      `json:"gasUsed"`
	EtherscanURL string      `json:"etherscanUrl"`
}

type CreditEarningsResponse struct {
	Success       bool        `json:"success"`
	Credited      json.Number `json:"credited"`
	TotalEarnings string      `json:"totalEarnings"`
}

type SendToBackendResponse struct {
	Success   bool        `json:"success"`
	Allocated json.Number `json:"allocated"`
	To        string      `json:"to"`
}
