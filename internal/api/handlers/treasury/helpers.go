package treasury

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/chapool/treasury-api/internal/api"
	"github.com/chapool/treasury-api/internal/util"
	"github.com/chapool/treasury-api/internal/wallet"
	"github.com/chapool/treasury-api/internal/wallet/withdraw"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

const (
	etherPlaces = 6
	usdPlaces   = 2
)

// treasuryBalance reads the treasury balance in ether. Read-only endpoints report 0 when
// the node is unreachable or no signer is configured.
func treasuryBalance(ctx context.Context, s *api.Server) decimal.Decimal {
	log := util.LogFromContext(ctx)

	conn, err := s.Network.Connect(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Treasury balance unavailable")
		return decimal.Zero
	}

	bal, err := s.Balance.Balance(ctx, conn)
	if err != nil {
		log.Warn().Err(err).Msg("Treasury balance unavailable")
		return decimal.Zero
	}

	return wallet.WeiToEther(bal)
}

// treasuryAddress is the signer's address once connected, the configured treasury wallet otherwise
func treasuryAddress(s *api.Server) string {
	if addr, ok := s.Network.Current().Address(); ok {
		return addr.Hex()
	}

	return s.Config.Treasury.TreasuryWallet
}

func parseDestination(to string, fallback string) (common.Address, bool) {
	if to == "" {
		to = fallback
	}

	if !common.IsHexAddress(to) {
		return common.Address{}, false
	}

	return common.HexToAddress(to), true
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func newWithdrawResponse(s *api.Server, r *wallet.Receipt) *WithdrawResponse {
	amount := wallet.WeiToEther(r.AmountWei)
	rate := s.Config.Treasury.USDRate
	if rate.IsZero() {
		rate = withdraw.DefaultUSDRate
	}

	return &WithdrawResponse{
		Success:      r.Success,
		TxHash:       r.TxHash.Hex(),
		Amount:       number(amount),
		AmountUSD:    wallet.ToUSD(amount, rate).StringFixed(usdPlaces),
		To:           r.To.Hex(),
		From:         r.From.Hex(),
		BlockNumber:  r.BlockNumber,
		GasUsed:      strconv.FormatUint(r.GasUsed, 10),
		EtherscanURL: s.Config.Treasury.ExplorerTxURL + r.TxHash.Hex(),
	}
}
