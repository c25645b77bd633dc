//go:build wireinject

package api

import (
	"testing"

	"github.com/chapool/treasury-api/internal/config"
	"github.com/chapool/treasury-api/internal/metrics"
	"github.com/chapool/treasury-api/internal/wallet/network"
	"github.com/google/wire"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	metrics.New,
	NewSelector,
	NewFeeCalculator,
	NewLedger,
	NewBalanceService,
	NewWithdrawService,
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NewDialer, NewClock, NoTest)
	return new(Server), nil
}

// InitNewServerWithDialer returns a new Server instance talking to the RPC endpoints through dial.
// All the other components are initialized via go wire according to the configuration.
func InitNewServerWithDialer(
	_ config.Server,
	_ network.Dialer,
	t ...*testing.T,
) (*Server, error) {
	wire.Build(serviceSet, NewClock)
	return new(Server), nil
}
