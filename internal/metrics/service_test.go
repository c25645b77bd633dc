package metrics_test

import (
	"testing"

	"github.com/chapool/treasury-api/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveWithdrawal(t *testing.T) {
	m, err := metrics.New()
	require.NoError(t, err)

	m.ObserveWithdrawal(metrics.OutcomeConfirmed)
	m.ObserveWithdrawal(metrics.OutcomeConfirmed)
	m.ObserveWithdrawal(metrics.OutcomeRejected)
	m.ObserveEndpointProbe(false)
	m.ObserveEndpointProbe(true)

	count, err := testutil.GatherAndCount(m.Registry(), "treasury_withdrawals_total", "treasury_endpoint_probes_total")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestNilServiceIsNoop(t *testing.T) {
	var m *metrics.Service

	assert.NotPanics(t, func() {
		m.ObserveEndpointProbe(true)
		m.ObserveWithdrawal(metrics.OutcomeFailed)
		m.SetTreasuryBalance(1)
	})
}
