package metrics

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "treasury"

// Outcome labels for withdrawal attempts
const (
	OutcomeConfirmed = "confirmed"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
	OutcomeBusy      = "busy"
)

// Service keeps a private prometheus registry for the treasury collectors.
// All methods are safe to call on a nil *Service.
type Service struct {
	registry          *prometheus.Registry
	endpointProbes    *prometheus.CounterVec
	withdrawals       *prometheus.CounterVec
	confirmationDelay prometheus.Histogram
	treasuryBalance   prometheus.Gauge
}

func New() (*Service, error) {
	s := &Service{
		registry: prometheus.NewRegistry(),
		endpointProbes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "endpoint_probes_total",
			Help:      "Liveness probes issued against candidate RPC endpoints.",
		}, []string{"outcome"}),
		withdrawals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "withdrawals_total",
			Help:      "Withdrawal attempts by terminal outcome.",
		}, []string{"outcome"}),
		confirmationDelay: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "confirmation_seconds",
			Help:      "Time between broadcast and reported inclusion.",
			Buckets:   []float64{1, 5, 12, 24, 60, 120, 300, 600},
		}),
		treasuryBalance: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "balance_ether",
			Help:      "Last observed treasury balance in ether.",
		}),
	}

	registered := []prometheus.Collector{
		s.endpointProbes,
		s.withdrawals,
		s.confirmationDelay,
		s.treasuryBalance,
		collectors.NewGoCollector(),
	}

	for _, c := range registered {
		if err := s.registry.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register metrics collector")
		}
	}

	return s, nil
}

// Handler exposes the registry in the prometheus text format.
func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}

func (s *Service) EndpointProbes() *prometheus.CounterVec {
	return s.endpointProbes
}

func (s *Service) Withdrawals() *prometheus.CounterVec {
	return s.withdrawals
}

func (s *Service) ObserveEndpointProbe(ok bool) {
	if s == nil {
		return
	}

	outcome := "failed"
	if ok {
		outcome = "ok"
	}
	s.endpointProbes.WithLabelValues(outcome).Inc()
}

func (s *Service) ObserveWithdrawal(outcome string) {
	if s == nil {
		return
	}
	s.withdrawals.WithLabelValues(outcome).Inc()
}

func (s *Service) ObserveConfirmation(d time.Duration) {
	if s == nil {
		return
	}
	s.confirmationDelay.Observe(d.Seconds())
}

func (s *Service) SetTreasuryBalance(eth float64) {
	if s == nil {
		return
	}
	s.treasuryBalance.Set(eth)
}
