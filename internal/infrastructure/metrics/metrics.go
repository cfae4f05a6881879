package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for one engine run.
type Metrics struct {
	registry *prometheus.Registry

	// Stream metrics
	RecordsApplied *prometheus.CounterVec
	RecordsSkipped *prometheus.CounterVec
	RowsMalformed  prometheus.Counter

	// Account metrics
	AccountsCreated prometheus.Counter
	AccountsLocked  prometheus.Counter

	// Dispute metrics
	DisputesOpened     prometheus.Counter
	DisputesResolved   prometheus.Counter
	ChargebacksApplied prometheus.Counter
}

// New creates and registers all metrics on a private registry, so multiple
// engine runs in one process do not collide.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		RecordsApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payengine_records_applied_total",
				Help: "Total records applied to the ledger by kind",
			},
			[]string{"kind"},
		),
		RecordsSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payengine_records_skipped_total",
				Help: "Total records skipped by reason",
			},
			[]string{"reason"},
		),
		RowsMalformed: factory.NewCounter(prometheus.CounterOpts{
			Name: "payengine_rows_malformed_total",
			Help: "Total raw rows rejected at the record source boundary",
		}),

		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "payengine_accounts_created_total",
			Help: "Total client accounts created",
		}),
		AccountsLocked: factory.NewCounter(prometheus.CounterOpts{
			Name: "payengine_accounts_locked_total",
			Help: "Total client accounts locked by a chargeback",
		}),

		DisputesOpened: factory.NewCounter(prometheus.CounterOpts{
			Name: "payengine_disputes_opened_total",
			Help: "Total disputes opened",
		}),
		DisputesResolved: factory.NewCounter(prometheus.CounterOpts{
			Name: "payengine_disputes_resolved_total",
			Help: "Total disputes resolved",
		}),
		ChargebacksApplied: factory.NewCounter(prometheus.CounterOpts{
			Name: "payengine_chargebacks_applied_total",
			Help: "Total chargebacks applied",
		}),
	}
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
