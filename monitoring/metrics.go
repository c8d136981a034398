package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	domainOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickethub_operations_total",
			Help: "Domain operations by outcome",
		},
		[]string{"operation", "status"},
	)

	persistenceFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickethub_persistence_failures_total",
			Help: "Snapshot saves that failed and were kept in memory only",
		},
	)

	usersTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tickethub_users_total",
			Help: "Current number of registered users",
		},
	)

	ticketsTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tickethub_tickets_total",
			Help: "Current number of listings per status",
		},
		[]string{"status"},
	)

	ordersTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tickethub_orders_total",
			Help: "Completed orders since the snapshot began",
		},
	)
)

// RecordOperation counts one domain operation and its outcome.
func RecordOperation(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	domainOperations.WithLabelValues(operation, status).Inc()
}

// PersistenceFailure counts a snapshot save that was dropped.
func PersistenceFailure() {
	persistenceFailures.Inc()
}

// StateStats is the gauge-worthy summary of the application state.
type StateStats struct {
	Users         int
	ActiveTickets int
	SoldTickets   int
	Orders        int
}

// Monitor refreshes the state gauges on a fixed interval. The stats
// callback is expected to take the state lock itself.
type Monitor struct {
	stats func() StateStats
}

func NewMonitor(stats func() StateStats) *Monitor {
	monitor := &Monitor{stats: stats}

	go monitor.collectMetrics()

	return monitor
}

func (m *Monitor) collectMetrics() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Collect()
	}
}

// Collect refreshes the gauges once.
func (m *Monitor) Collect() {
	s := m.stats()
	usersTotal.Set(float64(s.Users))
	ticketsTotal.WithLabelValues("active").Set(float64(s.ActiveTickets))
	ticketsTotal.WithLabelValues("sold").Set(float64(s.SoldTickets))
	ordersTotal.Set(float64(s.Orders))
}
