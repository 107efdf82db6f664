package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// SessionsOpenedTotal counts register sessions opened.
	SessionsOpenedTotal prometheus.Counter
	// OrdersCompletedTotal counts orders that reached checkout.
	OrdersCompletedTotal prometheus.Counter
	// OrdersCancelledTotal counts sessions cancelled before checkout.
	OrdersCancelledTotal prometheus.Counter
	// ItemsAddedTotal counts line items added, labelled by product.
	ItemsAddedTotal *prometheus.CounterVec
	// OrderTotalCents records completed order totals in minor units.
	OrderTotalCents prometheus.Histogram
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		SessionsOpenedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_opened_total",
			Help:      "Count of register sessions opened.",
		})
		OrdersCompletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_completed_total",
			Help:      "Count of orders completed at checkout.",
		})
		OrdersCancelledTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_cancelled_total",
			Help:      "Count of register sessions cancelled before checkout.",
		})
		ItemsAddedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_added_total",
			Help:      "Count of line items added to orders by product.",
		}, []string{"product"})
		OrderTotalCents = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_total_cents",
			Help:      "Distribution of completed order totals in minor units.",
			Buckets:   []float64{250, 500, 1000, 2000, 3500, 5000, 10000, 20000},
		})
		reg.MustRegister(SessionsOpenedTotal, OrdersCompletedTotal, OrdersCancelledTotal, ItemsAddedTotal, OrderTotalCents)
	})
}
