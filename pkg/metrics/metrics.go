package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the scheduling-domain metrics.
type Metrics struct {
	BookingsTotal      prometheus.Counter
	BookingConflicts   prometheus.Counter
	ReschedulesMarked  prometheus.Counter
	ReschedulesDone    prometheus.Counter
	AppointmentsFreed  prometheus.Counter
	StoreErrors        *prometheus.CounterVec
	ConflictCheckTime  prometheus.Histogram
}

// NewMetrics creates and registers all scheduling metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		BookingsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Total number of appointments booked",
		}),
		BookingConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Total number of bookings rejected by the conflict detector",
		}),
		ReschedulesMarked: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reschedules_marked_total",
			Help:      "Total number of appointments marked for reschedule",
		}),
		ReschedulesDone: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reschedules_committed_total",
			Help:      "Total number of committed reschedules",
		}),
		AppointmentsFreed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_deleted_total",
			Help:      "Total number of deleted appointments",
		}),
		StoreErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Store failures by operation",
		}, []string{"operation"}),
		ConflictCheckTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conflict_check_duration_seconds",
			Help:      "Time spent on conflict existence checks",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
	}
}
