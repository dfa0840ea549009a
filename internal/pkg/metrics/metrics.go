package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	// method, path, status_code
	HTTPRequestsTotal *prometheus.CounterVec

	// method, path
	HTTPRequestDuration *prometheus.HistogramVec

	// operation: create/cancel/delete, outcome: success/conflict/rejected/not_found/lock_failed/error
	ReservationsTotal *prometheus.CounterVec

	// status: acquired/failed
	RoomLockDuration *prometheus.HistogramVec

	ReservationsCompletedTotal prometheus.Counter
}

func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		ReservationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservations_total",
				Help: "Total number of reservation operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		RoomLockDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "room_lock_duration_seconds",
				Help:    "Time spent acquiring the distributed room lock",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"status"},
		),
		ReservationsCompletedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "reservations_completed_total",
				Help: "Total number of reservations marked completed by the sweep",
			},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ReservationsTotal,
		m.RoomLockDuration,
		m.ReservationsCompletedTotal,
	)

	return m
}

func (m *Metrics) RecordReservation(operation, outcome string) {
	m.ReservationsTotal.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveRoomLock(status string, elapsed time.Duration) {
	m.RoomLockDuration.WithLabelValues(status).Observe(elapsed.Seconds())
}

func (m *Metrics) RecordCompleted(n int64) {
	if n > 0 {
		m.ReservationsCompletedTotal.Add(float64(n))
	}
}
