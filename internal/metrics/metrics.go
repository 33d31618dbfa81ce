package metrics

import (
	"errors"
	"time"

	"main/pkg/customerrors"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	//Request duration histogram with method, endpoint, and status labels
	RequestDuration *prometheus.HistogramVec
	//Login attempts counter
	LoginAttempts *prometheus.CounterVec
	//Total errors counter with error type label
	TotalErrors *prometheus.CounterVec
	//Upstream backend call duration histogram with endpoint and status labels
	UpstreamDuration *prometheus.HistogramVec
	//Cascade delete steps counter with entity, step and status labels
	CascadeSteps *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		//Request duration histogram with method, endpoint, and status labels
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "request_duration_seconds",
			Help: "Duration of HTTP requests in seconds."},
			[]string{"method", "endpoint", "status"},
		),
		//Login attempts counter
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total number of login attempts.",
		},
			[]string{"status"},
		),
		//Total errors counter with error type label
		TotalErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "total_errors_total",
				Help: "Number of total errors.",
			},
			[]string{"error_type"},
		),
		//Upstream backend call duration histogram with endpoint and status labels
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "upstream_call_duration_seconds",
			Help:    "Duration of calls to the commerce backend in seconds.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
			[]string{"endpoint", "status"},
		),
		//Cascade delete steps counter with entity, step and status labels
		CascadeSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cascade_steps_total",
			Help: "Number of cascade delete steps executed.",
		},
			[]string{"entity", "step", "status"},
		),
	}
	// Register metrics with the provided registry
	reg.MustRegister(m.RequestDuration)
	reg.MustRegister(m.LoginAttempts)
	reg.MustRegister(m.TotalErrors)
	reg.MustRegister(m.UpstreamDuration)
	reg.MustRegister(m.CascadeSteps)
	return m
}

// ObserveUpstream is a helper method to record the duration and status of backend calls in a consistent way.
func (m *Metrics) ObserveUpstream(endpoint string, start time.Time, err error) {
	duration := time.Since(start).Seconds()

	status := "ok"
	if err != nil {
		if errors.Is(err, customerrors.ErrUpstream) {
			status = "upstream_error"
		} else {
			status = "transport_error"
		}
	}

	m.UpstreamDuration.WithLabelValues(endpoint, status).Observe(duration)
}
