package relay42

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Call names used as metric label values and in debug output.
const (
	callEngagement = "engagement"
	callFact       = "fact"
	callMapping    = "mapping"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relay42_requests_total",
		Help: "Total number of tracking calls, labelled by call and outcome.",
	}, []string{"call", "outcome"})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "relay42_request_duration_ms",
		Help:    "Collector round-trip latency in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})
)

// outcomeLabel folds a Result into the small outcome vocabulary the
// requestsTotal counter uses.
func outcomeLabel(r Result) string {
	switch {
	case r.Err == nil:
		return "success"
	case errors.Is(r.Err, ErrNotConfigured), errors.Is(r.Err, ErrInvalidRequest):
		return "rejected"
	case errors.Is(r.Err, ErrUnknownResponse):
		return "unknown"
	default:
		var se *StatusError
		if errors.As(r.Err, &se) {
			return "http_error"
		}
		return "transport_error"
	}
}
