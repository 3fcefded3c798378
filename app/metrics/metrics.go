// Package metrics provides Prometheus instrumentation of the chat service. It exposes counters for
// composer checks and send gate decisions, and a histogram of message scores.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// send gate results
const (
	SendAccepted = "accepted"
	SendRejected = "rejected"
	SendBlocked  = "blocked"
)

var (
	// ChecksTotal counts scored messages, labeled by verdict: "SPAM" or "SAFE".
	ChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_checks_total",
		Help: "Total number of scored messages",
	}, []string{"label"})

	// SendsTotal counts send gate decisions, labeled by result.
	SendsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_sends_total",
		Help: "Total number of send attempts",
	}, []string{"result"}) // result = "accepted", "rejected", "blocked"

	// Score records aggregate scores of checked messages.
	Score = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "chat_score",
		Help:    "Aggregate spam score of checked messages",
		Buckets: []float64{0, 10, 20, 30, 40, 55, 70, 85, 100},
	})
)

func init() {
	prometheus.MustRegister(ChecksTotal, SendsTotal, Score)
}

// ObserveCheck records a scored message
func ObserveCheck(label string, score int) {
	ChecksTotal.WithLabelValues(label).Inc()
	Score.Observe(float64(score))
}

// ObserveSend records a send gate decision
func ObserveSend(result string) {
	SendsTotal.WithLabelValues(result).Inc()
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
