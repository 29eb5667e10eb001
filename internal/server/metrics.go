package server

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeAccepted = "accepted"
	outcomeInvalid  = "invalid"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

type metrics struct {
	submissions *prometheus.CounterVec
}

func newMetrics(registry prometheus.Registerer) *metrics {
	m := &metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "survey_submissions_total",
			Help: "Survey submissions received, by outcome.",
		}, []string{"outcome"}),
	}
	registry.MustRegister(m.submissions)
	for _, outcome := range []string{outcomeAccepted, outcomeInvalid, outcomeRejected, outcomeError} {
		m.submissions.WithLabelValues(outcome)
	}
	return m
}
