package monit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
	outcomeError   = "error"
)

// Metrics counts monit invocations. A nil *Metrics records nothing.
type Metrics struct {
	commands *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them when registerer is not nil
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "monit",
			Subsystem: "proxy",
			Name:      "commands_total",
			Help:      "Number of monit commands run, by verb and outcome.",
		}, []string{"verb", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "monit",
			Subsystem: "proxy",
			Name:      "command_duration_seconds",
			Help:      "Wall time of monit commands, by verb.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"verb"}),
	}

	if registerer != nil {
		for _, collector := range []prometheus.Collector{m.commands, m.duration} {
			if err := registerer.Register(collector); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) countOutcome(verb, outcome string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(verb, outcome).Inc()
}

func (m *Metrics) observeDuration(verb string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(verb).Observe(elapsed.Seconds())
}
