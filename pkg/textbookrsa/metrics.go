package textbookrsa

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the work done by a Client. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	primeDraws     prometheus.Counter
	factorAttempts prometheus.Counter
	attackRuns     *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		primeDraws: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "textbookrsa",
			Subsystem: "keygen",
			Name:      "prime_draws_total",
			Help:      "number of pseudorandom prime candidates drawn",
		}),
		factorAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "textbookrsa",
			Subsystem: "keygen",
			Name:      "factor_attempts_total",
			Help:      "number of e*d candidates handed to the factorizer",
		}),
		attackRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "textbookrsa",
				Subsystem: "eavesdropper",
				Name:      "attack_runs_total",
				Help:      "number of eavesdropper attacks by strategy and outcome",
			},
			[]string{"strategy", "outcome"}),
	}
	for _, c := range []prometheus.Collector{m.primeDraws, m.factorAttempts, m.attackRuns} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observePrimeDraws(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.primeDraws.Add(float64(n))
}

func (m *Metrics) observeFactorAttempts(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.factorAttempts.Add(float64(n))
}

func (m *Metrics) observeAttack(strategy string, err error) {
	if m == nil {
		return
	}
	outcome := "recovered"
	if err != nil {
		outcome = "failed"
	}
	m.attackRuns.WithLabelValues(strategy, outcome).Inc()
}
