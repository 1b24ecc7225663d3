package trivia

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts gameplay and write outcomes. A nil *Metrics records nothing.
type Metrics struct {
	quizDraws      *prometheus.CounterVec
	questionWrites *prometheus.CounterVec
}

// NewMetrics registers the trivia counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		quizDraws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "quiz_draws_total",
			Help:      "Quiz question requests by outcome.",
		}, []string{"outcome"}),
		questionWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "question_writes_total",
			Help:      "Questions created or deleted.",
		}, []string{"op"}),
	}
	reg.MustRegister(m.quizDraws, m.questionWrites)
	return m
}

func (m *Metrics) observeQuiz(q *Question) {
	if m == nil {
		return
	}
	outcome := "question"
	if q == nil {
		outcome = "exhausted"
	}
	m.quizDraws.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeWrite(op string) {
	if m == nil {
		return
	}
	m.questionWrites.WithLabelValues(op).Inc()
}
