// ABOUTME: Prometheus instrumentation for the sync pipeline and event streams
// ABOUTME: Nil *Pipeline is a valid no-op so metrics stay strictly optional

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Operation outcome labels.
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeAbsorbed  = "absorbed"
	OutcomeEmpty     = "empty"
	OutcomeCancelled = "cancelled"
)

// Pipeline holds the metric set for the conversation pipeline and the two
// host event streams. A nil *Pipeline is valid; every method no-ops.
type Pipeline struct {
	operations  *prometheus.CounterVec
	settleWaits prometheus.Counter
	events      *prometheus.CounterVec
	subscribers *prometheus.GaugeVec
}

// New creates and registers the metric set on reg. Passing nil returns a
// nil Pipeline, which disables collection entirely.
func New(reg prometheus.Registerer) *Pipeline {
	if reg == nil {
		return nil
	}
	p := &Pipeline{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stitch",
			Subsystem: "conversation",
			Name:      "operations_total",
			Help:      "Pipeline operations by operation name and outcome.",
		}, []string{"operation", "outcome"}),
		settleWaits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stitch",
			Subsystem: "conversation",
			Name:      "settle_waits_total",
			Help:      "Settle delays taken between join and fetch.",
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stitch",
			Subsystem: "stream",
			Name:      "events_total",
			Help:      "Events published per host event stream.",
		}, []string{"stream"}),
		subscribers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "stitch",
			Subsystem: "stream",
			Name:      "subscribers",
			Help:      "Active subscribers per host event stream.",
		}, []string{"stream"}),
	}
	reg.MustRegister(p.operations, p.settleWaits, p.events, p.subscribers)
	return p
}

// Operation records one completed pipeline operation.
func (p *Pipeline) Operation(name, outcome string) {
	if p == nil {
		return
	}
	p.operations.WithLabelValues(name, outcome).Inc()
}

// SettleWait records one settle delay taken before a post-join fetch.
func (p *Pipeline) SettleWait() {
	if p == nil {
		return
	}
	p.settleWaits.Inc()
}

// StreamEvent records one event published on the named stream.
func (p *Pipeline) StreamEvent(stream string) {
	if p == nil {
		return
	}
	p.events.WithLabelValues(stream).Inc()
}

// StreamSubscribers records the current subscriber count for the named
// stream.
func (p *Pipeline) StreamSubscribers(stream string, n int) {
	if p == nil {
		return
	}
	p.subscribers.WithLabelValues(stream).Set(float64(n))
}
