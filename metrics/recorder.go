package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder owns the engine's Prometheus collectors. A nil *Recorder is
// valid: every method no-ops, so instrumentation is opt-in.
type Recorder struct {
	instances       prometheus.Gauge
	updatePartials  *prometheus.CounterVec
	updateDuration  prometheus.Histogram
	rescaleTotal    prometheus.Counter
	numericalFaults prometheus.Counter
}

// New creates a Recorder and registers its collectors with reg. Passing a
// fresh prometheus.NewRegistry() keeps the engine's metrics isolated from
// any default/global registry a host process may already run.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		instances: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gophylo",
			Name:      "instances_active",
			Help:      "Number of live instances currently registered.",
		}),
		updatePartials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gophylo",
			Name:      "update_partials_total",
			Help:      "updatePartials calls, partitioned by outcome.",
		}, []string{"outcome"}),
		updateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gophylo",
			Name:      "update_partials_seconds",
			Help:      "updatePartials call latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
		rescaleTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gophylo",
			Name:      "rescale_total",
			Help:      "Rescaling events applied across all instances.",
		}),
		numericalFaults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gophylo",
			Name:      "numerical_faults_total",
			Help:      "Non-finite or negative partials surfaced by the pruning kernel.",
		}),
	}
	reg.MustRegister(r.instances, r.updatePartials, r.updateDuration, r.rescaleTotal, r.numericalFaults)
	return r
}

// InstanceCreated increments the live instance gauge.
func (r *Recorder) InstanceCreated() {
	if r == nil {
		return
	}
	r.instances.Inc()
}

// InstanceFinalized decrements the live instance gauge.
func (r *Recorder) InstanceFinalized() {
	if r == nil {
		return
	}
	r.instances.Dec()
}

// UpdatePartialsObserved records one updatePartials call's outcome and
// duration in seconds.
func (r *Recorder) UpdatePartialsObserved(outcome string, seconds float64) {
	if r == nil {
		return
	}
	r.updatePartials.WithLabelValues(outcome).Inc()
	r.updateDuration.Observe(seconds)
}

// RescaleApplied increments the rescale counter by count.
func (r *Recorder) RescaleApplied(count int) {
	if r == nil || count <= 0 {
		return
	}
	r.rescaleTotal.Add(float64(count))
}

// NumericalFault increments the numerical-fault counter.
func (r *Recorder) NumericalFault() {
	if r == nil {
		return
	}
	r.numericalFaults.Inc()
}
