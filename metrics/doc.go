// Package metrics provides optional Prometheus instrumentation for the
// engine: instance counts, updatePartials call counts and durations, and
// rescale/numerical-fault counters. A nil *Recorder is safe to use — every
// method becomes a no-op — so instrumentation stays strictly optional for
// a caller that has no Prometheus registry to attach to.
package metrics
