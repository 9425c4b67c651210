// Package metrics records render outcomes.
package metrics

import (
	"errors"
	"time"

	"github.com/goliatone/go-hypermedia/pkg/render"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every collector.
const Namespace = "hypermedia"

// Outcome labels.
const (
	OutcomeOK          = "ok"
	OutcomeMismatch    = "mismatch"
	OutcomeUnsupported = "unsupported"
	OutcomeError       = "error"
)

// UnsupportedFormat is the format label recorded for renders requested in a
// format outside render.Formats, keeping label cardinality bounded.
const UnsupportedFormat render.Format = "unsupported"

// Recorder observes a single render call.
type Recorder interface {
	ObserveRender(format render.Format, outcome string, elapsed time.Duration, size int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRender(render.Format, string, time.Duration, int) {}

// Nop discards observations.
var Nop Recorder = nopRecorder{}

// Prometheus records renders into counter and histogram vectors labelled by
// media type.
type Prometheus struct {
	renders  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	size     *prometheus.HistogramVec
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus builds the collectors and registers them on reg. A nil reg
// leaves them unregistered.
func NewPrometheus(reg prometheus.Registerer, subsystem string) (*Prometheus, error) {
	p := &Prometheus{
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      "renders_total",
			Help:      "Number of render calls by media type and outcome.",
		}, []string{"format", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      "render_duration_seconds",
			Help:      "Duration of render calls in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}, []string{"format"}),
		size: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      "render_bytes",
			Help:      "Size of rendered documents in bytes.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
		}, []string{"format"}),
	}
	if reg == nil {
		return p, nil
	}
	var err error
	if p.renders, err = register(reg, p.renders); err != nil {
		return nil, err
	}
	if p.duration, err = register(reg, p.duration); err != nil {
		return nil, err
	}
	if p.size, err = register(reg, p.size); err != nil {
		return nil, err
	}
	return p, nil
}

// register adds c to reg, reusing an identical collector registered earlier.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveRender implements Recorder.
func (p *Prometheus) ObserveRender(format render.Format, outcome string, elapsed time.Duration, size int) {
	p.renders.WithLabelValues(string(format), outcome).Inc()
	p.duration.WithLabelValues(string(format)).Observe(elapsed.Seconds())
	if outcome == OutcomeOK {
		p.size.WithLabelValues(string(format)).Observe(float64(size))
	}
}

// Outcome classifies a render error into an outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, render.ErrStructuralMismatch):
		return OutcomeMismatch
	case errors.Is(err, render.ErrUnsupportedFormat):
		return OutcomeUnsupported
	default:
		return OutcomeError
	}
}
