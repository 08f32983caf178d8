package sssp

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"gnc_sssp/pkg/metrics"
)

var tracer = otel.Tracer("gnc_sssp.sssp")

// Clock supplies the time used for wall-time measurement. Implementations
// must be safe for concurrent use.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// Now returns time.Now, which carries a monotonic reading.
func (systemClock) Now() time.Time { return time.Now() }

// Option configures a Solver.
type Option func(*Solver)

// WithLogger sets the diagnostic sink. The default discards everything.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Solver) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(s *Solver) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithMetrics records solver activity into reg.
func WithMetrics(reg *metrics.Registry) Option {
	return func(s *Solver) { s.metrics = reg }
}

// WithTracer replaces the package tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Solver) {
		if t != nil {
			s.tracer = t
		}
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
