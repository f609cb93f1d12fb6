package hooks

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/refkit/pkg/ref"
)

// Option configures an Owner.
type Option func(*Owner)

// WithLogger sets the owner's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Owner) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTracer sets the tracer used for render spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *Owner) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

// WithObserver sets the observer handed to merged ref caches created by
// UseMergedRefs.
func WithObserver(observer ref.Observer) Option {
	return func(o *Owner) {
		if observer != nil {
			o.observer = observer
		}
	}
}

// WithDebug enables hook order validation.
func WithDebug(debug bool) Option {
	return func(o *Owner) {
		o.debug = debug
	}
}
