package pnginspect

import (
	"github.com/chronos-tachyon/assert"
	"github.com/chronos-tachyon/pnginspect/inflate"
)

// Option represents a configuration option for Inspect.
type Option func(*options)

type options struct {
	tracers     []Tracer
	inflateOpts []inflate.Option
}

func (o *options) reset() {
	*o = options{}
}

func (o *options) apply(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// WithTracers specifies the list of Tracer instances which will receive
// Events as inspection proceeds.  Completely replaces any previous list.
func WithTracers(tracers ...Tracer) Option {
	for _, tr := range tracers {
		assert.NotNil(&tr)
	}
	if len(tracers) == 0 {
		tracers = nil
	} else {
		tmp := make([]Tracer, len(tracers))
		copy(tmp, tracers)
		tracers = tmp
	}
	return func(o *options) { o.tracers = tracers }
}

// WithInflateOptions specifies options passed to the zlib decoder when
// decompressing zTXt and iTXt payloads, such as inflate.WithOutputLimit.
// Completely replaces any previous list.
func WithInflateOptions(opts ...inflate.Option) Option {
	if len(opts) == 0 {
		opts = nil
	} else {
		tmp := make([]inflate.Option, len(opts))
		copy(tmp, opts)
		opts = tmp
	}
	return func(o *options) { o.inflateOpts = opts }
}
