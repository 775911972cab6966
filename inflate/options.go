package inflate

import (
	"github.com/chronos-tachyon/assert"
)

// Option represents a configuration option for Inflate and DecompressZlib.
type Option func(*options)

type options struct {
	limit   uint64
	tracers []Tracer
}

func (o *options) reset() {
	*o = options{}
}

func (o *options) apply(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// WithOutputLimit caps the number of decompressed bytes.  Streams that
// would produce more fail with ErrOutputLimit.  Zero means no limit.
func WithOutputLimit(limit uint64) Option {
	return func(o *options) { o.limit = limit }
}

// WithTracers specifies the list of Tracer instances which will receive
// Events as decompression proceeds.  Completely replaces any previous list.
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
