package pnginspect

import (
	"github.com/rs/zerolog"
)

// Tracer is an interface which callers can implement in order to receive
// Events.  Events provide feedback on the progress of an inspection.
type Tracer interface {
	OnEvent(Event)
}

// Event is a collection of fields that provide feedback on the progress of
// the inspection in progress.
type Event struct {
	Type   EventType
	Offset int
	Length int

	// Kind and ChunkType describe the part the event concerns.  They are
	// zero for InspectBeginEvent and InspectEndEvent.
	Kind      PartKind
	ChunkType string

	// NumErrors counts the part's error notes so far, or for
	// InspectEndEvent, the error notes of the whole file.
	NumErrors int
}

// type NoOpTracer {{{

// NoOpTracer is an implementation of Tracer that does nothing.
type NoOpTracer struct{}

// OnEvent fulfills Tracer.
func (NoOpTracer) OnEvent(event Event) {}

var _ Tracer = NoOpTracer{}

// }}}

// type TracerFunc {{{

// TracerFunc is an implementation of Tracer that calls a function.
type TracerFunc func(Event)

// OnEvent fulfills Tracer.
func (tr TracerFunc) OnEvent(event Event) {
	tr(event)
}

var _ Tracer = TracerFunc(nil)

// }}}

// type logTracer {{{

// Log returns a Tracer implementation which will log each Event at Trace
// priority.
func Log(logger zerolog.Logger) Tracer {
	return logTracer{logger: logger}
}

type logTracer struct {
	logger zerolog.Logger
}

// OnEvent fulfills Tracer.
func (tr logTracer) OnEvent(event Event) {
	tr.logger.Trace().
		Stringer("type", event.Type).
		Int("offset", event.Offset).
		Int("length", event.Length).
		Stringer("kind", event.Kind).
		Str("chunkType", event.ChunkType).
		Int("numErrors", event.NumErrors).
		Msg("pnginspect")
}

var _ Tracer = logTracer{}

// }}}
