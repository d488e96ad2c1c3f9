package tracker

import (
	"fmt"
	"log/slog"

	"go.jacobcolvin.com/yamlgrep/event"
)

// State is the tracker's position in the key/value protocol.
type State int

const (
	// StateMapping awaits the document's root mapping.
	StateMapping State = iota
	// StateKeyOrEnd awaits the next key or the end of the current mapping.
	StateKeyOrEnd
	// StateValue awaits the value for the most recently pushed key.
	StateValue
)

// String returns the state name used in diagnostics.
func (s State) String() string {
	switch s {
	case StateMapping:
		return "awaiting-mapping"
	case StateKeyOrEnd:
		return "awaiting-key-or-end"
	case StateValue:
		return "awaiting-value"
	}

	return fmt.Sprintf("state(%d)", int(s))
}

// StateError reports an event that cannot legally occur in the tracker's
// current state. It always signals input structure the tracker does not
// model and is unrecoverable for the current document.
type StateError struct {
	Kind     event.Kind
	State    State
	Filename string
	Position event.Position
}

// Error implements the error interface.
func (e *StateError) Error() string {
	return fmt.Sprintf("%s:%d:%d: unexpected %s while %s",
		e.Filename, e.Position.Line, e.Position.Column, e.Kind, e.State)
}

// LeafFunc is invoked once per completed key/value pair. The path slice is
// reused between invocations and is only valid for the duration of the
// call.
type LeafFunc func(path []string, value string, pos event.Position) error

// Tracker consumes parse events for one document at a time. A document
// start event reinitializes all state, so one Tracker can be reused across
// every document in an input stream.
//
// Create instances with [New]. A Tracker must not be shared across
// concurrent event streams.
type Tracker struct {
	filename string
	onLeaf   LeafFunc
	logger   *slog.Logger

	state State
	path  []string
	depth int
	pos   event.Position
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for debug-level transition tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// New creates a Tracker reporting leaves from filename to onLeaf.
func New(filename string, onLeaf LeafFunc, opts ...Option) *Tracker {
	t := &Tracker{
		filename: filename,
		onLeaf:   onLeaf,
		logger:   slog.Default(),
		state:    StateMapping,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Handle consumes a single event and advances the state machine. It is the
// [event.EmitFunc] for this tracker.
func (t *Tracker) Handle(ev event.Event) error {
	switch ev.Kind {
	case event.KindLocation:
		t.pos = ev.Start

		return nil

	case event.KindDocumentStart:
		t.reset()

		return nil

	case event.KindDocumentEnd:
		return nil
	}

	t.logger.Debug("event",
		slog.String("kind", ev.Kind.String()),
		slog.String("state", t.state.String()),
		slog.Int("depth", t.depth),
	)

	switch t.state {
	case StateMapping:
		if ev.Kind == event.KindMappingStart {
			t.depth++
			t.state = StateKeyOrEnd

			return nil
		}

	case StateKeyOrEnd:
		switch ev.Kind {
		case event.KindScalar:
			t.path = append(t.path, ev.Value)
			t.state = StateValue

			return nil

		case event.KindMappingEnd:
			if t.depth > 0 {
				// Close the enclosing key, if any. At the root mapping
				// the stack is already empty.
				t.closeKey()
				t.depth--

				return nil
			}
		}

	case StateValue:
		switch ev.Kind {
		case event.KindScalar:
			if len(t.path) == 0 {
				panic("tracker: value scalar with no pending key")
			}

			err := t.onLeaf(t.path, ev.Value, t.pos)

			t.path = t.path[:len(t.path)-1]
			t.state = StateKeyOrEnd

			return err

		case event.KindMappingStart:
			// The nested mapping becomes the value. The key stays pushed
			// until the matching mapping end arrives.
			t.depth++
			t.state = StateKeyOrEnd

			return nil

		case event.KindMappingEnd:
			if t.depth > 0 {
				t.closeKey()
				t.depth--
				t.state = StateKeyOrEnd

				return nil
			}
		}
	}

	return &StateError{
		Kind:     ev.Kind,
		State:    t.state,
		Filename: t.filename,
		Position: t.pos,
	}
}

// closeKey pops the key whose mapping value just ended. No-op at the root
// mapping, where no enclosing key exists.
func (t *Tracker) closeKey() {
	if len(t.path) == 0 {
		return
	}

	t.path = t.path[:len(t.path)-1]
}

// reset reinitializes state, key stack, nesting depth, and position for
// the next document.
func (t *Tracker) reset() {
	t.state = StateMapping
	t.path = t.path[:0]
	t.depth = 0
	t.pos = event.Position{}
}
