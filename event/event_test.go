package event_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamlgrep/event"
)

// record collects the full event stream for input.
func record(t *testing.T, input string) ([]event.Event, error) {
	t.Helper()

	var events []event.Event

	err := event.Stream([]byte(input), func(ev event.Event) error {
		events = append(events, ev)

		return nil
	})

	return events, err
}

// structural drops location events, keeping the structural skeleton.
func structural(events []event.Event) []event.Event {
	var out []event.Event

	for _, ev := range events {
		if ev.Kind == event.KindLocation {
			continue
		}

		out = append(out, ev)
	}

	return out
}

func kinds(events []event.Event) []event.Kind {
	out := make([]event.Kind, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Kind)
	}

	return out
}

func TestStreamFlatMapping(t *testing.T) {
	t.Parallel()

	events, err := record(t, "a: 1\nb: two\n")
	require.NoError(t, err)

	got := structural(events)
	require.Equal(t, []event.Kind{
		event.KindDocumentStart,
		event.KindMappingStart,
		event.KindScalar, // a
		event.KindScalar, // 1
		event.KindScalar, // b
		event.KindScalar, // two
		event.KindMappingEnd,
		event.KindDocumentEnd,
	}, kinds(got))

	assert.Equal(t, "a", got[2].Value)
	assert.Equal(t, "1", got[3].Value)
	assert.Equal(t, "b", got[4].Value)
	assert.Equal(t, "two", got[5].Value)
}

func TestStreamSinglePairDocument(t *testing.T) {
	t.Parallel()

	// A one-pair document must still be bracketed by mapping start/end.
	events, err := record(t, "only: 1\n")
	require.NoError(t, err)

	require.Equal(t, []event.Kind{
		event.KindDocumentStart,
		event.KindMappingStart,
		event.KindScalar,
		event.KindScalar,
		event.KindMappingEnd,
		event.KindDocumentEnd,
	}, kinds(structural(events)))
}

func TestStreamNestedMapping(t *testing.T) {
	t.Parallel()

	events, err := record(t, "a:\n  b:\n    c: 12\n")
	require.NoError(t, err)

	require.Equal(t, []event.Kind{
		event.KindDocumentStart,
		event.KindMappingStart,
		event.KindScalar, // a
		event.KindMappingStart,
		event.KindScalar, // b
		event.KindMappingStart,
		event.KindScalar, // c
		event.KindScalar, // 12
		event.KindMappingEnd,
		event.KindMappingEnd,
		event.KindMappingEnd,
		event.KindDocumentEnd,
	}, kinds(structural(events)))
}

func TestStreamScalarPositions(t *testing.T) {
	t.Parallel()

	events, err := record(t, "a:\n  b: 12\n")
	require.NoError(t, err)

	// Each scalar is preceded by a location event carrying a 1-based
	// line/column of its token.
	var positions []event.Position

	for i, ev := range events {
		if ev.Kind != event.KindScalar {
			continue
		}

		require.Positive(t, i)
		require.Equal(t, event.KindLocation, events[i-1].Kind)
		positions = append(positions, events[i-1].Start)
	}

	require.Len(t, positions, 3)
	assert.Equal(t, event.Position{Line: 1, Column: 1}, positions[0]) // a
	assert.Equal(t, event.Position{Line: 2, Column: 3}, positions[1]) // b
	assert.Equal(t, event.Position{Line: 2, Column: 6}, positions[2]) // 12
}

func TestStreamMultiDocument(t *testing.T) {
	t.Parallel()

	events, err := record(t, "a: 1\n---\nb: 2\n")
	require.NoError(t, err)

	got := kinds(structural(events))

	starts := 0
	ends := 0

	for _, k := range got {
		switch k {
		case event.KindDocumentStart:
			starts++
		case event.KindDocumentEnd:
			ends++
		}
	}

	assert.Equal(t, 2, starts)
	assert.Equal(t, 2, ends)
	assert.Equal(t, event.KindDocumentStart, got[0])
	assert.Equal(t, event.KindDocumentEnd, got[len(got)-1])
}

func TestStreamSequence(t *testing.T) {
	t.Parallel()

	events, err := record(t, "items:\n  - 1\n  - 2\n")
	require.NoError(t, err)

	require.Equal(t, []event.Kind{
		event.KindDocumentStart,
		event.KindMappingStart,
		event.KindScalar, // items
		event.KindSequenceStart,
		event.KindScalar, // 1
		event.KindScalar, // 2
		event.KindSequenceEnd,
		event.KindMappingEnd,
		event.KindDocumentEnd,
	}, kinds(structural(events)))
}

func TestStreamAnchorAndAlias(t *testing.T) {
	t.Parallel()

	events, err := record(t, "a: &ref 1\nb: *ref\n")
	require.NoError(t, err)

	got := structural(events)
	gotKinds := kinds(got)

	assert.Contains(t, gotKinds, event.KindAnchor)
	assert.Contains(t, gotKinds, event.KindAlias)

	for _, ev := range got {
		if ev.Kind == event.KindAnchor || ev.Kind == event.KindAlias {
			assert.Equal(t, "ref", ev.Value)
		}
	}
}

func TestStreamInvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := record(t, "a: [unclosed\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, event.ErrInvalidYAML)
}

func TestStreamEmitErrorStops(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("stop")
	seen := 0

	err := event.Stream([]byte("a: 1\n"), func(event.Event) error {
		seen++
		if seen == 2 {
			return wantErr
		}

		return nil
	})

	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 2, seen)
}

func TestKindStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		kind event.Kind
		want string
	}{
		"document start": {kind: event.KindDocumentStart, want: "document-start"},
		"mapping start":  {kind: event.KindMappingStart, want: "mapping-start"},
		"mapping end":    {kind: event.KindMappingEnd, want: "mapping-end"},
		"sequence start": {kind: event.KindSequenceStart, want: "sequence-start"},
		"scalar":         {kind: event.KindScalar, want: "scalar"},
		"alias":          {kind: event.KindAlias, want: "alias"},
		"location":       {kind: event.KindLocation, want: "location"},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.kind.String())
		})
	}
}
