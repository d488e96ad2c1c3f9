package event

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

// ErrInvalidYAML indicates input that the YAML parser rejected.
var ErrInvalidYAML = errors.New("invalid yaml")

// Kind identifies one variant of [Event].
type Kind int

const (
	// KindDocumentStart opens a document and resets consumer state.
	KindDocumentStart Kind = iota
	// KindDocumentEnd closes a document.
	KindDocumentEnd
	// KindMappingStart opens a block or flow mapping.
	KindMappingStart
	// KindMappingEnd closes the innermost open mapping.
	KindMappingEnd
	// KindSequenceStart opens a block or flow sequence.
	KindSequenceStart
	// KindSequenceEnd closes the innermost open sequence.
	KindSequenceEnd
	// KindScalar carries a single scalar token, key or value.
	KindScalar
	// KindAlias carries an alias reference (*name).
	KindAlias
	// KindAnchor carries an anchor definition (&name).
	KindAnchor
	// KindTag carries a node tag (!!name).
	KindTag
	// KindLocation updates the consumer's source position. It carries no
	// structural meaning and may arrive between any two structural events.
	KindLocation
)

// String returns the kind name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindDocumentStart:
		return "document-start"
	case KindDocumentEnd:
		return "document-end"
	case KindMappingStart:
		return "mapping-start"
	case KindMappingEnd:
		return "mapping-end"
	case KindSequenceStart:
		return "sequence-start"
	case KindSequenceEnd:
		return "sequence-end"
	case KindScalar:
		return "scalar"
	case KindAlias:
		return "alias"
	case KindAnchor:
		return "anchor"
	case KindTag:
		return "tag"
	case KindLocation:
		return "location"
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

// Position is a 1-based source location. The zero value means unknown.
type Position struct {
	Line   int
	Column int
}

// Event is a single parse notification.
type Event struct {
	Kind Kind
	// Value holds the scalar text, alias/anchor name, or tag name.
	Value string
	// Start and End delimit the originating token for [KindLocation]
	// events; zero otherwise.
	Start Position
	End   Position
}

// EmitFunc receives events in stream order. A non-nil error stops emission
// and is returned unchanged from [Stream].
type EmitFunc func(Event) error

// Stream parses data and emits one event sequence per YAML document:
// [KindDocumentStart], the document body, [KindDocumentEnd]. Scalars and
// structural openings are preceded by a [KindLocation] event carrying the
// originating token's position.
func Stream(data []byte, emit EmitFunc) error {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	for _, doc := range file.Docs {
		err := emit(Event{Kind: KindDocumentStart})
		if err != nil {
			return err
		}

		if doc.Body != nil {
			err = walk(doc.Body, emit)
			if err != nil {
				return err
			}
		}

		err = emit(Event{Kind: KindDocumentEnd})
		if err != nil {
			return err
		}
	}

	return nil
}

// walk emits the event sequence for one AST node.
func walk(node ast.Node, emit EmitFunc) error {
	switch n := node.(type) {
	case *ast.MappingNode:
		return walkMapping(n.Values, n.GetToken(), emit)

	case *ast.MappingValueNode:
		// A document whose body is a single key/value pair parses to a
		// bare MappingValueNode rather than a MappingNode.
		return walkMapping([]*ast.MappingValueNode{n}, n.GetToken(), emit)

	case *ast.MappingKeyNode:
		return walk(n.Value, emit)

	case *ast.SequenceNode:
		err := emitAt(KindSequenceStart, "", n.GetToken(), emit)
		if err != nil {
			return err
		}

		for _, v := range n.Values {
			err = walk(v, emit)
			if err != nil {
				return err
			}
		}

		return emit(Event{Kind: KindSequenceEnd})

	case *ast.AnchorNode:
		return emitAt(KindAnchor, tokenValue(n.Name.GetToken()), n.GetToken(), emit)

	case *ast.AliasNode:
		return emitAt(KindAlias, tokenValue(n.Value.GetToken()), n.GetToken(), emit)

	case *ast.TagNode:
		return emitAt(KindTag, tokenValue(n.Start), n.GetToken(), emit)

	case *ast.LiteralNode:
		return emitAt(KindScalar, n.Value.Value, n.GetToken(), emit)

	case *ast.StringNode, *ast.IntegerNode, *ast.FloatNode, *ast.BoolNode,
		*ast.NullNode, *ast.InfinityNode, *ast.NanNode, *ast.MergeKeyNode:
		tk := node.GetToken()

		return emitAt(KindScalar, tokenValue(tk), tk, emit)
	}

	return fmt.Errorf("%w: unsupported node %T", ErrInvalidYAML, node)
}

// walkMapping emits the mapping opening, each key scalar followed by its
// value's events, and the mapping end.
func walkMapping(values []*ast.MappingValueNode, tk *token.Token, emit EmitFunc) error {
	err := emitAt(KindMappingStart, "", tk, emit)
	if err != nil {
		return err
	}

	for _, value := range values {
		keyTk := value.Key.GetToken()

		err = emitAt(KindScalar, tokenValue(keyTk), keyTk, emit)
		if err != nil {
			return err
		}

		err = walk(value.Value, emit)
		if err != nil {
			return err
		}
	}

	return emit(Event{Kind: KindMappingEnd})
}

// emitAt emits a location event for tk, when it carries a position,
// followed by the structural event itself.
func emitAt(kind Kind, value string, tk *token.Token, emit EmitFunc) error {
	if tk != nil && tk.Position != nil {
		err := emit(Event{
			Kind:  KindLocation,
			Start: Position{Line: tk.Position.Line, Column: tk.Position.Column},
			End:   Position{Line: tk.Position.Line, Column: tk.Position.Column + len(tk.Value)},
		})
		if err != nil {
			return err
		}
	}

	return emit(Event{Kind: kind, Value: value})
}

func tokenValue(tk *token.Token) string {
	if tk == nil {
		return ""
	}

	return tk.Value
}
