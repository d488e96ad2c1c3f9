// Package event turns parsed YAML into a linear stream of typed parse
// events: document boundaries, mapping and sequence start/end markers,
// scalars, and source-position annotations.
//
// The stream is push-driven: [Stream] parses the input with
// [github.com/goccy/go-yaml/parser] and calls an [EmitFunc] once per event,
// in source order, one full sequence per document. Consumers see the same
// shape regardless of how the underlying library represents the document.
//
// Constructs whose semantics this tool does not model (sequences, aliases,
// anchors, tags) are still emitted, as their own [Kind] variants, so that
// consumers can reject them with a precise diagnostic instead of a generic
// parse failure.
package event
