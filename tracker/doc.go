// Package tracker reconstructs dotted key paths from a YAML parse-event
// stream.
//
// A [Tracker] consumes [event.Event] values one at a time and maintains two
// pieces of state: the current position in the key/value protocol (a
// [State]) and the stack of mapping keys enclosing the current node. Each
// time a key's scalar value arrives, the configured [LeafFunc] is invoked
// synchronously with the full key path, the value, and its source position.
//
// Only mapping-rooted documents are modeled. Any event that cannot legally
// occur in the current state -- a sequence, an alias, an unmatched mapping
// end -- produces a [*StateError] naming the event, the input, and the
// position, and abandons the document.
//
// One subtlety is deliberate: a scalar value pops its own key as soon as it
// arrives, but a nested-mapping value keeps the key pushed until that
// mapping's end event. This lets a mapping end generically close whichever
// key opened the mapping, scalar-in-progress or not.
package tracker
