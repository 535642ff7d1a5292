// Package engine provides the store adapter layer beneath the lookup
// collections: slot-stable and native-key element stores, and the event
// protocol that keeps registered index strategies consistent with them.
package engine

// Store is the read side of a backing collection, used by lookup facades to
// dereference positions into elements at query time. P is the position type:
// a slab slot for list-backed collections, the native key for map-backed ones.
//
// Implementations can provide different position disciplines as long as a
// position stays valid for the lifetime of its element.
type Store[P comparable, T any] interface {
	// Get retrieves the element at the given position.
	// Returns the element and true if the slot is live, or zero value and
	// false if it is vacant.
	Get(pos P) (T, bool)

	// Len returns the number of elements currently stored.
	Len() int
}
