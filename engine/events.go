package engine

import "iter"

// Sink consumes the mutation events of one registered index strategy. The
// collection wrapper validates a mutation against every sink first, then
// commits it natively, then dispatches the event to all sinks in registration
// order. A failed validation therefore leaves store and indices untouched;
// no rollback path exists.
//
// The On* methods run strictly after a successful validation of the same
// mutation; under the single-writer discipline they cannot fail.
type Sink[P comparable, T any] interface {
	// ValidateInsert reports whether item could be indexed without violating
	// the sink's constraints. It must not mutate state.
	ValidateInsert(item T) error

	// ValidateUpdate reports whether replacing old with item at the same
	// position is admissible. It must not mutate state.
	ValidateUpdate(old, item T) error

	// OnInsert registers item's keys for pos.
	OnInsert(pos P, item T)

	// OnRemove unregisters item's keys for pos.
	OnRemove(pos P, item T)

	// OnUpdate rekeys pos from old's keys to item's keys.
	OnUpdate(pos P, old, item T)

	// OnBulkLoad indexes an initial element sequence in one dispatch instead
	// of per-element events. How duplicate keys are treated is the sink's
	// construction-time policy.
	OnBulkLoad(items iter.Seq2[P, T]) error
}

// Dispatcher fans mutation events out to every registered sink. It implements
// Sink itself, so a wrapper treats one strategy and many strategies alike.
//
// For a single logical mutation all sinks receive the event before the
// mutating call returns; a reader observing afterwards sees a consistent
// index set across all strategies.
type Dispatcher[P comparable, T any] struct {
	sinks []Sink[P, T]
}

// Compile-time check to ensure Dispatcher satisfies the Sink interface.
var _ Sink[int, string] = (*Dispatcher[int, string])(nil)

// NewDispatcher creates a dispatcher over the given sinks.
func NewDispatcher[P comparable, T any](sinks ...Sink[P, T]) *Dispatcher[P, T] {
	return &Dispatcher[P, T]{
		sinks: sinks,
	}
}

// Register appends a sink; it receives all subsequent events.
func (d *Dispatcher[P, T]) Register(sink Sink[P, T]) {
	d.sinks = append(d.sinks, sink)
}

// ValidateInsert dry-runs item against all sinks, returning the first
// constraint violation.
func (d *Dispatcher[P, T]) ValidateInsert(item T) error {
	for _, s := range d.sinks {
		if err := s.ValidateInsert(item); err != nil {
			return err
		}
	}

	return nil
}

// ValidateUpdate dry-runs the replacement of old by item against all sinks.
func (d *Dispatcher[P, T]) ValidateUpdate(old, item T) error {
	for _, s := range d.sinks {
		if err := s.ValidateUpdate(old, item); err != nil {
			return err
		}
	}

	return nil
}

// OnInsert dispatches an insert event to all sinks in registration order.
func (d *Dispatcher[P, T]) OnInsert(pos P, item T) {
	for _, s := range d.sinks {
		s.OnInsert(pos, item)
	}
}

// OnRemove dispatches a remove event to all sinks in registration order.
func (d *Dispatcher[P, T]) OnRemove(pos P, item T) {
	for _, s := range d.sinks {
		s.OnRemove(pos, item)
	}
}

// OnUpdate dispatches an update event to all sinks in registration order.
func (d *Dispatcher[P, T]) OnUpdate(pos P, old, item T) {
	for _, s := range d.sinks {
		s.OnUpdate(pos, old, item)
	}
}

// OnBulkLoad dispatches the initial element sequence to all sinks. The
// sequence must be restartable, as every sink replays it once.
func (d *Dispatcher[P, T]) OnBulkLoad(items iter.Seq2[P, T]) error {
	for _, s := range d.sinks {
		if err := s.OnBulkLoad(items); err != nil {
			return err
		}
	}

	return nil
}
