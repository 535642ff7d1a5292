package lookups

import (
	"errors"
	"fmt"
	"iter"

	"github.com/lima1909/lookups/engine"
	"github.com/lima1909/lookups/index"
)

// binding adapts one index strategy and its key extractor to the engine's
// event protocol. The On* methods run after the same mutation passed
// validation, so a failing strategy call at that point means the single-writer
// contract was broken; the binding reports that as a panic rather than an
// ordinary error.
type binding[K comparable, P comparable, T any] struct {
	extract  index.KeysExtractor[T, K]
	idx      index.Index[K, P]
	conflict OnConflict
}

// Compile-time check to ensure binding satisfies the Sink interface.
var _ engine.Sink[int, string] = (*binding[string, int, string])(nil)

// Bind adapts an index strategy and its key extractor to the event protocol,
// usable with the Attach method of the collection wrappers. Bulk loads reject
// duplicate keys; use BindWithConflict for another policy.
func Bind[K comparable, P comparable, T any](extract index.KeysExtractor[T, K], idx index.Index[K, P]) engine.Sink[P, T] {
	return BindWithConflict(extract, idx, OnConflictReject)
}

// BindWithConflict is Bind with an explicit bulk-load duplicate policy.
func BindWithConflict[K comparable, P comparable, T any](extract index.KeysExtractor[T, K], idx index.Index[K, P], conflict OnConflict) engine.Sink[P, T] {
	return &binding[K, P, T]{
		extract:  extract,
		idx:      idx,
		conflict: conflict,
	}
}

// keys extracts the element's keys, deduplicated in first-seen order so one
// element never claims the same key twice.
func (b *binding[K, P, T]) keys(item T) []K {
	keys := b.extract(item)
	if len(keys) < 2 {
		return keys
	}

	seen := make(map[K]struct{}, len(keys))
	out := make([]K, 0, len(keys))

	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, key)
	}

	return out
}

// ValidateInsert dry-runs every key of item against the strategy.
func (b *binding[K, P, T]) ValidateInsert(item T) error {
	for _, key := range b.keys(item) {
		if err := b.idx.Validate(key); err != nil {
			return err
		}
	}

	return nil
}

// ValidateUpdate dry-runs the keys item claims beyond those old releases.
func (b *binding[K, P, T]) ValidateUpdate(old, item T) error {
	released := make(map[K]struct{})
	for _, key := range b.keys(old) {
		released[key] = struct{}{}
	}

	for _, key := range b.keys(item) {
		if _, ok := released[key]; ok {
			continue
		}

		if err := b.idx.Validate(key); err != nil {
			return err
		}
	}

	return nil
}

func (b *binding[K, P, T]) OnInsert(pos P, item T) {
	for _, key := range b.keys(item) {
		mustSync(b.idx.Insert(key, pos))
	}
}

func (b *binding[K, P, T]) OnRemove(pos P, item T) {
	for _, key := range b.keys(item) {
		// Replayed or never-validated removals are no-ops by contract.
		b.idx.Remove(key, pos)
	}
}

func (b *binding[K, P, T]) OnUpdate(pos P, old, item T) {
	oldKeys := b.keys(old)
	newKeys := b.keys(item)

	// Single-key strategies rekey in place.
	if len(oldKeys) == 1 && len(newKeys) == 1 {
		mustSync(b.idx.Update(oldKeys[0], newKeys[0], pos))
		return
	}

	oldSet := make(map[K]struct{}, len(oldKeys))
	for _, key := range oldKeys {
		oldSet[key] = struct{}{}
	}

	newSet := make(map[K]struct{}, len(newKeys))
	for _, key := range newKeys {
		newSet[key] = struct{}{}
	}

	for _, key := range oldKeys {
		if _, ok := newSet[key]; !ok {
			b.idx.Remove(key, pos)
		}
	}

	for _, key := range newKeys {
		if _, ok := oldSet[key]; !ok {
			mustSync(b.idx.Insert(key, pos))
		}
	}
}

// OnBulkLoad indexes the initial element sequence, applying the configured
// duplicate policy: reject fails the whole load, keep-first leaves the
// existing holder indexed, keep-last moves the key to the newest occurrence.
// Out-of-range keys fail the load regardless of policy.
func (b *binding[K, P, T]) OnBulkLoad(items iter.Seq2[P, T]) error {
	for pos, item := range items {
		for _, key := range b.keys(item) {
			err := b.idx.Insert(key, pos)
			if err == nil {
				continue
			}

			if b.conflict == OnConflictReject || !isDuplicateKey(err) {
				return err
			}

			if b.conflict == OnConflictKeepFirst {
				continue
			}

			// Keep-last: displace the current holder.
			var prev P
			found := false
			for p := range b.idx.Positions(key) {
				prev, found = p, true
				break
			}

			if found {
				b.idx.Remove(key, prev)
			}

			if err := b.idx.Insert(key, pos); err != nil {
				return err
			}
		}
	}

	return nil
}

func isDuplicateKey(err error) bool {
	var dup *index.DuplicateKeyError
	return errors.As(err, &dup)
}

func mustSync(err error) {
	if err != nil {
		panic(fmt.Sprintf("lookups: index out of sync with validated mutation: %v", err))
	}
}
