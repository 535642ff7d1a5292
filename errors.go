package lookups

import (
	"errors"
	"fmt"

	"github.com/lima1909/lookups/engine"
	"github.com/lima1909/lookups/index"
)

var (
	// ErrDuplicateKey is returned when a mutation would map a second element
	// to a key held by a unique-keyed strategy. It is the index-layer
	// sentinel re-exported at the public surface; errors.As against
	// *index.DuplicateKeyError yields the offending key.
	ErrDuplicateKey = index.ErrDuplicateKey

	// ErrKeyOutOfRange is returned when a direct-position strategy receives a
	// key beyond its configured bound; see *index.KeyOutOfRangeError.
	ErrKeyOutOfRange = index.ErrKeyOutOfRange

	// ErrNotFound is returned when a native key or position resolves to no
	// live element. Absent keys in queries are not errors; they yield empty
	// results.
	ErrNotFound = errors.New("not found")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Not found unification.
	if errors.Is(err, engine.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	// Index errors already unwrap to the re-exported sentinels.
	return err
}
