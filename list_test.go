package lookups

import (
	"fmt"
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/lima1909/lookups/index"
	"github.com/lima1909/lookups/index/multi"
	"github.com/lima1909/lookups/index/unique"
)

type car struct {
	ID   uint32
	Name string
}

type person struct {
	Name string
	City string
}

func carID(c car) uint32 { return c.ID }

func carName(c car) string { return c.Name }

func personCity(p person) string { return p.City }

func carNames(cars iter.Seq[car]) []string {
	var out []string
	for c := range cars {
		out = append(out, c.Name)
	}
	return out
}

func personNames(people iter.Seq[person]) []string {
	var out []string
	for p := range people {
		out = append(out, p.Name)
	}
	return out
}

func TestList(t *testing.T) {
	t.Run("UniqueInsertAndGet", func(t *testing.T) {
		l, err := NewUniqueList(carID, []car{{0, "BMW"}, {5, "Audi"}, {2, "VW"}})
		require.NoError(t, err)

		assert.Equal(t, 3, l.Len())
		assert.True(t, l.Lookup().ContainsKey(5))
		assert.False(t, l.Lookup().ContainsKey(99))
		assert.Equal(t, []string{"Audi"}, carNames(l.Lookup().GetByKey(5)))
		assert.Empty(t, carNames(l.Lookup().GetByKey(99)))
	})

	t.Run("DuplicateKeyRejected", func(t *testing.T) {
		l, err := NewUniqueList(carID, []car{{0, "BMW"}, {5, "Audi"}})
		require.NoError(t, err)

		_, err = l.Push(car{5, "Porsche"})
		require.ErrorIs(t, err, ErrDuplicateKey)

		var dup *index.DuplicateKeyError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, uint32(5), dup.Key)

		// Nothing was stored or indexed.
		assert.Equal(t, 2, l.Len())
		assert.Equal(t, []string{"Audi"}, carNames(l.Lookup().GetByKey(5)))
	})

	t.Run("RemoveReusesSlot", func(t *testing.T) {
		l, err := NewUniqueList(carID, []car{{0, "BMW"}, {5, "Audi"}, {2, "VW"}})
		require.NoError(t, err)

		pos := l.Lookup().PositionsByKey(5)[0]

		removed, err := l.Remove(pos)
		require.NoError(t, err)
		assert.Equal(t, "Audi", removed.Name)
		assert.False(t, l.Lookup().ContainsKey(5))
		assert.Equal(t, 2, l.Len())

		_, err = l.Remove(pos)
		require.ErrorIs(t, err, ErrNotFound)

		// The vacated slot is recycled and the key is free again.
		got, err := l.Push(car{5, "Porsche"})
		require.NoError(t, err)
		assert.Equal(t, pos, got)
		assert.Equal(t, []string{"Porsche"}, carNames(l.Lookup().GetByKey(5)))
	})

	t.Run("Update", func(t *testing.T) {
		l, err := NewUniqueList(carID, []car{{0, "BMW"}, {5, "Audi"}})
		require.NoError(t, err)

		pos := l.Lookup().PositionsByKey(5)[0]

		updated, err := l.Update(pos, func(c car) car {
			c.ID = 7
			return c
		})
		require.NoError(t, err)
		assert.Equal(t, uint32(7), updated.ID)
		assert.False(t, l.Lookup().ContainsKey(5))
		assert.Equal(t, []string{"Audi"}, carNames(l.Lookup().GetByKey(7)))

		// Rekeying onto an occupied key is rejected as a whole.
		_, err = l.Update(pos, func(c car) car {
			c.ID = 0
			return c
		})
		require.ErrorIs(t, err, ErrDuplicateKey)

		got, ok := l.Get(pos)
		require.True(t, ok)
		assert.Equal(t, car{7, "Audi"}, got)

		// Updating without a key change only touches the element.
		updated, err = l.Update(pos, func(c car) car {
			c.Name = "Audi A4"
			return c
		})
		require.NoError(t, err)
		assert.Equal(t, "Audi A4", updated.Name)
		assert.Equal(t, []string{"Audi A4"}, carNames(l.Lookup().GetByKey(7)))

		_, err = l.Update(99, func(c car) car { return c })
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("MultiInsertionOrder", func(t *testing.T) {
		l, err := NewMultiList(personCity, []person{
			{"Anna", "Berlin"},
			{"Paul", "Madrid"},
			{"Jasmin", "Berlin"},
			{"Peter", "Berlin"},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"Anna", "Jasmin", "Peter"}, personNames(l.Lookup().GetByKey("Berlin")))

		// Removing one keeps the relative order of the rest.
		pos := l.Lookup().PositionsByKey("Berlin")[1]
		_, err = l.Remove(pos)
		require.NoError(t, err)
		assert.Equal(t, []string{"Anna", "Peter"}, personNames(l.Lookup().GetByKey("Berlin")))

		// Dropping the last element of a key drops the key.
		for _, p := range l.Lookup().PositionsByKey("Madrid") {
			_, err = l.Remove(p)
			require.NoError(t, err)
		}
		assert.False(t, l.Lookup().ContainsKey("Madrid"))
	})

	t.Run("DenseMinMax", func(t *testing.T) {
		l, err := NewDenseList(carID, []car{{0, "BMW"}, {5, "Audi"}, {2, "VW"}}, WithUniqueKeys())
		require.NoError(t, err)

		minKey, ok := l.Lookup().MinKey()
		require.True(t, ok)
		assert.Equal(t, uint32(0), minKey)

		maxKey, ok := l.Lookup().MaxKey()
		require.True(t, ok)
		assert.Equal(t, uint32(5), maxKey)

		// Removing the current minimum moves it to the next occupied key.
		_, err = l.Remove(l.Lookup().PositionsByKey(0)[0])
		require.NoError(t, err)

		minKey, ok = l.Lookup().MinKey()
		require.True(t, ok)
		assert.Equal(t, uint32(2), minKey)

		for _, key := range []uint32{2, 5} {
			_, err = l.Remove(l.Lookup().PositionsByKey(key)[0])
			require.NoError(t, err)
		}

		_, ok = l.Lookup().MinKey()
		assert.False(t, ok)
		_, ok = l.Lookup().MaxKey()
		assert.False(t, ok)
	})

	t.Run("DenseKeyOutOfRange", func(t *testing.T) {
		l, err := NewDenseList(carID, nil, WithBound(10))
		require.NoError(t, err)

		_, err = l.Push(car{11, "BMW"})
		require.ErrorIs(t, err, ErrKeyOutOfRange)

		var oor *index.KeyOutOfRangeError
		require.ErrorAs(t, err, &oor)
		assert.Equal(t, uint64(11), oor.Key)
		assert.Equal(t, uint64(10), oor.Bound)

		assert.Equal(t, 0, l.Len())

		_, err = l.Push(car{10, "BMW"})
		require.NoError(t, err)
	})

	t.Run("MinMaxUndefinedForHashStrategies", func(t *testing.T) {
		l, err := NewUniqueList(carID, []car{{0, "BMW"}, {5, "Audi"}})
		require.NoError(t, err)

		_, ok := l.Lookup().MinKey()
		assert.False(t, ok)
		_, ok = l.Lookup().MaxKey()
		assert.False(t, ok)
	})

	t.Run("BulkVsIndividual", func(t *testing.T) {
		first := []car{{0, "BMW"}, {1, "Audi"}}
		second := []car{{2, "VW"}, {3, "Opel"}}

		incremental, err := NewUniqueList(carID, first)
		require.NoError(t, err)
		for _, c := range second {
			_, err = incremental.Push(c)
			require.NoError(t, err)
		}

		bulk, err := NewUniqueList(carID, slices.Concat(first, second))
		require.NoError(t, err)

		assert.Equal(t, bulk.Len(), incremental.Len())
		assert.ElementsMatch(t,
			slices.Collect(bulk.Lookup().Keys()),
			slices.Collect(incremental.Lookup().Keys()),
		)
		for key := range bulk.Lookup().Keys() {
			assert.Equal(t,
				carNames(bulk.Lookup().GetByKey(key)),
				carNames(incremental.Lookup().GetByKey(key)),
			)
		}
	})

	t.Run("OnConflict", func(t *testing.T) {
		items := []car{{1, "BMW"}, {1, "Audi"}, {2, "VW"}}

		_, err := NewUniqueList(carID, items)
		require.ErrorIs(t, err, ErrDuplicateKey)

		keepFirst, err := NewUniqueList(carID, items, WithOnConflict(OnConflictKeepFirst))
		require.NoError(t, err)
		assert.Equal(t, []string{"BMW"}, carNames(keepFirst.Lookup().GetByKey(1)))

		keepLast, err := NewUniqueList(carID, items, WithOnConflict(OnConflictKeepLast))
		require.NoError(t, err)
		assert.Equal(t, []string{"Audi"}, carNames(keepLast.Lookup().GetByKey(1)))

		// The policy decides what the key resolves to; the store keeps all
		// items either way.
		assert.Equal(t, 3, keepLast.Len())
		assert.Equal(t, 2, keepLast.Lookup().Len())
	})

	t.Run("AttachSecondaryIndex", func(t *testing.T) {
		l, err := NewUniqueList(carID, []car{{0, "BMW"}, {5, "Audi"}})
		require.NoError(t, err)

		byName := multi.New[string, int]()
		require.NoError(t, l.Attach(Bind(singleKey(carName), byName)))

		// The replay covered the existing contents.
		lookup := NewLookup(byName, l.Store())
		assert.Equal(t, []string{"BMW"}, carNames(lookup.GetByKey("BMW")))

		// And the sink observes subsequent mutations.
		_, err = l.Push(car{7, "VW"})
		require.NoError(t, err)
		assert.Equal(t, []string{"VW"}, carNames(lookup.GetByKey("VW")))
	})

	t.Run("ValidationSpansAllStrategies", func(t *testing.T) {
		l, err := NewUniqueList(carID, []car{{0, "BMW"}, {5, "Audi"}})
		require.NoError(t, err)

		byName := unique.New[string, int]()
		require.NoError(t, l.Attach(Bind(singleKey(carName), byName)))

		// Admissible for the primary index, rejected by the attached one; the
		// mutation must not leave partial state anywhere.
		_, err = l.Push(car{9, "BMW"})
		require.ErrorIs(t, err, ErrDuplicateKey)

		assert.Equal(t, 2, l.Len())
		assert.False(t, l.Lookup().ContainsKey(9))
		assert.Equal(t, 2, byName.Len())
	})

	t.Run("FailClosedAfterRemove", func(t *testing.T) {
		l, err := NewUniqueList(carID, []car{{0, "BMW"}, {5, "Audi"}})
		require.NoError(t, err)

		audis := l.Lookup().GetByKey(5)

		_, err = l.Remove(l.Lookup().PositionsByKey(5)[0])
		require.NoError(t, err)

		// The sequence was created before the remove; consuming it now skips
		// the vacated slot instead of yielding a stale element.
		assert.Empty(t, carNames(audis))
	})

	t.Run("ConcurrentReads", func(t *testing.T) {
		l, err := NewDenseList(carID, []car{{0, "BMW"}, {5, "Audi"}, {2, "VW"}}, WithUniqueKeys())
		require.NoError(t, err)

		var g errgroup.Group
		for i := 0; i < 32; i++ {
			g.Go(func() error {
				if got := carNames(l.Lookup().GetByKey(5)); !slices.Equal(got, []string{"Audi"}) {
					return fmt.Errorf("unexpected lookup result: %v", got)
				}

				v := l.CreateView(0, 2)
				if v.ContainsKey(5) {
					return fmt.Errorf("view contains key outside its scope")
				}
				if got := carNames(v.GetByKey(0)); !slices.Equal(got, []string{"BMW"}) {
					return fmt.Errorf("unexpected view result: %v", got)
				}

				return nil
			})
		}

		require.NoError(t, g.Wait())
	})

	t.Run("Metrics", func(t *testing.T) {
		mc := &BasicMetricsCollector{}

		l, err := NewUniqueList(carID, []car{{0, "BMW"}, {5, "Audi"}}, WithMetricsCollector(mc))
		require.NoError(t, err)

		_, err = l.Push(car{2, "VW"})
		require.NoError(t, err)
		_, err = l.Push(car{2, "Opel"})
		require.ErrorIs(t, err, ErrDuplicateKey)

		l.Lookup().ContainsKey(0)
		carNames(l.Lookup().GetByKey(0))
		l.CreateView(0, 5)

		stats := mc.GetStats()
		assert.Equal(t, int64(1), stats.BulkLoadCount)
		assert.Equal(t, int64(2), stats.BulkLoadItems)
		assert.Equal(t, int64(2), stats.InsertCount)
		assert.Equal(t, int64(1), stats.InsertErrors)
		assert.Equal(t, int64(2), stats.LookupCount)
		assert.Equal(t, int64(1), stats.CreateViewCount)
	})
}

func BenchmarkGetByKey(b *testing.B) {
	items := make([]car, 10_000)
	for i := range items {
		items[i] = car{ID: uint32(i), Name: "car"}
	}

	l, err := NewDenseList(carID, items, WithUniqueKeys())
	if err != nil {
		b.Fatalf("build failed: %v", err)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for range l.Lookup().GetByKey(uint32(i % len(items))) {
		}
	}
}
