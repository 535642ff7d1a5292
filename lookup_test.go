package lookups

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lima1909/lookups/engine"
	"github.com/lima1909/lookups/index"
	"github.com/lima1909/lookups/index/multi"
	"github.com/lima1909/lookups/index/unique"
)

type doc struct {
	Title string
	Tags  []string
}

func docTitles(docs iter.Seq[doc]) []string {
	var out []string
	for d := range docs {
		out = append(out, d.Title)
	}
	return out
}

func TestLookup(t *testing.T) {
	t.Run("StandaloneWiring", func(t *testing.T) {
		store := engine.NewSlab[car]()
		idx := unique.New[uint32, int]()

		for _, c := range []car{{0, "BMW"}, {5, "Audi"}, {2, "VW"}} {
			pos := store.Insert(c)
			require.NoError(t, idx.Insert(c.ID, pos))
		}

		l := NewLookup(idx, store)
		assert.Equal(t, index.KindUniqueHash, l.Kind())
		assert.Equal(t, 3, l.Len())
		assert.Equal(t, []string{"Audi"}, carNames(l.GetByKey(5)))
	})

	t.Run("GetByManyKeys", func(t *testing.T) {
		l, err := NewUniqueList(carID, []car{{0, "BMW"}, {5, "Audi"}, {2, "VW"}})
		require.NoError(t, err)

		// Key-argument order, not insertion order.
		assert.Equal(t, []string{"BMW", "VW"}, carNames(l.Lookup().GetByManyKeys(0, 2)))

		// Duplicate keys yield duplicate elements; absent keys contribute
		// nothing.
		assert.Equal(t, []string{"BMW", "VW", "BMW"}, carNames(l.Lookup().GetByManyKeys(0, 99, 2, 0)))
		assert.Empty(t, carNames(l.Lookup().GetByManyKeys()))
	})

	t.Run("GetByManyKeysMulti", func(t *testing.T) {
		l, err := NewMultiList(personCity, []person{
			{"Anna", "Berlin"},
			{"Paul", "Madrid"},
			{"Jasmin", "Berlin"},
		})
		require.NoError(t, err)

		// Per-key insertion order, concatenated in key order.
		got := personNames(l.Lookup().GetByManyKeys("Madrid", "Berlin"))
		assert.Equal(t, []string{"Paul", "Anna", "Jasmin"}, got)
	})

	t.Run("MultiKeyElements", func(t *testing.T) {
		docs := []doc{
			{"Generics in Go", []string{"go", "generics"}},
			{"Roaring Bitmaps", []string{"db", "go"}},
		}

		l, err := NewList(multi.New[string, int](), func(d doc) []string { return d.Tags }, docs)
		require.NoError(t, err)

		assert.Equal(t, []string{"Generics in Go", "Roaring Bitmaps"}, docTitles(l.Lookup().GetByKey("go")))

		// One element reachable under several keys appears once per key.
		got := docTitles(l.Lookup().GetByManyKeys("db", "go"))
		assert.Equal(t, []string{"Roaring Bitmaps", "Generics in Go", "Roaring Bitmaps"}, got)

		// Removal unindexes every key of the element.
		_, err = l.Remove(0)
		require.NoError(t, err)
		assert.Equal(t, []string{"Roaring Bitmaps"}, docTitles(l.Lookup().GetByKey("go")))
		assert.False(t, l.Lookup().ContainsKey("generics"))
	})

	t.Run("MultiKeyUpdate", func(t *testing.T) {
		docs := []doc{
			{"Generics in Go", []string{"go", "generics"}},
			{"Roaring Bitmaps", []string{"db", "go"}},
		}

		l, err := NewList(multi.New[string, int](), func(d doc) []string { return d.Tags }, docs)
		require.NoError(t, err)

		// Only the key diff moves: "db" stays, "go" leaves, "bitmap" arrives.
		_, err = l.Update(1, func(d doc) doc {
			d.Tags = []string{"db", "bitmap"}
			return d
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"Generics in Go"}, docTitles(l.Lookup().GetByKey("go")))
		assert.Equal(t, []string{"Roaring Bitmaps"}, docTitles(l.Lookup().GetByKey("bitmap")))
		assert.Equal(t, []string{"Roaring Bitmaps"}, docTitles(l.Lookup().GetByKey("db")))
	})

	t.Run("ViewOfView", func(t *testing.T) {
		l, err := NewDenseList(carID, []car{{0, "BMW"}, {5, "Audi"}, {2, "VW"}}, WithUniqueKeys())
		require.NoError(t, err)

		v1 := l.CreateView(0, 2, 5)
		v2 := v1.CreateView(0, 2)

		assert.False(t, v2.ContainsKey(5))
		assert.Equal(t, []string{"BMW"}, carNames(v2.GetByKey(0)))

		maxKey, ok := v2.MaxKey()
		require.True(t, ok)
		assert.Equal(t, uint32(2), maxKey)
	})

	t.Run("EmptyView", func(t *testing.T) {
		l, err := NewUniqueList(carID, []car{{0, "BMW"}, {5, "Audi"}})
		require.NoError(t, err)

		v := l.CreateView()
		assert.Equal(t, 0, v.Len())
		assert.Empty(t, carNames(v.GetByKey(0)))

		// Absent keys contribute nothing, silently.
		v = l.CreateView(42, 43)
		assert.Equal(t, 0, v.Len())
	})

	t.Run("ViewKeysAreCopies", func(t *testing.T) {
		l, err := NewMultiList(personCity, []person{
			{"Anna", "Berlin"},
			{"Jasmin", "Berlin"},
		})
		require.NoError(t, err)

		v := l.CreateView("Berlin")

		// Growing the key in the source does not grow the view.
		_, err = l.Push(person{"Peter", "Berlin"})
		require.NoError(t, err)

		assert.Equal(t, []string{"Anna", "Jasmin"}, personNames(v.GetByKey("Berlin")))
		assert.Equal(t, []string{"Anna", "Jasmin", "Peter"}, personNames(l.Lookup().GetByKey("Berlin")))
	})
}
