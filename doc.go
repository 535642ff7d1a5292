// Package lookups provides fast secondary indices over in-memory collections.
//
// A lookup couples a backing collection (a slot-stable list or a native-key
// map) with one or more index strategies, so elements become retrievable by
// derived keys in sub-linear time without giving up the collection's own
// access path.
//
// # Quick Start
//
// Index a slice by a unique key:
//
//	cars := []Car{{0, "BMW"}, {5, "Audi"}, {2, "VW"}}
//	l, _ := lookups.NewUniqueList(func(c Car) uint32 { return c.ID }, cars)
//
//	for c := range l.Lookup().GetByKey(5) {
//	    fmt.Println(c.Name) // Audi
//	}
//
// Or with the fluent builder:
//
//	l := lookups.Unique(func(c Car) uint32 { return c.ID }).
//	    Items(cars...).
//	    MustBuild()
//
// # Index Strategies
//
// Three strategies cover the common key shapes:
//
//	// UNIQUE: at most one element per key; duplicates are rejected.
//	lookups.NewUniqueList(carID, cars)
//
//	// MULTI: any number of elements per key, retrieved in insertion order.
//	lookups.NewMultiList(func(p Person) string { return p.Name }, people)
//
//	// DENSE: small unsigned integer keys used as direct array offsets;
//	//        O(1) lookups plus MinKey/MaxKey over the occupied range.
//	lookups.NewDenseList(carID, cars, lookups.WithBound(10_000))
//
// # Mutation
//
// All mutations go through the wrapper, which keeps store and indices in
// sync. A mutation is validated against every index first and committed only
// when all of them admit it, so a rejected mutation leaves no partial state:
//
//	pos, err := l.Push(Car{5, "Porsche"}) // ErrDuplicateKey, nothing changed
//	l.Update(pos, func(c Car) Car { c.Name = "VW Golf"; return c })
//	l.Remove(pos)
//
// # Views
//
// A view is an independent snapshot scoped to chosen keys. It answers the
// same queries as the live facade and never observes later mutations:
//
//	v := l.CreateView(0, 2)
//	v.ContainsKey(5)  // false
//	v.MaxKey()        // 2, true
//
// # Key Features
//
//   - Unique, multi-valued, and dense index strategies behind one contract
//   - Validate-then-commit mutations, atomic per operation
//   - Lazy iter.Seq query results, restartable and allocation-light
//   - Independent snapshot views for sharing and concurrent reads
//   - Slot-stable list store and native-key map store
//   - Structured logging (log/slog) and pluggable metrics
package lookups
