// Package books provides the in-memory book catalogue served by bookstore.
//
// The package owns the only domain record, Book, and everything needed to
// mutate it safely:
//
//   - Store: ordered collection of books plus a monotonically increasing ID counter
//   - Candidate: presence-tracked request fields used by create, replace and patch
//   - Validate: pure field validation that collects every violation
//
// Thread Safety:
//
// All Store operations are serialized with a sync.RWMutex. Validation for
// create, replace and patch runs inside the same critical section as the
// mutation, so what was validated is exactly what gets stored.
//
// Usage:
//
//	store := books.NewStore(books.WithSeed(books.DefaultSeed()))
//
//	book, err := store.Create(candidate)
//	book, err := store.Get(1)
//	all := store.List()
//	book, err := store.Replace(1, candidate)
//	book, err := store.Patch(1, candidate)
//	book, err := store.Delete(1)
//
// IDs are never reused, even after a delete.
package books
