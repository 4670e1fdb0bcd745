package books

import (
	"slices"
	"strconv"
	"sync"
	"time"
)

// Store is the authoritative in-memory collection of books.
type Store struct {
	mu       sync.RWMutex
	books    []*Book
	nextID   int
	now      func() time.Time
	observer Observer
}

// Option configures a Store.
type Option func(*Store)

// WithSeed loads the given books at construction time. The ID counter starts
// one past the highest seeded ID.
func WithSeed(seed []Book) Option {
	return func(s *Store) {
		for _, b := range seed {
			b = b.clone()
			s.books = append(s.books, &b)
			if b.ID >= s.nextID {
				s.nextID = b.ID + 1
			}
		}
	}
}

// WithClock overrides the clock used to determine the current year.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithObserver registers an Observer for mutations.
func WithObserver(o Observer) Option {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// NewStore creates a Store. Without WithSeed it starts empty with the ID counter at 1.
func NewStore(opts ...Option) *Store {
	s := &Store{
		nextID:   1,
		now:      time.Now,
		observer: NoopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultSeed returns the three books the service starts with.
func DefaultSeed() []Book {
	return []Book{
		{ID: 1, Title: "To Kill a Mockingbird", Author: "Harper Lee", Year: intPtr(1960), Genre: strPtr("Fiction")},
		{ID: 2, Title: "1984", Author: "George Orwell", Year: intPtr(1949), Genre: strPtr("Dystopian Fiction")},
		{ID: 3, Title: "Pride and Prejudice", Author: "Jane Austen", Year: intPtr(1813), Genre: strPtr("Romance")},
	}
}

// ParseID converts a path parameter to a book ID.
// ok is false when the value is not a base-10 integer.
func ParseID(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// List returns all books in insertion order.
func (s *Store) List() []Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Book, len(s.books))
	for i, b := range s.books {
		out[i] = b.clone()
	}
	return out
}

// Len returns the number of stored books.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}

// Get returns the book with the given ID.
func (s *Store) Get(id int) (Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Book{}, notFound(id)
	}
	return s.books[i].clone(), nil
}

// Create validates c and appends a new book.
// A rejected candidate does not consume an ID.
func (s *Store) Create(c Candidate) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if errs := Validate(c, s.now().Year()); len(errs) > 0 {
		return Book{}, s.fail(OpCreate, &ValidationError{Errors: errs})
	}

	b := &Book{ID: s.nextID}
	apply(b, c)
	s.nextID++
	s.books = append(s.books, b)

	s.observer.OnMutation(OpCreate, b.ID, len(s.books))
	return b.clone(), nil
}

// Replace overwrites every mutable field of the book with the given ID.
// Fields absent from c are cleared.
func (s *Store) Replace(id int, c Candidate) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Book{}, s.fail(OpReplace, notFound(id))
	}

	if errs := Validate(c, s.now().Year()); len(errs) > 0 {
		return Book{}, s.fail(OpReplace, &ValidationError{Errors: errs})
	}

	apply(s.books[i], c)
	s.observer.OnMutation(OpReplace, id, len(s.books))
	return s.books[i].clone(), nil
}

// Patch changes only the fields supplied in c. The merge of the current
// record and c is validated and then stored as a whole.
func (s *Store) Patch(id int, c Candidate) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Book{}, s.fail(OpPatch, notFound(id))
	}

	merged := merge(*s.books[i], c)
	if errs := Validate(merged, s.now().Year()); len(errs) > 0 {
		return Book{}, s.fail(OpPatch, &ValidationError{Errors: errs})
	}

	apply(s.books[i], merged)
	s.observer.OnMutation(OpPatch, id, len(s.books))
	return s.books[i].clone(), nil
}

// Delete removes the book with the given ID and returns it.
func (s *Store) Delete(id int) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Book{}, s.fail(OpDelete, notFound(id))
	}

	b := s.books[i]
	s.books = slices.Delete(s.books, i, i+1)

	s.observer.OnMutation(OpDelete, id, len(s.books))
	return b.clone(), nil
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.books, func(b *Book) bool { return b.ID == id })
}

func (s *Store) fail(op string, err error) error {
	s.observer.OnError(op, err)
	return err
}

func notFound(id int) *NotFoundError {
	return &NotFoundError{ID: strconv.Itoa(id)}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
