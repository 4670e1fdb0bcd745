package books

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Book is a single catalogue record.
type Book struct {
	// ID is assigned by the Store and never changes.
	ID int `json:"id"`
	// Title is stored trimmed.
	Title string `json:"title"`
	// Author is stored trimmed.
	Author string `json:"author"`
	// Year is nil when unknown.
	Year *int `json:"year"`
	// Genre is nil when unknown.
	Genre *string `json:"genre"`
}

// clone returns a copy of b that shares no memory with it.
func (b Book) clone() Book {
	if b.Year != nil {
		y := *b.Year
		b.Year = &y
	}
	if b.Genre != nil {
		g := *b.Genre
		b.Genre = &g
	}
	return b
}

// Field is an optional request value that remembers whether it was supplied.
//
// The zero value is an absent field. A field that was supplied as JSON null
// has Present set and Null set. A field whose JSON value could not be decoded
// into T has Present set and Invalid set.
type Field[T any] struct {
	Present bool
	Null    bool
	Invalid bool
	Value   T
}

// Set returns a present field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{Present: true, Value: v}
}

// Null returns a present field holding JSON null.
func Null[T any]() Field[T] {
	return Field[T]{Present: true, Null: true}
}

// HasValue reports whether the field was supplied with a usable value.
func (f Field[T]) HasValue() bool {
	return f.Present && !f.Null && !f.Invalid
}

// Candidate is the set of book fields carried by a create or update request.
type Candidate struct {
	Title  Field[string]
	Author Field[string]
	Year   Field[int]
	Genre  Field[string]
}

// DecodeCandidate parses a JSON object into a Candidate.
// An empty body decodes to an empty Candidate. Unknown keys are ignored.
func DecodeCandidate(data []byte) (Candidate, error) {
	var c Candidate
	if len(bytes.TrimSpace(data)) == 0 {
		return c, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return c, fmt.Errorf("decode book fields: %w", err)
	}
	if raw == nil {
		// Top-level null.
		return c, nil
	}

	if v, ok := raw["title"]; ok {
		c.Title = decodeString(v)
	}
	if v, ok := raw["author"]; ok {
		c.Author = decodeString(v)
	}
	if v, ok := raw["year"]; ok {
		c.Year = decodeYear(v)
	}
	if v, ok := raw["genre"]; ok {
		c.Genre = decodeGenre(v)
	}
	return c, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeString(raw json.RawMessage) Field[string] {
	if isNull(raw) {
		return Null[string]()
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return Field[string]{Present: true, Invalid: true}
	}
	return Set(s)
}

// decodeGenre never fails. Any value that is not a JSON string (false, 0,
// 42, objects) is treated as null, like a blank string is on write.
func decodeGenre(raw json.RawMessage) Field[string] {
	f := decodeString(raw)
	if f.Invalid {
		return Null[string]()
	}
	return f
}

// decodeYear accepts any JSON number with an integral value, so 1960.0 is 1960.
func decodeYear(raw json.RawMessage) Field[int] {
	if isNull(raw) {
		return Null[int]()
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return Field[int]{Present: true, Invalid: true}
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return Field[int]{Present: true, Invalid: true}
	}
	return Set(int(f))
}

// merge overlays the supplied fields of c on top of b.
func merge(b Book, c Candidate) Candidate {
	m := Candidate{
		Title:  Set(b.Title),
		Author: Set(b.Author),
	}
	if b.Year != nil {
		m.Year = Set(*b.Year)
	}
	if b.Genre != nil {
		m.Genre = Set(*b.Genre)
	}

	if c.Title.Present {
		m.Title = c.Title
	}
	if c.Author.Present {
		m.Author = c.Author
	}
	if c.Year.Present {
		m.Year = c.Year
	}
	if c.Genre.Present {
		m.Genre = c.Genre
	}
	return m
}

// apply writes the normalized values of a validated candidate onto b.
func apply(b *Book, c Candidate) {
	b.Title = strings.TrimSpace(c.Title.Value)
	b.Author = strings.TrimSpace(c.Author.Value)

	b.Year = nil
	if c.Year.HasValue() {
		y := c.Year.Value
		b.Year = &y
	}

	b.Genre = nil
	if c.Genre.HasValue() {
		if g := strings.TrimSpace(c.Genre.Value); g != "" {
			b.Genre = &g
		}
	}
}
