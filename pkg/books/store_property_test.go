//go:build property

package books

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestStoreProperties checks id assignment and normalization invariants.
func TestStoreProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1960)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	nonBlank := gen.AlphaString().SuchThat(func(s string) bool { return strings.TrimSpace(s) != "" })
	padding := gen.OneConstOf("", " ", "  ", "\t", "\n ")

	properties.Property("created ids are strictly increasing", prop.ForAll(
		func(titles []string) bool {
			store := NewStore(WithSeed(DefaultSeed()))
			last := 3
			for _, title := range titles {
				book, err := store.Create(Candidate{Title: Set(title), Author: Set("A")})
				if err != nil {
					return false
				}
				if book.ID <= last {
					return false
				}
				last = book.ID
			}
			return true
		},
		gen.SliceOf(nonBlank),
	))

	properties.Property("stored title and author are trimmed", prop.ForAll(
		func(title, author, pre, post string) bool {
			store := NewStore()
			book, err := store.Create(Candidate{
				Title:  Set(pre + title + post),
				Author: Set(post + author + pre),
			})
			if err != nil {
				return false
			}
			got, err := store.Get(book.ID)
			if err != nil {
				return false
			}
			return got.Title == strings.TrimSpace(title) && got.Author == strings.TrimSpace(author)
		},
		nonBlank, nonBlank, padding, padding,
	))

	properties.Property("rejected creates never consume an id", prop.ForAll(
		func(failures int) bool {
			store := NewStore(WithSeed(DefaultSeed()))
			for i := 0; i < failures; i++ {
				if _, err := store.Create(Candidate{Author: Set("A")}); err == nil {
					return false
				}
			}
			book, err := store.Create(Candidate{Title: Set("T"), Author: Set("A")})
			return err == nil && book.ID == 4
		},
		gen.IntRange(0, 20),
	))

	properties.Property("patching genre leaves other fields alone", prop.ForAll(
		func(id int, genre string) bool {
			store := NewStore(WithSeed(DefaultSeed()))
			before, err := store.Get(id)
			if err != nil {
				return false
			}
			after, err := store.Patch(id, Candidate{Genre: Set(genre)})
			if err != nil {
				return false
			}
			return after.Title == before.Title &&
				after.Author == before.Author &&
				*after.Year == *before.Year &&
				after.Genre != nil && *after.Genre == strings.TrimSpace(genre)
		},
		gen.IntRange(1, 3), nonBlank,
	))

	properties.TestingRun(t)
}
