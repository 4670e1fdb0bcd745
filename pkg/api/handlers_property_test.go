//go:build property

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/getmockd/bookstore/pkg/books"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func serve(h http.Handler, method, path string, body any) (int, envelope) {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		data, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, strings.NewReader(string(data)))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec.Code, env
}

// TestHandlerProperties checks request/response round trips through the full handler.
func TestHandlerProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1949)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	nonBlank := gen.AlphaString().SuchThat(func(s string) bool { return strings.TrimSpace(s) != "" })
	padding := gen.OneConstOf("", " ", "\t", "  \n")

	properties.Property("GET after POST returns the normalized record", prop.ForAll(
		func(title, author, pad string, year int) bool {
			h := newTestServer().Handler()

			code, env := serve(h, http.MethodPost, "/books", map[string]any{
				"title":  pad + title + pad,
				"author": pad + author,
				"year":   year,
			})
			if code != http.StatusCreated {
				return false
			}
			var created books.Book
			if json.Unmarshal(env.Data, &created) != nil {
				return false
			}

			code, env = serve(h, http.MethodGet, fmt.Sprintf("/books/%d", created.ID), nil)
			if code != http.StatusOK {
				return false
			}
			var got books.Book
			if json.Unmarshal(env.Data, &got) != nil {
				return false
			}
			return got.Title == strings.TrimSpace(title) &&
				got.Author == strings.TrimSpace(author) &&
				got.Year != nil && *got.Year == year
		},
		nonBlank, nonBlank, padding, gen.IntRange(0, 2025),
	))

	properties.Property("years outside 0..current year are rejected", prop.ForAll(
		func(year int) bool {
			h := newTestServer().Handler()
			code, env := serve(h, http.MethodPost, "/books", map[string]any{
				"title": "T", "author": "A", "year": year,
			})
			return code == http.StatusBadRequest &&
				len(env.Errors) == 1 && env.Errors[0] == books.MsgYearInvalid
		},
		gen.OneGenOf(gen.IntRange(-100000, -1), gen.IntRange(2026, 100000)),
	))

	properties.Property("deleted books are gone and their ids are not reused", prop.ForAll(
		func(id int) bool {
			h := newTestServer().Handler()
			path := fmt.Sprintf("/books/%d", id)

			if code, _ := serve(h, http.MethodDelete, path, nil); code != http.StatusOK {
				return false
			}
			if code, _ := serve(h, http.MethodGet, path, nil); code != http.StatusNotFound {
				return false
			}
			code, env := serve(h, http.MethodPost, "/books", map[string]any{"title": "T", "author": "A"})
			var b books.Book
			return code == http.StatusCreated && json.Unmarshal(env.Data, &b) == nil && b.ID == 4
		},
		gen.IntRange(1, 3),
	))

	properties.TestingRun(t)
}
