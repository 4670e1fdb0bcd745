package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/getmockd/bookstore/pkg/books"
	"github.com/getmockd/bookstore/pkg/httputil"
)

// maxRequestBodySize bounds request bodies (1 MiB).
const maxRequestBodySize = 1 << 20

// Response messages.
const (
	msgCreated          = "Book created successfully"
	msgUpdated          = "Book updated successfully"
	msgDeleted          = "Book deleted successfully"
	msgBookNotFound     = "Book not found"
	msgValidationErrors = "Validation errors"
	msgRouteNotFound    = "Route not found"
	msgInternalError    = "Something went wrong!"
	msgInvalidJSON      = "Invalid JSON in request body"
	msgBodyTooLarge     = "Request body too large"
)

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	httputil.WriteList(w, s.store.List())
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := books.ParseID(r.PathValue("id"))
	if !ok {
		httputil.WriteNotFound(w, msgBookNotFound)
		return
	}

	book, err := s.store.Get(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, "", book)
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	c, ok := s.readCandidate(w, r)
	if !ok {
		return
	}

	book, err := s.store.Create(c)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, msgCreated, book)
}

func (s *Server) handleReplaceBook(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, s.store.Replace)
}

func (s *Server) handlePatchBook(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, s.store.Patch)
}

// update runs a replace or patch. An unknown id is reported before the body is read.
func (s *Server) update(w http.ResponseWriter, r *http.Request, op func(int, books.Candidate) (books.Book, error)) {
	id, ok := books.ParseID(r.PathValue("id"))
	if !ok {
		httputil.WriteNotFound(w, msgBookNotFound)
		return
	}
	if _, err := s.store.Get(id); err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	c, ok := s.readCandidate(w, r)
	if !ok {
		return
	}

	// The store re-checks existence under its write lock.
	book, err := op(id, c)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, msgUpdated, book)
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := books.ParseID(r.PathValue("id"))
	if !ok {
		httputil.WriteNotFound(w, msgBookNotFound)
		return
	}

	book, err := s.store.Delete(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, msgDeleted, book)
}

func (s *Server) handleRouteNotFound(w http.ResponseWriter, r *http.Request) {
	httputil.WriteNotFound(w, msgRouteNotFound)
}

// readCandidate reads and decodes the request body. On failure it writes
// the error response and returns false.
func (s *Server) readCandidate(w http.ResponseWriter, r *http.Request) (books.Candidate, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			httputil.WriteError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return books.Candidate{}, false
		}
		s.internalError(w, r, err)
		return books.Candidate{}, false
	}

	c, err := books.DecodeCandidate(data)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, msgInvalidJSON)
		return books.Candidate{}, false
	}
	return c, true
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var nf *books.NotFoundError
	var ve *books.ValidationError

	switch {
	case errors.As(err, &nf):
		httputil.WriteNotFound(w, msgBookNotFound)
	case errors.As(err, &ve):
		httputil.WriteErrors(w, http.StatusBadRequest, msgValidationErrors, ve.Errors)
	default:
		s.internalError(w, r, err)
	}
}

// internalError logs err and answers with a generic 500. The error detail
// never reaches the client.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"requestId", RequestIDFromContext(r.Context()),
		"error", err,
	)
	httputil.WriteInternalError(w, msgInternalError)
}
