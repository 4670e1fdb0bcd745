// Package httputil provides shared HTTP utilities for consistent response handling.
//
// Every response body is an envelope: a JSON object whose "success" field
// says whether the request succeeded.
package httputil

import (
	"encoding/json"
	"net/http"
)

// Envelope is the wrapper applied to every response.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Count   *int     `json:"count,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteData writes a success envelope carrying data.
func WriteData(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// WriteList writes a success envelope for a collection, including its count.
func WriteList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Count: &n, Data: items})
}

// WriteError writes a failure envelope with a single message.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Success: false, Message: message})
}

// WriteErrors writes a failure envelope listing every individual error.
func WriteErrors(w http.ResponseWriter, status int, message string, errs []string) {
	WriteJSON(w, status, Envelope{Success: false, Message: message, Errors: errs})
}

// WriteNotFound writes a 404 Not Found failure envelope.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteInternalError writes a 500 Internal Server Error failure envelope.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}
