// Package api implements the bookstore HTTP API.
//
// Endpoints:
//
//	GET    /books       list every book
//	GET    /books/{id}  fetch one book
//	POST   /books       create a book
//	PUT    /books/{id}  replace every mutable field
//	PATCH  /books/{id}  change only the supplied fields
//	DELETE /books/{id}  remove a book
//
// Every response is a JSON envelope (see httputil.Envelope). Requests that
// match no endpoint get 404 "Route not found"; panics inside a handler are
// logged and answered with 500 "Something went wrong!".
//
// When a metrics address is configured, Prometheus metrics are served from
// a separate listener so the book API exposes only the routes above.
package api
