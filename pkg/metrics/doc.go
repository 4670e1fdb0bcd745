// Package metrics provides Prometheus metrics for the bookstore service.
//
// A Metrics value owns its own prometheus.Registry, so independent servers
// (and tests) never share collectors.
//
// # Metrics
//
//   - bookstore_http_requests_total: Counter of API requests (labels: method, route, status)
//   - bookstore_http_request_duration_seconds: Histogram of API latency (labels: method, route)
//   - bookstore_books: Gauge of books currently stored
//   - bookstore_book_mutations_total: Counter of store mutations (labels: op, result)
//
// Go runtime and process collectors are registered as well.
//
// # Label Conventions
//
//   - method: uppercase HTTP method
//   - route: the matched mux pattern (e.g. "/books/{id}") or "unmatched"
//   - status: numeric HTTP status code
//   - op: create, replace, patch, delete
//   - result: ok, not_found, invalid, error
package metrics
