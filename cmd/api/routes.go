// cmd/api/routes.go
package main

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router wrapped
// in the middleware chain. Background work started by the middleware stops
// when ctx is done.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → logRequest → rateLimit → router → per-route metrics
//
// Current endpoints:
//
//	GET    /api/books       – stream all books as NDJSON
//	GET    /api/books/:id   – retrieve a single book by id
//	POST   /api/books       – create a new book
//	PATCH  /api/books/:id   – partially update an existing book
//	DELETE /api/books/:id   – delete a book by id
//	GET    /v3/api-docs     – OpenAPI description of the endpoints above
//	GET    /metrics         – Prometheus metrics
func (app *applicationDependencies) routes(ctx context.Context) http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = app.metrics.instrument("unmatched", http.HandlerFunc(app.notFoundResponse))
	router.MethodNotAllowed = app.metrics.instrument("unmatched", http.HandlerFunc(app.methodNotAllowedResponse))

	handle := func(method, path string, h http.HandlerFunc) {
		router.Handler(method, path, app.metrics.instrument(path, h))
	}

	// Book CRUD routes
	handle(http.MethodGet, "/api/books", app.listBooksHandler)
	handle(http.MethodGet, "/api/books/:id", app.showBookHandler)
	handle(http.MethodPost, "/api/books", app.createBookHandler)
	handle(http.MethodPatch, "/api/books/:id", app.updateBookHandler)
	handle(http.MethodDelete, "/api/books/:id", app.deleteBookHandler)

	handle(http.MethodGet, "/v3/api-docs", app.apiDocsHandler)
	router.Handler(http.MethodGet, "/metrics", app.metrics.handler())

	// recoverPanic is outermost so it catches panics from everything below it.
	return app.recoverPanic(app.logRequest(app.rateLimit(ctx, router)))
}
