// cmd/api/handlers.go
// This file contains all HTTP request handlers for the books resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger and the book service.
package main

import (
	"fmt"
	"net/http"

	"github.com/aoideee/bookapi/internal/data"
	"github.com/aoideee/bookapi/internal/validator"
)

// createBookHandler handles POST /api/books.
// It validates the body, stores a new book, and responds 201 Created with the
// stored book including its store-assigned id.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.CreateBookRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Reject the request before it reaches the service.
	v := validator.New()
	if data.ValidateCreateBook(v, &input); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	book, err := app.books.Save(r.Context(), data.ToEntity(&input))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/api/books/%s", book.ID))

	err = app.writeJSON(w, http.StatusCreated, data.ToResponse(book), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showBookHandler handles GET /api/books/:id.
// Responds 404 if no book with that id exists.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.books.GetValidated(r.Context(), id)
	if err != nil {
		app.lookupFailedResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, data.ToResponse(book), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listBooksHandler handles GET /api/books.
// Every stored book is streamed as one JSON object per line, in whatever
// order the store yields them.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	records := func(yield func(any, error) bool) {
		for book, err := range app.books.ListBooks(r.Context()) {
			if !yield(data.ToResponse(book), err) {
				return
			}
		}
	}

	app.writeNDJSON(w, r, records)
}

// updateBookHandler handles PATCH /api/books/:id.
// Only the fields present in the body are applied. The response is written
// once the store has acknowledged the write.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input data.UpdateBookRequest
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.books.GetValidated(r.Context(), id)
	if err != nil {
		app.lookupFailedResponse(w, r, err)
		return
	}

	data.ApplyUpdate(&input, book)

	book, err = app.books.Save(r.Context(), book)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, data.ToResponse(book), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /api/books/:id.
// It responds with the book as it was before deletion, once the store has
// acknowledged the delete. Responds 404 if no book with that id exists.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.books.GetValidated(r.Context(), id)
	if err != nil {
		app.lookupFailedResponse(w, r, err)
		return
	}

	err = app.books.Delete(r.Context(), book)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, data.ToResponse(book), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
