package data

import (
	"context"
	"errors"
	"iter"
)

// BookService is the single gate between the HTTP layer and the book store.
// Lookups by id go through GetValidated so a missing book always surfaces as
// a *NotFoundError.
type BookService struct {
	books BookStore
}

// NewBookService returns a service that persists through books.
func NewBookService(books BookStore) *BookService {
	return &BookService{books: books}
}

// ListBooks lazily yields every stored book. Order is whatever the store
// returns and each call runs a fresh query.
func (s *BookService) ListBooks(ctx context.Context) iter.Seq2[*Book, error] {
	return s.books.FindAll(ctx)
}

// GetValidated returns the book with the given id, or a *NotFoundError
// carrying that id.
func (s *BookService) GetValidated(ctx context.Context, id string) (*Book, error) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrRecordNotFound):
			return nil, &NotFoundError{ID: id}
		default:
			return nil, err
		}
	}
	return book, nil
}

// Save persists book and returns its post-save state, including the id the
// store assigned on first save.
func (s *BookService) Save(ctx context.Context, book *Book) (*Book, error) {
	return s.books.Save(ctx, book)
}

// Delete removes book from the store.
func (s *BookService) Delete(ctx context.Context, book *Book) error {
	return s.books.Delete(ctx, book)
}
