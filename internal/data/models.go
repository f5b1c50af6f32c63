// internal/data/models.go
package data

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrRecordNotFound is returned by a BookStore when no document has the
// requested id.
var ErrRecordNotFound = errors.New("record not found")

var errNilBook = errors.New("data: nil book")

// NotFoundError is returned by BookService lookups. It carries the id the
// caller asked for and matches ErrRecordNotFound under errors.Is.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Book with id %s not found.", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrRecordNotFound }

// BookStore is the persistence gateway for the books collection.
// Store failures are returned to the caller as-is.
type BookStore interface {
	// FindAll lazily yields every stored book in store iteration order.
	// Each call issues a fresh query.
	FindAll(ctx context.Context) iter.Seq2[*Book, error]
	// FindByID returns ErrRecordNotFound when no book has the given id.
	FindByID(ctx context.Context, id string) (*Book, error)
	// Save inserts book when its ID is empty, assigning a new one, and
	// overwrites the document with the same ID otherwise.
	Save(ctx context.Context, book *Book) (*Book, error)
	// Delete removes the document with book's ID. Deleting a missing
	// document is not an error.
	Delete(ctx context.Context, book *Book) error
}

// Models is a top-level container that groups the stores the API uses.
type Models struct {
	Books BookStore
}

// NewModels constructs a Models value backed by the Postgres document
// collection table on db, creating the table if it does not exist.
func NewModels(ctx context.Context, db *sqlx.DB, table string) (Models, error) {
	books := BookModel{DB: db, Table: table}
	if err := books.EnsureCollection(ctx); err != nil {
		return Models{}, fmt.Errorf("ensure collection %q: %w", books.table(), err)
	}
	return Models{Books: books}, nil
}

// NewMemoryModels constructs a Models value backed by an in-process store.
func NewMemoryModels() Models {
	return Models{
		Books: NewMemoryBookModel(),
	}
}

// WithCache wraps the book store in a read-through Redis cache.
func (m Models) WithCache(client CacheClient, ttl time.Duration, opts ...CacheOption) Models {
	m.Books = NewCachedBookModel(m.Books, client, ttl, opts...)
	return m
}
