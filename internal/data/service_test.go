package data

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore returns err from every operation.
type failingStore struct {
	err error
}

func (s failingStore) FindAll(context.Context) iter.Seq2[*Book, error] {
	return func(yield func(*Book, error) bool) { yield(nil, s.err) }
}

func (s failingStore) FindByID(context.Context, string) (*Book, error) { return nil, s.err }
func (s failingStore) Save(context.Context, *Book) (*Book, error)       { return nil, s.err }
func (s failingStore) Delete(context.Context, *Book) error              { return s.err }

func collect(t *testing.T, seq iter.Seq2[*Book, error]) []*Book {
	t.Helper()
	var out []*Book
	for book, err := range seq {
		require.NoError(t, err)
		out = append(out, book)
	}
	return out
}

func TestListBooksWhenThereIsNoBook(t *testing.T) {
	svc := NewBookService(NewMemoryBookModel())
	assert.Empty(t, collect(t, svc.ListBooks(context.Background())))
}

func TestListBooksWhenThereIsOneBook(t *testing.T) {
	ctx := context.Background()
	svc := NewBookService(NewMemoryBookModel())
	saved, err := svc.Save(ctx, defaultBook())
	require.NoError(t, err)

	books := collect(t, svc.ListBooks(ctx))
	require.Len(t, books, 1)
	assert.Equal(t, *ToResponse(saved), *ToResponse(books[0]))
}

func TestListBooksRunsAFreshQueryEachCall(t *testing.T) {
	ctx := context.Background()
	svc := NewBookService(NewMemoryBookModel())
	seq := svc.ListBooks(ctx)
	assert.Empty(t, collect(t, seq))

	_, err := svc.Save(ctx, defaultBook())
	require.NoError(t, err)
	assert.Len(t, collect(t, svc.ListBooks(ctx)), 1)
}

func TestGetValidatedUnknownID(t *testing.T) {
	svc := NewBookService(NewMemoryBookModel())

	book, err := svc.GetValidated(context.Background(), "123")
	assert.Nil(t, book)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "123", notFound.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.Equal(t, "Book with id 123 not found.", err.Error())
}

func TestGetValidatedKnownID(t *testing.T) {
	ctx := context.Background()
	svc := NewBookService(NewMemoryBookModel())
	saved, err := svc.Save(ctx, defaultBook())
	require.NoError(t, err)

	got, err := svc.GetValidated(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestSaveAssignsIDOnFirstSaveOnly(t *testing.T) {
	ctx := context.Background()
	svc := NewBookService(NewMemoryBookModel())

	saved, err := svc.Save(ctx, defaultBook())
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	saved.Title = "newTitle"
	again, err := svc.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID)

	got, err := svc.GetValidated(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "newTitle", got.Title)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewBookService(NewMemoryBookModel())
	saved, err := svc.Save(ctx, defaultBook())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, saved))

	_, err = svc.GetValidated(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestStoreFailuresPropagateUnchanged(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")
	svc := NewBookService(failingStore{err: boom})

	_, err := svc.GetValidated(ctx, "123")
	assert.Same(t, boom, err)

	var notFound *NotFoundError
	assert.False(t, errors.As(err, &notFound))

	_, err = svc.Save(ctx, defaultBook())
	assert.Same(t, boom, err)

	assert.Same(t, boom, svc.Delete(ctx, defaultBook()))

	for _, err := range svc.ListBooks(ctx) {
		assert.Same(t, boom, err)
	}
}
