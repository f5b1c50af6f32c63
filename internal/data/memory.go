package data

import (
	"context"
	"iter"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryBookModel is an in-process BookStore. Books are yielded in insertion
// order.
type MemoryBookModel struct {
	mu    sync.RWMutex
	order []string
	books map[string]Book
}

// NewMemoryBookModel returns an empty in-memory store.
func NewMemoryBookModel() *MemoryBookModel {
	return &MemoryBookModel{books: make(map[string]Book)}
}

// FindAll yields a snapshot of the store taken when iteration starts.
func (m *MemoryBookModel) FindAll(ctx context.Context) iter.Seq2[*Book, error] {
	return func(yield func(*Book, error) bool) {
		m.mu.RLock()
		snapshot := make([]Book, 0, len(m.order))
		for _, id := range m.order {
			snapshot = append(snapshot, m.books[id])
		}
		m.mu.RUnlock()

		for i := range snapshot {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if !yield(&snapshot[i], nil) {
				return
			}
		}
	}
}

func (m *MemoryBookModel) FindByID(_ context.Context, id string) (*Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	book, ok := m.books[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &book, nil
}

func (m *MemoryBookModel) Save(_ context.Context, book *Book) (*Book, error) {
	if book == nil {
		return nil, errNilBook
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if book.ID == "" {
		book.ID = uuid.NewString()
	}
	if _, exists := m.books[book.ID]; !exists {
		m.order = append(m.order, book.ID)
	}
	m.books[book.ID] = *book
	saved := *book
	return &saved, nil
}

func (m *MemoryBookModel) Delete(_ context.Context, book *Book) error {
	if book == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.books[book.ID]; !exists {
		return nil
	}
	delete(m.books, book.ID)
	m.order = slices.DeleteFunc(m.order, func(id string) bool { return id == book.ID })
	return nil
}

// Len reports how many books are stored.
func (m *MemoryBookModel) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.books)
}
