package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aoideee/bookapi/internal/data"
)

func newTestApplication(t *testing.T, store data.BookStore) *applicationDependencies {
	t.Helper()
	cfg := defaultConfig()
	cfg.Store = "memory"
	cfg.Limiter.Enabled = false
	return &applicationDependencies{
		config:  cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		books:   data.NewBookService(store),
		metrics: newMetrics(),
	}
}

// do sends a request through the full route table and returns the recorded response.
func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		js, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(js)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBook(t *testing.T, rr *httptest.ResponseRecorder) data.BookResponse {
	t.Helper()
	var resp data.BookResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env["error"]
}

// seed stores book directly and returns the stored copy.
func seed(t *testing.T, store data.BookStore, book data.Book) *data.Book {
	t.Helper()
	saved, err := store.Save(context.Background(), &book)
	require.NoError(t, err)
	return saved
}

// brokenStore wraps a working store and fails the operations named in failing.
type brokenStore struct {
	data.BookStore
	err     error
	failing map[string]bool
	// yieldBeforeFailing makes FindAll yield this many books before its error.
	yieldBeforeFailing int
}

func (s *brokenStore) FindAll(ctx context.Context) iter.Seq2[*data.Book, error] {
	if !s.failing["FindAll"] {
		return s.BookStore.FindAll(ctx)
	}
	return func(yield func(*data.Book, error) bool) {
		n := 0
		for book, err := range s.BookStore.FindAll(ctx) {
			if n == s.yieldBeforeFailing {
				break
			}
			if !yield(book, err) {
				return
			}
			n++
		}
		yield(nil, s.err)
	}
}

func (s *brokenStore) FindByID(ctx context.Context, id string) (*data.Book, error) {
	if s.failing["FindByID"] {
		return nil, s.err
	}
	return s.BookStore.FindByID(ctx, id)
}

func (s *brokenStore) Save(ctx context.Context, book *data.Book) (*data.Book, error) {
	if s.failing["Save"] {
		return nil, s.err
	}
	return s.BookStore.Save(ctx, book)
}

func (s *brokenStore) Delete(ctx context.Context, book *data.Book) error {
	if s.failing["Delete"] {
		return s.err
	}
	return s.BookStore.Delete(ctx, book)
}
