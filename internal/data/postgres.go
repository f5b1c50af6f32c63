package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	// DefaultTable is the collection the API keeps its book documents in.
	DefaultTable = "books"

	dialectPostgres = "postgres"
	colID           = "id"
	colDoc          = "doc"
)

// BookModel stores books as JSONB documents keyed by a text id in a single
// Postgres table.
type BookModel struct {
	DB    *sqlx.DB // Shared connection pool
	Table string   // Collection table name
}

// bookRow is one row of the collection table.
type bookRow struct {
	ID  string `db:"id"`
	Doc []byte `db:"doc"`
}

func (m BookModel) table() string {
	if m.Table == "" {
		return DefaultTable
	}
	return m.Table
}

// EnsureCollection creates the collection table if it does not exist yet.
func (m BookModel) EnsureCollection(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id  text PRIMARY KEY,
			doc jsonb NOT NULL
		)`, pq.QuoteIdentifier(m.table()))

	_, err := m.DB.ExecContext(ctx, query)
	return err
}

// FindAll streams every document in the collection straight from the cursor.
func (m BookModel) FindAll(ctx context.Context) iter.Seq2[*Book, error] {
	return func(yield func(*Book, error) bool) {
		query, args, err := goqu.Dialect(dialectPostgres).
			From(m.table()).
			Select(colID, colDoc).
			Prepared(true).
			ToSQL()
		if err != nil {
			yield(nil, err)
			return
		}

		rows, err := m.DB.QueryxContext(ctx, query, args...)
		if err != nil {
			yield(nil, err)
			return
		}
		// Always close the cursor so the connection returns to the pool.
		defer rows.Close()

		for rows.Next() {
			var row bookRow
			if err := rows.StructScan(&row); err != nil {
				yield(nil, err)
				return
			}
			book, err := decodeBook(row.ID, row.Doc)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(book, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// FindByID retrieves a single document by id.
// Returns ErrRecordNotFound if no document with the given id exists.
func (m BookModel) FindByID(ctx context.Context, id string) (*Book, error) {
	if id == "" {
		return nil, ErrRecordNotFound
	}

	query, args, err := goqu.Dialect(dialectPostgres).
		From(m.table()).
		Select(colID, colDoc).
		Where(goqu.C(colID).Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var row bookRow
	err = m.DB.GetContext(ctx, &row, query, args...)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return decodeBook(row.ID, row.Doc)
}

// Save upserts book. A book without an id gets a fresh UUID first; the
// assigned id is written back into book.
func (m BookModel) Save(ctx context.Context, book *Book) (*Book, error) {
	if book == nil {
		return nil, errNilBook
	}

	saved := *book
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}

	doc, err := encodeBook(&saved)
	if err != nil {
		return nil, err
	}

	query, args, err := goqu.Dialect(dialectPostgres).
		Insert(m.table()).
		Rows(goqu.Record{colID: saved.ID, colDoc: string(doc)}).
		OnConflict(goqu.DoUpdate(colID, goqu.Record{colDoc: goqu.L("EXCLUDED." + colDoc)})).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, err
	}

	if _, err := m.DB.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}

	book.ID = saved.ID
	return &saved, nil
}

// Delete removes the document with book's id.
func (m BookModel) Delete(ctx context.Context, book *Book) error {
	if book == nil || book.ID == "" {
		return nil
	}

	query, args, err := goqu.Dialect(dialectPostgres).
		Delete(m.table()).
		Where(goqu.C(colID).Eq(book.ID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return err
	}

	_, err = m.DB.ExecContext(ctx, query, args...)
	return err
}
