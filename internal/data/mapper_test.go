package data

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/bookapi/internal/validator"
)

func defaultBook() *Book {
	return &Book{Title: "title", Author: "author", Year: 2023}
}

func TestToEntity(t *testing.T) {
	assert.Nil(t, ToEntity(nil))

	book := ToEntity(&CreateBookRequest{Title: "title", Author: "author", Year: 2023})
	require.NotNil(t, book)
	assert.Empty(t, book.ID)
	assert.Equal(t, "title", book.Title)
	assert.Equal(t, "author", book.Author)
	assert.Equal(t, 2023, book.Year)
}

func TestToResponse(t *testing.T) {
	assert.Nil(t, ToResponse(nil))

	book := defaultBook()
	book.ID = "123"
	resp := ToResponse(book)
	require.NotNil(t, resp)
	assert.Equal(t, BookResponse{ID: "123", Title: "title", Author: "author", Year: 2023}, *resp)
}

func TestApplyUpdateNilRequestLeavesBookUnchanged(t *testing.T) {
	book := defaultBook()
	ApplyUpdate(nil, book)
	assert.Equal(t, defaultBook(), book)
}

func TestApplyUpdate(t *testing.T) {
	tests := []struct {
		name string
		req  UpdateBookRequest
		want Book
	}{
		{
			name: "empty request",
			req:  UpdateBookRequest{},
			want: Book{Title: "title", Author: "author", Year: 2023},
		},
		{
			name: "title only",
			req:  UpdateBookRequest{Title: Some("newTitle")},
			want: Book{Title: "newTitle", Author: "author", Year: 2023},
		},
		{
			name: "author and year",
			req:  UpdateBookRequest{Author: Some("newAuthor"), Year: Some(2024)},
			want: Book{Title: "title", Author: "newAuthor", Year: 2024},
		},
		{
			name: "present empty string overwrites",
			req:  UpdateBookRequest{Title: Some("")},
			want: Book{Title: "", Author: "author", Year: 2023},
		},
		{
			name: "all fields",
			req:  UpdateBookRequest{Title: Some("newTitle"), Author: Some("newAuthor"), Year: Some(2024)},
			want: Book{Title: "newTitle", Author: "newAuthor", Year: 2024},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := defaultBook()
			ApplyUpdate(&tt.req, book)
			assert.Equal(t, tt.want, *book)
		})
	}
}

func TestApplyUpdateFromJSONTreatsNullAsAbsent(t *testing.T) {
	var req UpdateBookRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"newTitle","author":null,"year":null}`), &req))

	book := defaultBook()
	ApplyUpdate(&req, book)
	assert.Equal(t, Book{Title: "newTitle", Author: "author", Year: 2023}, *book)
}

func TestValidateCreateBook(t *testing.T) {
	tests := []struct {
		name string
		req  CreateBookRequest
		want map[string]string
	}{
		{
			name: "valid",
			req:  CreateBookRequest{Title: "title", Author: "author", Year: 2023},
			want: map[string]string{},
		},
		{
			name: "everything missing",
			req:  CreateBookRequest{},
			want: map[string]string{
				"title":  "must not be blank",
				"author": "must not be blank",
				"year":   "must be a positive integer",
			},
		},
		{
			name: "blank strings and negative year",
			req:  CreateBookRequest{Title: "  ", Author: "author", Year: -1},
			want: map[string]string{
				"title": "must not be blank",
				"year":  "must be a positive integer",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateCreateBook(v, &tt.req)
			assert.Equal(t, tt.want, v.Errors)
		})
	}
}
