// Package data provides the book entity, its wire shapes, and the
// persistence gateways the API stores books through.
package data

import "github.com/aoideee/bookapi/internal/validator"

// Book represents a single book document stored in the books collection.
// ID is assigned by the store on first save and never changes afterwards.
type Book struct {
	ID     string // Opaque identifier assigned by the store
	Title  string
	Author string
	Year   int
}

// SetTitle, SetAuthor and SetYear exist so partial updates can be applied
// field by field.
func (b *Book) SetTitle(title string)   { b.Title = title }
func (b *Book) SetAuthor(author string) { b.Author = author }
func (b *Book) SetYear(year int)        { b.Year = year }

// CreateBookRequest holds the fields a client must supply when creating a book.
// Blank title/author and non-positive year are rejected by ValidateCreateBook.
type CreateBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
}

// UpdateBookRequest holds the fields a client may supply when partially
// updating a book. A field that is absent from the body (or sent as null)
// leaves the stored value unchanged.
type UpdateBookRequest struct {
	Title  Optional[string] `json:"title"`
	Author Optional[string] `json:"author"`
	Year   Optional[int]    `json:"year"`
}

// BookResponse is the wire shape returned for every book.
type BookResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
}

// ValidateCreateBook records every rule req breaks in v.
func ValidateCreateBook(v *validator.Validator, req *CreateBookRequest) {
	v.Check(validator.NotBlank(req.Title), "title", "must not be blank")
	v.Check(validator.NotBlank(req.Author), "author", "must not be blank")
	v.Check(validator.Positive(req.Year), "year", "must be a positive integer")
}
