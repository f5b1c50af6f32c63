package data

// ToEntity builds a new, unsaved Book from a create request.
// Returns nil when req is nil.
func ToEntity(req *CreateBookRequest) *Book {
	if req == nil {
		return nil
	}
	return &Book{
		Title:  req.Title,
		Author: req.Author,
		Year:   req.Year,
	}
}

// ApplyUpdate copies every supplied field of req onto book and leaves the
// others untouched. A nil req is a no-op.
func ApplyUpdate(req *UpdateBookRequest, book *Book) {
	if req == nil || book == nil {
		return
	}
	if title, ok := req.Title.Get(); ok {
		book.SetTitle(title)
	}
	if author, ok := req.Author.Get(); ok {
		book.SetAuthor(author)
	}
	if year, ok := req.Year.Get(); ok {
		book.SetYear(year)
	}
}

// ToResponse converts a Book into its wire shape. Returns nil when book is nil.
func ToResponse(book *Book) *BookResponse {
	if book == nil {
		return nil
	}
	return &BookResponse{
		ID:     book.ID,
		Title:  book.Title,
		Author: book.Author,
		Year:   book.Year,
	}
}
