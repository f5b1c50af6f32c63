package data

import (
	jsoniter "github.com/json-iterator/go"
)

// docCodec encodes book documents for the Postgres collection and the cache.
var docCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// bookDocument is the stored form of a Book. The id is the collection key and
// is kept outside the document.
type bookDocument struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
}

func encodeBook(b *Book) ([]byte, error) {
	return docCodec.Marshal(bookDocument{Title: b.Title, Author: b.Author, Year: b.Year})
}

func decodeBook(id string, raw []byte) (*Book, error) {
	var doc bookDocument
	if err := docCodec.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &Book{ID: id, Title: doc.Title, Author: doc.Author, Year: doc.Year}, nil
}
