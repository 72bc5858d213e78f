package storage

import (
	"errors"

	sent "github.com/revelaction/curiam/sentence"
)

// ErrExists is returned by Write when a document built from the same
// export is already stored.
var ErrExists = errors.New("document already stored")

// ErrNotFound is returned when a document id is unknown.
var ErrNotFound = errors.New("document not found")

// Cursor for paginated category-based queries
type Cursor int64

// SentenceResult is a sentence found by FindSentences.
type SentenceResult struct {
	DocId    int
	DocTitle string
	Sentence sent.Sentence
}

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels, Checksum) of documents.
	// Content (Sentences) is not loaded.
	List() ([]sent.Document, error)

	// Read returns a document by ID
	Read(id int) (sent.Document, error)

	// FindSentences returns the sentences having a token annotation of
	// annotator for ALL given categories, resuming after the given
	// cursor. It calls onResult for each result and returns the new
	// cursor. The cursor is unchanged when nothing is left.
	FindSentences(categories []string, annotator string, after Cursor, limit int, onResult func(SentenceResult) error) (Cursor, error)

	// Categories returns all unique categories found across all documents,
	// sorted alphabetically. If pattern is not empty, only categories
	// containing it are returned.
	Categories(pattern string) ([]string, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document and its category index. It returns the id
	// of the stored document.
	Write(doc sent.Document) (int, error)
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}
