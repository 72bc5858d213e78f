package search

import (
	"errors"

	"github.com/revelaction/curiam/render"
	sent "github.com/revelaction/curiam/sentence"
	"github.com/revelaction/curiam/storage"
)

// Search orchestrates the strategy selection for finding the sentences
// having spans of all given categories in a document repository.
type Search struct {
	categories []string
	annotator  string
	repo       storage.DocReader
	docID      *int
}

// New creates a new Search for the spans of annotator with the given
// categories.
func New(categories []string, annotator string, dr storage.DocReader) *Search {
	return &Search{
		categories: categories,
		annotator:  annotator,
		repo:       dr,
	}
}

// WithDocID restricts the search to a single document ID.
// If set, the single-document strategy (Read) will be favored over
// the indexed strategy (FindSentences).
func (s *Search) WithDocID(id int) *Search {
	s.docID = &id
	return s
}

// Sentences calls onMatch for each matching sentence, with only the spans
// of the searched categories, and returns the cursor to resume from.
func (s *Search) Sentences(cursor storage.Cursor, limit int, onMatch func(render.Item) error) (storage.Cursor, error) {
	if len(s.categories) == 0 {
		return cursor, errors.New("search must contain at least one category")
	}

	// Strategy 1: Single Document (No Index)
	if s.docID != nil {
		// the whole document is one page
		if cursor > 0 {
			return cursor, nil
		}

		doc, err := s.repo.Read(*s.docID)
		if err != nil {
			return cursor, err
		}

		for sentence := range doc.All() {
			cursor++
			it, ok := s.match(*s.docID, sentence)
			if !ok {
				continue
			}
			if err := onMatch(it); err != nil {
				return cursor, err
			}
		}
		return cursor, nil
	}

	// Strategy 2: category index
	return s.repo.FindSentences(s.categories, s.annotator, cursor, limit, func(res storage.SentenceResult) error {
		it, ok := s.match(res.DocId, res.Sentence)
		if !ok {
			return nil
		}
		return onMatch(it)
	})
}

// match returns the item of sentence if it has spans of all categories.
func (s *Search) match(docId int, sentence sent.Sentence) (render.Item, bool) {
	wanted := map[string]bool{}
	for _, c := range s.categories {
		wanted[c] = false
	}

	it := render.Item{DocId: docId, Sentence: sentence}
	for _, a := range sentence.GetAnnotations(s.annotator) {
		if _, ok := wanted[a.Category]; ok {
			wanted[a.Category] = true
			it.Spans = append(it.Spans, a)
		}
	}

	for _, found := range wanted {
		if !found {
			return render.Item{}, false
		}
	}
	return it, true
}
