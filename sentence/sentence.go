package sentence

import (
	"fmt"
	"iter"
	"sort"

	"github.com/revelaction/curiam/label"
	"github.com/revelaction/curiam/span"
)

// Annotation is a span described by its first and last token index, both
// inclusive.
type Annotation = span.Annotation

// TokenAnnotation is one annotation reference attached to one token.
type TokenAnnotation struct {
	Category string `json:"category"`

	// Id distinguishes overlapping or neighboring annotations in the
	// sentence. Single-token annotations get -1. Do not count annotations
	// with it.
	Id int `json:"id"`

	// Annotator identifies who provided the annotation. Empty means
	// unspecified.
	Annotator string `json:"annotator"`
}

// Ref returns the label reference of the annotation.
func (ta TokenAnnotation) Ref() label.Ref {
	return label.FromWire(ta.Category, ta.Id)
}

// Token represents a word of the sentence and its annotations.
type Token struct {
	Text string `json:"text"`

	// The index of the word in the sentence, starting at 0.
	Id int `json:"id"`

	Annotations []TokenAnnotation `json:"annotations,omitempty"`
}

// GetCategories returns the distinct categories of the token annotations.
func (t Token) GetCategories() map[string]struct{} {
	categories := make(map[string]struct{}, len(t.Annotations))
	for _, ta := range t.Annotations {
		categories[ta.Category] = struct{}{}
	}
	return categories
}

// HasCategory reports whether any annotation of the token has category.
func (t Token) HasCategory(category string) bool {
	for _, ta := range t.Annotations {
		if ta.Category == category {
			return true
		}
	}
	return false
}

type Sentence struct {
	// The index of the sentence in its Document, starting at 0. Nil until
	// assigned.
	Id *int `json:"id,omitempty"`

	Tokens []Token `json:"tokens"`
}

func (s *Sentence) Append(tok Token) {
	s.Tokens = append(s.Tokens, tok)
}

// All iterates over the tokens in reading order.
func (s Sentence) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for _, tok := range s.Tokens {
			if !yield(tok) {
				return
			}
		}
	}
}

func (s Sentence) Len() int {
	return len(s.Tokens)
}

func (s Sentence) String() string {
	texts := make([]string, len(s.Tokens))
	for i, tok := range s.Tokens {
		texts[i] = tok.Text
	}
	return fmt.Sprintf("%q", texts)
}

// GetAnnotations rebuilds the spans of annotator from the token
// annotations. Annotations of other annotators are ignored.
func (s Sentence) GetAnnotations(annotator string) []Annotation {
	a := span.NewAggregator()
	for _, tok := range s.Tokens {
		for _, ta := range tok.Annotations {
			if ta.Annotator != annotator {
				continue
			}
			a.AddRef(tok.Id, ta.Ref())
		}
	}
	return a.Result().Spans
}

// Annotators returns the sorted distinct annotators of the sentence.
func (s Sentence) Annotators() []string {
	seen := map[string]bool{}
	var annotators []string
	for _, tok := range s.Tokens {
		for _, ta := range tok.Annotations {
			if !seen[ta.Annotator] {
				seen[ta.Annotator] = true
				annotators = append(annotators, ta.Annotator)
			}
		}
	}
	sort.Strings(annotators)
	return annotators
}

// Document is an ordered list of sentences plus its storage metadata.
type Document struct {
	Id int `json:"-"`

	Title  string   `json:"title,omitempty"`
	Labels []string `json:"labels,omitempty"`

	// Checksum is the BLAKE3 digest of the export the document was built
	// from.
	Checksum string `json:"checksum,omitempty"`

	Sentences []Sentence `json:"sentences"`
}

func (d *Document) Append(s Sentence) {
	d.Sentences = append(d.Sentences, s)
}

// All iterates over the sentences in document order.
func (d Document) All() iter.Seq[Sentence] {
	return func(yield func(Sentence) bool) {
		for _, s := range d.Sentences {
			if !yield(s) {
				return
			}
		}
	}
}

func (d Document) Len() int {
	return len(d.Sentences)
}

// Categories returns the sorted distinct categories used by annotator.
func (d Document) Categories(annotator string) []string {
	seen := map[string]bool{}
	var categories []string
	for _, s := range d.Sentences {
		for _, tok := range s.Tokens {
			for _, ta := range tok.Annotations {
				if ta.Annotator != annotator || seen[ta.Category] {
					continue
				}
				seen[ta.Category] = true
				categories = append(categories, ta.Category)
			}
		}
	}
	sort.Strings(categories)
	return categories
}

// Library is a collection of Document
type Library []Document
