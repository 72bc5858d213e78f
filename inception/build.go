package inception

import (
	"errors"
	"fmt"

	"github.com/revelaction/curiam/label"
	"github.com/revelaction/curiam/sentence"
	"github.com/revelaction/curiam/span"
)

// SentenceError reports a problem confined to one sentence of an export.
type SentenceError struct {
	// Sentence is the 0-based index of the sentence in the document.
	Sentence int
	Err      error
}

func (e *SentenceError) Error() string {
	return fmt.Sprintf("sentence %d: %v", e.Sentence, e.Err)
}

func (e *SentenceError) Unwrap() error {
	return e.Err
}

// Build structures an export into a Document whose token annotations are
// attributed to annotator.
//
// Problems are reported per sentence and never stop the build. A sentence
// whose labels cannot be parsed or normalized keeps its tokens without
// annotations. A sentence with a placeholder label keeps the annotations
// of the tokens before it and reports a span.TruncatedError.
func Build(exp *Export, annotator string) (sentence.Document, []error) {
	doc := sentence.Document{Checksum: exp.Checksum}
	var errs []error

	for i, raw := range exp.Sentences {
		id := i
		s := sentence.Sentence{Id: &id, Tokens: make([]sentence.Token, len(raw.Rows))}
		for j, r := range raw.Rows {
			s.Tokens[j] = sentence.Token{Text: r.Text, Id: j}
		}

		if err := annotate(&s, raw.Rows, annotator); err != nil {
			errs = append(errs, &SentenceError{Sentence: i, Err: err})
		}

		doc.Append(s)
	}

	return doc, errs
}

func annotate(s *sentence.Sentence, rows []Row, annotator string) error {
	simple, err := Simplify(rows)
	if err != nil {
		return err
	}

	res, err := Spans(simple)
	if err != nil {
		return err
	}

	stop := len(simple)
	if res.Truncated() {
		stop = res.Truncation.Index
	}

	for j := 0; j < stop; j++ {
		refs, err := label.ParseSimplified(simple[j].Label)
		if err != nil {
			return err
		}
		for _, ref := range refs {
			s.Tokens[j].Annotations = append(s.Tokens[j].Annotations, sentence.TokenAnnotation{
				Category:  ref.Category,
				Id:        ref.WireId(),
				Annotator: annotator,
			})
		}
	}

	return res.Err()
}

// IsTruncation reports whether err is a sentence truncation diagnostic
// rather than a failure.
func IsTruncation(err error) bool {
	return errors.Is(err, span.ErrTruncated)
}
