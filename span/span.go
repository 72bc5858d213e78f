// Package span rebuilds span annotations from a token-ordered stream of
// label references.
package span

import (
	"errors"
	"fmt"

	"github.com/revelaction/curiam/label"
)

// ErrTruncated is the cause of every TruncatedError.
var ErrTruncated = errors.New("aggregation truncated at placeholder label")

// Annotation is a labeled range over contiguous tokens. Start and End are
// inclusive token indexes.
type Annotation struct {
	Category string `json:"category"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// Token is one position of the stream.
type Token struct {
	Index int
	Text  string
	Refs  []label.Ref

	// Label is the raw label, kept for diagnostics.
	Label string

	// Placeholder stops the aggregation at this token.
	Placeholder bool
}

// Truncation describes the token that stopped an aggregation.
type Truncation struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Label string `json:"label"`
}

// TruncatedError is returned by Result.Err for truncated results.
type TruncatedError struct {
	Truncation
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("token %d %q has placeholder label %q", e.Index, e.Text, e.Label)
}

func (e *TruncatedError) Is(target error) bool {
	return target == ErrTruncated
}

// Result holds the spans of one sentence.
//
// Spans lists the standalone spans in token order followed by the grouped
// spans in order of first occurrence. It is not sorted by start index.
type Result struct {
	Spans []Annotation `json:"spans"`

	// Truncation is set when a placeholder label stopped the scan. Spans
	// then holds what was aggregated before that token.
	Truncation *Truncation `json:"truncation,omitempty"`
}

// Truncated reports whether the scan stopped early.
func (r Result) Truncated() bool {
	return r.Truncation != nil
}

// Err returns a TruncatedError for truncated results, nil otherwise.
func (r Result) Err() error {
	if r.Truncation == nil {
		return nil
	}
	return &TruncatedError{Truncation: *r.Truncation}
}

// Aggregate runs an Aggregator over tokens.
func Aggregate(tokens []Token) Result {
	a := NewAggregator()
	for _, tok := range tokens {
		if !a.Add(tok) {
			break
		}
	}
	return a.Result()
}
