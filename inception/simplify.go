package inception

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/revelaction/curiam/label"
	"github.com/revelaction/curiam/normalize"
	"github.com/revelaction/curiam/span"
)

// SimpleRow is a token row reduced to its sentence number, text and
// simplified label with sentence-local ids.
type SimpleRow struct {
	Sentence int
	Text     string
	Label    string
}

func (r SimpleRow) String() string {
	return fmt.Sprintf("%d\t%s\t%s", r.Sentence, r.Text, r.Label)
}

// ParseSimpleRow decodes a line written by SimpleRow.String.
func ParseSimpleRow(line string) (SimpleRow, error) {
	cells := strings.Split(line, "\t")
	if len(cells) != 3 {
		return SimpleRow{}, fmt.Errorf("simplified row has %d cells, want 3", len(cells))
	}

	n, err := strconv.Atoi(cells[0])
	if err != nil {
		return SimpleRow{}, fmt.Errorf("malformed sentence number %q: %w", cells[0], err)
	}

	return SimpleRow{Sentence: n, Text: cells[1], Label: cells[2]}, nil
}

// Simplify reindexes the labels of one sentence from document-level ids
// to sentence-level ids.
//
// "Direct Quote[82]|Direct Quote[83]", with 82 the first id of the
// sentence, becomes "Direct Quote:1|Direct Quote:2".
//
// Only the labels before the first placeholder are reindexed. That row and
// the ones after it keep their raw label, since their spans are never
// aggregated.
func Simplify(rows []Row) ([]SimpleRow, error) {
	cut := len(rows)
	labels := make([]string, 0, len(rows))
	for i, r := range rows {
		if label.HasPlaceholder(r.Label) {
			cut = i
			break
		}
		labels = append(labels, r.Label)
	}

	refs, err := normalize.Sentence(labels)
	if err != nil {
		return nil, err
	}

	simple := make([]SimpleRow, len(rows))
	for i, r := range rows {
		l := r.Label
		if i < cut {
			l = label.Format(refs[i])
		}
		simple[i] = SimpleRow{
			Sentence: r.Sentence,
			Text:     r.Text,
			Label:    l,
		}
	}

	return simple, nil
}

// Spans aggregates the spans of a simplified sentence. A label carrying
// the placeholder marker stops the aggregation at its token.
func Spans(rows []SimpleRow) (span.Result, error) {
	a := span.NewAggregator()
	for i, r := range rows {
		tok := span.Token{Index: i, Text: r.Text, Label: r.Label}

		if label.HasPlaceholder(r.Label) {
			tok.Placeholder = true
			a.Add(tok)
			break
		}

		refs, err := label.ParseSimplified(r.Label)
		if err != nil {
			return span.Result{}, fmt.Errorf("token %d: %w", i, err)
		}
		tok.Refs = refs
		a.Add(tok)
	}

	return a.Result(), nil
}
