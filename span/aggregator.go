package span

import "github.com/revelaction/curiam/label"

// Aggregator accumulates spans token by token.
//
// Standalone references are emitted as soon as they are seen. Grouped
// references open an accumulator on first sight and extend its end on
// every later sight; accumulators are flushed in first-insertion order by
// Result.
type Aggregator struct {
	standalone []Annotation

	// grouped and positions form an insertion-ordered map from id to span.
	grouped   []Annotation
	positions map[int]int

	truncation *Truncation
}

func NewAggregator() *Aggregator {
	return &Aggregator{positions: map[int]int{}}
}

// Add feeds the next token. It returns false once the aggregation has
// stopped, either at this token or at an earlier one.
func (a *Aggregator) Add(tok Token) bool {
	if a.truncation != nil {
		return false
	}

	if tok.Placeholder {
		a.truncation = &Truncation{Index: tok.Index, Text: tok.Text, Label: tok.Label}
		return false
	}

	for _, ref := range tok.Refs {
		a.AddRef(tok.Index, ref)
	}

	return true
}

// AddRef feeds a single reference found at token index.
func (a *Aggregator) AddRef(index int, ref label.Ref) {
	id, ok := ref.Grouped()
	if !ok {
		a.standalone = append(a.standalone, Annotation{Category: ref.Category, Start: index, End: index})
		return
	}

	pos, seen := a.positions[id]
	if !seen {
		a.positions[id] = len(a.grouped)
		a.grouped = append(a.grouped, Annotation{Category: ref.Category, Start: index, End: index})
		return
	}

	a.grouped[pos].End = index
}

// Result returns the spans aggregated so far. The Aggregator can still be
// fed afterwards.
func (a *Aggregator) Result() Result {
	spans := make([]Annotation, 0, len(a.standalone)+len(a.grouped))
	spans = append(spans, a.standalone...)
	spans = append(spans, a.grouped...)

	res := Result{Spans: spans}
	if a.truncation != nil {
		t := *a.truncation
		res.Truncation = &t
	}
	return res
}
