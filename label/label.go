// Package label parses the per-token labels of an Inception export.
//
// A compound label is a list of sub-labels separated by "|". A bare
// sub-label ("Metalinguistic Cue") is a single-token annotation; an indexed
// sub-label ("Direct Quote[58]") belongs to the annotation with that id,
// which may span several tokens.
package label

import (
	"strconv"
	"strings"
)

const (
	// NoAnnotation is the label of a token without annotations.
	NoAnnotation = "_"

	// Placeholder marks an unresolved annotation in the export.
	Placeholder = "*"

	// Standalone is the wire id of a single-token annotation.
	Standalone = -1

	separator = "|"
)

// Kind tells standalone references from grouped ones.
type Kind int

const (
	KindStandalone Kind = iota
	KindGrouped
)

// Ref is one (category, annotation id) reference of a label.
type Ref struct {
	Category string
	Kind     Kind

	// id is only meaningful for grouped references.
	id int
}

// NewStandalone returns a reference to a complete single-token annotation.
func NewStandalone(category string) Ref {
	return Ref{Category: category, Kind: KindStandalone}
}

// NewGrouped returns a reference to the annotation with the given id.
func NewGrouped(category string, id int) Ref {
	return Ref{Category: category, Kind: KindGrouped, id: id}
}

// Grouped returns the annotation id and true for grouped references.
func (r Ref) Grouped() (int, bool) {
	if r.Kind != KindGrouped {
		return 0, false
	}
	return r.id, true
}

// WireId returns the integer used in serialized forms, -1 for standalone
// references.
func (r Ref) WireId() int {
	if r.Kind != KindGrouped {
		return Standalone
	}
	return r.id
}

// Shift returns the reference with its id lowered by offset. Standalone
// references are returned unchanged.
func (r Ref) Shift(offset int) Ref {
	if r.Kind != KindGrouped {
		return r
	}
	return NewGrouped(r.Category, r.id-offset)
}

// FromWire builds a reference from a category and a serialized id.
func FromWire(category string, id int) Ref {
	if id == Standalone {
		return NewStandalone(category)
	}
	return NewGrouped(category, id)
}

func (r Ref) String() string {
	return r.Category + ":" + strconv.Itoa(r.WireId())
}

// Parse splits a compound label into its references, keeping their order.
func Parse(label string) ([]Ref, error) {
	if label == "" {
		return nil, &ParseError{Label: label, Reason: "empty label"}
	}

	sublabels := strings.Split(label, separator)
	refs := make([]Ref, 0, len(sublabels))
	for _, sublabel := range sublabels {
		ref, err := parseSublabel(sublabel)
		if err != nil {
			err.Label = label
			return nil, err
		}
		refs = append(refs, ref)
	}

	return refs, nil
}

func parseSublabel(sublabel string) (Ref, *ParseError) {
	if sublabel == "" {
		return Ref{}, &ParseError{Sublabel: sublabel, Reason: "empty sub-label"}
	}

	open := strings.Index(sublabel, "[")
	if open < 0 {
		return NewStandalone(sublabel), nil
	}

	if !strings.HasSuffix(sublabel, "]") {
		return Ref{}, &ParseError{Sublabel: sublabel, Reason: "missing closing bracket"}
	}

	if open == 0 {
		return Ref{}, &ParseError{Sublabel: sublabel, Reason: "missing category"}
	}

	content := sublabel[open+1 : len(sublabel)-1]
	if content == "" {
		return Ref{}, &ParseError{Sublabel: sublabel, Reason: "missing id"}
	}

	id, err := strconv.Atoi(content)
	if err != nil {
		return Ref{}, &ParseError{Sublabel: sublabel, Reason: "id is not an integer", Err: err}
	}

	if id < 0 {
		return Ref{}, &ParseError{Sublabel: sublabel, Reason: "negative id"}
	}

	// Atoi accepts a leading sign
	if content[0] < '0' || content[0] > '9' {
		return Ref{}, &ParseError{Sublabel: sublabel, Reason: "id is not an integer"}
	}

	return NewGrouped(sublabel[:open], id), nil
}

// Split parses label into two parallel sequences of categories and ids.
// Standalone references get the id -1.
func Split(label string) ([]string, []int, error) {
	refs, err := Parse(label)
	if err != nil {
		return nil, nil, err
	}

	categories := make([]string, len(refs))
	ids := make([]int, len(refs))
	for i, ref := range refs {
		categories[i] = ref.Category
		ids[i] = ref.WireId()
	}

	return categories, ids, nil
}

// HasPlaceholder reports whether the label carries the placeholder marker.
func HasPlaceholder(label string) bool {
	return strings.Contains(label, Placeholder)
}
