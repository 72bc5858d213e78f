package label

import (
	"strconv"
	"strings"
)

// Format encodes refs in the simplified "category:id|category:id" form.
// An empty list is encoded as NoAnnotation.
func Format(refs []Ref) string {
	if len(refs) == 0 {
		return NoAnnotation
	}

	parts := make([]string, len(refs))
	for i, ref := range refs {
		parts[i] = ref.String()
	}
	return strings.Join(parts, separator)
}

// ParseSimplified decodes a label written by Format. NoAnnotation yields
// no references.
func ParseSimplified(label string) ([]Ref, error) {
	if label == NoAnnotation {
		return nil, nil
	}
	if label == "" {
		return nil, &ParseError{Label: label, Reason: "empty label"}
	}

	sublabels := strings.Split(label, separator)
	refs := make([]Ref, 0, len(sublabels))
	for _, sublabel := range sublabels {
		// categories may contain colons, the id never does
		colon := strings.LastIndex(sublabel, ":")
		if colon <= 0 {
			return nil, &ParseError{Label: label, Sublabel: sublabel, Reason: "missing category or id"}
		}

		id, err := strconv.Atoi(sublabel[colon+1:])
		if err != nil {
			return nil, &ParseError{Label: label, Sublabel: sublabel, Reason: "id is not an integer", Err: err}
		}
		if id < Standalone {
			return nil, &ParseError{Label: label, Sublabel: sublabel, Reason: "negative id"}
		}

		refs = append(refs, FromWire(sublabel[:colon], id))
	}

	return refs, nil
}
