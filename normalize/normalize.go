// Package normalize remaps document-global annotation ids to sentence-local
// ids starting at 1.
package normalize

import (
	"errors"
	"fmt"

	"github.com/revelaction/curiam/label"
)

// ErrNonMonotonic is the cause of every NonMonotonicError.
var ErrNonMonotonic = errors.New("annotation ids are not monotonic")

// NonMonotonicError reports an id smaller than the first id of the
// sentence, which would map to a local id below 1.
type NonMonotonicError struct {
	// Token is the index of the offending token in the sentence.
	Token int
	Id    int
	Base  int
}

func (e *NonMonotonicError) Error() string {
	return fmt.Sprintf("token %d: annotation id %d is lower than the first id %d of the sentence", e.Token, e.Id, e.Base)
}

func (e *NonMonotonicError) Is(target error) bool {
	return target == ErrNonMonotonic
}

// Offset returns the value to subtract from every grouped id of the
// sentence so that the first grouped id, in token order, becomes 1.
// Labels equal to label.NoAnnotation are skipped. The boolean is false when
// the sentence has no grouped ids.
func Offset(labels []string) (int, bool, error) {
	parsed, err := parse(labels)
	if err != nil {
		return 0, false, err
	}

	offset, ok := offsetOf(parsed)
	return offset, ok, nil
}

// Sentence parses the labels of one sentence and returns their references
// with sentence-local ids. Tokens labeled label.NoAnnotation get a nil
// entry. Gaps between ids are kept; ids lower than the first one fail with
// a NonMonotonicError.
func Sentence(labels []string) ([][]label.Ref, error) {
	parsed, err := parse(labels)
	if err != nil {
		return nil, err
	}

	offset, ok := offsetOf(parsed)
	if !ok {
		return parsed, nil
	}

	for i, refs := range parsed {
		for j, ref := range refs {
			id, grouped := ref.Grouped()
			if !grouped {
				continue
			}

			if id-offset < 1 {
				return nil, &NonMonotonicError{Token: i, Id: id, Base: offset + 1}
			}

			refs[j] = ref.Shift(offset)
		}
	}

	return parsed, nil
}

func parse(labels []string) ([][]label.Ref, error) {
	parsed := make([][]label.Ref, len(labels))
	for i, l := range labels {
		if l == label.NoAnnotation {
			continue
		}

		refs, err := label.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		parsed[i] = refs
	}
	return parsed, nil
}

// offsetOf returns the first grouped id minus 1. Standalone references
// never set the offset.
func offsetOf(parsed [][]label.Ref) (int, bool) {
	for _, refs := range parsed {
		for _, ref := range refs {
			if id, ok := ref.Grouped(); ok {
				return id - 1, true
			}
		}
	}
	return 0, false
}
