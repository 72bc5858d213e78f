package render

import (
	"encoding/json"
	"io"
)

// JSONRenderer writes sentence spans as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes the items as a JSON array.
func (r *JSONRenderer) Render(items []Item) error {
	if items == nil {
		items = []Item{}
	}
	return json.NewEncoder(r.W).Encode(items)
}
