package render

import (
	"bytes"
	"encoding/json"
	"testing"

	sent "github.com/revelaction/curiam/sentence"
	"github.com/revelaction/curiam/span"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRendererRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	require.NoError(t, r.Render(nil))

	var items []Item
	require.NoError(t, json.Unmarshal(buf.Bytes(), &items))
	assert.Empty(t, items)
	assert.Equal(t, "[]\n", buf.String())
}

func TestJSONRendererRenderOneItem(t *testing.T) {
	id := 5
	item := Item{
		DocId: 1,
		Sentence: sent.Sentence{
			Id: &id,
			Tokens: []sent.Token{
				{Id: 0, Text: "means"},
				{Id: 1, Text: "vehicle"},
			},
		},
		Spans:      []sent.Annotation{{Category: "Cue", Start: 0, End: 0}},
		Truncation: &span.Truncation{Index: 1, Text: "vehicle", Label: "*:1"},
	}

	var buf bytes.Buffer
	require.NoError(t, NewJSONRenderer(&buf).Render([]Item{item}))

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	require.Len(t, raw, 1)
	assert.EqualValues(t, 1, raw[0]["doc_id"])
	assert.Equal(t, []any{map[string]any{"category": "Cue", "start": float64(0), "end": float64(0)}}, raw[0]["spans"])

	var items []Item
	require.NoError(t, json.Unmarshal(buf.Bytes(), &items))
	assert.Equal(t, []Item{item}, items)
}
