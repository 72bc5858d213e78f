package query

import (
	"testing"

	"github.com/c-bata/go-prompt"
	"github.com/revelaction/curiam/render"
	sent "github.com/revelaction/curiam/sentence"
	"github.com/revelaction/curiam/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	results []storage.SentenceResult
	calls   int
}

func (f *fakeReader) List() ([]sent.Document, error) { return nil, nil }

func (f *fakeReader) Read(id int) (sent.Document, error) { return sent.Document{}, storage.ErrNotFound }

func (f *fakeReader) Categories(pattern string) ([]string, error) {
	return []string{"Focal Term", "Metalinguistic Cue", "Quote"}, nil
}

// FindSentences pages over results, one per call
func (f *fakeReader) FindSentences(categories []string, annotator string, after storage.Cursor, limit int, onResult func(storage.SentenceResult) error) (storage.Cursor, error) {
	f.calls++
	if int(after) >= len(f.results) {
		return after, nil
	}
	if err := onResult(f.results[after]); err != nil {
		return after, err
	}
	return after + 1, nil
}

func annotated(id int, cats ...string) sent.Sentence {
	s := sent.Sentence{Id: &id}
	for i, c := range cats {
		s.Append(sent.Token{
			Id:          i,
			Text:        "w",
			Annotations: []sent.TokenAnnotation{{Category: c, Id: -1, Annotator: "alice"}},
		})
	}
	return s
}

func newTestHandler(fr *fakeReader) *Handler {
	h := NewHandler(fr, "alice", render.NewRenderer())
	h.categories, _ = fr.Categories("")
	return h
}

func TestSearch(t *testing.T) {
	fr := &fakeReader{results: []storage.SentenceResult{
		{DocId: 1, DocTitle: "b", Sentence: annotated(0, "Quote", "Focal Term")},
		{DocId: 0, DocTitle: "a", Sentence: annotated(4, "Quote")},
		{DocId: 0, DocTitle: "a", Sentence: annotated(2, "Quote", "Metalinguistic Cue")},
	}}
	h := newTestHandler(fr)

	items, err := h.Search([]string{"Quote"})
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, 4, fr.calls)
	assert.Equal(t, 0, items[0].DocId)
	assert.Equal(t, 2, items[0].SentenceId())
	assert.Equal(t, 4, items[1].SentenceId())
	assert.Equal(t, 1, items[2].DocId)

	// only the queried category spans
	assert.Equal(t, []sent.Annotation{{Category: "Quote", Start: 0, End: 0}}, items[0].Spans)
}

func TestParse(t *testing.T) {
	h := newTestHandler(&fakeReader{})

	cats, err := h.parse(" Quote ,Focal Term,")
	require.NoError(t, err)
	assert.Equal(t, []string{"Quote", "Focal Term"}, cats)

	_, err = h.parse("Quote, Appeal")
	assert.ErrorContains(t, err, `unknown category "Appeal"`)

	_, err = h.parse(" , ")
	assert.Error(t, err)
}

func TestCompleter(t *testing.T) {
	h := newTestHandler(&fakeReader{})

	buf := prompt.NewBuffer()
	buf.InsertText("Quote, Foc", false, true)
	s := h.completer(*buf.Document())
	require.Len(t, s, 1)
	assert.Equal(t, "Focal Term", s[0].Text)

	buf = prompt.NewBuffer()
	buf.InsertText("Quote, ", false, true)
	assert.Empty(t, h.completer(*buf.Document()))
}

func TestSearchDoc(t *testing.T) {
	h := newTestHandler(&fakeReader{})
	id := 7
	h.DocId = &id

	_, err := h.Search([]string{"Quote"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
