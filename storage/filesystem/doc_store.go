package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	sent "github.com/revelaction/curiam/sentence"
	"github.com/revelaction/curiam/storage"
)

const ext = ".json"

type DocStore struct {
	docDir string

	// In-memory cache. loaded[i] tells whether docs[i] has its sentences.
	docs   []sent.Document
	loaded []bool
}

var _ storage.DocRepository = (*DocStore)(nil)

// NewDocStore creates a filesystem document store over the JSON files of
// docDir. Only the file names are read; contents load on demand.
func NewDocStore(docDir string) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	h := &DocStore{docDir: docDir}
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ext {
			continue
		}
		h.docs = append(h.docs, sent.Document{
			Id:    len(h.docs),
			Title: strings.TrimSuffix(file.Name(), ext),
		})
		h.loaded = append(h.loaded, false)
	}

	return h, nil
}

// LoadAll preloads all docs into memory.
func (h *DocStore) LoadAll(cb func(total int, name string)) error {
	total := len(h.docs)
	for i := range h.docs {
		if cb != nil {
			cb(total, h.docs[i].Title)
		}
		if err := h.load(i); err != nil {
			return err
		}
	}
	return nil
}

func (h *DocStore) load(i int) error {
	if h.loaded[i] {
		return nil
	}

	doc := &h.docs[i] // pointer to modify in place
	full, err := ReadDoc(h.path(doc.Title))
	if err != nil {
		return err
	}

	// Title and Id come from the file listing
	doc.Labels = full.Labels
	doc.Checksum = full.Checksum
	doc.Sentences = full.Sentences
	h.loaded[i] = true
	return nil
}

func (h *DocStore) path(title string) string {
	return filepath.Join(h.docDir, title+ext)
}

func (h *DocStore) List() ([]sent.Document, error) {
	if err := h.LoadAll(nil); err != nil {
		return nil, err
	}

	list := make([]sent.Document, len(h.docs))
	for i, d := range h.docs {
		list[i] = sent.Document{Id: d.Id, Title: d.Title, Labels: d.Labels, Checksum: d.Checksum}
	}
	return list, nil
}

func (h *DocStore) Read(id int) (sent.Document, error) {
	if id < 0 || id >= len(h.docs) {
		return sent.Document{}, fmt.Errorf("%w: %d", storage.ErrNotFound, id)
	}
	if err := h.load(id); err != nil {
		return sent.Document{}, err
	}
	return h.docs[id], nil
}

// FindSentences scans all documents in memory. The cursor counts the
// sentences already visited across documents.
func (h *DocStore) FindSentences(categories []string, annotator string, after storage.Cursor, limit int, onResult func(storage.SentenceResult) error) (storage.Cursor, error) {
	if err := h.LoadAll(nil); err != nil {
		return after, err
	}

	cursor := after
	var pos storage.Cursor
	found := 0
	for _, doc := range h.docs {
		for _, s := range doc.Sentences {
			pos++
			if pos <= after {
				continue
			}
			if limit > 0 && found >= limit {
				return cursor, nil
			}

			cursor = pos
			if !hasCategories(s, categories, annotator) {
				continue
			}

			found++
			err := onResult(storage.SentenceResult{DocId: doc.Id, DocTitle: doc.Title, Sentence: s})
			if err != nil {
				return cursor, err
			}
		}
	}

	return cursor, nil
}

func hasCategories(s sent.Sentence, categories []string, annotator string) bool {
	for _, c := range categories {
		found := false
		for _, tok := range s.Tokens {
			for _, ta := range tok.Annotations {
				if ta.Category == c && ta.Annotator == annotator {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (h *DocStore) Categories(pattern string) ([]string, error) {
	if err := h.LoadAll(nil); err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var categories []string
	for _, doc := range h.docs {
		for _, s := range doc.Sentences {
			for _, tok := range s.Tokens {
				for _, c := range tok.Annotations {
					if seen[c.Category] || !strings.Contains(c.Category, pattern) {
						continue
					}
					seen[c.Category] = true
					categories = append(categories, c.Category)
				}
			}
		}
	}

	sort.Strings(categories)
	return categories, nil
}

// Write stores doc as <title>.json in the doc directory.
//
// Ids follow the order of the file names, as in NewDocStore, so writing a
// doc renumbers the docs sorting after it.
func (h *DocStore) Write(doc sent.Document) (int, error) {
	if doc.Title == "" {
		return 0, fmt.Errorf("document has no title")
	}

	if err := h.LoadAll(nil); err != nil {
		return 0, err
	}

	for _, d := range h.docs {
		if d.Title == doc.Title || (doc.Checksum != "" && d.Checksum == doc.Checksum) {
			return 0, fmt.Errorf("%w: %s", storage.ErrExists, doc.Title)
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(h.path(doc.Title), data, 0644); err != nil {
		return 0, fmt.Errorf("IO error: %w", err)
	}

	name := doc.Title + ext
	pos := sort.Search(len(h.docs), func(i int) bool {
		return h.docs[i].Title+ext > name
	})

	h.docs = slices.Insert(h.docs, pos, doc)
	h.loaded = slices.Insert(h.loaded, pos, true)
	for i := pos; i < len(h.docs); i++ {
		h.docs[i].Id = i
	}
	return pos, nil
}

// ReadDoc reads a Document JSON from the given path and unmarshals it.
func ReadDoc(path string) (sent.Document, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return sent.Document{}, fmt.Errorf("IO error: %w", err)
	}

	var doc sent.Document
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return sent.Document{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return doc, nil
}
