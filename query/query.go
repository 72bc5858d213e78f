package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/revelaction/curiam/render"
	"github.com/revelaction/curiam/search"
	"github.com/revelaction/curiam/storage"

	"github.com/c-bata/go-prompt"
)

const (
	// categorySep separates the categories of a query, since category
	// names contain spaces.
	categorySep = ","

	pageSize = 500

	// Limit results per query to avoid hang
	limit = 2000
)

type Handler struct {
	DocRepo   storage.DocReader
	Annotator string
	Renderer  *render.Renderer

	// DocId restricts the queries to one document when set
	DocId *int

	categories []string
}

func NewHandler(dr storage.DocReader, annotator string, r *render.Renderer) *Handler {
	return &Handler{
		DocRepo:   dr,
		Annotator: annotator,
		Renderer:  r,
	}
}

func (h *Handler) Run() error {
	categories, err := h.DocRepo.Categories("")
	if err != nil {
		return err
	}
	h.categories = categories

	docs, err := h.DocRepo.List()
	if err != nil {
		return err
	}
	for _, d := range docs {
		h.Renderer.AddDocName(d.Id, d.Title)
	}

	fmt.Println("🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {
		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("curiam query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Println("Format set to: " + h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Println("Prefix set to " + fmt.Sprintf("%t", h.Renderer.HasPrefix))
				}}),
		)

		if in == "quit" {
			return nil
		}

		history = append(history, in)
		categories, err := h.parse(in)
		if err != nil {
			fmt.Printf("❌ %s\n", err)
			continue
		}

		items, err := h.Search(categories)
		if err != nil {
			fmt.Printf("Error fetching sentences: %v\n", err)
			continue
		}

		h.Renderer.Render(items)
	}
}

// Search returns the sentences having spans of ALL categories, with only
// the spans of those categories.
func (h *Handler) Search(categories []string) ([]render.Item, error) {
	srch := search.New(categories, h.Annotator, h.DocRepo)
	if h.DocId != nil {
		srch.WithDocID(*h.DocId)
	}

	var items []render.Item
	cursor := storage.Cursor(0)
	for len(items) < limit {
		newCursor, err := srch.Sentences(cursor, pageSize, func(it render.Item) error {
			items = append(items, it)
			return nil
		})
		if err != nil {
			return nil, err
		}
		if cursor == newCursor {
			break // No more progress
		}
		cursor = newCursor
	}

	// Sort results by DocId > SentenceId
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].DocId != items[j].DocId {
			return items[i].DocId < items[j].DocId
		}
		return items[i].SentenceId() < items[j].SentenceId()
	})

	return items, nil
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{}
	befCursor := in.TextBeforeCursor()

	if "" == befCursor {
		return s
	}

	// complete the category being typed, after the last separator
	parts := strings.Split(befCursor, categorySep)
	current := strings.TrimLeft(parts[len(parts)-1], " ")
	if current == "" {
		return s
	}

	for _, c := range h.categories {
		if strings.HasPrefix(c, current) {
			s = append(s, prompt.Suggest{Text: c, Description: "🏷  " + c})
		}
	}

	return s
}

func (h *Handler) parse(in string) ([]string, error) {
	var categories []string
	for _, part := range strings.Split(in, categorySep) {
		c := strings.TrimSpace(part)
		if c == "" {
			continue
		}

		if !h.known(c) {
			return nil, fmt.Errorf("unknown category %q", c)
		}
		categories = append(categories, c)
	}

	if len(categories) == 0 {
		return nil, errors.New("No category given")
	}

	return categories, nil
}

func (h *Handler) known(category string) bool {
	for _, c := range h.categories {
		if c == category {
			return true
		}
	}
	return false
}
