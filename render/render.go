package render

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	sent "github.com/revelaction/curiam/sentence"
	"github.com/revelaction/curiam/span"
)

const (
	Defaultformat = "all"
)

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"
	//Yellow256  = "\033[1;38;5;202m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

// categoryColors cycles over categories in order of first appearance.
var categoryColors = []string{Green256, Yellow256, Teal, Magenta, Purple, Red}

func SupportedFormats() []string {
	return []string{"all", "spans", "aggr"}
}

// Item is one sentence with its reconstructed spans.
type Item struct {
	DocId    int               `json:"doc_id"`
	Sentence sent.Sentence     `json:"sentence"`
	Spans    []sent.Annotation `json:"spans"`

	// Truncation is set when the spans stop at a placeholder label.
	Truncation *span.Truncation `json:"truncation,omitempty"`
}

// SentenceId returns the id of the item sentence, -1 when unset.
func (it Item) SentenceId() int {
	if it.Sentence.Id == nil {
		return -1
	}
	return *it.Sentence.Id
}

type Renderer struct {
	W io.Writer

	HasColor bool

	HasPrefix bool

	// Format determines the format of the sentence
	//
	// all: print the sentence with its spans bracketed
	// spans: print one line per span
	// aggr: print the number of spans per category
	Format string

	DocNames map[int]string

	colors map[string]string
}

func NewRenderer() *Renderer {
	return &Renderer{
		W:        os.Stdout,
		Format:   Defaultformat,
		DocNames: map[int]string{},
		colors:   map[string]string{},
	}
}

func (r *Renderer) AddDocName(docId int, name string) {
	r.DocNames[docId] = name
}

// Render writes the items in the current Format.
func (r *Renderer) Render(items []Item) {
	aggregated := map[string]int{}

	for _, it := range items {
		prefix := r.buildPrefix(it)

		switch r.Format {
		case "spans":
			for _, a := range it.Spans {
				fmt.Fprintf(r.W, "%s%s\n", prefix, r.SpanString(it.Sentence, a))
			}
		case "aggr":
			for _, a := range it.Spans {
				aggregated[a.Category]++
			}
			continue
		default:
			fmt.Fprintf(r.W, "%s%s\n", prefix, r.SentenceString(it.Sentence, it.Spans))
		}

		if it.Truncation != nil {
			fmt.Fprintf(r.W, "%s%s✂  truncated at token %d %q (%s)%s\n", prefix, r.color(Red), it.Truncation.Index, it.Truncation.Text, it.Truncation.Label, r.color(Off))
		}
	}

	if r.Format == "aggr" {
		r.aggr(aggregated)
	}
}

// SentenceString returns the text of s with every span enclosed in
// brackets followed by its category.
func (r *Renderer) SentenceString(s sent.Sentence, spans []sent.Annotation) string {
	opens := make(map[int]int)
	closes := make(map[int][]sent.Annotation)
	for _, a := range spans {
		opens[a.Start]++
		closes[a.End] = append(closes[a.End], a)
	}

	words := make([]string, 0, len(s.Tokens))
	for i, tok := range s.Tokens {
		var w strings.Builder
		w.WriteString(strings.Repeat("[", opens[i]))
		w.WriteString(tok.Text)

		// innermost spans close first
		ending := closes[i]
		sort.SliceStable(ending, func(a, b int) bool {
			return ending[a].Start > ending[b].Start
		})
		for _, a := range ending {
			w.WriteString("]")
			w.WriteString(r.colorCategory(a.Category))
		}
		words = append(words, w.String())
	}

	return strings.ReplaceAll(strings.Join(words, " "), "\n", " ")
}

// SpanString renders one span as "category start-end text".
func (r *Renderer) SpanString(s sent.Sentence, a sent.Annotation) string {
	var texts []string
	for i := a.Start; i <= a.End && i < len(s.Tokens); i++ {
		texts = append(texts, s.Tokens[i].Text)
	}
	return fmt.Sprintf("%-24s %3d-%-3d %s", r.colorCategory(a.Category), a.Start, a.End, strings.Join(texts, " "))
}

func (r *Renderer) colorCategory(category string) string {
	if !r.HasColor {
		return category
	}

	c, ok := r.colors[category]
	if !ok {
		c = categoryColors[len(r.colors)%len(categoryColors)]
		r.colors[category] = c
	}
	return c + category + Off
}

func (r *Renderer) color(c string) string {
	if !r.HasColor {
		return ""
	}
	return c
}

func (r *Renderer) buildPrefix(it Item) string {
	if !r.HasPrefix {
		return ""
	}

	return fmt.Sprintf("[%s %2d %5d] ✍  ", r.title(it.DocId), it.DocId, it.SentenceId())
}

func (r *Renderer) title(docId int) string {
	title := r.DocNames[docId]
	var part string
	if len([]rune(title)) <= 20 {
		part = fmt.Sprintf("%-20s", title)
	} else {
		part = string([]rune(title)[:20])
	}

	if !r.HasColor {
		return part
	}
	return Grey256 + part + Off
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {
	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			r.Format = supported[(i+1)%len(supported)]
			return
		}
	}
	r.Format = supported[0]
}

func (r *Renderer) NextPrefix() {
	// toggle
	r.HasPrefix = !r.HasPrefix
}

func (r *Renderer) aggr(counts map[string]int) {
	// flatten map to use sortSlice
	type entry struct {
		Count    int
		Category string
	}

	sl := make([]entry, 0, len(counts))
	for category, n := range counts {
		sl = append(sl, entry{n, category})
	}

	// first by count, then by name
	sort.Slice(sl, func(i, j int) bool {
		if sl[i].Count != sl[j].Count {
			return sl[i].Count > sl[j].Count
		}
		return sl[i].Category < sl[j].Category
	})

	for _, e := range sl {
		fmt.Fprintf(r.W, "[%5d] %s\n", e.Count, r.colorCategory(e.Category))
	}
}
