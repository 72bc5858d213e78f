package stat

import (
	sent "github.com/revelaction/curiam/sentence"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumSentences          int
	NumTokens             int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int

	// NumAnnotated counts the sentences with at least one span.
	NumAnnotated int
	NumSpans     int

	// SpansPerCategory counts spans, SpanTokensPerCategory the tokens they
	// cover.
	SpansPerCategory      map[string]int
	SpanTokensPerCategory map[string]int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{
		TokensPerSentenceDis:  map[int]int{},
		SpansPerCategory:      map[string]int{},
		SpanTokensPerCategory: map[string]int{},
	}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the sentences of doc and the spans of annotator to the
// stats.
func (h *Handler) Aggregate(doc sent.Document, annotator string) {
	h.stats.NumSentences += doc.Len()

	for _, sentence := range doc.Sentences {
		h.stats.NumTokens += sentence.Len()
		h.stats.TokensPerSentenceDis[sentence.Len()]++

		spans := sentence.GetAnnotations(annotator)
		if len(spans) > 0 {
			h.stats.NumAnnotated++
		}
		for _, a := range spans {
			h.stats.NumSpans++
			h.stats.SpansPerCategory[a.Category]++
			h.stats.SpanTokensPerCategory[a.Category] += a.End - a.Start + 1
		}
	}

	if h.stats.NumSentences > 0 {
		h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
	}
}
