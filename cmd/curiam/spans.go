package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/revelaction/curiam/render"
	sent "github.com/revelaction/curiam/sentence"

	"github.com/urfave/cli/v2"
)

func (e *env) spansCommand(c *cli.Context) error {
	if c.Args().Len() < 1 || c.Args().Len() > 2 {
		return errors.New("Usage: spans <docId> [sentId]")
	}

	format := c.String("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format %q: allowed values are text, json", format)
	}

	docId, err := strconv.Atoi(c.Args().Get(0))
	if err != nil {
		return fmt.Errorf("invalid docId %q", c.Args().Get(0))
	}

	repo, err := e.docRepository(false)
	if err != nil {
		return err
	}

	doc, err := repo.Read(docId)
	if err != nil {
		return err
	}

	if c.Args().Len() == 2 {
		doc, err = selectSentence(doc, c.Args().Get(1))
		if err != nil {
			return err
		}
	}

	var items []render.Item
	for s := range doc.All() {
		items = append(items, render.Item{
			DocId:    docId,
			Sentence: s,
			Spans:    s.GetAnnotations(e.cfg.Annotator),
		})
	}

	if format == "json" {
		return render.NewJSONRenderer(e.ui.Out).Render(items)
	}

	r := render.NewRenderer()
	r.W = e.ui.Out
	r.Format = "spans"
	r.HasPrefix = true
	r.AddDocName(docId, doc.Title)
	r.Render(items)
	return nil
}

// selectSentence returns doc reduced to the sentence at index arg.
func selectSentence(doc sent.Document, arg string) (sent.Document, error) {
	sentId, err := strconv.Atoi(arg)
	if err != nil {
		return sent.Document{}, fmt.Errorf("invalid sentId %q", arg)
	}

	if sentId < 0 || sentId >= doc.Len() {
		return sent.Document{}, fmt.Errorf("sentence index %d out of bounds (doc has %d sentences)", sentId, doc.Len())
	}

	doc.Sentences = doc.Sentences[sentId : sentId+1]
	return doc, nil
}
