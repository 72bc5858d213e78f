package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/revelaction/curiam/render"
	sent "github.com/revelaction/curiam/sentence"
	"github.com/revelaction/curiam/storage"
	"github.com/revelaction/curiam/storage/filesystem"

	"github.com/urfave/cli/v2"
)

func (e *env) docCommand(c *cli.Context) error {
	arg := c.Args().First()
	if isFile(arg) {
		return e.renderFile(arg, c.Int("start"), c.Int("count"))
	}

	repo, err := e.docRepository(false)
	if err != nil {
		return err
	}

	if arg == "" {
		return listDocs(repo, e.ui)
	}

	id, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid docId %q", arg)
	}

	doc, err := repo.Read(id)
	if err != nil {
		return err
	}

	e.renderDoc(doc, c.Int("start"), c.Int("count"))
	return nil
}

func isFile(arg string) bool {
	if filepath.Ext(arg) != ".json" {
		return false
	}
	info, err := os.Stat(arg)
	return err == nil && !info.IsDir()
}

func (e *env) renderFile(path string, start, count int) error {
	doc, err := filesystem.ReadDoc(path)
	if err != nil {
		absPath, _ := filepath.Abs(path)
		return fmt.Errorf("filesystem document %q: %w", absPath, err)
	}

	e.renderDoc(doc, start, count)
	return nil
}

// renderDoc prints count sentences from start with their spans. A negative
// count prints all remaining sentences.
func (e *env) renderDoc(doc sent.Document, start, count int) {
	if start < 0 {
		start = 0
	}
	if start >= doc.Len() {
		return
	}

	sentences := doc.Sentences[start:]
	if count >= 0 && count < len(sentences) {
		sentences = sentences[:count]
	}

	r := render.NewRenderer()
	r.HasColor = false
	for i, s := range sentences {
		spans := s.GetAnnotations(e.cfg.Annotator)
		fmt.Fprintf(e.ui.Out, "✍  %d %s\n", start+i, r.SentenceString(s, spans))
	}
}

func listDocs(repo storage.DocReader, ui UI) error {
	docs, err := repo.List()
	if err != nil {
		return err
	}

	for _, doc := range docs {
		fmt.Fprintf(ui.Out, "📖 %d %s\n", doc.Id, doc.Title)
	}
	return nil
}
