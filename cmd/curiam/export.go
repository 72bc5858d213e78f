package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/revelaction/curiam/storage"
	"github.com/revelaction/curiam/storage/filesystem"
	"github.com/revelaction/curiam/storage/sqlite/zombiezen"

	"github.com/urfave/cli/v2"
)

// exportCommand copies every document of the SQLite doc store into a
// directory of JSON docs. Documents already in the directory are skipped.
func (e *env) exportCommand(c *cli.Context) error {
	src, err := e.docRepository(false)
	if err != nil {
		return err
	}
	if _, ok := src.(*zombiezen.DocStore); !ok {
		return fmt.Errorf("export source %s is not a SQLite store", e.cfg.DocPath)
	}

	to := c.String("to")
	// Ensure target directory exists
	if err := os.MkdirAll(to, 0755); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}

	dst, err := filesystem.NewDocStore(to)
	if err != nil {
		return err
	}

	docs, err := src.List()
	if err != nil {
		return err
	}

	p, bar := newProgress(e.ui, len(docs), func(i int) string {
		return docs[i].Title
	})

	count := 0
	for _, docMeta := range docs {
		doc, err := src.Read(docMeta.Id)
		if err != nil {
			p.Stop()
			return fmt.Errorf("failed to read doc %s (id %d): %w", docMeta.Title, docMeta.Id, err)
		}

		_, err = dst.Write(doc)
		if errors.Is(err, storage.ErrExists) {
			e.log.WithField("doc", doc.Title).Info("already exported, skipped")
			bar.Incr()
			continue
		}
		if err != nil {
			p.Stop()
			return fmt.Errorf("failed to write doc %s: %w", doc.Title, err)
		}
		count++
		bar.Incr()
	}
	p.Stop()

	fmt.Fprintf(e.ui.Out, "Successfully exported %d docs from %s to %s\n", count, e.cfg.DocPath, to)
	return nil
}
