package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/revelaction/curiam/inception"
	"github.com/revelaction/curiam/storage"
	"github.com/revelaction/curiam/storage/sqlite/zombiezen"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// exportExts are stripped from an export file name to get the doc title.
var exportExts = []string{".xz", ".tsv", ".txt"}

func (e *env) importCommand(c *cli.Context) error {
	paths := c.Args().Slice()
	if len(paths) == 0 {
		return errors.New("no export given. Usage: import <export.tsv[.xz]>...")
	}

	repo, err := e.docRepository(true)
	if err != nil {
		return err
	}

	importId := uuid.NewString()
	if ds, ok := repo.(*zombiezen.DocStore); ok {
		ds.ImportId = importId
	}
	log := e.log.WithField("import", importId)

	p, bar := newProgress(e.ui, len(paths), func(i int) string {
		return filepath.Base(paths[i])
	})

	var size int64
	var imported, skipped, sentences int
	for _, path := range paths {
		exp, err := inception.Open(path, inception.Options{LabelColumn: e.cfg.LabelColumn})
		if err != nil {
			p.Stop()
			return err
		}

		doc, errs := inception.Build(exp, e.cfg.Annotator)
		doc.Title = docTitle(path)
		doc.Labels = c.StringSlice("label")

		for _, err := range errs {
			fields := logrus.Fields{"doc": doc.Title}
			var se *inception.SentenceError
			if errors.As(err, &se) {
				fields["sentence"] = se.Sentence
			}

			if inception.IsTruncation(err) {
				log.WithFields(fields).Warnf("annotations truncated: %v", errors.Unwrap(err))
				continue
			}
			log.WithFields(fields).Warnf("annotations dropped: %v", errors.Unwrap(err))
		}

		id, err := repo.Write(doc)
		if errors.Is(err, storage.ErrExists) {
			log.WithField("doc", doc.Title).Info("already imported, skipped")
			skipped++
			bar.Incr()
			continue
		}
		if err != nil {
			p.Stop()
			return fmt.Errorf("failed to write doc %s: %w", doc.Title, err)
		}

		log.WithFields(logrus.Fields{"doc": doc.Title, "id": id, "sentences": doc.Len()}).Debug("imported")
		size += exp.Size
		sentences += doc.Len()
		imported++
		bar.Incr()
	}
	p.Stop()

	fmt.Fprintf(e.ui.Out, "Imported %d docs (%d sentences, %s), skipped %d\n", imported, sentences, humanize.Bytes(uint64(size)), skipped)
	return nil
}

// docTitle returns the file name of path without its export extensions.
func docTitle(path string) string {
	title := filepath.Base(path)
	for _, ext := range exportExts {
		title = strings.TrimSuffix(title, ext)
	}
	return title
}
