package main

import (
	"fmt"
	"slices"

	"github.com/revelaction/curiam/query"
	"github.com/revelaction/curiam/render"
	"github.com/revelaction/curiam/storage/filesystem"

	"github.com/urfave/cli/v2"
)

func (e *env) queryCommand(c *cli.Context) error {
	format := c.String("format")
	if !slices.Contains(render.SupportedFormats(), format) {
		return fmt.Errorf("invalid format %q: allowed values are %v", format, render.SupportedFormats())
	}

	dr, err := e.docRepository(false)
	if err != nil {
		return err
	}

	// preload filesystem docs, showing progress
	if h, ok := dr.(*filesystem.DocStore); ok {
		var currentName string
		p, bar := newProgress(e.ui, 1, func(int) string {
			return currentName
		})

		err = h.LoadAll(func(total int, name string) {
			if bar.Total <= 1 {
				bar.Total = total
				bar.Set(0)
			}
			currentName = name
			bar.Incr()
		})
		p.Stop()

		if err != nil {
			return err
		}
	}

	r := render.NewRenderer()
	r.W = e.ui.Out
	r.HasColor = !c.Bool("no-color")
	r.HasPrefix = !c.Bool("no-prefix")
	r.Format = format

	// now present the REPL
	h := query.NewHandler(dr, e.cfg.Annotator, r)
	if c.IsSet("doc") {
		docId := c.Int("doc")
		h.DocId = &docId
	}
	return h.Run()
}
