package main

import (
	"errors"
	"fmt"

	"github.com/revelaction/curiam/inception"

	"github.com/urfave/cli/v2"
)

// simplifyCommand prints the simplified rows of each sentence of an
// export, a blank line between sentences. Sentences that fail are
// reported on the error stream and skipped.
func (e *env) simplifyCommand(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New("Usage: simplify <export.tsv[.xz]>")
	}

	exp, err := inception.Open(c.Args().First(), inception.Options{LabelColumn: e.cfg.LabelColumn})
	if err != nil {
		return err
	}

	for i, raw := range exp.Sentences {
		simple, err := inception.Simplify(raw.Rows)
		if err != nil {
			fmt.Fprintf(e.ui.Err, "✍  sentence %d: %v\n", i, err)
			continue
		}

		for _, r := range simple {
			fmt.Fprintln(e.ui.Out, r)
		}
		fmt.Fprintln(e.ui.Out)

		res, err := inception.Spans(simple)
		if err != nil {
			fmt.Fprintf(e.ui.Err, "✍  sentence %d: %v\n", i, err)
			continue
		}
		if err := res.Err(); err != nil {
			fmt.Fprintf(e.ui.Err, "✂  sentence %d: %v\n", i, err)
		}
	}

	return nil
}
