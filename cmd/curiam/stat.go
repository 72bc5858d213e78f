package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/revelaction/curiam/stat"

	"github.com/urfave/cli/v2"
)

func (e *env) statCommand(c *cli.Context) error {
	if c.Args().Len() < 1 || c.Args().Len() > 2 {
		return errors.New("Usage: stat <docId> [sentId]")
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

	hdl := stat.NewHandler()
	hdl.Aggregate(doc, e.cfg.Annotator)

	stats := hdl.Get()
	fmt.Fprintf(e.ui.Out, "Num sentences %d, num tokens per sentence %d\n", stats.NumSentences, stats.TokensPerSentenceMean)
	fmt.Fprintf(e.ui.Out, "Num annotated sentences %d, num spans %d\n", stats.NumAnnotated, stats.NumSpans)

	categories := make([]string, 0, len(stats.SpansPerCategory))
	for cat := range stats.SpansPerCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		fmt.Fprintf(e.ui.Out, "[%5d %5d] %s\n", stats.SpansPerCategory[cat], stats.SpanTokensPerCategory[cat], cat)
	}

	return nil
}
