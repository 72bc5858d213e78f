package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

func (e *env) lsCategoriesCommand(c *cli.Context) error {
	repo, err := e.docRepository(false)
	if err != nil {
		return err
	}

	categories, err := repo.Categories(c.String("match"))
	if err != nil {
		return err
	}

	if len(categories) > 0 {
		fmt.Fprintln(e.ui.Out, strings.Join(categories, ", "))
	}

	return nil
}
