package main

import (
	"github.com/urfave/cli/v2"
)

func (e *env) lsDocCommand(c *cli.Context) error {
	repo, err := e.docRepository(false)
	if err != nil {
		return err
	}

	return listDocs(repo, e.ui)
}
