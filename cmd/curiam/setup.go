package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/revelaction/curiam/storage"
	"github.com/revelaction/curiam/storage/filesystem"
	"github.com/revelaction/curiam/storage/sqlite/zombiezen"
)

// sqliteExts are the extensions of a doc path to be created as a SQLite
// store. Other missing paths are created as directories.
var sqliteExts = map[string]bool{".db": true, ".sqlite": true, ".sqlite3": true}

// NewDocRepository opens the doc store at path, a directory of JSON docs
// or a SQLite file. A missing path is created if create is set.
func NewDocRepository(p *Pool, path string, create bool) (storage.DocRepository, error) {
	if path == "" {
		return nil, errors.New("no doc path: use --doc-path or the doc_path config key")
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && create:
		if !sqliteExts[filepath.Ext(path)] {
			if err := os.MkdirAll(path, 0755); err != nil {
				return nil, fmt.Errorf("failed to create doc directory: %w", err)
			}
			return filesystem.NewDocStore(path)
		}
	case err != nil:
		return nil, fmt.Errorf("repository not found: %s", path)
	case info.IsDir():
		return filesystem.NewDocStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}

func (e *env) docRepository(create bool) (storage.DocRepository, error) {
	return NewDocRepository(&e.pool, e.cfg.DocPath, create)
}
