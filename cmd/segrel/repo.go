package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gosuri/uiprogress"

	sent "github.com/revelaction/segrel/sentence"
	"github.com/revelaction/segrel/storage"
	"github.com/revelaction/segrel/storage/filesystem"
	"github.com/revelaction/segrel/storage/sqlite/zombiezen"
)

// isSQLite tells the backend of a doc repository path: an existing directory
// is a filesystem store, an existing file a SQLite database. Missing paths
// are SQLite files when they carry a database extension.
func isSQLite(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return !info.IsDir(), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	switch filepath.Ext(path) {
	case ".db", ".sqlite", ".sqlite3":
		return true, nil
	}
	return false, nil
}

// openDocs opens the doc repository at path. create makes a missing
// filesystem directory.
func openDocs(path string, pool *Pool, create bool) (storage.DocRepository, error) {
	if path == "" {
		return nil, errors.New("no doc repository given")
	}

	sqlite, err := isSQLite(path)
	if err != nil {
		return nil, err
	}

	if sqlite {
		if !create {
			if _, err := os.Stat(path); err != nil {
				return nil, fmt.Errorf("doc database: %w", err)
			}
		}
		p, err := pool.Open(path)
		if err != nil {
			return nil, err
		}
		return zombiezen.NewDocStore(p), nil
	}

	if create {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, err
		}
	}
	return filesystem.NewDocStore(path)
}

// loadLibrary reads the docs whose labels match labelMatch. With progress,
// repositories that preload show a bar while loading.
func loadLibrary(repo storage.DocReader, labelMatch string, progress bool) (sent.Library, error) {
	if p, ok := repo.(storage.Preloader); ok && progress {
		if err := preload(p, labelMatch); err != nil {
			return nil, err
		}
	}

	list, err := repo.List(labelMatch)
	if err != nil {
		return nil, err
	}

	lib := make(sent.Library, 0, len(list))
	for _, d := range list {
		doc, err := repo.Read(d.Id)
		if err != nil {
			return nil, err
		}
		lib = append(lib, doc)
	}
	return lib, nil
}

func preload(p storage.Preloader, labelMatch string) error {
	uiprogress.Start()
	defer uiprogress.Stop()

	bar := uiprogress.AddBar(1) // Placeholder, updated in callback
	bar.AppendCompleted()
	bar.PrependElapsed()

	var currentName string
	bar.AppendFunc(func(b *uiprogress.Bar) string {
		return currentName
	})

	return p.Preload(labelMatch, func(current, total int, name string) {
		if bar.Total <= 1 {
			bar.Total = total
			bar.Set(0)
		}
		currentName = name
		bar.Incr()
	})
}

// selectDoc narrows lib to the doc with id, if id is not negative.
func selectDoc(lib sent.Library, id int) (sent.Library, error) {
	if id < 0 {
		return lib, nil
	}
	for _, d := range lib {
		if d.Id == id {
			return sent.Library{d}, nil
		}
	}
	return nil, fmt.Errorf("doc %d: %w", id, storage.ErrNotFound)
}
