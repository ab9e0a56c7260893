package main

import (
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/revelaction/segrel/storage/sqlite/zombiezen"
)

// Pool opens a SQLite file once and is closed by the command.
type Pool struct {
	p *sqlitex.Pool
}

func (p *Pool) Open(path string) (*sqlitex.Pool, error) {
	if p.p != nil {
		return p.p, nil
	}
	pool, err := zombiezen.Open(path)
	if err != nil {
		return nil, err
	}
	p.p = pool
	return p.p, nil
}

func (p *Pool) Close() error {
	if p.p != nil {
		return p.p.Close()
	}
	return nil
}
