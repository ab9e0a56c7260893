package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	sent "github.com/revelaction/segrel/sentence"
	"github.com/revelaction/segrel/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const labelSep = ","

type DocStore struct {
	pool *sqlitex.Pool
}

var _ storage.DocRepository = (*DocStore)(nil)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

func splitLabels(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, labelSep)
}

func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var docs []sent.Doc
	err = sqlitex.Execute(conn, "SELECT id, title, labels FROM docs ORDER BY id", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			doc := sent.Doc{
				Id:     stmt.ColumnInt(0),
				Title:  stmt.ColumnText(1),
				Labels: splitLabels(stmt.ColumnText(2)),
			}
			if storage.MatchLabel(doc.Labels, labelMatch) {
				docs = append(docs, doc)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sent.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := sent.Doc{Id: id}
	found := false

	err = sqlitex.Execute(conn, "SELECT title, labels FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc.Title = stmt.ColumnText(0)
			doc.Labels = splitLabels(stmt.ColumnText(1))
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}
	if !found {
		return sent.Doc{}, fmt.Errorf("doc %d: %w", id, storage.ErrNotFound)
	}

	err = sqlitex.Execute(conn, "SELECT sentence_id, text, data FROM sentences WHERE doc_id = ? ORDER BY sentence_id", &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			s := sent.Sentence{
				Id:    stmt.ColumnInt(0),
				DocId: id,
				Text:  stmt.ColumnText(1),
			}
			if err := json.Unmarshal([]byte(stmt.ColumnText(2)), &s.Tokens); err != nil {
				return fmt.Errorf("sentence %d: %w", s.Id, err)
			}
			doc.Sentences = append(doc.Sentences, s)
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}

	return doc, nil
}

func (h *DocStore) Labels(pattern string) ([]string, error) {
	docs, err := h.List("")
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var labels []string
	for _, d := range docs {
		for _, l := range d.Labels {
			if seen[l] || !strings.Contains(l, pattern) {
				continue
			}
			seen[l] = true
			labels = append(labels, l)
		}
	}
	sort.Strings(labels)
	return labels, nil
}

// Write inserts doc and its sentences. A doc with the same title is
// replaced, keeping its id.
func (h *DocStore) Write(doc sent.Doc) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	labels := strings.Join(doc.Labels, labelSep)

	var docId int64
	found := false
	err = sqlitex.Execute(conn, "SELECT id FROM docs WHERE title = ?", &sqlitex.ExecOptions{
		Args: []any{doc.Title},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			docId = stmt.ColumnInt64(0)
			return nil
		},
	})
	if err != nil {
		return err
	}

	if found {
		err = sqlitex.Execute(conn, "DELETE FROM sentences WHERE doc_id = ?", &sqlitex.ExecOptions{
			Args: []any{docId},
		})
		if err != nil {
			return fmt.Errorf("failed to delete sentences: %w", err)
		}
		err = sqlitex.Execute(conn, "UPDATE docs SET labels = ? WHERE id = ?", &sqlitex.ExecOptions{
			Args: []any{labels, docId},
		})
		if err != nil {
			return fmt.Errorf("failed to update doc: %w", err)
		}
	} else {
		err = sqlitex.Execute(conn, "INSERT INTO docs (title, labels) VALUES (?, ?)", &sqlitex.ExecOptions{
			Args: []any{doc.Title, labels},
		})
		if err != nil {
			return fmt.Errorf("failed to insert doc: %w", err)
		}
		docId = conn.LastInsertRowID()
	}

	for _, s := range doc.Sentences {
		data, marshalErr := json.Marshal(s.Tokens)
		if marshalErr != nil {
			return marshalErr
		}

		err = sqlitex.Execute(conn, "INSERT INTO sentences (doc_id, sentence_id, text, data) VALUES (?, ?, ?, ?)", &sqlitex.ExecOptions{
			Args: []any{docId, s.Id, s.Text, string(data)},
		})
		if err != nil {
			return fmt.Errorf("failed to insert sentence %d: %w", s.Id, err)
		}
	}

	return nil
}
