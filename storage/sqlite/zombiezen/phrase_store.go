package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/revelaction/segrel/rule"
	"github.com/revelaction/segrel/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// created is stored with a fixed width so that it sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// PhraseStore persists extraction runs.
type PhraseStore struct {
	pool *sqlitex.Pool
}

var _ storage.PhraseRepository = (*PhraseStore)(nil)

func NewPhraseStore(pool *sqlitex.Pool) *PhraseStore {
	return &PhraseStore{pool: pool}
}

// WritePhrases stores the run and its records in one transaction.
func (h *PhraseStore) WritePhrases(run storage.Run, records []storage.Record) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	err = sqlitex.Execute(conn, "INSERT INTO runs (id, created, rules) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
		Args: []any{run.Id.String(), run.Created.UTC().Format(timeLayout), strings.Join(run.Rules, ",")},
	})
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for seq, r := range records {
		fragments, marshalErr := json.Marshal(r.Phrase.Fragments)
		if marshalErr != nil {
			return marshalErr
		}

		err = sqlitex.Execute(conn, `INSERT INTO phrases (run_id, seq, doc_id, sentence_id, rule, text, fragments)
			VALUES (?, ?, ?, ?, ?, ?, ?)`, &sqlitex.ExecOptions{
			Args: []any{run.Id.String(), seq, r.DocId, r.SentenceId, r.Phrase.Rule, r.Phrase.Text(), string(fragments)},
		})
		if err != nil {
			return fmt.Errorf("failed to insert phrase: %w", err)
		}
	}

	return nil
}

func (h *PhraseStore) Phrases(runId uuid.UUID, ruleName string) ([]storage.Record, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	query := "SELECT doc_id, sentence_id, rule, fragments FROM phrases WHERE run_id = ?"
	args := []any{runId.String()}
	if ruleName != "" {
		query += " AND rule = ?"
		args = append(args, ruleName)
	}
	query += " ORDER BY seq"

	var records []storage.Record
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			r := storage.Record{
				DocId:      stmt.ColumnInt(0),
				SentenceId: stmt.ColumnInt(1),
				Phrase:     rule.Phrase{Rule: stmt.ColumnText(2)},
			}
			if err := json.Unmarshal([]byte(stmt.ColumnText(3)), &r.Phrase.Fragments); err != nil {
				return err
			}
			records = append(records, r)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (h *PhraseStore) Runs() ([]storage.Run, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var runs []storage.Run
	err = sqlitex.Execute(conn, "SELECT id, created, rules FROM runs ORDER BY created DESC", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			id, err := uuid.Parse(stmt.ColumnText(0))
			if err != nil {
				return fmt.Errorf("invalid run id: %w", err)
			}
			created, err := time.Parse(timeLayout, stmt.ColumnText(1))
			if err != nil {
				return fmt.Errorf("invalid run time: %w", err)
			}

			run := storage.Run{Id: id, Created: created}
			if rules := stmt.ColumnText(2); rules != "" {
				run.Rules = strings.Split(rules, ",")
			}
			runs = append(runs, run)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return runs, nil
}
