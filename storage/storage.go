package storage

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/revelaction/segrel/rule"
	sent "github.com/revelaction/segrel/sentence"
)

// ErrNotFound is returned when a doc or run does not exist.
var ErrNotFound = errors.New("not found")

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// If labelMatch is not empty, only documents with at least one label containing the string are returned.
	// Content (Sentences) is not loaded.
	List(labelMatch string) ([]sent.Doc, error)

	// Read returns a document by ID
	Read(id int) (sent.Doc, error)

	// Labels returns all unique labels found across all documents, sorted alphabetically.
	// If pattern is not empty, it returns labels that contain the pattern.
	Labels(pattern string) ([]string, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document and its sentences to storage
	Write(doc sent.Doc) error
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// Preloader defines an optional capability for repositories that require
// or support eager loading of data into memory.
type Preloader interface {
	Preload(labelMatch string, cb func(current, total int, name string)) error
}

// Run identifies one extraction over the corpus.
type Run struct {
	Id      uuid.UUID `json:"id"`
	Created time.Time `json:"created"`
	Rules   []string  `json:"rules"`
}

func NewRun(rules []string) Run {
	return Run{Id: uuid.New(), Created: time.Now().UTC(), Rules: rules}
}

// Record is a phrase with the sentence it was extracted from.
type Record struct {
	DocId      int         `json:"doc_id"`
	SentenceId int         `json:"sentence_id"`
	Phrase     rule.Phrase `json:"phrase"`
}

// PhraseWriter persists the phrases of a run.
type PhraseWriter interface {
	WritePhrases(run Run, records []Record) error
}

// PhraseReader reads back persisted runs.
type PhraseReader interface {
	// Phrases returns the records of a run in doc and sentence order. An
	// empty ruleName returns the records of all rules.
	Phrases(runId uuid.UUID, ruleName string) ([]Record, error)

	// Runs returns all runs, the newest first.
	Runs() ([]Run, error)
}

type PhraseRepository interface {
	PhraseReader
	PhraseWriter
}

// MatchLabel reports whether one of the labels contains labelMatch. An
// empty labelMatch matches every doc.
func MatchLabel(labels []string, labelMatch string) bool {
	if labelMatch == "" {
		return true
	}
	for _, l := range labels {
		if strings.Contains(l, labelMatch) {
			return true
		}
	}
	return false
}
