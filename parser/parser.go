// Package parser turns raw text into parsed sentences. The dependency
// parsing itself is done by an external service; this package holds the
// client, a cache in front of it and a reader for pre-parsed CoNLL-U files.
package parser

import (
	"context"
	"fmt"

	sent "github.com/revelaction/segrel/sentence"
)

// Parser parses text into one sentence: tokens with POS tags, dependency
// labels and heads forming a tree.
type Parser interface {
	Parse(ctx context.Context, text string) (sent.Sentence, error)
	// ParseBatch returns one sentence per text, in order.
	ParseBatch(ctx context.Context, texts []string) ([]sent.Sentence, error)
}

// runes of the text shown in a ParseFailure message
const maxFailureText = 40

// ParseFailure is returned for any failure of the parser: transport, status,
// or a response that does not decode into known tags.
type ParseFailure struct {
	Text string
	Err  error
}

func (e *ParseFailure) Error() string {
	text := e.Text
	if r := []rune(text); len(r) > maxFailureText {
		text = string(r[:maxFailureText]) + "..."
	}
	return fmt.Sprintf("parse %q: %v", text, e.Err)
}

func (e *ParseFailure) Unwrap() error {
	return e.Err
}

// rebase makes token indexes and heads relative to the first token, for
// services that number tokens within the whole document.
func rebase(tokens []sent.Token) {
	if len(tokens) == 0 || tokens[0].Index == 0 {
		return
	}
	offset := tokens[0].Index
	for i := range tokens {
		tokens[i].Index -= offset
		tokens[i].Head -= offset
		tokens[i].Id = tokens[i].Index
	}
}
