// Package extract runs the rules over a corpus of parsed documents.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/revelaction/segrel/rule"
	sent "github.com/revelaction/segrel/sentence"
)

// DefaultMaxWords is the word limit of the short sentence subset.
const DefaultMaxWords = 15

// Result holds the phrases of one sentence, in rule order.
type Result struct {
	DocId    int
	Title    string
	Sentence sent.Sentence
	Phrases  []rule.Phrase
}

// Summary counts what a run did.
type Summary struct {
	Sentences int
	Filtered  int
	Malformed int
	Phrases   int
}

// Filter selects the sentences a run considers.
type Filter func(sent.Sentence) bool

// Short selects sentences without a comma and with at most maxWords words.
func Short(maxWords int) Filter {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	return func(s sent.Sentence) bool {
		if strings.Contains(s.String(), ",") {
			return false
		}
		return s.WordCount() <= maxWords
	}
}

// Runner applies Rules to every sentence of a corpus, Workers sentences at
// a time.
type Runner struct {
	Rules   []rule.Rule
	Workers int
	Filter  Filter
	Logger  logrus.FieldLogger
}

func (r *Runner) logger() logrus.FieldLogger {
	if r.Logger != nil {
		return r.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (r *Runner) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.NumCPU()
}

// Sentence applies every rule to s. It stops at the first rule error.
func (r *Runner) Sentence(s sent.Sentence) ([]rule.Phrase, error) {
	var phrases []rule.Phrase
	for _, rl := range r.Rules {
		ps, err := rl.Apply(s)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rl.Name, err)
		}
		phrases = append(phrases, ps...)
	}
	return phrases, nil
}

type outcome struct {
	phrases []rule.Phrase
	err     error
	skipped bool
}

// Run calls fn with the result of every sentence, in document and sentence
// order. Malformed sentences are logged and skipped. An error from fn or a
// canceled ctx stops the run.
func (r *Runner) Run(ctx context.Context, docs []sent.Doc, fn func(Result) error) (Summary, error) {
	var sum Summary
	log := r.logger()

	for _, doc := range docs {
		outcomes := make([]outcome, len(doc.Sentences))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.workers())

		for i, s := range doc.Sentences {
			if gctx.Err() != nil {
				break
			}

			if r.Filter != nil && !r.Filter(s) {
				outcomes[i].skipped = true
				continue
			}

			i, s := i, s
			g.Go(func() error {
				phrases, err := r.Sentence(s)
				outcomes[i] = outcome{phrases: phrases, err: err}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return sum, err
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		for i, o := range outcomes {
			s := doc.Sentences[i]
			if o.skipped {
				sum.Filtered++
				continue
			}

			if o.err != nil {
				var serr *sent.StructuralError
				if !errors.As(o.err, &serr) {
					return sum, o.err
				}
				log.WithFields(logrus.Fields{
					"doc":      doc.Id,
					"sentence": s.Id,
					"reason":   serr.Reason,
				}).Warn("skipping malformed sentence")
				sum.Malformed++
				continue
			}

			sum.Sentences++
			sum.Phrases += len(o.phrases)

			res := Result{DocId: doc.Id, Title: doc.Title, Sentence: s, Phrases: o.phrases}
			if err := fn(res); err != nil {
				return sum, err
			}
		}

		log.WithFields(logrus.Fields{
			"doc":       doc.Id,
			"sentences": len(doc.Sentences),
		}).Debug("doc extracted")
	}

	return sum, nil
}
