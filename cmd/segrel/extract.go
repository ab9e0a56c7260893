package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/segrel/extract"
	"github.com/revelaction/segrel/match"
	"github.com/revelaction/segrel/render"
	"github.com/revelaction/segrel/rule"
	sent "github.com/revelaction/segrel/sentence"
	"github.com/revelaction/segrel/storage"
	"github.com/revelaction/segrel/storage/sqlite/zombiezen"
)

// corpusFlags select the sentences a command runs over.
func corpusFlags() []cli.Flag {
	return []cli.Flag{
		docsFlag(),
		&cli.IntFlag{Name: "doc", Value: -1, Usage: "only the doc with this id"},
		&cli.StringFlag{Name: "label", Usage: "only docs with a label containing `MATCH`"},
		&cli.BoolFlag{Name: "short", Usage: "only sentences without commas and at most extract.max_words words"},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: render.DefaultFormat, Usage: "one of " + strings.Join(render.SupportedFormats(), ", ")},
		&cli.BoolFlag{Name: "json", Usage: "write the phrases as JSON"},
		&cli.BoolFlag{Name: "prefix", Usage: "prefix each phrase with the doc, sentence and rule"},
		&cli.BoolFlag{Name: "color", Usage: "highlight the phrase words"},
		&cli.StringFlag{Name: "store", Usage: "persist the run in this SQLite file (default corpus.phrase_db)"},
	}
}

func extractCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "extract",
		Usage: "run the extraction rules over the corpus",
		Flags: append(append([]cli.Flag{
			&cli.StringSliceFlag{Name: "rule", Aliases: []string{"r"}, Usage: "rule name, repeatable (default all rules)"},
		}, corpusFlags()...), outputFlags()...),
		Action: action(ui, func(c *cli.Context, e *env) error {
			rules := rule.Default(e.cfg.RuleOptions())
			if names := c.StringSlice("rule"); len(names) > 0 {
				var err error
				if rules, err = rule.Select(rules, names); err != nil {
					return err
				}
			}
			return runExtract(c, e, rules)
		}),
	}
}

func exprCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "expr",
		Usage:     "run a sequence pattern over the corpus",
		ArgsUsage: "<pattern...>",
		Description: `Each argument is one slot of the pattern:

   DET              part-of-speech
   PROPN:compound   part-of-speech and dependency label
   prime            case-insensitive text
   plan|scheme      any of the words
   @launch          lemma
   /^[A-Z]+$/       regular expression on the text

A trailing ? makes the slot optional, a trailing + repeatable.`,
		Flags: append(corpusFlags(), outputFlags()...),
		Action: action(ui, func(c *cli.Context, e *env) error {
			p, err := match.Parse(c.Args().Slice())
			if err != nil {
				return err
			}

			return runExtract(c, e, []rule.Rule{{
				Name:        rule.NameExpr,
				Description: p.String(),
				Apply:       rule.Expr(p),
			}})
		}),
	}
}

func runner(c *cli.Context, e *env, rules []rule.Rule) *extract.Runner {
	r := &extract.Runner{
		Rules:   rules,
		Workers: e.cfg.Extract.Workers,
		Logger:  e.log,
	}
	if c.Bool("short") {
		r.Filter = extract.Short(e.cfg.Extract.MaxWords)
	}
	return r
}

// corpus loads the docs selected by the corpus flags.
func corpus(c *cli.Context, e *env, pool *Pool, progress bool) (sent.Library, error) {
	repo, err := openDocs(firstNonEmpty(c.String("docs"), e.cfg.Corpus.DocPath), pool, false)
	if err != nil {
		return nil, err
	}

	lib, err := loadLibrary(repo, c.String("label"), progress)
	if err != nil {
		return nil, err
	}

	return selectDoc(lib, c.Int("doc"))
}

func runExtract(c *cli.Context, e *env, rules []rule.Rule) error {
	format := c.String("format")
	if !render.IsSupported(format) {
		return fmt.Errorf("unknown format %q, supported formats are %s", format, strings.Join(render.SupportedFormats(), ", "))
	}

	var pool Pool
	defer pool.Close()

	lib, err := corpus(c, e, &pool, false)
	if err != nil {
		return err
	}

	var results []extract.Result
	sum, err := runner(c, e, rules).Run(c.Context, lib, func(res extract.Result) error {
		if len(res.Phrases) > 0 {
			results = append(results, res)
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{
		"sentences": sum.Sentences,
		"filtered":  sum.Filtered,
		"malformed": sum.Malformed,
		"phrases":   sum.Phrases,
	}).Info("extraction done")

	if store := firstNonEmpty(c.String("store"), e.cfg.Corpus.PhraseDB); store != "" {
		if err := storeRun(store, rules, results, e); err != nil {
			return err
		}
	}

	var r render.Renderer
	if c.Bool("json") {
		r = render.NewJSONRenderer(e.ui.Out)
	} else {
		tr := render.NewTextRenderer(e.ui.Out)
		tr.Format = format
		tr.HasPrefix = c.Bool("prefix")
		tr.HasColor = c.Bool("color")
		r = tr
	}

	return r.Render(results)
}

func storeRun(path string, rules []rule.Rule, results []extract.Result, e *env) error {
	var pool Pool
	defer pool.Close()

	p, err := pool.Open(path)
	if err != nil {
		return err
	}

	var records []storage.Record
	for _, res := range results {
		for _, ph := range res.Phrases {
			records = append(records, storage.Record{DocId: res.DocId, SentenceId: res.Sentence.Id, Phrase: ph})
		}
	}

	run := storage.NewRun(rule.Names(rules))
	if err := zombiezen.NewPhraseStore(p).WritePhrases(run, records); err != nil {
		return fmt.Errorf("failed to store run: %w", err)
	}

	e.log.WithFields(logrus.Fields{"run": run.Id, "store": path, "records": len(records)}).Info("run stored")
	return nil
}

func runsCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "runs",
		Usage:     "list the stored runs, or the phrases of one run",
		ArgsUsage: "[runId]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "store", Usage: "SQLite file of the runs (default corpus.phrase_db)"},
			&cli.StringFlag{Name: "rule", Aliases: []string{"r"}, Usage: "only phrases of this rule"},
		},
		Action: action(ui, runRuns),
	}
}

func runRuns(c *cli.Context, e *env) error {
	path := firstNonEmpty(c.String("store"), e.cfg.Corpus.PhraseDB)
	if path == "" {
		return fmt.Errorf("no phrase store given")
	}

	var pool Pool
	defer pool.Close()

	p, err := pool.Open(path)
	if err != nil {
		return err
	}

	var store storage.PhraseReader = zombiezen.NewPhraseStore(p)

	if c.NArg() == 0 {
		runs, err := store.Runs()
		if err != nil {
			return err
		}
		for _, run := range runs {
			if _, err := fmt.Fprintf(e.ui.Out, "%s  %s  %s\n", run.Id, run.Created.Format("2006-01-02 15:04:05"), strings.Join(run.Rules, ",")); err != nil {
				return err
			}
		}
		return nil
	}

	id, err := uuid.Parse(c.Args().First())
	if err != nil {
		return fmt.Errorf("invalid run id: %w", err)
	}

	records, err := store.Phrases(id, c.String("rule"))
	if err != nil {
		return err
	}

	for _, rec := range records {
		if _, err := fmt.Fprintf(e.ui.Out, "[%2d %5d] %-15s ✍  %s\n", rec.DocId, rec.SentenceId, rec.Phrase.Rule, rec.Phrase.Text()); err != nil {
			return err
		}
	}
	return nil
}
