package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gosuri/uiprogress"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/segrel/clean"
	"github.com/revelaction/segrel/parser"
	sent "github.com/revelaction/segrel/sentence"
)

const txtExt = ".txt"

func parseCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "parse",
		Usage: "clean, split and parse the speeches of a directory of .txt files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "directory of `COUNTRY_SESSION_YEAR.txt` files", Required: true},
			&cli.StringFlag{Name: "to", Usage: "doc repository, a directory or a SQLite file (default corpus.doc_path)"},
			&cli.IntFlag{Name: "retries", Value: 2, Usage: "retries of a failed parser call"},
			&cli.BoolFlag{Name: "no-progress", Usage: "do not show the progress bar"},
		},
		Action: action(ui, runParse),
	}
}

func runParse(c *cli.Context, e *env) error {
	files, err := txtFiles(c.String("from"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files in %s", txtExt, c.String("from"))
	}

	var pool Pool
	defer pool.Close()

	repo, err := openDocs(firstNonEmpty(c.String("to"), e.cfg.Corpus.DocPath), &pool, true)
	if err != nil {
		return err
	}

	p := parser.NewCached(parser.NewSpacyClient(e.cfg.Spacy()), e.cfg.Parser.CacheTTL)

	var bar *uiprogress.Bar
	if !c.Bool("no-progress") {
		uiprogress.Start()
		defer uiprogress.Stop()

		bar = uiprogress.AddBar(len(files))
		bar.AppendCompleted()
		bar.PrependElapsed()
	}

	for _, path := range files {
		name := filepath.Base(path)
		title := strings.TrimSuffix(name, txtExt)

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var labels []string
		if meta, err := clean.ParseFileName(name); err != nil {
			e.log.WithField("file", name).Warnf("no labels: %v", err)
		} else {
			labels = meta.Labels()
		}

		texts := clean.Split(clean.Clean(string(data)))

		var sentences []sent.Sentence
		for attempt := 0; ; attempt++ {
			sentences, err = p.ParseBatch(c.Context, texts)
			if err == nil || attempt >= c.Int("retries") || c.Context.Err() != nil {
				break
			}
			e.log.WithFields(logrus.Fields{"file": name, "attempt": attempt + 1}).Warnf("parse failed, retrying: %v", err)
		}
		if err != nil {
			var failure *parser.ParseFailure
			if errors.As(err, &failure) {
				return fmt.Errorf("%s: %w", name, failure)
			}
			return err
		}

		for i := range sentences {
			sentences[i].Id = i
		}

		if err := repo.Write(sent.Doc{Title: title, Labels: labels, Sentences: sentences}); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		e.log.WithFields(logrus.Fields{"doc": title, "sentences": len(sentences)}).Debug("doc parsed")
		if bar != nil {
			bar.Incr()
		}
	}

	e.log.WithFields(logrus.Fields{"docs": len(files), "cached": p.Len()}).Info("corpus parsed")
	return nil
}

func txtFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != txtExt {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func importCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "import-conllu",
		Usage: "store a CoNLL-U file as one doc",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "CoNLL-U file", Required: true},
			&cli.StringFlag{Name: "to", Usage: "doc repository, a directory or a SQLite file (default corpus.doc_path)"},
			&cli.StringFlag{Name: "title", Usage: "doc title (default the file name)"},
			&cli.StringSliceFlag{Name: "label", Usage: "doc label, repeatable"},
		},
		Action: action(ui, runImport),
	}
}

func runImport(c *cli.Context, e *env) error {
	path := c.String("from")
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sentences, err := parser.ReadCoNLLU(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	for i := range sentences {
		sentences[i].Id = i
	}

	title := c.String("title")
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	labels := c.StringSlice("label")
	if len(labels) == 0 {
		if meta, err := clean.ParseFileName(filepath.Base(path)); err == nil {
			labels = meta.Labels()
		}
	}

	var pool Pool
	defer pool.Close()

	repo, err := openDocs(firstNonEmpty(c.String("to"), e.cfg.Corpus.DocPath), &pool, true)
	if err != nil {
		return err
	}

	if err := repo.Write(sent.Doc{Title: title, Labels: labels, Sentences: sentences}); err != nil {
		return err
	}

	_, err = fmt.Fprintf(e.ui.Out, "imported %s: %d sentences\n", title, len(sentences))
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
