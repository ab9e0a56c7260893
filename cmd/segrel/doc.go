package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/segrel/render"
)

func docsFlag() cli.Flag {
	return &cli.StringFlag{Name: "docs", Usage: "doc repository, a directory or a SQLite file (default corpus.doc_path)"}
}

func docCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "doc",
		Usage: "list the docs of the repository",
		Flags: []cli.Flag{
			docsFlag(),
			&cli.StringFlag{Name: "label", Usage: "only docs with a label containing `MATCH`"},
		},
		Action: action(ui, func(c *cli.Context, e *env) error {
			var pool Pool
			defer pool.Close()

			repo, err := openDocs(firstNonEmpty(c.String("docs"), e.cfg.Corpus.DocPath), &pool, false)
			if err != nil {
				return err
			}

			docs, err := repo.List(c.String("label"))
			if err != nil {
				return err
			}

			for _, d := range docs {
				if _, err := fmt.Fprintf(e.ui.Out, "%5d  %-20s %s\n", d.Id, d.Title, strings.Join(d.Labels, " ")); err != nil {
					return err
				}
			}
			return nil
		}),
	}
}

func labelsCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "labels",
		Usage:     "list the labels of the docs",
		ArgsUsage: "[pattern]",
		Flags:     []cli.Flag{docsFlag()},
		Action: action(ui, func(c *cli.Context, e *env) error {
			var pool Pool
			defer pool.Close()

			repo, err := openDocs(firstNonEmpty(c.String("docs"), e.cfg.Corpus.DocPath), &pool, false)
			if err != nil {
				return err
			}

			labels, err := repo.Labels(c.Args().First())
			if err != nil {
				return err
			}

			for _, l := range labels {
				if _, err := fmt.Fprintln(e.ui.Out, l); err != nil {
					return err
				}
			}
			return nil
		}),
	}
}

func sentenceCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "sentence",
		Usage:     "show the tokens of a sentence",
		ArgsUsage: "<docId> <sentId>",
		Flags: []cli.Flag{
			docsFlag(),
			&cli.BoolFlag{Name: "tree", Usage: "show the dependency tree"},
			&cli.BoolFlag{Name: "color", Usage: "color the dependency labels"},
		},
		Action: action(ui, runSentence),
	}
}

func runSentence(c *cli.Context, e *env) error {
	if c.NArg() != 2 {
		return fmt.Errorf("sentence needs a doc id and a sentence id, got %d arguments", c.NArg())
	}

	docId, err := strconv.Atoi(c.Args().Get(0))
	if err != nil {
		return fmt.Errorf("invalid doc id: %w", err)
	}

	sentId, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid sentence id: %w", err)
	}

	var pool Pool
	defer pool.Close()

	repo, err := openDocs(firstNonEmpty(c.String("docs"), e.cfg.Corpus.DocPath), &pool, false)
	if err != nil {
		return err
	}

	doc, err := repo.Read(docId)
	if err != nil {
		return err
	}

	if sentId < 0 || sentId >= len(doc.Sentences) {
		return fmt.Errorf("sentence index %d out of bounds (doc has %d sentences)", sentId, len(doc.Sentences))
	}
	s := doc.Sentences[sentId]

	r := render.NewTextRenderer(e.ui.Out)
	r.HasColor = c.Bool("color")

	if err := r.Sentence(s, ""); err != nil {
		return err
	}

	if c.Bool("tree") {
		return r.Tree(s)
	}
	return r.Tokens(s)
}
