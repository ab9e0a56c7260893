package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/segrel/extract"
	"github.com/revelaction/segrel/rule"
	"github.com/revelaction/segrel/stat"
)

func statCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "stat",
		Usage: "rule coverage, top verbs and prepositions, sentence lengths",
		Flags: append([]cli.Flag{
			&cli.StringSliceFlag{Name: "rule", Aliases: []string{"r"}, Usage: "rule name, repeatable (default all rules)"},
			&cli.IntFlag{Name: "top", Value: 10, Usage: "number of verbs and prepositions shown"},
		}, corpusFlags()...),
		Action: action(ui, runStat),
	}
}

func runStat(c *cli.Context, e *env) error {
	rules := rule.Default(e.cfg.RuleOptions())
	if names := c.StringSlice("rule"); len(names) > 0 {
		var err error
		if rules, err = rule.Select(rules, names); err != nil {
			return err
		}
	}

	var pool Pool
	defer pool.Close()

	lib, err := corpus(c, e, &pool, false)
	if err != nil {
		return err
	}

	hdl := stat.NewHandler()
	sum, err := runner(c, e, rules).Run(c.Context, lib, func(res extract.Result) error {
		hdl.Aggregate(res)
		return nil
	})
	if err != nil {
		return err
	}

	stats := hdl.Get()
	w := e.ui.Out

	fmt.Fprintf(w, "Num docs %d, num sentences %d, num tokens per sentence %d\n", len(lib), stats.NumSentences, stats.TokensPerSentenceMean)
	fmt.Fprintf(w, "Filtered %d, malformed %d, phrases %d\n", sum.Filtered, sum.Malformed, sum.Phrases)

	fmt.Fprintln(w, "\nCoverage")
	for _, r := range rules {
		fmt.Fprintf(w, "  %-16s %6.2f%%  %d\n", r.Name, stats.Coverage(r.Name), stats.Covered[r.Name])
	}

	if len(stats.Verbs) > 0 {
		fmt.Fprintln(w, "\nVerbs")
		for _, cnt := range stat.Top(stats.Verbs, c.Int("top")) {
			fmt.Fprintf(w, "  %-16s %d\n", cnt.Key, cnt.N)
		}
	}

	if len(stats.Preps) > 0 {
		fmt.Fprintln(w, "\nPrepositions")
		for _, cnt := range stat.Top(stats.Preps, c.Int("top")) {
			fmt.Fprintf(w, "  %-16s %d\n", cnt.Key, cnt.N)
		}
	}

	fmt.Fprintln(w, "\nWords per sentence")
	for _, l := range stats.Lengths() {
		fmt.Fprintf(w, "  %4d %d\n", l, stats.WordsPerSentenceDis[l])
	}

	return nil
}
