package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/segrel/query"
	"github.com/revelaction/segrel/render"
	"github.com/revelaction/segrel/rule"
)

// Query command
func queryCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "interactive prompt to run rules or sequence patterns over the corpus",
		Flags: append(corpusFlags(),
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: render.DefaultFormat, Usage: "initial format, Ctrl+F cycles"},
			&cli.BoolFlag{Name: "no-color", Usage: "do not highlight the phrase words"},
			&cli.BoolFlag{Name: "no-prefix", Usage: "start without prefix, Ctrl+X toggles"},
		),
		Action: action(ui, func(c *cli.Context, e *env) error {
			var pool Pool
			defer pool.Close()

			lib, err := corpus(c, e, &pool, true)
			if err != nil {
				return err
			}

			r := render.NewTextRenderer(e.ui.Out)
			r.HasColor = !c.Bool("no-color")
			r.HasPrefix = !c.Bool("no-prefix")
			if render.IsSupported(c.String("format")) {
				r.Format = c.String("format")
			}

			// now present the REPL
			h := query.NewHandler(lib, rule.Default(e.cfg.RuleOptions()), r)
			h.Out = e.ui.Out
			h.Workers = e.cfg.Extract.Workers
			h.Logger = e.log
			if c.Bool("short") {
				h.Filter = runner(c, e, nil).Filter
			}
			return h.Run(c.Context)
		}),
	}
}
