package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/segrel/config"
	"github.com/revelaction/segrel/logging"
)

// set with -ldflags at release time
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(ui).RunContext(ctx, os.Args); err != nil {
		fprintErr(ui.Err, err)
		stop()
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "segrel: %v\n", err)
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:      "segrel",
		Usage:     "extract relational phrases from parsed speeches",
		Writer:    ui.Out,
		ErrWriter: ui.Err,

		// errors are printed once by main
		ExitErrHandler:       func(*cli.Context, error) {},
		HideVersion:          true,
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "configuration file (default " + config.DefaultFile + ")",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "overrides log.level: debug, info, warn, error",
			},
		},
		Commands: []*cli.Command{
			parseCommand(ui),
			importCommand(ui),
			docCommand(ui),
			labelsCommand(ui),
			sentenceCommand(ui),
			extractCommand(ui),
			exprCommand(ui),
			runsCommand(ui),
			statCommand(ui),
			queryCommand(ui),
			bashCommand(ui),
			versionCommand(ui),
		},
	}
}

// env is what every command needs besides its flags.
type env struct {
	cfg *config.Config
	log *logrus.Logger
	ui  UI
}

func setup(c *cli.Context, ui UI) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, log: log, ui: ui}, nil
}

// action adapts a command function to a cli.ActionFunc.
func action(ui UI, fn func(c *cli.Context, e *env) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		e, err := setup(c, ui)
		if err != nil {
			return err
		}
		return fn(c, e)
	}
}
