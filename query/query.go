package query

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/sirupsen/logrus"

	"github.com/revelaction/segrel/extract"
	"github.com/revelaction/segrel/match"
	"github.com/revelaction/segrel/render"
	"github.com/revelaction/segrel/rule"
	sent "github.com/revelaction/segrel/sentence"
)

const (
	completionThreshold = 1

	quit = "quit"
)

type Handler struct {
	Docs     sent.Library
	Rules    []rule.Rule
	Renderer *render.TextRenderer
	Filter   extract.Filter
	Workers  int
	Logger   logrus.FieldLogger

	// Out receives the informational lines of the prompt
	Out io.Writer
}

func NewHandler(docs sent.Library, rules []rule.Rule, r *render.TextRenderer) *Handler {
	return &Handler{
		Docs:     docs,
		Rules:    rules,
		Renderer: r,
		Out:      os.Stdout,
	}
}

func (h *Handler) Run(ctx context.Context) error {

	fmt.Fprintln(h.Out, "🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("segrel query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.Out, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintf(h.Out, "Prefix set to %t\n", h.Renderer.HasPrefix)
				}}),
		)

		in = strings.TrimSpace(in)
		if in == quit {
			return nil
		}

		if in == "" {
			continue
		}

		history = append(history, in)

		results, err := h.Eval(ctx, in)
		if err != nil {
			fmt.Fprintf(h.Out, "🔧 %v\n", err)
			continue
		}

		if err := h.Renderer.Render(results); err != nil {
			return err
		}
	}
}

// Eval runs the input over the loaded docs. An input made only of rule names
// runs those rules, anything else is parsed as a sequence pattern.
func (h *Handler) Eval(ctx context.Context, in string) ([]extract.Result, error) {
	rules, err := h.parse(in)
	if err != nil {
		return nil, err
	}

	runner := extract.Runner{
		Rules:   rules,
		Workers: h.Workers,
		Filter:  h.Filter,
		Logger:  h.Logger,
	}

	var results []extract.Result
	_, err = runner.Run(ctx, h.Docs, func(res extract.Result) error {
		if len(res.Phrases) > 0 {
			results = append(results, res)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (h *Handler) parse(in string) ([]rule.Rule, error) {
	fields := strings.Fields(in)
	if len(fields) == 0 {
		return nil, errors.New("no rule or pattern given")
	}

	if rules, err := rule.Select(h.Rules, fields); err == nil {
		return rules, nil
	}

	p, err := match.Parse(fields)
	if err != nil {
		return nil, fmt.Errorf("not a rule and not a pattern: %w", err)
	}

	return []rule.Rule{{
		Name:        rule.NameExpr,
		Description: p.String(),
		Apply:       rule.Expr(p),
	}}, nil
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	return h.suggest(in.GetWordBeforeCursor())
}

// suggest completes the word being typed with rule names and tags.
func (h *Handler) suggest(word string) []prompt.Suggest {
	s := []prompt.Suggest{}
	if len(word) < completionThreshold {
		return s
	}

	for _, r := range h.Rules {
		if strings.HasPrefix(r.Name, word) {
			s = append(s, prompt.Suggest{Text: r.Name, Description: "🔖 " + r.Description})
		}
	}

	for _, tag := range sent.POSTags() {
		if strings.HasPrefix(tag, word) {
			s = append(s, prompt.Suggest{Text: tag, Description: "pos"})
		}
	}

	// dependency labels follow a part of speech
	pos, dep, found := strings.Cut(word, ":")
	if !found {
		return s
	}

	for _, label := range sent.DepLabels() {
		if strings.HasPrefix(label, dep) {
			s = append(s, prompt.Suggest{Text: pos + ":" + label, Description: "dep"})
		}
	}

	return s
}
