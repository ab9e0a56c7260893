package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/revelaction/segrel/extract"
	"github.com/revelaction/segrel/rule"
	sent "github.com/revelaction/segrel/sentence"
)

const (
	partialOffset = 6
	DefaultFormat = "all"
)

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"

	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

// Renderer writes extraction results.
type Renderer interface {
	Render(results []extract.Result) error
}

func SupportedFormats() []string {
	return []string{"all", "part", "phrase", "roles", "aggr"}
}

// IsSupported reports whether format is one of SupportedFormats.
func IsSupported(format string) bool {
	for _, f := range SupportedFormats() {
		if f == format {
			return true
		}
	}
	return false
}

type TextRenderer struct {
	W io.Writer

	HasColor bool

	HasPrefix bool

	// Format determines how each phrase is printed
	//
	// all: the whole sentence, with the phrase words highlighted
	// part: the surroundings of the phrase words in the sentence
	// phrase: the phrase text
	// roles: role=text pairs of the phrase fragments
	// aggr: a frequency table of the phrase texts
	Format string
}

var _ Renderer = (*TextRenderer)(nil)

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{W: w, Format: DefaultFormat}
}

// Render writes one line per phrase, or the aggregated table.
func (r *TextRenderer) Render(results []extract.Result) error {
	aggregated := map[string]int{}

	for _, res := range results {
		for _, p := range res.Phrases {
			if r.Format == "aggr" {
				aggregated[p.Text()]++
				continue
			}

			var text string
			switch r.Format {
			case "part":
				text = r.syntagma(res.Sentence.Tokens, p.Indexes())
			case "phrase":
				text = p.Text()
			case "roles":
				text = roles(p)
			default:
				text = r.sentence(res.Sentence.Tokens, p.Indexes())
			}

			prefix := r.prefix(res, p.Rule)
			if _, err := fmt.Fprintf(r.W, "%s%s\n", prefix, strings.ReplaceAll(text, "\n", " ")); err != nil {
				return err
			}
		}
	}

	if r.Format == "aggr" {
		return r.aggr(aggregated)
	}
	return nil
}

// Sentence writes the sentence text after prefix.
func (r *TextRenderer) Sentence(s sent.Sentence, prefix string) error {
	text := r.sentence(s.Tokens, nil)
	_, err := fmt.Fprintf(r.W, "%s%s\n", prefix, strings.ReplaceAll(text, "\n", " "))
	return err
}

// Span writes the sentence with the tokens of span highlighted.
func (r *TextRenderer) Span(s sent.Sentence, start, end int, prefix string) error {
	var idx []int
	for i := start; i < end; i++ {
		idx = append(idx, i)
	}

	var text string
	if r.Format == "part" {
		text = r.syntagma(s.Tokens, idx)
	} else {
		text = r.sentence(s.Tokens, idx)
	}
	_, err := fmt.Fprintf(r.W, "%s%s\n", prefix, strings.ReplaceAll(text, "\n", " "))
	return err
}

// Tokens writes a table with one token per line.
func (r *TextRenderer) Tokens(s sent.Sentence) error {
	tw := tabwriter.NewWriter(r.W, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tTEXT\tLEMMA\tPOS\tTAG\tDEP\tHEAD")
	for _, t := range s.Tokens {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n", t.Index, t.Text, t.Lemma, t.Pos, t.Tag, t.Dep, t.Head)
	}
	return tw.Flush()
}

// Tree writes the dependency tree, one token per line, children indented
// under their head.
func (r *TextRenderer) Tree(s sent.Sentence) error {
	root, err := s.Root()
	if err != nil {
		return err
	}

	if err := s.Validate(); err != nil {
		return err
	}

	var walk func(t sent.Token, depth int) error
	walk = func(t sent.Token, depth int) error {
		label := t.Dep.String()
		if r.HasColor {
			label = Yellow256 + label + Off
		}
		if _, err := fmt.Fprintf(r.W, "%s%s %s/%s\n", strings.Repeat("  ", depth), t.Text, t.Pos, label); err != nil {
			return err
		}
		for _, c := range s.Children(t) {
			if err := walk(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	return walk(root, 0)
}

// sentence rebuilds the text from the token offsets, so the original spacing
// is kept.
func (r *TextRenderer) sentence(tokens []sent.Token, matches []int) string {
	var str strings.Builder
	var lastIdx, lastLen int
	for i, token := range tokens {
		l := len([]rune(token.Text))
		if i == 0 {
			str.WriteString(colorToken(token, matches, r.HasColor))
			lastIdx = token.Idx
			lastLen = l
			continue
		}

		// tokens of a multi token word share the idx, the text is written once
		diff := token.Idx - lastIdx
		if diff > 0 {
			str.WriteString(strings.Repeat(" ", max(diff-lastLen, 0)))
			str.WriteString(colorToken(token, matches, r.HasColor))
		}

		lastIdx = token.Idx
		lastLen = l
	}

	return str.String()
}

func (r *TextRenderer) syntagma(tokens []sent.Token, matches []int) string {
	// if not matches, we print the whole sentence
	if len(matches) == 0 {
		return r.sentence(tokens, matches)
	}

	firstMatchIndex := matches[0]
	lastMatchIndex := matches[0]
	for _, idx := range matches {
		firstMatchIndex = min(firstMatchIndex, idx)
		lastMatchIndex = max(lastMatchIndex, idx)
	}

	lastTokenIndex := len(tokens) - 1

	syntagmaFirstIdx := 0
	syntagmaLastIdx := lastTokenIndex

	if firstMatchIndex > partialOffset {
		syntagmaFirstIdx = firstMatchIndex - partialOffset
	}

	if lastTokenIndex-lastMatchIndex > partialOffset {
		syntagmaLastIdx = lastMatchIndex + partialOffset
	}

	return r.sentence(tokens[syntagmaFirstIdx:syntagmaLastIdx+1], matches)
}

func roles(p rule.Phrase) string {
	pairs := make([]string, 0, len(p.Fragments))
	for _, f := range p.Fragments {
		pairs = append(pairs, fmt.Sprintf("%s=%s", f.Role, f.Text))
	}
	return strings.Join(pairs, " ")
}

func colorToken(token sent.Token, matches []int, hasColor bool) string {
	if !hasColor {
		return token.Text
	}

	for _, idx := range matches {
		if idx == token.Index {
			return Green256 + token.Text + Off
		}
	}

	return token.Text
}

func (r *TextRenderer) prefix(res extract.Result, ruleName string) string {
	if !r.HasPrefix {
		return ""
	}

	if r.HasColor {
		return fmt.Sprintf("[%s %2d %5d] %s ✍  ", r.title(res.Title), res.DocId, res.Sentence.Id, Yellow256+fmt.Sprintf("%-15s", ruleName)+Off)
	}
	return fmt.Sprintf("[%s %2d %5d] %-15s ✍  ", r.title(res.Title), res.DocId, res.Sentence.Id, ruleName)
}

func (r *TextRenderer) title(title string) string {
	var part string
	if len(title) <= 20 {
		part = fmt.Sprintf("%-20s", title)
	} else {
		part = title[:20]
	}

	if !r.HasColor {
		return part
	}
	return Grey256 + part + Off
}

// NextFormat sets the Format option to the next one, following the
// SupportedFormats() order.
func (r *TextRenderer) NextFormat() {
	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			r.Format = supported[(i+1)%len(supported)]
			return
		}
	}
	r.Format = supported[0]
}

func (r *TextRenderer) NextPrefix() {
	// toggle
	r.HasPrefix = !r.HasPrefix
}

// Count is one row of the aggr table.
type Count struct {
	N    int
	Text string
}

// Aggregate sorts the texts by count, descending, and then shorter text
// first.
func Aggregate(counts map[string]int) []Count {
	sl := make([]Count, 0, len(counts))
	for text, n := range counts {
		sl = append(sl, Count{N: n, Text: text})
	}

	sort.Slice(sl, func(i, j int) bool {
		if sl[i].N != sl[j].N {
			return sl[i].N > sl[j].N
		}
		if len(sl[i].Text) != len(sl[j].Text) {
			return len(sl[i].Text) < len(sl[j].Text)
		}
		return sl[i].Text < sl[j].Text
	})
	return sl
}

func (r *TextRenderer) aggr(counts map[string]int) error {
	var prefix string
	for _, c := range Aggregate(counts) {
		if r.HasPrefix {
			prefix = fmt.Sprintf("[%5d] ✍  ", c.N)
		}

		if _, err := fmt.Fprintf(r.W, "%s%s\n", prefix, c.Text); err != nil {
			return err
		}
	}
	return nil
}
