package match

import (
	"strings"

	sent "github.com/revelaction/segrel/sentence"
)

// Quantifier is the number of consecutive tokens a Slot can consume.
type Quantifier int

const (
	One Quantifier = iota
	Optional
	OneOrMore
)

func (q Quantifier) String() string {
	switch q {
	case Optional:
		return "?"
	case OneOrMore:
		return "+"
	}
	return ""
}

// Slot is one position of a Pattern.
type Slot struct {
	Pred  Predicate
	Quant Quantifier

	// Label is the textual form of the slot, if it was parsed.
	Label string
}

// Pattern is an ordered list of slots matched against contiguous tokens.
type Pattern []Slot

// Span is the token range [Start, End) of a match.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of tokens of the span.
func (sp Span) Len() int {
	return sp.End - sp.Start
}

// Tokens returns the tokens of the span.
func (sp Span) Tokens(s sent.Sentence) []sent.Token {
	return s.Tokens[sp.Start:sp.End]
}

// Text joins the token texts of the span with a space.
func (sp Span) Text(s sent.Sentence) string {
	words := make([]string, 0, sp.Len())
	for _, t := range sp.Tokens(s) {
		words = append(words, t.Text)
	}
	return strings.Join(words, " ")
}

// String returns the pattern in the syntax accepted by Parse, when all
// slots carry a label.
func (p Pattern) String() string {
	sl := make([]string, 0, len(p))
	for _, s := range p {
		sl = append(sl, s.Label+s.Quant.String())
	}
	return strings.Join(sl, " ")
}

// FindAll returns the non-overlapping matches of the pattern, scanning left
// to right. Quantified slots are greedy and backtrack like a regular
// expression engine does. After a match the scan resumes at its end; empty
// matches are never returned.
func (p Pattern) FindAll(s sent.Sentence) []Span {
	if len(p) == 0 {
		return nil
	}

	var spans []Span
	start := 0
	for start < len(s.Tokens) {
		end, ok := p.matchAt(s.Tokens, start, 0)
		if ok && end > start {
			spans = append(spans, Span{Start: start, End: end})
			start = end
			continue
		}
		start++
	}

	return spans
}

// MatchAt reports whether the pattern matches starting exactly at start, and
// where the match ends.
func (p Pattern) MatchAt(s sent.Sentence, start int) (Span, bool) {
	end, ok := p.matchAt(s.Tokens, start, 0)
	if !ok || end == start {
		return Span{}, false
	}
	return Span{Start: start, End: end}, true
}

func (p Pattern) matchAt(tokens []sent.Token, pos, slot int) (int, bool) {
	if slot == len(p) {
		return pos, true
	}

	s := p[slot]
	switch s.Quant {
	case Optional:
		if pos < len(tokens) && s.Pred(tokens[pos]) {
			if end, ok := p.matchAt(tokens, pos+1, slot+1); ok {
				return end, true
			}
		}
		return p.matchAt(tokens, pos, slot+1)

	case OneOrMore:
		n := 0
		for pos+n < len(tokens) && s.Pred(tokens[pos+n]) {
			n++
		}
		// longest run first, then give back one token at a time
		for ; n >= 1; n-- {
			if end, ok := p.matchAt(tokens, pos+n, slot+1); ok {
				return end, true
			}
		}
		return 0, false

	default:
		if pos < len(tokens) && s.Pred(tokens[pos]) {
			return p.matchAt(tokens, pos+1, slot+1)
		}
		return 0, false
	}
}
