// Package rule extracts phrases from parsed sentences by walking their
// dependency trees.
//
// Every rule is a pure function of one sentence: it reads the tokens, never
// modifies them, and keeps no state between calls. Rules can run in any
// order, or concurrently, over the same sentence.
package rule

import (
	"fmt"
	"regexp"
	"strings"

	sent "github.com/revelaction/segrel/sentence"
)

const (
	NameSVO            = "svo"
	NameSVOMod         = "svo-mod"
	NameModNoun        = "modnoun"
	NamePrep           = "prep"
	NamePrepMod        = "prep-mod"
	NameInitiativeTree = "initiative-tree"
	NameInitiative     = "initiative"
	NameTitle          = "title"
)

// Keywords are the words naming an initiative.
var Keywords = []string{"plan", "programme", "scheme", "campaign", "initiative", "conference", "agreement", "alliance"}

// Countries are the proper nouns kept after "prime minister of".
var Countries = []string{"India"}

// Func extracts phrases from one sentence. It returns a
// *sentence.StructuralError if the sentence is not a well formed tree.
type Func func(sent.Sentence) ([]Phrase, error)

// Rule is a named extraction function.
type Rule struct {
	Name        string
	Description string
	Apply       Func
}

// Options parametrize the lexical rules.
type Options struct {
	Keywords  []string
	Countries []string
}

func DefaultOptions() Options {
	return Options{Keywords: Keywords, Countries: Countries}
}

// Default returns all the rules, in the order they are documented.
func Default(opts Options) []Rule {
	if len(opts.Keywords) == 0 {
		opts.Keywords = Keywords
	}
	if len(opts.Countries) == 0 {
		opts.Countries = Countries
	}

	return []Rule{
		{NameSVO, "subject verb-lemma object", SVO},
		{NameModNoun, "adjective or compound modifiers of a subject or object noun", ModNoun},
		{NameSVOMod, "subject verb-lemma object, with adjectives", SVOMod},
		{NamePrep, "noun preposition noun", Prep},
		{NamePrepMod, "noun preposition noun, with compound and amod modifiers", PrepMod},
		{NameInitiativeTree, "proper nouns under an initiative keyword", InitiativeTree(opts.Keywords)},
		{NameInitiative, "determiner proper-noun run ending in an initiative keyword", Initiative(opts.Keywords)},
		{NameTitle, "prime minister references", Title(opts.Countries)},
	}
}

// Names returns the rule names.
func Names(rules []Rule) []string {
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name)
	}
	return names
}

// Lookup returns the rule with the given name.
func Lookup(rules []Rule, name string) (Rule, bool) {
	for _, r := range rules {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// Select returns the named rules, in the given order. No names selects all.
func Select(rules []Rule, names []string) ([]Rule, error) {
	if len(names) == 0 {
		return rules, nil
	}

	selected := make([]Rule, 0, len(names))
	for _, n := range names {
		r, ok := Lookup(rules, n)
		if !ok {
			return nil, fmt.Errorf("unknown rule %q, known rules are %s", n, strings.Join(Names(rules), ", "))
		}
		selected = append(selected, r)
	}
	return selected, nil
}

// guard skips blank sentences and rejects malformed ones before f walks
// the tree.
func guard(f Func) Func {
	return func(s sent.Sentence) ([]Phrase, error) {
		if s.IsBlank() {
			return nil, nil
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		return f(s)
	}
}

// WithPrefilter runs f only on sentences whose text matches re.
func WithPrefilter(re *regexp.Regexp, f Func) Func {
	return func(s sent.Sentence) ([]Phrase, error) {
		if !re.MatchString(s.String()) {
			return nil, nil
		}
		return f(s)
	}
}

// KeywordRegexp matches any of the words, whole word and case-insensitive.
func KeywordRegexp(words []string) *regexp.Regexp {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

func lemmaOf(t sent.Token) string {
	if t.Lemma != "" {
		return t.Lemma
	}
	return strings.ToLower(t.Text)
}
