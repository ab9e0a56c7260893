package match

import (
	"regexp"
	"strings"

	sent "github.com/revelaction/segrel/sentence"
)

// Predicate is a single token constraint.
type Predicate func(sent.Token) bool

// POS matches tokens with one of the given part-of-speech tags.
func POS(tags ...sent.POS) Predicate {
	return func(t sent.Token) bool {
		for _, p := range tags {
			if t.Pos == p {
				return true
			}
		}
		return false
	}
}

// Dep matches tokens with one of the given dependency labels.
func Dep(labels ...sent.Dep) Predicate {
	return func(t sent.Token) bool {
		for _, d := range labels {
			if t.Dep == d {
				return true
			}
		}
		return false
	}
}

// Text matches the surface form exactly.
func Text(s string) Predicate {
	return func(t sent.Token) bool {
		return t.Text == s
	}
}

// Lower matches tokens whose lower-cased text is one of words.
func Lower(words ...string) Predicate {
	set := NewWordSet(words...)
	return func(t sent.Token) bool {
		return set.Has(t.Text)
	}
}

// Regex matches tokens whose text matches re.
func Regex(re *regexp.Regexp) Predicate {
	return func(t sent.Token) bool {
		return re.MatchString(t.Text)
	}
}

// Lemma matches the lemma field. The expression supports OR values
// ("plan|scheme") and a negation prefix ("!be").
func Lemma(expr string) Predicate {
	if strings.HasPrefix(expr, "!") {
		neg := strings.TrimPrefix(expr, "!")
		return func(t sent.Token) bool {
			return neg != t.Lemma
		}
	}

	values := strings.Split(expr, "|")
	return func(t sent.Token) bool {
		for _, v := range values {
			if v == t.Lemma {
				return true
			}
		}
		return false
	}
}

// Tag matches the fine grained tag string.
//
// A Tag string from spacy contains substrings separated with '|':
//
//	DET__Definite=Def|Gender=Fem|Number=Sing|PronType=Art
//
// Do not mistake with our | operator: "Number=Sing|Number=Plur" matches
// either, "Gender=Fem+Number=Sing" requires both.
func Tag(expr string) Predicate {
	switch separator(expr) {
	case "|":
		parts := strings.Split(expr, "|")
		return func(t sent.Token) bool {
			for _, p := range parts {
				if strings.Contains(t.Tag, p) {
					return true
				}
			}
			return false
		}
	case "+":
		parts := strings.Split(expr, "+")
		return func(t sent.Token) bool {
			for _, p := range parts {
				if !strings.Contains(t.Tag, p) {
					return false
				}
			}
			return true
		}
	default:
		return func(t sent.Token) bool {
			return strings.Contains(t.Tag, expr)
		}
	}
}

// All matches when every predicate matches.
func All(preds ...Predicate) Predicate {
	return func(t sent.Token) bool {
		for _, p := range preds {
			if !p(t) {
				return false
			}
		}
		return true
	}
}

// Any matches when at least one predicate matches.
func Any(preds ...Predicate) Predicate {
	return func(t sent.Token) bool {
		for _, p := range preds {
			if p(t) {
				return true
			}
		}
		return false
	}
}

// Not negates p.
func Not(p Predicate) Predicate {
	return func(t sent.Token) bool {
		return !p(t)
	}
}

func separator(field string) string {
	if strings.Contains(field, "|") {
		return "|"
	}

	if strings.Contains(field, "+") {
		return "+"
	}

	return ""
}

// WordSet is a case-insensitive set of words.
type WordSet map[string]struct{}

func NewWordSet(words ...string) WordSet {
	set := make(WordSet, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// Has reports whether the lower-cased word is in the set.
func (ws WordSet) Has(word string) bool {
	_, ok := ws[strings.ToLower(word)]
	return ok
}

// Words returns the members of the set in no particular order.
func (ws WordSet) Words() []string {
	words := make([]string, 0, len(ws))
	for w := range ws {
		words = append(words, w)
	}
	return words
}
