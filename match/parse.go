package match

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	sent "github.com/revelaction/segrel/sentence"
)

// Parse converts user input into a Pattern. Each argument is one slot:
//
//	DET              part-of-speech
//	PROPN:compound   part-of-speech and dependency label
//	ANY:nsubj        dependency label only
//	prime            case-insensitive text
//	plan|scheme      any of the words
//	!of              any text but the word
//	@launch          lemma (same | and ! syntax)
//	/^[A-Z]+$/       regular expression on the text
//
// A trailing ? makes the slot optional, a trailing + makes it repeatable.
func Parse(args []string) (Pattern, error) {
	var pattern Pattern
	for _, arg := range args {
		for _, item := range strings.Fields(arg) {
			slot, err := parseSlot(item)
			if err != nil {
				return nil, err
			}
			pattern = append(pattern, slot)
		}
	}

	if len(pattern) == 0 {
		return nil, errors.New("empty pattern")
	}

	return pattern, nil
}

// ParsePattern parses a whitespace separated pattern.
func ParsePattern(expr string) (Pattern, error) {
	return Parse([]string{expr})
}

// MustParse is like ParsePattern but panics on error. For patterns known at
// compile time.
func MustParse(expr string) Pattern {
	p, err := ParsePattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func parseSlot(item string) (Slot, error) {
	quant := One
	if len(item) > 1 {
		switch item[len(item)-1] {
		case '?':
			quant = Optional
			item = item[:len(item)-1]
		case '+':
			quant = OneOrMore
			item = item[:len(item)-1]
		}
	}

	pred, err := parsePredicate(item)
	if err != nil {
		return Slot{}, err
	}

	return Slot{Pred: pred, Quant: quant, Label: item}, nil
}

func parsePredicate(item string) (Predicate, error) {
	if len(item) >= 2 && strings.HasPrefix(item, "/") && strings.HasSuffix(item, "/") {
		re, err := regexp.Compile(item[1 : len(item)-1])
		if err != nil {
			return nil, fmt.Errorf("invalid regex %q: %w", item, err)
		}
		return Regex(re), nil
	}

	if strings.HasPrefix(item, "@") {
		if len(item) == 1 {
			return nil, errors.New("empty lemma")
		}
		return Lemma(item[1:]), nil
	}

	firstChar := []rune(item)[0]
	if unicode.IsUpper(firstChar) && unicode.IsLetter(firstChar) {
		return parseTag(item)
	}

	if strings.HasPrefix(item, "!") {
		if len(item) == 1 {
			return Text("!"), nil
		}
		return Not(Lower(strings.Split(item[1:], "|")...)), nil
	}

	return Lower(strings.Split(item, "|")...), nil
}

// parseTag parses POS[:dep]
func parseTag(item string) (Predicate, error) {
	posStr, depStr, hasDep := strings.Cut(item, ":")

	var preds []Predicate
	if posStr != "ANY" {
		var tags []sent.POS
		for _, p := range strings.Split(posStr, "|") {
			pos, err := sent.ParsePOS(p)
			if err != nil {
				return nil, err
			}
			tags = append(tags, pos)
		}
		preds = append(preds, POS(tags...))
	}

	if hasDep {
		var labels []sent.Dep
		for _, d := range strings.Split(depStr, "|") {
			dep, err := sent.ParseDep(d)
			if err != nil {
				return nil, err
			}
			labels = append(labels, dep)
		}
		preds = append(preds, Dep(labels...))
	}

	if len(preds) == 0 {
		return nil, fmt.Errorf("slot %q matches any token", item)
	}

	return All(preds...), nil
}
