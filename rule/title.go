package rule

import (
	"strings"

	"github.com/revelaction/segrel/match"
	sent "github.com/revelaction/segrel/sentence"
)

// TitlePattern matches "prime minister", an optional preposition and a
// proper noun.
var TitlePattern = match.Pattern{
	{Pred: match.Lower("prime"), Label: "prime"},
	{Pred: match.Lower("minister"), Label: "minister"},
	{Pred: match.POS(sent.ADP), Quant: match.Optional, Label: "ADP"},
	{Pred: match.POS(sent.PROPN), Label: "PROPN"},
}

// Title returns the prime minister reference rule. "Prime Minister of X" is
// discarded unless X is one of the countries.
func Title(countries []string) Func {
	home := match.NewWordSet(countries...)

	return guard(func(s sent.Sentence) ([]Phrase, error) {
		var matches []Phrase
		for _, sp := range TitlePattern.FindAll(s) {
			matches = append(matches, newBuilder(NameTitle).addAll(RoleSpan, sp.Tokens(s)).phrase())
		}

		kept := make([]Phrase, 0, len(matches))
		for _, p := range matches {
			if foreign(p, home) {
				continue
			}
			kept = append(kept, p)
		}
		return kept, nil
	})
}

func foreign(p Phrase, home match.WordSet) bool {
	if len(p.Fragments) < 4 {
		return false
	}
	if strings.ToLower(p.Fragments[2].Text) != "of" {
		return false
	}
	return !home.Has(p.Fragments[3].Text)
}
