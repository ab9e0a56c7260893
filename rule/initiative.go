package rule

import (
	"strings"

	"github.com/revelaction/segrel/match"
	sent "github.com/revelaction/segrel/sentence"
)

// InitiativeTree returns the recall oriented initiative rule: for every
// token whose lowercased text is a keyword, the proper nouns of its subtree
// in sentence order. Only sentences containing a keyword as a whole word are
// walked.
func InitiativeTree(keywords []string) Func {
	words := match.NewWordSet(keywords...)
	trigger := match.Lower(keywords...)

	f := func(s sent.Sentence) ([]Phrase, error) {
		var phrases []Phrase
		for _, t := range s.Tokens {
			if !trigger(t) {
				continue
			}

			sub, err := s.Subtree(t)
			if err != nil {
				return nil, err
			}

			b := newBuilder(NameInitiativeTree)
			for _, st := range sub {
				if st.Pos == sent.PROPN {
					b.add(RoleName, st)
				}
			}

			if b.len() == 0 {
				continue
			}
			phrases = append(phrases, b.phrase())
		}
		return phrases, nil
	}

	return guard(WithPrefilter(KeywordRegexp(words.Words()), f))
}

// InitiativePattern is a determiner, two compound proper nouns, up to three
// more proper nouns and one or more keywords.
func InitiativePattern(keywords []string) match.Pattern {
	compound := match.All(match.POS(sent.PROPN), match.Dep(sent.Compound))
	propn := match.POS(sent.PROPN)

	return match.Pattern{
		{Pred: match.POS(sent.DET), Label: "DET"},
		{Pred: compound, Label: "PROPN:compound"},
		{Pred: compound, Label: "PROPN:compound"},
		{Pred: propn, Quant: match.Optional, Label: "PROPN"},
		{Pred: propn, Quant: match.Optional, Label: "PROPN"},
		{Pred: propn, Quant: match.Optional, Label: "PROPN"},
		{Pred: match.Lower(keywords...), Quant: match.OneOrMore, Label: strings.Join(keywords, "|")},
	}
}

// Initiative returns the precision oriented initiative rule. Its matches
// drop the leading determiner. A match containing the text of the previous
// match replaces it.
func Initiative(keywords []string) Func {
	words := match.NewWordSet(keywords...)
	pattern := InitiativePattern(words.Words())

	f := func(s sent.Sentence) ([]Phrase, error) {
		var phrases []Phrase
		for _, sp := range pattern.FindAll(s) {
			tokens := sp.Tokens(s)
			if len(tokens) > 0 && tokens[0].Pos == sent.DET {
				tokens = tokens[1:]
			}

			p := newBuilder(NameInitiative).addAll(RoleName, tokens).phrase()

			if last := len(phrases) - 1; last >= 0 && strings.Contains(p.Text(), phrases[last].Text()) {
				phrases[last] = p
				continue
			}
			phrases = append(phrases, p)
		}
		return phrases, nil
	}

	return guard(WithPrefilter(KeywordRegexp(words.Words()), f))
}
