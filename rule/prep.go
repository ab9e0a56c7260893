package rule

import (
	"github.com/revelaction/segrel/match"
	sent "github.com/revelaction/segrel/sentence"
)

// minPhraseLen guards against degenerate output like "a b".
const minPhraseLen = 2

var prepObject = match.POS(sent.NOUN, sent.PROPN)

// Prep extracts "noun preposition noun" phrases: a preposition attached to
// a noun, followed by the nouns on its right. "faith in democracy".
var Prep = prep(NamePrep, nil)

// PrepMod is Prep with the compound and amod children of both nouns:
// "efforts against nuclear proliferation".
var PrepMod = prep(NamePrepMod, NounModifier)

func prep(name string, mod Modifier) Func {
	return guard(func(s sent.Sentence) ([]Phrase, error) {
		var phrases []Phrase
		for _, adp := range s.Tokens {
			if adp.Pos != sent.ADP || adp.IsRoot() {
				continue
			}

			head, ok := s.Head(adp)
			if !ok || head.Pos != sent.NOUN {
				continue
			}

			objects := filter(s.Rights(adp), prepObject)
			if len(objects) == 0 {
				continue
			}

			b := newBuilder(name)
			addModified(b, s, head, RoleNoun1, RoleNoun1Mod, mod)
			b.add(RolePrep, adp)
			for _, obj := range objects {
				addModified(b, s, obj, RoleNoun2, RoleNoun2Mod, mod)
			}

			p := b.phrase()
			if len(p.Text()) <= minPhraseLen {
				continue
			}
			phrases = append(phrases, p)
		}
		return phrases, nil
	})
}
