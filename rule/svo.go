package rule

import (
	"github.com/revelaction/segrel/match"
	sent "github.com/revelaction/segrel/sentence"
)

var (
	subject = match.All(
		match.Dep(sent.Nsubj, sent.Nsubjpass),
		match.POS(sent.NOUN, sent.PROPN, sent.PRON),
	)

	object = match.All(
		match.Dep(sent.Dobj),
		match.POS(sent.NOUN, sent.PROPN),
	)
)

// SVO extracts "subject verb-lemma object" triples: for every verb, each
// subject on its left is paired with each direct object on its right. A verb
// missing either produces nothing.
var SVO = svo(NameSVO, nil)

// SVOMod is SVO with the adjectives of subject and object prefixed.
var SVOMod = svo(NameSVOMod, AdjectiveModifier)

func svo(name string, mod Modifier) Func {
	return guard(func(s sent.Sentence) ([]Phrase, error) {
		var phrases []Phrase
		for _, verb := range s.Tokens {
			if verb.Pos != sent.VERB {
				continue
			}

			objects := filter(s.Rights(verb), object)
			if len(objects) == 0 {
				continue
			}

			for _, subj := range filter(s.Lefts(verb), subject) {
				for _, obj := range objects {
					b := newBuilder(name)
					addModified(b, s, subj, RoleSubject, RoleSubjectMod, mod)
					b.addText(RoleVerb, lemmaOf(verb), verb.Index)
					addModified(b, s, obj, RoleObject, RoleObjectMod, mod)
					phrases = append(phrases, b.phrase())
				}
			}
		}
		return phrases, nil
	})
}

func filter(tokens []sent.Token, pred match.Predicate) []sent.Token {
	var out []sent.Token
	for _, t := range tokens {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}
