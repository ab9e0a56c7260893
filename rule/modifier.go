package rule

import (
	"github.com/revelaction/segrel/match"
	sent "github.com/revelaction/segrel/sentence"
)

// Modifier returns the tokens that modify t, in sentence order. Modifiers
// are sub-rules: the composed rules call them on each noun they extract.
type Modifier func(s sent.Sentence, t sent.Token) []sent.Token

// ChildrenMatching is the Modifier selecting the children of t that match
// pred.
func ChildrenMatching(pred match.Predicate) Modifier {
	return func(s sent.Sentence, t sent.Token) []sent.Token {
		var mods []sent.Token
		for _, c := range s.Children(t) {
			if pred(c) {
				mods = append(mods, c)
			}
		}
		return mods
	}
}

var (
	// AdjectiveModifier selects adjective children.
	AdjectiveModifier = ChildrenMatching(match.POS(sent.ADJ))

	// NounModifier selects compound and adjectival modifier children.
	NounModifier = ChildrenMatching(match.Dep(sent.Compound, sent.Amod))

	// modNounModifier is the child selection of ModNoun: adjectives or
	// compounds.
	modNounModifier = ChildrenMatching(match.Any(match.POS(sent.ADJ), match.Dep(sent.Compound)))

	modNounTrigger = match.All(
		match.POS(sent.NOUN),
		match.Dep(sent.Dobj, sent.Pobj, sent.Nsubj, sent.Nsubjpass),
	)
)

// ModNoun extracts subject and object nouns with their adjective or compound
// children: "better life" from "Our people are expecting a better life".
// Nouns without such children produce nothing.
var ModNoun = guard(func(s sent.Sentence) ([]Phrase, error) {
	var phrases []Phrase
	for _, t := range s.Tokens {
		if !modNounTrigger(t) {
			continue
		}

		mods := modNounModifier(s, t)
		if len(mods) == 0 {
			continue
		}

		b := newBuilder(NameModNoun).addAll(RoleModifier, mods).add(RoleNoun, t)
		phrases = append(phrases, b.phrase())
	}
	return phrases, nil
})

// addModified appends the modifiers of t, if mod is set, and then t.
func addModified(b *builder, s sent.Sentence, t sent.Token, role, modRole Role, mod Modifier) {
	if mod != nil {
		b.addAll(modRole, mod(s, t))
	}
	b.add(role, t)
}
