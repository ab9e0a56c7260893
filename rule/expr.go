package rule

import (
	"github.com/revelaction/segrel/match"
	sent "github.com/revelaction/segrel/sentence"
)

const NameExpr = "expr"

// Expr returns a rule emitting one phrase per match of p.
func Expr(p match.Pattern) Func {
	return guard(func(s sent.Sentence) ([]Phrase, error) {
		var phrases []Phrase
		for _, sp := range p.FindAll(s) {
			phrases = append(phrases, newBuilder(NameExpr).addAll(RoleSpan, sp.Tokens(s)).phrase())
		}
		return phrases, nil
	})
}
