package match

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sent "github.com/revelaction/segrel/sentence"
)

func TestPredicates(t *testing.T) {
	tok := sent.Token{
		Text:  "Programme",
		Lemma: "programme",
		Pos:   sent.NOUN,
		Dep:   sent.Pobj,
		Tag:   "NN__Number=Sing",
	}

	tests := []struct {
		name string
		pred Predicate
		want bool
	}{
		{"pos", POS(sent.NOUN, sent.PROPN), true},
		{"pos miss", POS(sent.VERB), false},
		{"dep", Dep(sent.Dobj, sent.Pobj), true},
		{"dep miss", Dep(sent.Nsubj), false},
		{"text exact", Text("Programme"), true},
		{"text case", Text("programme"), false},
		{"lower", Lower("plan", "PROGRAMME"), true},
		{"regex", Regex(regexp.MustCompile(`(?i)^program`)), true},
		{"lemma or", Lemma("plan|programme"), true},
		{"lemma neg", Lemma("!programme"), false},
		{"lemma neg other", Lemma("!plan"), true},
		{"tag single", Tag("Number=Sing"), true},
		{"tag or", Tag("Number=Plur|Number=Sing"), true},
		{"tag and", Tag("NN+Number=Plur"), false},
		{"all", All(POS(sent.NOUN), Dep(sent.Pobj)), true},
		{"all miss", All(POS(sent.NOUN), Dep(sent.Dobj)), false},
		{"any", Any(POS(sent.VERB), Dep(sent.Pobj)), true},
		{"not", Not(POS(sent.NOUN)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred(tok))
		})
	}
}

func TestParse(t *testing.T) {
	tok := sent.Token{Text: "of", Lemma: "of", Pos: sent.ADP, Dep: sent.Prep}

	tests := []struct {
		item  string
		want  bool
		quant Quantifier
	}{
		{"ADP", true, One},
		{"ADP?", true, Optional},
		{"ADP:prep", true, One},
		{"ADP:pobj", false, One},
		{"ANY:prep+", true, OneOrMore},
		{"NOUN|ADP", true, One},
		{"of", true, One},
		{"OF", false, One}, // upper case is a POS
		{"in|of", true, One},
		{"!of", false, One},
		{"@of", true, One},
		{"@!of", false, One},
		{"/^o/", true, One},
		{"/^o/?", true, Optional},
	}

	for _, tt := range tests {
		t.Run(tt.item, func(t *testing.T) {
			if tt.item == "OF" {
				_, err := Parse([]string{tt.item})
				assert.Error(t, err)
				return
			}
			p, err := Parse([]string{tt.item})
			require.NoError(t, err)
			require.Len(t, p, 1)
			assert.Equal(t, tt.want, p[0].Pred(tok))
			assert.Equal(t, tt.quant, p[0].Quant)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range [][]string{
		nil,
		{""},
		{"NOTAPOS"},
		{"NOUN:notadep"},
		{"/([/"},
		{"@"},
		{"ANY"},
	} {
		_, err := Parse(in)
		assert.Error(t, err, "%q", in)
	}
}

func TestPatternString(t *testing.T) {
	p := MustParse("prime minister ADP? PROPN")
	assert.Equal(t, "prime minister ADP? PROPN", p.String())
}
