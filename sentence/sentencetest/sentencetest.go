// Package sentencetest builds parsed sentences for tests without a parser.
// The fixtures reproduce the parses en_core_web_sm produces for them.
package sentencetest

import (
	"strings"

	sent "github.com/revelaction/segrel/sentence"
)

// W describes one token: text, lemma, pos, dep and the index of its head.
// An empty lemma defaults to the lower-cased text.
type W struct {
	Text  string
	Lemma string
	Pos   string
	Dep   string
	Head  int
}

// Build assigns indexes and offsets and panics on unknown tags.
func Build(id int, words ...W) sent.Sentence {
	s := sent.Sentence{Id: id}
	texts := make([]string, 0, len(words))
	idx := 0
	for i, w := range words {
		pos, err := sent.ParsePOS(w.Pos)
		if err != nil {
			panic(err)
		}
		dep, err := sent.ParseDep(w.Dep)
		if err != nil {
			panic(err)
		}

		lemma := w.Lemma
		if lemma == "" {
			lemma = strings.ToLower(w.Text)
		}

		s.Tokens = append(s.Tokens, sent.Token{
			Id:         i,
			Head:       w.Head,
			SentenceId: id,
			Pos:        pos,
			Dep:        dep,
			Idx:        idx,
			Text:       w.Text,
			Lemma:      lemma,
			Index:      i,
		})
		texts = append(texts, w.Text)
		idx += len([]rune(w.Text)) + 1
	}
	s.Text = strings.Join(texts, " ")
	return s
}

// IndiaSupportsEfforts: "India supports efforts ."
func IndiaSupportsEfforts() sent.Sentence {
	return Build(0,
		W{"India", "India", "PROPN", "nsubj", 1},
		W{"supports", "support", "VERB", "ROOT", 1},
		W{"efforts", "effort", "NOUN", "dobj", 1},
		W{".", "", "PUNCT", "punct", 1},
	)
}

// SunRises: "The sun rises ."
func SunRises() sent.Sentence {
	return Build(1,
		W{"The", "the", "DET", "det", 1},
		W{"sun", "", "NOUN", "nsubj", 2},
		W{"rises", "rise", "VERB", "ROOT", 2},
		W{".", "", "PUNCT", "punct", 2},
	)
}

// BetterLife: "Our people are expecting a better life ."
func BetterLife() sent.Sentence {
	return Build(2,
		W{"Our", "our", "PRON", "poss", 1},
		W{"people", "", "NOUN", "nsubj", 3},
		W{"are", "be", "AUX", "aux", 3},
		W{"expecting", "expect", "VERB", "ROOT", 3},
		W{"a", "", "DET", "det", 6},
		W{"better", "good", "ADJ", "amod", 6},
		W{"life", "", "NOUN", "dobj", 3},
		W{".", "", "PUNCT", "punct", 3},
	)
}

// FaithInDemocracy: "India has once again shown faith in democracy ."
func FaithInDemocracy() sent.Sentence {
	return Build(3,
		W{"India", "India", "PROPN", "nsubj", 4},
		W{"has", "have", "AUX", "aux", 4},
		W{"once", "", "ADV", "advmod", 3},
		W{"again", "", "ADV", "advmod", 4},
		W{"shown", "show", "VERB", "ROOT", 4},
		W{"faith", "", "NOUN", "dobj", 4},
		W{"in", "", "ADP", "prep", 5},
		W{"democracy", "", "NOUN", "pobj", 6},
		W{".", "", "PUNCT", "punct", 4},
	)
}

// NuclearProliferation: "We support efforts against nuclear proliferation ."
func NuclearProliferation() sent.Sentence {
	return Build(4,
		W{"We", "we", "PRON", "nsubj", 1},
		W{"support", "", "VERB", "ROOT", 1},
		W{"efforts", "effort", "NOUN", "dobj", 1},
		W{"against", "", "ADP", "prep", 2},
		W{"nuclear", "", "ADJ", "amod", 5},
		W{"proliferation", "", "NOUN", "pobj", 3},
		W{".", "", "PUNCT", "punct", 1},
	)
}

// SolarAlliance: "Prime Minister Modi launched the International Solar Alliance"
func SolarAlliance() sent.Sentence {
	return Build(5,
		W{"Prime", "Prime", "PROPN", "compound", 1},
		W{"Minister", "Minister", "PROPN", "compound", 2},
		W{"Modi", "Modi", "PROPN", "nsubj", 3},
		W{"launched", "launch", "VERB", "ROOT", 3},
		W{"the", "", "DET", "det", 7},
		W{"International", "International", "PROPN", "compound", 7},
		W{"Solar", "Solar", "PROPN", "compound", 7},
		W{"Alliance", "Alliance", "PROPN", "dobj", 3},
	)
}

// PrimeMinisterOf: "the Prime Minister of <country> met the Prime Minister of India"
func PrimeMinisterOf(country string) sent.Sentence {
	return Build(6,
		W{"the", "", "DET", "det", 2},
		W{"Prime", "Prime", "PROPN", "compound", 2},
		W{"Minister", "Minister", "PROPN", "nsubj", 5},
		W{"of", "", "ADP", "prep", 2},
		W{country, country, "PROPN", "pobj", 3},
		W{"met", "meet", "VERB", "ROOT", 5},
		W{"the", "", "DET", "det", 8},
		W{"Prime", "Prime", "PROPN", "compound", 8},
		W{"Minister", "Minister", "PROPN", "dobj", 5},
		W{"of", "", "ADP", "prep", 8},
		W{"India", "India", "PROPN", "pobj", 9},
	)
}

// UjjwalaProgramme: "I spoke about the Ujjwala programme"
func UjjwalaProgramme() sent.Sentence {
	return Build(7,
		W{"I", "I", "PRON", "nsubj", 1},
		W{"spoke", "speak", "VERB", "ROOT", 1},
		W{"about", "", "ADP", "prep", 1},
		W{"the", "", "DET", "det", 5},
		W{"Ujjwala", "Ujjwala", "PROPN", "compound", 5},
		W{"programme", "", "NOUN", "pobj", 2},
	)
}

// All returns every fixture, with sentence ids in order.
func All() []sent.Sentence {
	return []sent.Sentence{
		IndiaSupportsEfforts(),
		SunRises(),
		BetterLife(),
		FaithInDemocracy(),
		NuclearProliferation(),
		SolarAlliance(),
		PrimeMinisterOf("France"),
		UjjwalaProgramme(),
	}
}
