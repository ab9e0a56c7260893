// Package stat aggregates corpus and extraction statistics.
package stat

import (
	"sort"

	"github.com/revelaction/segrel/extract"
	"github.com/revelaction/segrel/rule"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumSentences          int
	NumTokens             int
	TokensPerSentenceMean int
	// word count of a sentence to number of sentences
	WordsPerSentenceDis map[int]int

	// sentences with at least one phrase, per rule
	Covered map[string]int
	Verbs   map[string]int
	Preps   map[string]int
}

// Count is a frequency table entry.
type Count struct {
	Key string
	N   int
}

func NewHandler() *Handler {
	stats := Stats{
		WordsPerSentenceDis: map[int]int{},
		Covered:             map[string]int{},
		Verbs:               map[string]int{},
		Preps:               map[string]int{},
	}
	return &Handler{
		stats: stats,
	}
}

func (h *Handler) Get() Stats {
	return h.stats
}

// Aggregate adds the sentence and the phrases of one extraction result.
func (h *Handler) Aggregate(res extract.Result) {
	h.stats.NumSentences++
	h.stats.NumTokens += len(res.Sentence.Tokens)
	h.stats.WordsPerSentenceDis[res.Sentence.WordCount()]++
	h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences

	byRule := map[string][]rule.Phrase{}
	for _, p := range res.Phrases {
		byRule[p.Rule] = append(byRule[p.Rule], p)
	}

	for r := range byRule {
		h.stats.Covered[r]++
	}

	// the -mod rules find the same verbs and prepositions as their base
	// rule, they are counted only when the base rule did not run
	for _, p := range either(byRule, rule.NameSVO, rule.NameSVOMod) {
		for _, v := range p.Get(rule.RoleVerb) {
			h.stats.Verbs[v]++
		}
	}
	for _, p := range either(byRule, rule.NamePrep, rule.NamePrepMod) {
		for _, pr := range p.Get(rule.RolePrep) {
			h.stats.Preps[pr]++
		}
	}
}

func either(byRule map[string][]rule.Phrase, base, mod string) []rule.Phrase {
	if phrases, ok := byRule[base]; ok {
		return phrases
	}
	return byRule[mod]
}

// Coverage is the percentage of sentences with at least one phrase of the
// rule.
func (s Stats) Coverage(ruleName string) float64 {
	if s.NumSentences == 0 {
		return 0
	}
	return float64(s.Covered[ruleName]) * 100 / float64(s.NumSentences)
}

// Top returns the n most frequent keys, by count descending and then key
// ascending. n <= 0 returns all of them.
func Top(freq map[string]int, n int) []Count {
	counts := make([]Count, 0, len(freq))
	for k, v := range freq {
		counts = append(counts, Count{Key: k, N: v})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].N != counts[j].N {
			return counts[i].N > counts[j].N
		}
		return counts[i].Key < counts[j].Key
	})

	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// Lengths returns the word counts of the distribution in ascending order.
func (s Stats) Lengths() []int {
	lengths := make([]int, 0, len(s.WordsPerSentenceDis))
	for l := range s.WordsPerSentenceDis {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	return lengths
}
