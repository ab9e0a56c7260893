package stat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/segrel/extract"
	"github.com/revelaction/segrel/rule"
	sent "github.com/revelaction/segrel/sentence"
	"github.com/revelaction/segrel/sentence/sentencetest"
)

func TestAggregate(t *testing.T) {
	r := &extract.Runner{Rules: rule.Default(rule.DefaultOptions())}
	docs := []sent.Doc{{Id: 0, Sentences: sentencetest.All()}}

	hdl := NewHandler()
	_, err := r.Run(context.Background(), docs, func(res extract.Result) error {
		hdl.Aggregate(res)
		return nil
	})
	require.NoError(t, err)

	stats := hdl.Get()
	assert.Equal(t, 8, stats.NumSentences)
	assert.Equal(t, 2, stats.Covered[rule.NameTitle])

	// India support, people expect, India show, We support, Modi launch, Minister meet
	assert.Equal(t, 2, stats.Verbs["support"])
	assert.Equal(t, 1, stats.Verbs["launch"])
	assert.Equal(t, map[string]int{"in": 1, "against": 1}, stats.Preps)

	assert.InDelta(t, 25.0, stats.Coverage(rule.NameTitle), 0.001)
	assert.Zero(t, stats.Coverage("nope"))
}

func TestTop(t *testing.T) {
	freq := map[string]int{"support": 2, "launch": 1, "expect": 1, "show": 3}

	assert.Equal(t, []Count{{"show", 3}, {"support", 2}, {"expect", 1}, {"launch", 1}}, Top(freq, 0))
	assert.Equal(t, []Count{{"show", 3}, {"support", 2}}, Top(freq, 2))
	assert.Empty(t, Top(nil, 10))
}

func TestLengths(t *testing.T) {
	hdl := NewHandler()
	for _, s := range []sent.Sentence{sentencetest.SunRises(), sentencetest.BetterLife(), sentencetest.IndiaSupportsEfforts()} {
		hdl.Aggregate(extract.Result{Sentence: s})
	}

	stats := hdl.Get()
	assert.Equal(t, []int{4, 8}, stats.Lengths())
	assert.Equal(t, 2, stats.WordsPerSentenceDis[4])
	assert.Zero(t, stats.Coverage(rule.NameSVO))
}

func TestAggregateModRules(t *testing.T) {
	rules, err := rule.Select(rule.Default(rule.DefaultOptions()), []string{rule.NameSVOMod, rule.NamePrepMod})
	require.NoError(t, err)
	r := &extract.Runner{Rules: rules}
	docs := []sent.Doc{{Id: 0, Sentences: sentencetest.All()}}

	hdl := NewHandler()
	_, err = r.Run(context.Background(), docs, func(res extract.Result) error {
		hdl.Aggregate(res)
		return nil
	})
	require.NoError(t, err)

	stats := hdl.Get()
	assert.Equal(t, 2, stats.Verbs["support"])
	assert.Equal(t, map[string]int{"in": 1, "against": 1}, stats.Preps)
}

func TestAggregateBaseAndModCountedOnce(t *testing.T) {
	s := sentencetest.IndiaSupportsEfforts()
	svo, err := rule.SVO(s)
	require.NoError(t, err)
	svoMod, err := rule.SVOMod(s)
	require.NoError(t, err)

	hdl := NewHandler()
	hdl.Aggregate(extract.Result{Sentence: s, Phrases: append(svo, svoMod...)})

	stats := hdl.Get()
	assert.Equal(t, map[string]int{"support": 1}, stats.Verbs)
	assert.Equal(t, 1, stats.Covered[rule.NameSVO])
	assert.Equal(t, 1, stats.Covered[rule.NameSVOMod])
}
