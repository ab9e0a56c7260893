package query

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/segrel/render"
	"github.com/revelaction/segrel/rule"
	sent "github.com/revelaction/segrel/sentence"
	"github.com/revelaction/segrel/sentence/sentencetest"
)

func handler() *Handler {
	docs := sent.Library{{Id: 0, Title: "IND_73_2018", Sentences: sentencetest.All()}}
	return NewHandler(docs, rule.Default(rule.DefaultOptions()), render.NewTextRenderer(&bytes.Buffer{}))
}

func TestEvalRule(t *testing.T) {
	h := handler()

	results, err := h.Eval(context.Background(), "svo")
	require.NoError(t, err)
	require.Len(t, results, 6)
	assert.Equal(t, "India support efforts", results[0].Phrases[0].Text())
	assert.Equal(t, "people expect life", results[1].Phrases[0].Text())
	assert.Equal(t, "Modi launch Alliance", results[4].Phrases[0].Text())

	results, err = h.Eval(context.Background(), "svo title")
	require.NoError(t, err)
	require.Len(t, results, 6)
	assert.Equal(t, []string{"Modi launch Alliance", "Prime Minister Modi"}, rule.Texts(results[4].Phrases))
}

func TestEvalPattern(t *testing.T) {
	h := handler()

	results, err := h.Eval(context.Background(), "prime minister ADP? PROPN")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, rule.NameExpr, results[0].Phrases[0].Rule)
	assert.Equal(t, "Prime Minister Modi", results[0].Phrases[0].Text())
	require.Len(t, results[1].Phrases, 2)
	assert.Equal(t, "Prime Minister of France", results[1].Phrases[0].Text())

	results, err = h.Eval(context.Background(), "NUM+")
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = h.Eval(context.Background(), "PROPN:nope")
	assert.Error(t, err)

	_, err = h.Eval(context.Background(), "  ")
	assert.Error(t, err)
}

func TestEvalRender(t *testing.T) {
	h := handler()
	var buf bytes.Buffer
	h.Renderer.W = &buf
	h.Renderer.Format = "phrase"

	results, err := h.Eval(context.Background(), "prep")
	require.NoError(t, err)
	require.NoError(t, h.Renderer.Render(results))
	assert.Equal(t, "faith in democracy\nefforts against proliferation\n", buf.String())
}

func TestSuggest(t *testing.T) {
	h := handler()

	var texts []string
	for _, s := range h.suggest("sv") {
		texts = append(texts, s.Text)
	}
	assert.Equal(t, []string{"svo", "svo-mod"}, texts)

	texts = nil
	for _, s := range h.suggest("PROPN:comp") {
		texts = append(texts, s.Text)
	}
	assert.Equal(t, []string{"PROPN:compound"}, texts)

	assert.Empty(t, h.suggest(""))
}
