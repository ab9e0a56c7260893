package parser

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/segrel/rule"
	sent "github.com/revelaction/segrel/sentence"
)

const indiaTokens = `[
	{"id":0,"head":1,"pos":"PROPN","dep":"nsubj","tag":"NNP","idx":0,"text":"India","lemma":"India","index":0},
	{"id":1,"head":1,"pos":"VERB","dep":"ROOT","tag":"VBZ","idx":6,"text":"supports","lemma":"support","index":1},
	{"id":2,"head":1,"pos":"NOUN","dep":"dobj","tag":"NNS","idx":15,"text":"efforts","lemma":"effort","index":2},
	{"id":3,"head":1,"pos":"PUNCT","dep":"punct","tag":".","idx":22,"text":".","lemma":".","index":3}
]`

// spacyServer answers every text with the India sentence.
func spacyServer(t *testing.T, calls *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/parse", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}

		var req parseRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultModel, req.Model)

		parses := make([]json.RawMessage, len(req.Texts))
		for i := range req.Texts {
			parses[i] = json.RawMessage(indiaTokens)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"sentences": parses})
	}))
}

func TestSpacyClientParse(t *testing.T) {
	srv := spacyServer(t, nil)
	defer srv.Close()

	c := NewSpacyClient(SpacyConfig{BaseURL: srv.URL + "/"})
	s, err := c.Parse(context.Background(), "India supports efforts.")
	require.NoError(t, err)

	assert.Equal(t, "India supports efforts.", s.Text)
	require.Len(t, s.Tokens, 4)
	assert.Equal(t, sent.PROPN, s.Tokens[0].Pos)
	assert.Equal(t, sent.Root, s.Tokens[1].Dep)
	require.NoError(t, s.Validate())

	phrases, err := rule.SVO(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"India support efforts"}, rule.Texts(phrases))
}

func TestSpacyClientBatches(t *testing.T) {
	var calls int32
	srv := spacyServer(t, &calls)
	defer srv.Close()

	c := NewSpacyClient(SpacyConfig{BaseURL: srv.URL, BatchSize: 2})
	texts := []string{"a", "  ", "b", "c", "", "d", "e"}
	sentences, err := c.ParseBatch(context.Background(), texts)
	require.NoError(t, err)

	require.Len(t, sentences, len(texts))
	// five non blank texts in batches of two
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
	assert.Empty(t, sentences[1].Tokens)
	assert.Empty(t, sentences[4].Tokens)
	assert.Len(t, sentences[6].Tokens, 4)
	assert.Equal(t, "e", sentences[6].Text)
}

func TestSpacyClientStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"detail":"model not loaded"}`))
	}))
	defer srv.Close()

	c := NewSpacyClient(SpacyConfig{BaseURL: srv.URL})
	_, err := c.Parse(context.Background(), "India supports efforts.")

	var pf *ParseFailure
	require.True(t, errors.As(err, &pf))
	assert.Equal(t, "India supports efforts.", pf.Text)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "model not loaded", apiErr.Detail)
}

func TestSpacyClientUnknownTag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokens := strings.Replace(indiaTokens, `"PROPN"`, `"NOPE"`, 1)
		_, _ = w.Write([]byte(`{"sentences":[` + tokens + `]}`))
	}))
	defer srv.Close()

	c := NewSpacyClient(SpacyConfig{BaseURL: srv.URL})
	_, err := c.Parse(context.Background(), "India supports efforts.")

	var pf *ParseFailure
	require.True(t, errors.As(err, &pf))
	var tagErr *sent.TagError
	require.True(t, errors.As(err, &tagErr))
	assert.Equal(t, "NOPE", tagErr.Value)
}

func TestSpacyClientCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"sentences":[]}`))
	}))
	defer srv.Close()

	c := NewSpacyClient(SpacyConfig{BaseURL: srv.URL})
	_, err := c.Parse(context.Background(), "India supports efforts.")
	assert.ErrorContains(t, err, "got 0 parses for 1 texts")
}

func TestRebase(t *testing.T) {
	tokens := []sent.Token{
		{Index: 10, Head: 11},
		{Index: 11, Head: 11},
	}
	rebase(tokens)
	assert.Equal(t, 0, tokens[0].Index)
	assert.Equal(t, 1, tokens[0].Head)
	assert.Equal(t, 1, tokens[1].Head)
	assert.Equal(t, 1, tokens[1].Id)
}

type countingParser struct {
	Parser
	texts []string
}

func (p *countingParser) ParseBatch(ctx context.Context, texts []string) ([]sent.Sentence, error) {
	p.texts = append(p.texts, texts...)
	return p.Parser.ParseBatch(ctx, texts)
}

func (p *countingParser) Parse(ctx context.Context, text string) (sent.Sentence, error) {
	p.texts = append(p.texts, text)
	return p.Parser.Parse(ctx, text)
}

func TestCached(t *testing.T) {
	srv := spacyServer(t, nil)
	defer srv.Close()

	inner := &countingParser{Parser: NewSpacyClient(SpacyConfig{BaseURL: srv.URL})}
	c := NewCached(inner, 0)

	_, err := c.Parse(context.Background(), "a")
	require.NoError(t, err)

	sentences, err := c.ParseBatch(context.Background(), []string{"a", "b", "a"})
	require.NoError(t, err)
	require.Len(t, sentences, 3)
	assert.Equal(t, []string{"a", "b"}, inner.texts)
	assert.Equal(t, 2, c.Len())

	_, err = c.ParseBatch(context.Background(), []string{"b", "a"})
	require.NoError(t, err)
	assert.Len(t, inner.texts, 2)

	// cached tokens are not shared with callers
	s, err := c.Parse(context.Background(), "a")
	require.NoError(t, err)
	s.Tokens[0].Text = "changed"
	s, err = c.Parse(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "India", s.Tokens[0].Text)
}

func TestCachedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewCached(NewSpacyClient(SpacyConfig{BaseURL: srv.URL}), 0)
	_, err := c.ParseBatch(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.Zero(t, c.Len())
}

func TestCachedStoresCopy(t *testing.T) {
	srv := spacyServer(t, nil)
	defer srv.Close()

	c := NewCached(NewSpacyClient(SpacyConfig{BaseURL: srv.URL}), 0)

	// the first caller gets the parse that is stored
	s, err := c.Parse(context.Background(), "a")
	require.NoError(t, err)
	s.Tokens[0].Text = "changed"

	sentences, err := c.ParseBatch(context.Background(), []string{"b"})
	require.NoError(t, err)
	sentences[0].Tokens[0].Text = "changed"

	s, err = c.Parse(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "India", s.Tokens[0].Text)

	s, err = c.Parse(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, "India", s.Tokens[0].Text)
}

func TestParseFailureTruncatesRunes(t *testing.T) {
	err := &ParseFailure{Text: strings.Repeat("é", 50), Err: errors.New("boom")}

	msg := err.Error()
	assert.True(t, utf8.ValidString(msg))
	assert.Contains(t, msg, strings.Repeat("é", 40)+"...")
	assert.NotContains(t, msg, strings.Repeat("é", 41))

	short := &ParseFailure{Text: "India", Err: errors.New("boom")}
	assert.Equal(t, `parse "India": boom`, short.Error())
}
