package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/revelaction/segrel/extract"
	"github.com/revelaction/segrel/rule"
	sent "github.com/revelaction/segrel/sentence"
	"github.com/revelaction/segrel/sentence/sentencetest"
)

func results(t *testing.T, f rule.Func, sentences ...sent.Sentence) []extract.Result {
	t.Helper()
	var res []extract.Result
	for _, s := range sentences {
		phrases, err := f(s)
		if err != nil {
			t.Fatalf("rule: %v", err)
		}
		res = append(res, extract.Result{DocId: 0, Title: "IND_73_2018", Sentence: s, Phrases: phrases})
	}
	return res
}

func render(t *testing.T, r *TextRenderer, res []extract.Result) string {
	t.Helper()
	var buf bytes.Buffer
	r.W = &buf
	if err := r.Render(res); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestRenderFormats(t *testing.T) {
	res := results(t, rule.SVO, sentencetest.IndiaSupportsEfforts(), sentencetest.SunRises())

	cases := []struct {
		format string
		want   string
	}{
		{"all", "India supports efforts .\n"},
		{"phrase", "India support efforts\n"},
		{"roles", "subject=India verb=support object=efforts\n"},
		{"part", "India supports efforts .\n"},
	}

	for _, tc := range cases {
		r := NewTextRenderer(nil)
		r.Format = tc.format
		if got := render(t, r, res); got != tc.want {
			t.Errorf("format %s: got %q, want %q", tc.format, got, tc.want)
		}
	}
}

func TestRenderPrefix(t *testing.T) {
	res := results(t, rule.SVO, sentencetest.IndiaSupportsEfforts())

	r := NewTextRenderer(nil)
	r.Format = "phrase"
	r.HasPrefix = true
	got := render(t, r, res)

	if !strings.HasPrefix(got, "[IND_73_2018           0     0] svo") {
		t.Errorf("unexpected prefix in %q", got)
	}
	if !strings.HasSuffix(got, "India support efforts\n") {
		t.Errorf("unexpected phrase in %q", got)
	}
}

func TestRenderColor(t *testing.T) {
	res := results(t, rule.SVO, sentencetest.IndiaSupportsEfforts())

	r := NewTextRenderer(nil)
	r.HasColor = true
	got := render(t, r, res)

	if !strings.Contains(got, Green256+"India"+Off) {
		t.Errorf("subject not highlighted in %q", got)
	}
	if strings.Contains(got, Green256+"."+Off) {
		t.Errorf("punctuation highlighted in %q", got)
	}
}

func TestRenderAggr(t *testing.T) {
	title := rule.Title(rule.Countries)
	res := results(t, title,
		sentencetest.PrimeMinisterOf("India"),
		sentencetest.SolarAlliance(),
		sentencetest.PrimeMinisterOf("France"),
	)

	r := NewTextRenderer(nil)
	r.Format = "aggr"
	got := render(t, r, res)

	want := "Prime Minister of India\nPrime Minister Modi\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAggregateOrder(t *testing.T) {
	got := Aggregate(map[string]int{"bb": 1, "a": 1, "ccc": 2, "b": 1})
	want := []Count{{2, "ccc"}, {1, "a"}, {1, "b"}, {1, "bb"}}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTree(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextRenderer(&buf)
	if err := r.Tree(sentencetest.IndiaSupportsEfforts()); err != nil {
		t.Fatalf("tree: %v", err)
	}

	want := "supports VERB/ROOT\n  India PROPN/nsubj\n  efforts NOUN/dobj\n  . PUNCT/punct\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}

	s := sentencetest.IndiaSupportsEfforts()
	s.Tokens[0].Head = 0
	if err := r.Tree(s); err == nil {
		t.Error("expected error for a sentence with two roots")
	}
}

func TestNextFormat(t *testing.T) {
	r := NewTextRenderer(nil)
	seen := map[string]bool{}
	for range SupportedFormats() {
		seen[r.Format] = true
		r.NextFormat()
	}

	if r.Format != DefaultFormat {
		t.Errorf("expected to cycle back to %s, got %s", DefaultFormat, r.Format)
	}
	if len(seen) != len(SupportedFormats()) {
		t.Errorf("expected %d formats, saw %d", len(SupportedFormats()), len(seen))
	}
}
