package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/revelaction/segrel/extract"
	"github.com/revelaction/segrel/rule"
	"github.com/revelaction/segrel/sentence/sentencetest"
)

func TestJSONRendererRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	if err := r.Render(nil); err != nil {
		t.Fatalf("render: %v", err)
	}

	var results []JSONResult
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestJSONRendererRenderOneResult(t *testing.T) {
	s := sentencetest.NuclearProliferation()
	phrases, err := rule.PrepMod(s)
	if err != nil {
		t.Fatalf("rule: %v", err)
	}

	results := []extract.Result{
		{DocId: 1, Title: "IND_73_2018", Sentence: s, Phrases: phrases},
		{DocId: 1, Title: "IND_73_2018", Sentence: sentencetest.SunRises()},
	}

	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	if err := r.Render(results); err != nil {
		t.Fatalf("render: %v", err)
	}

	var got []JSONResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}

	if got[0].Title != "IND_73_2018" {
		t.Errorf("expected title 'IND_73_2018', got %q", got[0].Title)
	}

	if got[0].SentenceId != s.Id {
		t.Errorf("expected sentence_id %d, got %d", s.Id, got[0].SentenceId)
	}

	if len(got[0].Phrases) != 1 {
		t.Fatalf("expected 1 phrase, got %d", len(got[0].Phrases))
	}

	if text := got[0].Phrases[0].Text(); text != "efforts against nuclear proliferation" {
		t.Errorf("unexpected phrase %q", text)
	}

	if role := got[0].Phrases[0].Fragments[2].Role; role != rule.RoleNoun2Mod {
		t.Errorf("expected role noun2_mod, got %q", role)
	}
}
