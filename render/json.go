package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/segrel/extract"
	"github.com/revelaction/segrel/rule"
)

// JSONRenderer writes extraction results as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// JSONResult is the serialized form of an extraction result. Sentences
// without phrases are left out.
type JSONResult struct {
	DocId      int           `json:"doc_id"`
	Title      string        `json:"title"`
	SentenceId int           `json:"sentence_id"`
	Text       string        `json:"text"`
	Phrases    []rule.Phrase `json:"phrases"`
}

// Render serializes the results as a JSON array.
func (r *JSONRenderer) Render(results []extract.Result) error {
	out := make([]JSONResult, 0, len(results))
	for _, res := range results {
		if len(res.Phrases) == 0 {
			continue
		}
		out = append(out, JSONResult{
			DocId:      res.DocId,
			Title:      res.Title,
			SentenceId: res.Sentence.Id,
			Text:       res.Sentence.String(),
			Phrases:    res.Phrases,
		})
	}
	return json.NewEncoder(r.W).Encode(out)
}

// compile-time interface check
var _ Renderer = (*JSONRenderer)(nil)
