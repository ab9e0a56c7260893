package sentence

import (
	"strings"
)

// Doc is a parsed speech: an ordered list of sentences plus metadata.
type Doc struct {
	Id int `json:"id"`

	Title string `json:"title"`

	// Labels are free strings like "country:IND" or "year:2018"
	Labels    []string   `json:"labels,omitempty"`
	Sentences []Sentence `json:"sentences"`
}

// Library is a collection of Doc
type Library []Doc

// NumSentences returns the number of sentences of all docs in the library.
func (l Library) NumSentences() int {
	n := 0
	for _, d := range l {
		n += len(d.Sentences)
	}
	return n
}

// Sentence is the parse of one input string. It is read-only once built: no
// function of this module mutates its tokens.
type Sentence struct {
	Id    int    `json:"id"`
	DocId int    `json:"doc_id"`
	Text  string `json:"text,omitempty"`

	Tokens []Token `json:"tokens"`
}

// Token represents a word of the sentence, with POS and metadata.
type Token struct {
	Id         int `json:"id"`
	Head       int `json:"head"`
	SentenceId int `json:"sent"`
	Pos        POS `json:"pos"`
	Dep        Dep `json:"dep"`

	// A string containing detailed POS data
	Tag string `json:"tag"`

	// the index of the start character of the token in the original doc (set by spacy, stanza)
	Idx int `json:"idx"`

	// The unmodified word
	Text string `json:"text"`

	// The lemma of the word
	Lemma string `json:"lemma"`

	// The index of the word in the sentence, starting at 0.
	Index int `json:"index"`
}

// IsRoot reports whether the token heads itself.
func (t Token) IsRoot() bool {
	return t.Head == t.Index
}

// String returns the source text of the sentence, or the token texts joined
// by a space if the source text was not kept.
func (s Sentence) String() string {
	if s.Text != "" {
		return s.Text
	}

	words := make([]string, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		words = append(words, t.Text)
	}

	return strings.Join(words, " ")
}

// IsBlank reports whether the sentence has no word tokens: no tokens at all,
// or only whitespace and punctuation.
func (s Sentence) IsBlank() bool {
	for _, t := range s.Tokens {
		if t.Pos == SPACE || t.Pos == PUNCT {
			continue
		}
		if strings.TrimSpace(t.Text) != "" {
			return false
		}
	}
	return true
}

// WordCount counts the whitespace separated words of the sentence text.
func (s Sentence) WordCount() int {
	return len(strings.Fields(s.String()))
}

// Token returns the token at index i.
func (s Sentence) Token(i int) (Token, bool) {
	if i < 0 || i >= len(s.Tokens) {
		return Token{}, false
	}
	return s.Tokens[i], true
}
