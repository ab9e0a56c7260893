package rule

import (
	"strings"

	sent "github.com/revelaction/segrel/sentence"
)

// Role is the grammatical role of a phrase fragment.
type Role string

const (
	RoleSubject    Role = "subject"
	RoleVerb       Role = "verb"
	RoleObject     Role = "object"
	RoleSubjectMod Role = "subject_mod"
	RoleObjectMod  Role = "object_mod"
	RoleModifier   Role = "modifier"
	RoleNoun       Role = "noun"
	RoleNoun1      Role = "noun1"
	RolePrep       Role = "prep"
	RoleNoun2      Role = "noun2"
	RoleNoun1Mod   Role = "noun1_mod"
	RoleNoun2Mod   Role = "noun2_mod"
	RoleName       Role = "name"
	RoleSpan       Role = "span"
)

// Fragment is one word of an extracted phrase. Index points to the sentence
// token the text comes from.
type Fragment struct {
	Role  Role   `json:"role"`
	Text  string `json:"text"`
	Index int    `json:"index"`
}

// Phrase is the output unit of a rule: an ordered sequence of fragments,
// not necessarily contiguous in the sentence.
type Phrase struct {
	Rule      string     `json:"rule"`
	Fragments []Fragment `json:"fragments"`
}

// Text joins the fragment texts with a space.
func (p Phrase) Text() string {
	words := make([]string, 0, len(p.Fragments))
	for _, f := range p.Fragments {
		words = append(words, f.Text)
	}
	return strings.Join(words, " ")
}

// Get returns the texts of the fragments with role r, in order.
func (p Phrase) Get(r Role) []string {
	var texts []string
	for _, f := range p.Fragments {
		if f.Role == r {
			texts = append(texts, f.Text)
		}
	}
	return texts
}

// Indexes returns the sentence indexes of the fragments.
func (p Phrase) Indexes() []int {
	idx := make([]int, 0, len(p.Fragments))
	for _, f := range p.Fragments {
		idx = append(idx, f.Index)
	}
	return idx
}

// Texts returns the text of each phrase.
func Texts(phrases []Phrase) []string {
	texts := make([]string, 0, len(phrases))
	for _, p := range phrases {
		texts = append(texts, p.Text())
	}
	return texts
}

// builder accumulates the fragments of one phrase.
type builder struct {
	rule      string
	fragments []Fragment
}

func newBuilder(rule string) *builder {
	return &builder{rule: rule}
}

func (b *builder) add(r Role, t sent.Token) *builder {
	b.fragments = append(b.fragments, Fragment{Role: r, Text: t.Text, Index: t.Index})
	return b
}

func (b *builder) addText(r Role, text string, index int) *builder {
	b.fragments = append(b.fragments, Fragment{Role: r, Text: text, Index: index})
	return b
}

func (b *builder) addAll(r Role, tokens []sent.Token) *builder {
	for _, t := range tokens {
		b.add(r, t)
	}
	return b
}

func (b *builder) len() int {
	return len(b.fragments)
}

// phrase returns a copy, so the builder can keep growing.
func (b *builder) phrase() Phrase {
	fragments := make([]Fragment, len(b.fragments))
	copy(fragments, b.fragments)
	return Phrase{Rule: b.rule, Fragments: fragments}
}
