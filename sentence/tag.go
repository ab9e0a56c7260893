package sentence

import (
	"encoding/json"
	"fmt"
	"strings"
)

// POS is the coarse part-of-speech of a token (Universal POS tags).
type POS uint8

const (
	UnknownPOS POS = iota
	ADJ
	ADP
	ADV
	AUX
	CCONJ
	DET
	INTJ
	NOUN
	NUM
	PART
	PRON
	PROPN
	PUNCT
	SCONJ
	SYM
	VERB
	X
	SPACE
)

var posNames = [...]string{
	UnknownPOS: "",
	ADJ:        "ADJ",
	ADP:        "ADP",
	ADV:        "ADV",
	AUX:        "AUX",
	CCONJ:      "CCONJ",
	DET:        "DET",
	INTJ:       "INTJ",
	NOUN:       "NOUN",
	NUM:        "NUM",
	PART:       "PART",
	PRON:       "PRON",
	PROPN:      "PROPN",
	PUNCT:      "PUNCT",
	SCONJ:      "SCONJ",
	SYM:        "SYM",
	VERB:       "VERB",
	X:          "X",
	SPACE:      "SPACE",
}

var posByName = func() map[string]POS {
	m := make(map[string]POS, len(posNames))
	for p, name := range posNames {
		if name != "" {
			m[name] = POS(p)
		}
	}
	// older spacy models
	m["CONJ"] = CCONJ
	return m
}()

// POSTags returns the known part-of-speech names.
func POSTags() []string {
	return names(posNames[1:])
}

func (p POS) String() string {
	if int(p) < len(posNames) {
		return posNames[p]
	}
	return fmt.Sprintf("POS(%d)", uint8(p))
}

// ParsePOS returns the POS for a tag name. Unknown names are an error.
func ParsePOS(s string) (POS, error) {
	if p, ok := posByName[strings.ToUpper(s)]; ok {
		return p, nil
	}
	return UnknownPOS, &TagError{Kind: "pos", Value: s}
}

func (p POS) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *POS) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParsePOS(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Dep is the dependency relation of a token to its head.
type Dep uint8

const (
	UnknownDep Dep = iota
	Root
	Acl
	Acomp
	Advcl
	Advmod
	Agent
	Amod
	Appos
	Attr
	Aux
	Auxpass
	Case
	Cc
	Ccomp
	Compound
	Conj
	Csubj
	Csubjpass
	Dative
	DepUnclassified
	Det
	Dobj
	Expl
	Intj
	Mark
	Meta
	Neg
	Nmod
	Npadvmod
	Nsubj
	Nsubjpass
	Nummod
	Oprd
	Parataxis
	Pcomp
	Pobj
	Poss
	Preconj
	Predet
	Prep
	Prt
	Punct
	Quantmod
	Relcl
	Xcomp

	// labels only produced by UD trained models
	Iobj
	Obl
	Flat
	Fixed
	Cop
	Clf
	List
	Vocative
	Orphan
	Goeswith
	Reparandum
	Discourse
	Dislocated
)

var depNames = [...]string{
	UnknownDep:      "",
	Root:            "ROOT",
	Acl:             "acl",
	Acomp:           "acomp",
	Advcl:           "advcl",
	Advmod:          "advmod",
	Agent:           "agent",
	Amod:            "amod",
	Appos:           "appos",
	Attr:            "attr",
	Aux:             "aux",
	Auxpass:         "auxpass",
	Case:            "case",
	Cc:              "cc",
	Ccomp:           "ccomp",
	Compound:        "compound",
	Conj:            "conj",
	Csubj:           "csubj",
	Csubjpass:       "csubjpass",
	Dative:          "dative",
	DepUnclassified: "dep",
	Det:             "det",
	Dobj:            "dobj",
	Expl:            "expl",
	Intj:            "intj",
	Mark:            "mark",
	Meta:            "meta",
	Neg:             "neg",
	Nmod:            "nmod",
	Npadvmod:        "npadvmod",
	Nsubj:           "nsubj",
	Nsubjpass:       "nsubjpass",
	Nummod:          "nummod",
	Oprd:            "oprd",
	Parataxis:       "parataxis",
	Pcomp:           "pcomp",
	Pobj:            "pobj",
	Poss:            "poss",
	Preconj:         "preconj",
	Predet:          "predet",
	Prep:            "prep",
	Prt:             "prt",
	Punct:           "punct",
	Quantmod:        "quantmod",
	Relcl:           "relcl",
	Xcomp:           "xcomp",
	Iobj:            "iobj",
	Obl:             "obl",
	Flat:            "flat",
	Fixed:           "fixed",
	Cop:             "cop",
	Clf:             "clf",
	List:            "list",
	Vocative:        "vocative",
	Orphan:          "orphan",
	Goeswith:        "goeswith",
	Reparandum:      "reparandum",
	Discourse:       "discourse",
	Dislocated:      "dislocated",
}

var depByName = func() map[string]Dep {
	m := make(map[string]Dep, len(depNames))
	for d, name := range depNames {
		if name != "" {
			m[strings.ToLower(name)] = Dep(d)
		}
	}
	// UD names for the english labels
	m["obj"] = Dobj
	m["nsubj:pass"] = Nsubjpass
	m["csubj:pass"] = Csubjpass
	m["aux:pass"] = Auxpass
	return m
}()

// DepLabels returns the known dependency labels.
func DepLabels() []string {
	return names(depNames[1:])
}

func names(all []string) []string {
	out := make([]string, 0, len(all))
	for _, n := range all {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

func (d Dep) String() string {
	if int(d) < len(depNames) {
		return depNames[d]
	}
	return fmt.Sprintf("Dep(%d)", uint8(d))
}

// ParseDep returns the Dep for a label. UD subtypes ("nmod:poss") that have
// no english counterpart decode as their base label.
func ParseDep(s string) (Dep, error) {
	label := strings.ToLower(s)
	if d, ok := depByName[label]; ok {
		return d, nil
	}

	if base, _, found := strings.Cut(label, ":"); found {
		if d, ok := depByName[base]; ok {
			return d, nil
		}
	}

	return UnknownDep, &TagError{Kind: "dep", Value: s}
}

func (d Dep) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Dep) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseDep(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// TagError reports a POS or dependency label outside the known sets.
type TagError struct {
	Kind  string
	Value string
}

func (e *TagError) Error() string {
	return fmt.Sprintf("unknown %s tag %q", e.Kind, e.Value)
}
