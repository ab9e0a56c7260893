package parser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	sent "github.com/revelaction/segrel/sentence"
)

const conlluFields = 10

// ReadCoNLLU reads pre-parsed sentences in CoNLL-U format. Multiword token
// lines and empty nodes are skipped. The "# text =" comment, if present,
// becomes the sentence text.
func ReadCoNLLU(r io.Reader) ([]sent.Sentence, error) {
	var sentences []sent.Sentence
	var cur sent.Sentence
	var idx int

	flush := func() {
		if len(cur.Tokens) > 0 {
			cur.Id = len(sentences)
			for i := range cur.Tokens {
				cur.Tokens[i].SentenceId = cur.Id
			}
			sentences = append(sentences, cur)
		}
		cur = sent.Sentence{}
		idx = 0
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(text) == "" {
			flush()
			continue
		}

		if strings.HasPrefix(text, "#") {
			if t, ok := strings.CutPrefix(text, "# text ="); ok {
				cur.Text = strings.TrimSpace(t)
			}
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) != conlluFields {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", line, conlluFields, len(fields))
		}

		// 1-2 multiword token, 1.1 empty node
		if strings.ContainsAny(fields[0], "-.") {
			continue
		}

		tok, err := conlluToken(fields, len(cur.Tokens))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		tok.Idx = idx
		idx += len(tok.Text)
		if !strings.Contains(fields[9], "SpaceAfter=No") {
			idx++
		}

		cur.Tokens = append(cur.Tokens, tok)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read CoNLL-U: %w", err)
	}

	flush()
	return sentences, nil
}

func conlluToken(fields []string, position int) (sent.Token, error) {
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return sent.Token{}, fmt.Errorf("invalid ID %q: %w", fields[0], err)
	}
	if id != position+1 {
		return sent.Token{}, fmt.Errorf("ID %d out of sequence, expected %d", id, position+1)
	}

	head, err := strconv.Atoi(fields[6])
	if err != nil {
		return sent.Token{}, fmt.Errorf("invalid HEAD %q: %w", fields[6], err)
	}

	pos, err := sent.ParsePOS(fields[3])
	if err != nil {
		return sent.Token{}, err
	}

	dep, err := sent.ParseDep(fields[7])
	if err != nil {
		return sent.Token{}, err
	}

	index := id - 1
	if head == 0 {
		head = id
	}

	lemma := fields[2]
	if lemma == "_" {
		lemma = ""
	}

	tag := fields[4]
	if tag == "_" {
		tag = ""
	}

	return sent.Token{
		Id:    index,
		Head:  head - 1,
		Pos:   pos,
		Dep:   dep,
		Tag:   tag,
		Text:  fields[1],
		Lemma: lemma,
		Index: index,
	}, nil
}
