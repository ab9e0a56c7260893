package sentence

import (
	"fmt"
)

// StructuralError is returned when the head relation of a sentence is not a
// single rooted tree. The sentence can not be processed; other sentences can.
type StructuralError struct {
	SentenceId int
	Index      int
	Reason     string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("malformed sentence %d at token %d: %s", e.SentenceId, e.Index, e.Reason)
}

// Children returns the tokens whose head is t, in sentence order. The root
// is never its own child.
func (s Sentence) Children(t Token) []Token {
	var children []Token
	for _, c := range s.Tokens {
		if c.Head == t.Index && c.Index != t.Index {
			children = append(children, c)
		}
	}
	return children
}

// Lefts returns the children of t that precede it.
func (s Sentence) Lefts(t Token) []Token {
	var lefts []Token
	for _, c := range s.Children(t) {
		if c.Index < t.Index {
			lefts = append(lefts, c)
		}
	}
	return lefts
}

// Rights returns the children of t that follow it.
func (s Sentence) Rights(t Token) []Token {
	var rights []Token
	for _, c := range s.Children(t) {
		if c.Index > t.Index {
			rights = append(rights, c)
		}
	}
	return rights
}

// Head returns the head token of t. The root is its own head.
func (s Sentence) Head(t Token) (Token, bool) {
	return s.Token(t.Head)
}

// Root returns the single token that heads itself.
func (s Sentence) Root() (Token, error) {
	var root *Token
	for i := range s.Tokens {
		if !s.Tokens[i].IsRoot() {
			continue
		}
		if root != nil {
			return Token{}, s.structuralError(s.Tokens[i].Index, "multiple roots")
		}
		root = &s.Tokens[i]
	}

	if root == nil {
		return Token{}, s.structuralError(-1, "no root")
	}

	return *root, nil
}

// Subtree returns t and every token reachable from it through child edges,
// in sentence order. A token reached twice means the head relation has a
// cycle; the walk stops with a StructuralError instead of looping.
func (s Sentence) Subtree(t Token) ([]Token, error) {
	visited := make([]bool, len(s.Tokens))
	if t.Index < 0 || t.Index >= len(visited) {
		return nil, s.structuralError(t.Index, "token out of range")
	}

	stack := []Token{t}
	visited[t.Index] = true

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, c := range s.Children(cur) {
			if visited[c.Index] {
				return nil, s.structuralError(c.Index, "cycle in head relation")
			}
			visited[c.Index] = true
			stack = append(stack, c)
		}
	}

	subtree := make([]Token, 0, len(s.Tokens))
	for i, v := range visited {
		if v {
			subtree = append(subtree, s.Tokens[i])
		}
	}

	return subtree, nil
}

// Validate checks that the tokens are indexed by position and that the head
// relation forms exactly one tree.
func (s Sentence) Validate() error {
	if len(s.Tokens) == 0 {
		return nil
	}

	for i, t := range s.Tokens {
		if t.Index != i {
			return s.structuralError(i, fmt.Sprintf("token index %d out of order", t.Index))
		}
		if t.Head < 0 || t.Head >= len(s.Tokens) {
			return s.structuralError(i, fmt.Sprintf("head %d out of range", t.Head))
		}
	}

	root, err := s.Root()
	if err != nil {
		return err
	}

	// Every token must reach the root by following heads. state 1 is on the
	// current path, state 2 is known to reach the root.
	state := make([]uint8, len(s.Tokens))
	state[root.Index] = 2
	for i := range s.Tokens {
		var path []int
		cur := i
		for state[cur] == 0 {
			state[cur] = 1
			path = append(path, cur)
			cur = s.Tokens[cur].Head
		}

		if state[cur] == 1 {
			return s.structuralError(cur, "cycle in head relation")
		}

		for _, p := range path {
			state[p] = 2
		}
	}

	return nil
}

func (s Sentence) structuralError(index int, reason string) *StructuralError {
	return &StructuralError{SentenceId: s.Id, Index: index, Reason: reason}
}
