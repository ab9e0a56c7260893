package parser

import (
	"context"
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"

	sent "github.com/revelaction/segrel/sentence"
)

// Cached is a Parser that remembers the sentences of the texts it already
// parsed.
type Cached struct {
	parser Parser
	cache  *gocache.Cache
}

// NewCached wraps p. A zero ttl keeps entries forever.
func NewCached(p Parser, ttl time.Duration) *Cached {
	expiration := gocache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = 10 * time.Minute
	}

	return &Cached{
		parser: p,
		cache:  gocache.New(expiration, cleanup),
	}
}

func (c *Cached) get(text string) (sent.Sentence, bool) {
	v, found := c.cache.Get(text)
	if !found {
		return sent.Sentence{}, false
	}
	s, ok := v.(sent.Sentence)
	if !ok {
		return sent.Sentence{}, false
	}
	s.Tokens = slices.Clone(s.Tokens)
	return s, true
}

// set stores a copy, the caller keeps its own tokens.
func (c *Cached) set(text string, s sent.Sentence) {
	s.Tokens = slices.Clone(s.Tokens)
	c.cache.SetDefault(text, s)
}

func (c *Cached) Parse(ctx context.Context, text string) (sent.Sentence, error) {
	if s, ok := c.get(text); ok {
		return s, nil
	}

	s, err := c.parser.Parse(ctx, text)
	if err != nil {
		return sent.Sentence{}, err
	}

	c.set(text, s)
	return s, nil
}

// ParseBatch only sends the texts missing from the cache.
func (c *Cached) ParseBatch(ctx context.Context, texts []string) ([]sent.Sentence, error) {
	sentences := make([]sent.Sentence, len(texts))

	var missing []string
	var at []int
	for i, text := range texts {
		if s, ok := c.get(text); ok {
			sentences[i] = s
			continue
		}
		missing = append(missing, text)
		at = append(at, i)
	}

	if len(missing) == 0 {
		return sentences, nil
	}

	parsed, err := c.parser.ParseBatch(ctx, missing)
	if err != nil {
		return nil, err
	}

	for j, i := range at {
		sentences[i] = parsed[j]
		c.set(texts[i], parsed[j])
	}

	return sentences, nil
}

// Len returns the number of cached sentences.
func (c *Cached) Len() int {
	return c.cache.ItemCount()
}
