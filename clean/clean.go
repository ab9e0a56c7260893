// Package clean prepares speech transcripts for parsing: it removes
// numbering, punctuation noise and references, and splits the text into
// sentences.
package clean

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	paragraphNumber = regexp.MustCompile(`[0-9]+.\t`)
	reference       = regexp.MustCompile(`[(\[].*?[)\]]`)
	sentenceEnd     = regexp.MustCompile(`[.?]`)

	replacer = strings.NewReplacer(
		"'s", "",
		"-", " ",
		"— ", "",
		`"`, "",
		"Mr.", "Mr",
		"Mrs.", "Mrs",
	)
)

// Clean normalizes text to NFC and removes paragraph numbers, line breaks,
// possessives, hyphens, dashes, double quotes, the dot of "Mr." and "Mrs."
// and bracketed references.
func Clean(text string) string {
	text = norm.NFC.String(text)
	text = paragraphNumber.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\n ", "")
	text = strings.ReplaceAll(text, "\n", " ")
	text = replacer.Replace(text)
	return reference.ReplaceAllString(text, "")
}

// Split splits text into sentences at dots and question marks. Sentences
// are trimmed and empty ones dropped.
func Split(text string) []string {
	var sentences []string
	for _, s := range sentenceEnd.Split(text, -1) {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		sentences = append(sentences, s)
	}
	return sentences
}

// WordCount counts the whitespace separated words of s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Meta is the data encoded in a transcript file name.
type Meta struct {
	Country string
	Session int
	Year    int
}

// Labels returns the meta data as doc labels.
func (m Meta) Labels() []string {
	return []string{
		"country:" + m.Country,
		"session:" + strconv.Itoa(m.Session),
		"year:" + strconv.Itoa(m.Year),
	}
}

// ParseFileName parses names like IND_73_2018.txt.
func ParseFileName(name string) (Meta, error) {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))

	parts := strings.Split(base, "_")
	if len(parts) != 3 || parts[0] == "" {
		return Meta{}, fmt.Errorf("file name %q does not match COUNTRY_SESSION_YEAR", name)
	}

	session, err := strconv.Atoi(parts[1])
	if err != nil {
		return Meta{}, fmt.Errorf("file name %q: invalid session: %w", name, err)
	}

	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return Meta{}, fmt.Errorf("file name %q: invalid year: %w", name, err)
	}

	return Meta{Country: parts[0], Session: session, Year: year}, nil
}
