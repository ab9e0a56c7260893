package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sent "github.com/revelaction/segrel/sentence"
	"github.com/revelaction/segrel/storage"
)

const docExt = ".json"

// DocStore keeps one JSON file per document in a directory. Doc ids are the
// positions of the files in name order.
type DocStore struct {
	docDir string

	// In-memory cache
	docs   []sent.Doc
	loaded []bool
}

var _ storage.DocRepository = (*DocStore)(nil)
var _ storage.Preloader = (*DocStore)(nil)

// NewDocStore creates a filesystem document store. The directory must
// exist.
func NewDocStore(docDir string) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == docExt {
			names = append(names, file.Name())
		}
	}
	sort.Strings(names)

	docs := make([]sent.Doc, 0, len(names))
	for idx, name := range names {
		docs = append(docs, sent.Doc{
			Id:    idx,
			Title: strings.TrimSuffix(name, docExt),
		})
	}

	return &DocStore{
		docDir: docDir,
		docs:   docs,
		loaded: make([]bool, len(docs)),
	}, nil
}

// Preload reads into memory the docs not loaded yet. Labels are only known
// after loading, so labelMatch filters the callback, not the reading.
func (h *DocStore) Preload(labelMatch string, cb func(current, total int, name string)) error {
	total := len(h.docs)
	for i := range h.docs {
		if err := h.load(i); err != nil {
			return err
		}

		if cb != nil && storage.MatchLabel(h.docs[i].Labels, labelMatch) {
			cb(i+1, total, h.docs[i].Title)
		}
	}

	return nil
}

func (h *DocStore) load(id int) error {
	if h.loaded[id] {
		return nil
	}

	doc, err := ReadDoc(h.path(h.docs[id].Title))
	if err != nil {
		return err
	}

	// Title and Id come from the directory
	doc.Id = id
	doc.Title = h.docs[id].Title
	for i := range doc.Sentences {
		doc.Sentences[i].DocId = id
	}

	h.docs[id] = doc
	h.loaded[id] = true
	return nil
}

func (h *DocStore) path(title string) string {
	return filepath.Join(h.docDir, title+docExt)
}

func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	docs := make([]sent.Doc, 0, len(h.docs))
	for i := range h.docs {
		// labels are only known after loading
		if err := h.load(i); err != nil {
			return nil, err
		}

		d := h.docs[i]
		if !storage.MatchLabel(d.Labels, labelMatch) {
			continue
		}
		docs = append(docs, sent.Doc{Id: d.Id, Title: d.Title, Labels: d.Labels})
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	if id < 0 || id >= len(h.docs) {
		return sent.Doc{}, fmt.Errorf("doc %d: %w", id, storage.ErrNotFound)
	}
	if err := h.load(id); err != nil {
		return sent.Doc{}, err
	}
	return h.docs[id], nil
}

func (h *DocStore) Labels(pattern string) ([]string, error) {
	if err := h.Preload("", nil); err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var labels []string
	for _, d := range h.docs {
		for _, l := range d.Labels {
			if seen[l] || !strings.Contains(l, pattern) {
				continue
			}
			seen[l] = true
			labels = append(labels, l)
		}
	}
	sort.Strings(labels)
	return labels, nil
}

// Write stores doc as <title>.json. An existing doc with the same title is
// replaced.
func (h *DocStore) Write(doc sent.Doc) error {
	if doc.Title == "" || strings.ContainsAny(doc.Title, `/\`) {
		return fmt.Errorf("invalid doc title %q", doc.Title)
	}

	id := len(h.docs)
	for i, d := range h.docs {
		if d.Title == doc.Title {
			id = i
			break
		}
	}

	doc.Id = id
	for i := range doc.Sentences {
		doc.Sentences[i].DocId = id
	}

	if err := WriteDoc(h.path(doc.Title), doc); err != nil {
		return err
	}

	if id == len(h.docs) {
		h.docs = append(h.docs, doc)
		h.loaded = append(h.loaded, true)
		return nil
	}

	h.docs[id] = doc
	h.loaded[id] = true
	return nil
}

// ReadDoc reads a Doc JSON from the given path and unmarshals it.
func ReadDoc(path string) (sent.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	var doc sent.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("JSON decoding error in %s: %w", filepath.Base(path), err)
	}

	return doc, nil
}

// WriteDoc marshals doc into path.
func WriteDoc(path string, doc sent.Doc) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("JSON encoding error: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("IO error: %w", err)
	}

	return nil
}
