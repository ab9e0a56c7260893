package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sent "github.com/revelaction/segrel/sentence"
	"github.com/revelaction/segrel/sentence/sentencetest"
	"github.com/revelaction/segrel/storage/filesystem"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	ui := UI{Out: &out, Err: &errOut}
	err := newApp(ui).RunContext(context.Background(), append([]string{"segrel", "--log-level", "error"}, args...))
	return out.String(), err
}

func corpusDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	st, err := filesystem.NewDocStore(dir)
	require.NoError(t, err)
	require.NoError(t, st.Write(sent.Doc{Title: "IND_73_2018", Labels: []string{"country:IND", "year:2018"}, Sentences: sentencetest.All()}))
	return dir
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "segrel version dev (commit: none)\n", out)
}

func TestDocAndLabels(t *testing.T) {
	dir := corpusDir(t)

	out, err := run(t, "doc", "--docs", dir)
	require.NoError(t, err)
	assert.Equal(t, "    0  IND_73_2018          country:IND year:2018\n", out)

	out, err = run(t, "doc", "--docs", dir, "--label", "2019")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = run(t, "labels", "--docs", dir, "year")
	require.NoError(t, err)
	assert.Equal(t, "year:2018\n", out)
}

func TestExtract(t *testing.T) {
	dir := corpusDir(t)

	out, err := run(t, "extract", "--docs", dir, "--rule", "svo", "--format", "phrase")
	require.NoError(t, err)
	want := []string{
		"India support efforts",
		"people expect life",
		"India show faith",
		"We support efforts",
		"Modi launch Alliance",
		"Minister meet Minister",
	}
	assert.Equal(t, strings.Join(want, "\n")+"\n", out)

	_, err = run(t, "extract", "--docs", dir, "--rule", "nope")
	assert.ErrorContains(t, err, "unknown rule")

	_, err = run(t, "extract", "--docs", dir, "--format", "nope")
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, "extract", "--docs", dir, "--doc", "3")
	assert.Error(t, err)
}

func TestExtractStore(t *testing.T) {
	dir := corpusDir(t)
	db := filepath.Join(t.TempDir(), "phrases.db")

	_, err := run(t, "extract", "--docs", dir, "--rule", "title", "--json", "--store", db)
	require.NoError(t, err)

	out, err := run(t, "runs", "--store", db)
	require.NoError(t, err)
	fields := strings.Fields(out)
	require.NotEmpty(t, fields)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "title"))

	out, err = run(t, "runs", "--store", db, fields[0])
	require.NoError(t, err)
	assert.Equal(t, "[ 0     5] title           ✍  Prime Minister Modi\n[ 0     6] title           ✍  Prime Minister of India\n", out)
}

func TestExpr(t *testing.T) {
	dir := corpusDir(t)

	out, err := run(t, "expr", "--docs", dir, "--format", "phrase", "prime", "minister", "ADP?", "PROPN")
	require.NoError(t, err)
	assert.Equal(t, "Prime Minister Modi\nPrime Minister of France\nPrime Minister of India\n", out)

	_, err = run(t, "expr", "--docs", dir)
	assert.Error(t, err)
}

func TestSentence(t *testing.T) {
	dir := corpusDir(t)

	out, err := run(t, "sentence", "--docs", dir, "--tree", "0", "0")
	require.NoError(t, err)
	assert.Equal(t, "India supports efforts .\nsupports VERB/ROOT\n  India PROPN/nsubj\n  efforts NOUN/dobj\n  . PUNCT/punct\n", out)

	out, err = run(t, "sentence", "--docs", dir, "0", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "INDEX")
	assert.Contains(t, out, "rise")

	_, err = run(t, "sentence", "--docs", dir, "0", "99")
	assert.ErrorContains(t, err, "out of bounds")

	_, err = run(t, "sentence", "--docs", dir, "0")
	assert.Error(t, err)
}

func TestStat(t *testing.T) {
	dir := corpusDir(t)

	out, err := run(t, "stat", "--docs", dir, "--rule", "svo", "--rule", "prep")
	require.NoError(t, err)
	assert.Contains(t, out, "num sentences 8")
	assert.Contains(t, out, "  svo               75.00%  6\n")
	assert.Contains(t, out, "  support          2\n")
	assert.Contains(t, out, "  against          1\n")
}

func TestImportCoNLLU(t *testing.T) {
	conllu := "# text = India shows faith.\n" +
		"1\tIndia\tIndia\tPROPN\tNNP\t_\t2\tnsubj\t_\t_\n" +
		"2\tshows\tshow\tVERB\tVBZ\t_\t0\tROOT\t_\t_\n" +
		"3\tfaith\tfaith\tNOUN\tNN\t_\t2\tobj\t_\tSpaceAfter=No\n" +
		"4\t.\t.\tPUNCT\t.\t_\t2\tpunct\t_\t_\n" +
		"\n"

	src := filepath.Join(t.TempDir(), "IND_73_2018.conllu")
	require.NoError(t, os.WriteFile(src, []byte(conllu), 0o644))

	docs := filepath.Join(t.TempDir(), "docs")

	out, err := run(t, "import-conllu", "--from", src, "--to", docs)
	require.NoError(t, err)
	assert.Equal(t, "imported IND_73_2018: 1 sentences\n", out)

	out, err = run(t, "extract", "--docs", docs, "--rule", "svo", "--format", "phrase")
	require.NoError(t, err)
	assert.Equal(t, "India show faith\n", out)

	out, err = run(t, "doc", "--docs", docs)
	require.NoError(t, err)
	assert.Contains(t, out, "country:IND session:73 year:2018")
}

func TestImportCoNLLUSQLite(t *testing.T) {
	conllu := "1\tIndia\tIndia\tPROPN\tNNP\t_\t2\tnsubj\t_\t_\n" +
		"2\tsupports\tsupport\tVERB\tVBZ\t_\t0\tROOT\t_\t_\n" +
		"3\tefforts\teffort\tNOUN\tNNS\t_\t2\tdobj\t_\t_\n"

	src := filepath.Join(t.TempDir(), "speech.conllu")
	require.NoError(t, os.WriteFile(src, []byte(conllu), 0o644))

	db := filepath.Join(t.TempDir(), "docs.db")
	_, err := run(t, "import-conllu", "--from", src, "--to", db, "--title", "IND_74_2019", "--label", "year:2019")
	require.NoError(t, err)

	out, err := run(t, "doc", "--docs", db)
	require.NoError(t, err)
	assert.Contains(t, out, "IND_74_2019")
	assert.Contains(t, out, "year:2019")

	out, err = run(t, "extract", "--docs", db, "--format", "roles", "--rule", "svo")
	require.NoError(t, err)
	assert.Equal(t, "subject=India verb=support object=efforts\n", out)
}

func TestMissingRepository(t *testing.T) {
	_, err := run(t, "doc", "--docs", filepath.Join(t.TempDir(), "missing.db"))
	assert.Error(t, err)
}

func TestBash(t *testing.T) {
	out, err := run(t, "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -o bashdefault -o default -F _segrel_autocomplete segrel")
}
