package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/revelaction/curiam/render"
	sent "github.com/revelaction/curiam/sentence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const opinionPath = "../../inception/testdata/opinion.tsv"

func runTest(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(append([]string{"curiam"}, args...), UI{Out: &out, Err: &errOut})
	return out.String(), errOut.String(), err
}

func TestSimplifyCommand(t *testing.T) {
	out, errOut, err := runTest(t, "simplify", opinionPath)
	require.NoError(t, err)

	assert.Contains(t, out, "1\tterm\tQuote:1\n1\t\"\tQuote:1|Focal Term:2\n")
	assert.Contains(t, out, "1\tmeans\tMetalinguistic Cue:-1\n")
	assert.Contains(t, out, "2\tthe\tAppeal to Meaning:1\n")
	assert.Contains(t, out, "1\t.\t_\n\n2\tSee\t_\n")
	assert.NotContains(t, out, "Broken")

	assert.Contains(t, errOut, "✂  sentence 2")
	assert.Contains(t, errOut, "✍  sentence 3")
}

func TestSimplifyCommandUsage(t *testing.T) {
	_, _, err := runTest(t, "simplify")
	assert.ErrorContains(t, err, "Usage")
}

func TestImportFilesystem(t *testing.T) {
	docPath := filepath.Join(t.TempDir(), "docs")

	out, errOut, err := runTest(t, "--doc-path", docPath, "--annotator", "alice", "import", "--label", "legal", opinionPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 docs (4 sentences,")
	assert.Contains(t, errOut, "annotations truncated")
	assert.Contains(t, errOut, "annotations dropped")

	// same export again
	out, _, err = runTest(t, "--doc-path", docPath, "import", opinionPath)
	require.NoError(t, err)
	assert.Equal(t, "Imported 0 docs (0 sentences, 0 B), skipped 1\n", out)

	out, _, err = runTest(t, "--doc-path", docPath, "ls-doc")
	require.NoError(t, err)
	assert.Equal(t, "📖 0 opinion\n", out)

	out, _, err = runTest(t, "--doc-path", docPath, "ls-categories")
	require.NoError(t, err)
	assert.Equal(t, "Appeal to Meaning, Example Use, Focal Term, Metalinguistic Cue, Quote\n", out)

	out, _, err = runTest(t, "--doc-path", docPath, "ls-categories", "--match", "Term")
	require.NoError(t, err)
	assert.Equal(t, "Focal Term\n", out)

	out, _, err = runTest(t, "--doc-path", docPath, "stat", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Num sentences 4, num tokens per sentence 4\n")
}

func TestSpansCommand(t *testing.T) {
	docPath := filepath.Join(t.TempDir(), "docs")
	_, _, err := runTest(t, "-d", docPath, "-a", "alice", "import", opinionPath)
	require.NoError(t, err)

	out, _, err := runTest(t, "-d", docPath, "-a", "alice", "spans", "--format", "json", "0", "0")
	require.NoError(t, err)

	var items []render.Item
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, []sent.Annotation{
		{Category: "Metalinguistic Cue", Start: 5, End: 5},
		{Category: "Quote", Start: 1, End: 4},
		{Category: "Focal Term", Start: 2, End: 3},
	}, items[0].Spans)

	out, _, err = runTest(t, "-d", docPath, "-a", "alice", "spans", "0", "1")
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("%-24s %3d-%-3d %s", "Appeal to Meaning", 1, 2, "the dictionary"))

	// another annotator sees no spans
	out, _, err = runTest(t, "-d", docPath, "-a", "bob", "spans", "0")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, _, err = runTest(t, "-d", docPath, "spans", "0", "9")
	assert.ErrorContains(t, err, "out of bounds")

	_, _, err = runTest(t, "-d", docPath, "spans", "--format", "xml", "0")
	assert.ErrorContains(t, err, "invalid format")
}

func TestDocCommand(t *testing.T) {
	docPath := filepath.Join(t.TempDir(), "docs")
	_, _, err := runTest(t, "-d", docPath, "-a", "alice", "import", opinionPath)
	require.NoError(t, err)

	out, _, err := runTest(t, "-d", docPath, "-a", "alice", "doc", "--start", "1", "--count", "1", "0")
	require.NoError(t, err)
	assert.Equal(t, "✍  1 See [the dictionary]Appeal to Meaning .\n", out)

	out, _, err = runTest(t, "-d", docPath, "-a", "alice", "doc", "--count", "1", filepath.Join(docPath, "opinion.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "✍  0 The [term [\" vehicle]Focal Term \"]Quote [means]Metalinguistic Cue a car .\n")
}

func TestImportSQLiteAndExport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "docs.db")

	out, _, err := runTest(t, "-d", dbPath, "-a", "alice", "import", opinionPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 docs")

	out, _, err = runTest(t, "-d", dbPath, "ls-doc")
	require.NoError(t, err)
	assert.Equal(t, "📖 1 opinion\n", out)

	out, _, err = runTest(t, "-d", dbPath, "-a", "alice", "spans", "1", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Appeal to Meaning")

	jsonDir := filepath.Join(dir, "json")
	out, _, err = runTest(t, "-d", dbPath, "export", "--to", jsonDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully exported 1 docs")

	out, _, err = runTest(t, "-d", jsonDir, "ls-doc")
	require.NoError(t, err)
	assert.Equal(t, "📖 0 opinion\n", out)

	_, _, err = runTest(t, "-d", jsonDir, "export", "--to", dir)
	assert.ErrorContains(t, err, "not a SQLite store")
}

func TestMissingDocPath(t *testing.T) {
	_, _, err := runTest(t, "ls-doc")
	assert.ErrorContains(t, err, "no doc path")

	_, _, err = runTest(t, "-d", filepath.Join(t.TempDir(), "missing"), "ls-doc")
	assert.ErrorContains(t, err, "repository not found")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runTest(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "curiam version dev (commit: none)\n", out)
}

func TestGetCompletions(t *testing.T) {
	assert.Equal(t, []string{"simplify", "spans", "stat"}, getCompletions([]string{"curiam", "s"}))
	assert.Equal(t, []string{"ls-doc", "ls-categories"}, getCompletions([]string{"curiam", "ls"}))
	assert.Nil(t, getCompletions([]string{"curiam", "doc", "0"}))
	assert.Nil(t, getCompletions(nil))
}

func TestDocTitle(t *testing.T) {
	assert.Equal(t, "opinion", docTitle("/data/opinion.tsv.xz"))
	assert.Equal(t, "opinion", docTitle("opinion.tsv"))
	assert.Equal(t, "v1.opinion", docTitle("v1.opinion.tsv"))
}
