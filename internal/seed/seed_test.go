package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/sagepkm/internal/schema"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_RecursiveGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), `
nodes:
  - title: Java Tutorial
    content: Intro to the JVM
    tags: [Java, tutorial]
`)
	writeFile(t, filepath.Join(dir, "nested", "deep", "b.yaml"), `
nodes:
  - title: Go Notes
    tags: [go]
  - title: Empty
`)
	writeFile(t, filepath.Join(dir, "ignored.txt"), "not yaml")

	entries, err := Load([]string{filepath.Join(dir, "**", "*.yaml")})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Java Tutorial", entries[0].Title)
	assert.Equal(t, []string{"Java", "tutorial"}, entries[0].Tags)
	assert.Equal(t, "Go Notes", entries[1].Title)
	assert.Equal(t, "", entries[2].Content)
	assert.Equal(t, filepath.Join(dir, "nested", "deep", "b.yaml"), entries[1].Source)
}

func TestExpand_Deduplicates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), "nodes: []")

	files, err := Expand([]string{filepath.Join(dir, "*.yaml"), filepath.Join(dir, "a.*")})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestLoad_NoMatches(t *testing.T) {
	entries, err := Load([]string{filepath.Join(t.TempDir(), "*.yaml")})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoadFile_InvalidEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, `
nodes:
  - title: ok
  - content: missing title
`)

	_, err := LoadFile(schema.NewValidator(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.Contains(t, err.Error(), "node 2")
}

func TestLoadFile_WrongTagType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, `
nodes:
  - title: t
    tags: java
`)

	_, err := LoadFile(schema.NewValidator(), path)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestLoadFile_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	writeFile(t, path, "nodes: [\n")

	_, err := LoadFile(schema.NewValidator(), path)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}
