package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(path, []byte("# Hello\n\nworld\n"), 0o600))

	d, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, path, d.Path)
	assert.Equal(t, "# Hello\n\nworld\n", d.Source)
	assert.Len(t, d.Hash, 64)
	assert.Equal(t, Hash([]byte(d.Source)), d.Hash)
	assert.Len(t, d.ShortHash(), 12)
	assert.False(t, d.ModTime.IsZero())
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(filepath.Join(dir, "missing.md"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = Read(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIsDirectory))
}

func TestHashDiffers(t *testing.T) {
	assert.NotEqual(t, Hash([]byte("a")), Hash([]byte("b")))
	assert.Equal(t, Hash([]byte("a")), Hash([]byte("a")))
}

func TestTitle(t *testing.T) {
	cases := map[string]string{
		"# Title\n\ntext":                 "Title",
		"intro\n\n# Later ##\n":           "Later",
		"```\n# not a title\n```\n# Real": "Real",
		"## Sub only\n":                   "notes.md",
		"#NoSpace\n":                      "notes.md",
	}
	for src, want := range cases {
		assert.Equal(t, want, FromString("/tmp/notes.md", src).Title(), src)
	}
}
