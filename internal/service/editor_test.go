package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/arsenal/internal/cheat"
)

func TestEditorAppend(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "cheats", "custom.md")
	ed := &Editor{File: file}

	c, err := ed.Append("default", NewCheat{
		Title:   "Quick Shell",
		Command: "nc -lvnp <port>",
		Tags:    []string{"cat/shells", "#cat/listeners"},
	})
	require.NoError(t, err)
	require.Equal(t, "Quick Shell", c.Title)
	require.Equal(t, "nc -lvnp <port>", c.Body)
	require.Equal(t, []string{"cat/shells", "cat/listeners"}, c.Tags)
	require.Equal(t, []string{"port"}, c.Params)
	require.Equal(t, "default", c.Vault)
	require.Equal(t, file, c.File)

	// The on-disk section round-trips through the parser.
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	parsed := cheat.Parse(string(data), "default", file)
	require.Len(t, parsed, 1)
	require.Equal(t, c, parsed[0])
}

func TestEditorAppendPreservesExistingCheats(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "custom.md")
	require.NoError(t, os.WriteFile(file,
		[]byte("## Existing\n```\nwhoami\n```\n"), 0o600))
	ed := &Editor{File: file}

	c, err := ed.Append("default", NewCheat{Title: "Second", Command: "id"})
	require.NoError(t, err)
	require.Equal(t, "Second", c.Title)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	parsed := cheat.Parse(string(data), "default", file)
	require.Len(t, parsed, 2)
	require.Equal(t, "Existing", parsed[0].Title)
	// The returned cheat matches what a full reload would produce.
	require.Equal(t, parsed[1], c)
}

func TestEditorAppendRejectsEmptyFields(t *testing.T) {
	t.Parallel()

	ed := &Editor{File: filepath.Join(t.TempDir(), "custom.md")}
	_, err := ed.Append("default", NewCheat{Title: "", Command: "id"})
	require.Error(t, err)
	_, err = ed.Append("default", NewCheat{Title: "X", Command: "  "})
	require.Error(t, err)
}
