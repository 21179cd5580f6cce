package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"leetboard/internal/common"
	"leetboard/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRoster(t *testing.T, dir string, rolls, names, urls, sections string) RosterPaths {
	t.Helper()
	paths := RosterPaths{
		Rolls:    filepath.Join(dir, "roll.txt"),
		Names:    filepath.Join(dir, "name.txt"),
		URLs:     filepath.Join(dir, "urls.txt"),
		Sections: filepath.Join(dir, "sections.txt"),
	}
	for path, body := range map[string]string{
		paths.Rolls: rolls, paths.Names: names, paths.URLs: urls, paths.Sections: sections,
	} {
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return paths
}

func TestReadLines_TrimsAndDropsBlanks(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("  101 \r\n\n102\n   \n103"))
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "102", "103"}, lines)
}

func TestFileRosterRepository_LoadRoster(t *testing.T) {
	paths := writeRoster(t, t.TempDir(),
		"101\n102\n",
		"Alice\n\nBob\n",
		"https://leetcode.com/u/alice/\nhttps://example.com/bob\n",
		"A\nB",
	)

	entries, err := NewFileRosterRepository(paths).LoadRoster(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.RosterEntry{
		{Roll: "101", Name: "Alice", URL: "https://leetcode.com/u/alice/", Section: "A"},
		{Roll: "102", Name: "Bob", URL: "https://example.com/bob", Section: "B"},
	}, entries)
}

func TestFileRosterRepository_LengthMismatch(t *testing.T) {
	paths := writeRoster(t, t.TempDir(), "101\n102\n", "Alice\n", "u1\nu2\n", "A\nB\n")

	_, err := NewFileRosterRepository(paths).LoadRoster(context.Background())
	require.ErrorIs(t, err, common.ErrRosterMismatch)
	assert.Contains(t, err.Error(), "rolls=2 names=1 urls=2 sections=2")
}

func TestFileRosterRepository_MissingFile(t *testing.T) {
	dir := t.TempDir()
	paths := writeRoster(t, dir, "101\n", "Alice\n", "u1\n", "A\n")
	require.NoError(t, os.Remove(paths.URLs))

	_, err := NewFileRosterRepository(paths).LoadRoster(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrRosterMismatch)
	assert.Contains(t, err.Error(), "urls.txt")
}
