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

func sampleSnapshot() model.Snapshot {
	return model.Snapshot{
		{RosterEntry: model.RosterEntry{Roll: "101", Name: "Alice", URL: "https://leetcode.com/u/alice/", Section: "A"},
			Stats: model.Stats{TotalSolved: 10, EasySolved: 5, MediumSolved: 4, HardSolved: 1}},
		{RosterEntry: model.RosterEntry{Roll: "102", Name: "Bob", URL: "https://example.com/bob", Section: "B"},
			Info: model.InfoNoData},
	}
}

func TestFileSnapshotRepository_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	repo := NewFileSnapshotRepository(path)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleSnapshot()))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "[\n  {\n    \"roll\": \"101\""), "snapshot should be pretty printed, got %q", raw[:40])
}

func TestFileSnapshotRepository_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileSnapshotRepository(filepath.Join(dir, "data.json"))

	require.NoError(t, repo.Save(context.Background(), sampleSnapshot()))
	require.NoError(t, repo.Save(context.Background(), sampleSnapshot()[:1]))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data.json", entries[0].Name())

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFileSnapshotRepository_SaveEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	repo := NewFileSnapshotRepository(path)

	require.NoError(t, repo.Save(context.Background(), nil))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestFileSnapshotRepository_LoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		_, err := NewFileSnapshotRepository(filepath.Join(dir, "absent.json")).Load(context.Background())
		assert.ErrorIs(t, err, common.ErrSnapshotUnavailable)
	})

	t.Run("corrupt", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"roll": `), 0o644))
		_, err := NewFileSnapshotRepository(path).Load(context.Background())
		assert.ErrorIs(t, err, common.ErrSnapshotUnavailable)
	})

	t.Run("null", func(t *testing.T) {
		path := filepath.Join(dir, "null.json")
		require.NoError(t, os.WriteFile(path, []byte(`null`), 0o644))
		_, err := NewFileSnapshotRepository(path).Load(context.Background())
		assert.ErrorIs(t, err, common.ErrSnapshotUnavailable)
	})
}
