package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"leetboard/internal/common"
	"leetboard/internal/domain/model"
)

type SnapshotRepository interface {
	// Save replaces the stored snapshot. Readers observe either the previous
	// snapshot or the new one, never a partial write.
	Save(ctx context.Context, snapshot model.Snapshot) error
	// Load returns the stored snapshot, or an error wrapping
	// common.ErrSnapshotUnavailable when it is missing or cannot be parsed.
	Load(ctx context.Context) (model.Snapshot, error)
}

type fileSnapshotRepository struct {
	path string
}

func NewFileSnapshotRepository(path string) SnapshotRepository {
	return &fileSnapshotRepository{path: path}
}

func (r *fileSnapshotRepository) Save(ctx context.Context, snapshot model.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snapshot == nil {
		snapshot = model.Snapshot{} // persist [] rather than null
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("fileSnapshotRepository.Save: marshal: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("fileSnapshotRepository.Save: mkdir %s: %w", dir, err)
	}

	// The temp file must live next to the target so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("fileSnapshotRepository.Save: create temp: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("fileSnapshotRepository.Save: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("fileSnapshotRepository.Save: sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("fileSnapshotRepository.Save: close temp: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("fileSnapshotRepository.Save: chmod temp: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("fileSnapshotRepository.Save: rename: %w", err)
	}
	return nil
}

func (r *fileSnapshotRepository) Load(ctx context.Context) (model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("snapshot %s does not exist yet: %w", r.path, common.ErrSnapshotUnavailable)
		}
		return nil, fmt.Errorf("read snapshot %s: %v: %w", r.path, err, common.ErrSnapshotUnavailable)
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %v: %w", r.path, err, common.ErrSnapshotUnavailable)
	}
	if snapshot == nil {
		// A literal "null" file is treated as corrupt rather than empty.
		return nil, fmt.Errorf("parse snapshot %s: not a JSON array: %w", r.path, common.ErrSnapshotUnavailable)
	}
	return snapshot, nil
}
