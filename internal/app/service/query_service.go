package service

import (
	"context"
	"fmt"

	"leetboard/internal/common"
	"leetboard/internal/domain/model"
	"leetboard/internal/domain/repository"
)

// QueryService serves the last completed snapshot. It keeps no state
// between calls; every read goes to the repository.
type QueryService struct {
	snapshotRepo repository.SnapshotRepository
}

func NewQueryService(snapshotRepo repository.SnapshotRepository) *QueryService {
	return &QueryService{snapshotRepo: snapshotRepo}
}

// GetAll returns the snapshot verbatim.
func (s *QueryService) GetAll(ctx context.Context) (model.Snapshot, error) {
	return s.snapshotRepo.Load(ctx)
}

// GetByIdentifier returns the first record with the given roll number, or an
// error wrapping common.ErrNotFound.
func (s *QueryService) GetByIdentifier(ctx context.Context, roll string) (*model.StudentRecord, error) {
	snapshot, err := s.snapshotRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	record, ok := snapshot.Find(roll)
	if !ok {
		return nil, fmt.Errorf("student %q: %w", roll, common.ErrNotFound)
	}
	return &record, nil
}
