package service

import (
	"context"
	"errors"
	"sync"

	"leetboard/internal/domain/model"
	"leetboard/internal/platform/statsapi"
)

// stubRoster returns a fixed roster or error.
type stubRoster struct {
	entries []model.RosterEntry
	err     error
}

func (s stubRoster) LoadRoster(context.Context) ([]model.RosterEntry, error) {
	return s.entries, s.err
}

// memSnapshots is an in-memory SnapshotRepository.
type memSnapshots struct {
	mu       sync.Mutex
	snapshot model.Snapshot
	saved    bool
	saves    int
	saveErr  error
}

func (m *memSnapshots) Save(_ context.Context, s model.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snapshot = append(model.Snapshot(nil), s...)
	m.saved = true
	m.saves++
	return nil
}

func (m *memSnapshots) Load(context.Context) (model.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.saved {
		return nil, errors.New("nothing saved")
	}
	return append(model.Snapshot(nil), m.snapshot...), nil
}

// stubFetcher answers from a map; usernames not in the map get a fetch error.
type stubFetcher struct {
	mu      sync.Mutex
	results map[string]statsapi.Result
	calls   []string
}

func (f *stubFetcher) FetchStats(_ context.Context, username string) statsapi.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, username)
	if res, ok := f.results[username]; ok {
		return res
	}
	return statsapi.Result{Info: model.InfoFetchError, Outcome: statsapi.OutcomeError}
}
