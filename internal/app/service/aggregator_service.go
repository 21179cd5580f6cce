package service

import (
	"context"
	"errors"
	"html"
	"strings"
	"time"

	"leetboard/internal/common"
	"leetboard/internal/domain/model"
	"leetboard/internal/domain/repository"
	"leetboard/internal/platform/statsapi"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// StatsFetcher is the slice of statsapi.Client the aggregator needs.
type StatsFetcher interface {
	FetchStats(ctx context.Context, username string) statsapi.Result
}

// RefreshResult summarises one aggregation run.
type RefreshResult struct {
	RunID    string
	Students int
	Fetched  int // stats returned
	Skipped  int // non-LeetCode profile URL, no call made
	NoData   int // call made, payload unusable
	Failed   int // call made, transport or HTTP error
	Duration time.Duration
}

type AggregatorService struct {
	rosterRepo   repository.RosterRepository
	snapshotRepo repository.SnapshotRepository
	fetcher      StatsFetcher
	sanitizer    *bluemonday.Policy
	log          *zap.Logger
}

func NewAggregatorService(
	rosterRepo repository.RosterRepository,
	snapshotRepo repository.SnapshotRepository,
	fetcher StatsFetcher,
	logger *zap.Logger,
) *AggregatorService {
	return &AggregatorService{
		rosterRepo:   rosterRepo,
		snapshotRepo: snapshotRepo,
		fetcher:      fetcher,
		sanitizer:    bluemonday.StrictPolicy(),
		log:          logger,
	}
}

// Refresh rebuilds the snapshot from the roster. On a roster error
// (including common.ErrRosterMismatch) the stored snapshot is left untouched.
// Individual fetch failures never abort the run.
func (s *AggregatorService) Refresh(ctx context.Context) (RefreshResult, error) {
	start := time.Now()
	result := RefreshResult{RunID: uuid.NewString()}
	log := s.log.With(zap.String("run_id", result.RunID))

	log.Info("refresh started, reading roster")
	entries, err := s.rosterRepo.LoadRoster(ctx)
	if err != nil {
		if errors.Is(err, common.ErrRosterMismatch) {
			log.Error("roster rejected: the number of rolls, names, URLs and sections do not match", zap.Error(err))
		} else {
			log.Error("roster could not be read", zap.Error(err))
		}
		return result, common.Errorf("load roster: %w", err)
	}
	log.Info("roster read", zap.Int("students", len(entries)))

	snapshot := make(model.Snapshot, 0, len(entries))
	for _, entry := range entries {
		// Records are built sequentially; a cancelled context stops the run
		// before anything is written.
		if err := ctx.Err(); err != nil {
			log.Warn("refresh cancelled", zap.Int("processed", len(snapshot)), zap.Error(err))
			return result, err
		}

		record := model.NewStudentRecord(entry)
		rowLog := log.With(zap.String("roll", entry.Roll), zap.String("name", entry.Name), zap.String("section", entry.Section))
		if s.hasMarkup(entry.Name) {
			rowLog.Warn("roster name contains markup; storing it unchanged")
		}

		username, ok := statsapi.UsernameFromURL(entry.URL)
		if !ok {
			rowLog.Info("profile URL is not a LeetCode profile, skipping API call", zap.String("url", entry.URL))
			record.Info = model.InfoNoData
			result.Skipped++
			snapshot = append(snapshot, record)
			continue
		}

		rowLog.Debug("fetching stats", zap.String("username", username))
		res := s.fetcher.FetchStats(ctx, username)
		record = record.WithStats(res.Stats, res.Info)
		switch res.Outcome {
		case statsapi.OutcomeOK:
			result.Fetched++
		case statsapi.OutcomeNoData:
			result.NoData++
		default:
			result.Failed++
		}
		snapshot = append(snapshot, record)
	}

	snapshot.SortByTotalSolved()
	if dups := snapshot.DuplicateRolls(); len(dups) > 0 {
		log.Warn("duplicate roll numbers in roster; lookups return the highest-ranked match", zap.Strings("rolls", dups))
	}

	if err := s.snapshotRepo.Save(ctx, snapshot); err != nil {
		log.Error("failed to save snapshot", zap.Error(err))
		return result, common.Errorf("save snapshot: %w", err)
	}

	result.Students = len(snapshot)
	result.Duration = time.Since(start)
	log.Info("refresh complete, snapshot saved",
		zap.Int("students", result.Students),
		zap.Int("fetched", result.Fetched),
		zap.Int("skipped", result.Skipped),
		zap.Int("no_data", result.NoData),
		zap.Int("failed", result.Failed),
		zap.Duration("duration", result.Duration))
	return result, nil
}

// hasMarkup reports whether the strict policy would alter v. bluemonday
// escapes what it keeps, so its output is unescaped before comparing; names
// like "O'Brien & Sons" are not flagged.
func (s *AggregatorService) hasMarkup(v string) bool {
	v = strings.TrimSpace(v)
	return html.UnescapeString(s.sanitizer.Sanitize(v)) != v
}
