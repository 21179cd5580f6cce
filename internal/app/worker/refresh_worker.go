package worker

import (
	"context"
	"fmt"
	"sync"

	"leetboard/internal/app/service"
	"leetboard/internal/common"
	"leetboard/internal/platform/lock"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher is implemented by service.AggregatorService.
type Refresher interface {
	Refresh(ctx context.Context) (service.RefreshResult, error)
}

// RefreshWorker runs the aggregator once at start and then on a cron
// schedule. A run that finds the lock held is skipped, not queued.
type RefreshWorker struct {
	refresher Refresher
	locker    lock.Locker
	schedule  cron.Schedule
	spec      string
	log       *zap.Logger

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// NewRefreshWorker parses spec with the standard five-field cron parser,
// which also accepts descriptors such as "@every 1h" and "@hourly".
func NewRefreshWorker(refresher Refresher, locker lock.Locker, spec string, logger *zap.Logger) (*RefreshWorker, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	return &RefreshWorker{
		refresher: refresher,
		locker:    locker,
		schedule:  schedule,
		spec:      spec,
		log:       logger,
	}, nil
}

// Start blocks until ctx is cancelled, then waits for an in-flight run
// triggered by the scheduler to finish.
func (w *RefreshWorker) Start(ctx context.Context) error {
	c := cron.New(cron.WithChain(cron.Recover(cronLogger{w.log})))
	c.Schedule(w.schedule, cron.FuncJob(func() { w.trigger(ctx, "schedule") }))

	w.log.Info("refresh worker started", zap.String("schedule", w.spec))
	w.trigger(ctx, "startup")
	c.Start()

	<-ctx.Done()
	w.log.Info("refresh worker stopping...")
	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()
	<-c.Stop().Done()
	w.wg.Wait()
	w.log.Info("refresh worker stopped")
	return nil
}

// Trigger runs a refresh outside the schedule, e.g. after a roster change.
func (w *RefreshWorker) Trigger(ctx context.Context, reason string) {
	w.trigger(ctx, reason)
}

func (w *RefreshWorker) trigger(ctx context.Context, reason string) {
	w.mu.Lock()
	if w.stopped || ctx.Err() != nil {
		w.mu.Unlock()
		return
	}
	w.wg.Add(1)
	w.mu.Unlock()
	defer w.wg.Done()

	if _, err := w.RunOnce(ctx); err != nil {
		// Errors are already logged by RunOnce; the schedule keeps going.
		w.log.Debug("refresh run ended with error", zap.String("reason", reason), zap.Error(err))
	}
}

// RunOnce performs a single guarded refresh. It returns an error wrapping
// common.ErrRefreshInProgress when another run holds the lock.
func (w *RefreshWorker) RunOnce(ctx context.Context) (service.RefreshResult, error) {
	token, ok, err := w.locker.TryAcquire(ctx)
	if err != nil {
		w.log.Error("failed to attempt refresh lock acquisition", zap.Error(err))
		return service.RefreshResult{}, err
	}
	if !ok {
		w.log.Warn("refresh skipped: a previous run is still in progress")
		return service.RefreshResult{}, common.ErrRefreshInProgress
	}
	defer func() {
		// Release with a fresh context so shutdown does not leave the lock
		// behind until its TTL runs out.
		if err := w.locker.Release(context.WithoutCancel(ctx), token); err != nil {
			w.log.Warn("did not release refresh lock; it may have expired", zap.Error(err))
		}
	}()

	res, err := w.refresher.Refresh(ctx)
	if err != nil {
		w.log.Error("refresh failed", zap.String("run_id", res.RunID), zap.Error(err))
		return res, err
	}
	return res, nil
}

// cronLogger adapts zap to cron.Logger for the Recover wrapper.
type cronLogger struct{ log *zap.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
