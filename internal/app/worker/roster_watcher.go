package worker

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultRosterDebounce collapses the burst of events an editor or a
// four-file copy produces into a single refresh.
const DefaultRosterDebounce = 2 * time.Second

// RosterWatcher triggers an out-of-schedule refresh when a roster file changes.
type RosterWatcher struct {
	files    map[string]struct{}
	dirs     []string
	debounce time.Duration
	onChange func(ctx context.Context)
	log      *zap.Logger
}

// NewRosterWatcher watches the directories holding files, since editors
// often replace a file by renaming over it, which drops a file-level watch.
func NewRosterWatcher(files []string, debounce time.Duration, onChange func(ctx context.Context), logger *zap.Logger) (*RosterWatcher, error) {
	if debounce <= 0 {
		debounce = DefaultRosterDebounce
	}
	w := &RosterWatcher{
		files:    make(map[string]struct{}, len(files)),
		debounce: debounce,
		onChange: onChange,
		log:      logger,
	}
	seenDirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolve roster path %s: %w", f, err)
		}
		w.files[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := seenDirs[dir]; !ok {
			seenDirs[dir] = struct{}{}
			w.dirs = append(w.dirs, dir)
		}
	}
	return w, nil
}

// Start blocks until ctx is cancelled.
func (w *RosterWatcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create roster watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range w.dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.log.Info("roster watcher started", zap.Strings("dirs", w.dirs))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			w.log.Info("roster watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("roster file changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("roster watcher error", zap.Error(err))

		case <-timer.C:
			pending = false
			w.log.Info("roster changed, triggering refresh")
			w.onChange(ctx)
		}
	}
}

func (w *RosterWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}
