package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

// OverdueSource lists unfinished tasks past their due date.
type OverdueSource interface {
	Overdue(now time.Time) []model.Task
}

// OverdueWatcher periodically logs overdue tasks.
type OverdueWatcher struct {
	source   OverdueSource
	logger   *zap.Logger
	interval time.Duration
	now      func() time.Time
	wg       sync.WaitGroup
	stop     chan struct{}
	once     sync.Once

	// onScan is called after each scan; used by tests.
	onScan func([]model.Task)
}

func NewOverdueWatcher(source OverdueSource, logger *zap.Logger, interval time.Duration) *OverdueWatcher {
	return &OverdueWatcher{
		source:   source,
		logger:   logger,
		interval: interval,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

// Start is a no-op when the interval is not positive.
func (w *OverdueWatcher) Start(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Info("Overdue watcher disabled")
		return
	}
	w.logger.Info("Starting overdue watcher", zap.Duration("interval", w.interval))

	w.wg.Add(1)
	go w.run(ctx)
}

func (w *OverdueWatcher) Stop() {
	w.once.Do(func() { close(w.stop) })
	w.wg.Wait()
	w.logger.Info("Overdue watcher stopped")
}

func (w *OverdueWatcher) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *OverdueWatcher) scan() {
	tasks := w.source.Overdue(w.now())
	for _, t := range tasks {
		w.logger.Warn("Task is overdue",
			zap.Int64("task_id", t.ID),
			zap.String("task_name", t.TaskName),
			zap.String("status", string(t.Status)),
			zap.String("due", t.DueDate.String()),
		)
	}
	if w.onScan != nil {
		w.onScan(tasks)
	}
}
