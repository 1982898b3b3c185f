package notifier

import (
	"BookingBridge/internal/config"
	"BookingBridge/internal/lib/sl"
	"context"
	"fmt"
	"github.com/robfig/cron/v3"
	"log/slog"
	"sync"
)

// Watcher polls the sheet on a cron schedule and notifies every row appended
// since the previous tick. Ticks never overlap.
type Watcher struct {
	notifier    *Notifier
	schedule    string
	fireOnStart bool
	cron        *cron.Cron
	mu          sync.Mutex
	primed      bool
	last        int
	log         *slog.Logger
}

func NewWatcher(conf *config.Config, notifier *Notifier, log *slog.Logger) *Watcher {
	logger := log.With(sl.Module("notifier.watcher"))
	cronLog := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelWarn))

	return &Watcher{
		notifier:    notifier,
		schedule:    conf.Notifier.Schedule,
		fireOnStart: conf.Notifier.FireOnStart,
		cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		log: logger,
	}
}

func (w *Watcher) Start() error {
	_, err := w.cron.AddFunc(w.schedule, func() {
		w.Tick(context.Background())
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", w.schedule, err)
	}
	w.cron.Start()
	w.log.With(slog.String("schedule", w.schedule)).Info("watcher started")
	return nil
}

// Stop halts the schedule; the returned context is done once a running tick finishes.
func (w *Watcher) Stop() context.Context {
	return w.cron.Stop()
}

// Tick checks the sheet once. The first tick only records the current last
// row unless fireOnStart is set, in which case that row is sent as well.
func (w *Watcher) Tick(ctx context.Context) []Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	last, err := w.notifier.LastRow(ctx)
	if err != nil {
		w.log.With(sl.Err(err)).Warn("poll sheet")
		return nil
	}

	if !w.primed {
		w.primed = true
		w.last = last
		if w.fireOnStart && last > 0 {
			w.last = last - 1
		}
		w.log.With(slog.Int("last_row", last)).Debug("watcher primed")
	}

	if last < w.last {
		w.log.With(
			slog.Int("last_row", last),
			slog.Int("seen", w.last),
		).Warn("rows removed from sheet")
		w.last = last
		return nil
	}

	var results []Result
	for row := w.last + 1; row <= last; row++ {
		res := w.notifier.process(ctx, row)
		w.log.With(
			slog.Int("row", row),
			slog.String("outcome", string(res.Outcome)),
		).Info("row processed")
		results = append(results, res)
	}
	w.last = last
	return results
}
