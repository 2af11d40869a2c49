package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// jobTimeout bounds a single run of the cycle job
const jobTimeout = time.Minute

// Scheduler runs the cycle closer on a cron schedule
type Scheduler struct {
	cron   *cron.Cron
	closer *CycleCloser
	logger *slog.Logger
}

// NewScheduler registers the cycle job under spec, a standard 5-field cron expression
func NewScheduler(logger *slog.Logger, spec string, closer *CycleCloser) (*Scheduler, error) {
	cronLogger := slogCronLogger{logger: logger}
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	s := &Scheduler{
		cron:   c,
		closer: closer,
		logger: logger,
	}

	if _, err := c.AddFunc(spec, s.runCycleJob); err != nil {
		return nil, fmt.Errorf("invalid scheduler spec %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) runCycleJob() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	closed, err := s.closer.Run(ctx)
	if err != nil {
		s.logger.Error("Cycle job failed", "error", err)
		return
	}
	if closed {
		s.logger.Info("Cycle job published summary")
	}
}

func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", "entries", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop stops scheduling and waits for a running job to finish or ctx to be done
func (s *Scheduler) Stop(ctx context.Context) error {
	s.logger.Info("stopping scheduler")
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// slogCronLogger adapts slog to the cron.Logger interface
type slogCronLogger struct {
	logger *slog.Logger
}

func (l slogCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l slogCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
