package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	ctxutil "github.com/playea/beach-api/pkg/context"
	"github.com/playea/beach-api/pkg/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Func is one run of a scheduled job.
type Func func(ctx context.Context) error

// Scheduler runs named jobs on cron schedules. A job never overlaps with
// itself; a panic inside a job is logged and the schedule continues.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration

	mu   sync.Mutex
	jobs map[string]Func
}

func NewScheduler(timeout time.Duration) *Scheduler {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	cronLog := cronLogger{log: logger.GetLogger().Named("cron")}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		timeout: timeout,
		jobs:    make(map[string]Func),
	}
}

// Add registers fn under name on the given five-field cron schedule.
func (s *Scheduler) Add(name, schedule string, fn Func) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}
	if _, err := s.cron.AddFunc(schedule, func() { _ = s.run(name, fn) }); err != nil {
		return fmt.Errorf("job %q: invalid schedule %q: %w", name, schedule, err)
	}
	s.jobs[name] = fn

	logger.GetLogger().Info("Job scheduled",
		zap.String("job", name),
		zap.String("schedule", schedule),
	)
	return nil
}

// RunNow runs a registered job synchronously, outside its schedule.
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	fn, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("job %q not registered", name)
	}
	return s.run(name, fn)
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run(name string, fn Func) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, name)
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "jobs")

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start)

	if err != nil {
		logger.ErrorWithContext(ctx, "Job failed").
			String("job", name).
			Duration(duration).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Job finished").
		String("job", name).
		Duration(duration).
		Log()
	return nil
}

// cronLogger sends cron's own messages to zap.
type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
