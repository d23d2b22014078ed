package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	"github.com/jenbot/jenbot/internal/bot/tasks"
	"github.com/jenbot/jenbot/internal/config"
	"github.com/jenbot/jenbot/internal/logger"
)

// ErrSchedulerNotRunning is returned by NextRun before Start.
var ErrSchedulerNotRunning = errors.New("scheduler is not running")

// Scheduler runs every registered task once a day at the configured time of
// day in the configured timezone. The next fire instant is always derived from
// that time of day, so a restart never shifts the schedule.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	hour      uint
	minute    uint
	location  *time.Location
	taskMap   map[string]tasks.ScheduledTaskFunc

	// ctx is handed to running tasks and cancelled by Stop.
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	running bool
	stopped bool
	jobs    map[string]gocron.Job
}

// NewScheduler creates a scheduler for taskMap. A nil clock uses the real
// clock.
func NewScheduler(log *slog.Logger, cfg config.SchedulerConfig, taskMap map[string]tasks.ScheduledTaskFunc, clock clockwork.Clock) (*Scheduler, error) {
	if log == nil {
		log = slog.Default()
	}
	l := log.With("component", "scheduler")

	hour, minute, err := cfg.TimeOfDay()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	opts := []gocron.SchedulerOption{
		gocron.WithLocation(loc),
		gocron.WithLogger(logger.NewGocronLogger(l)),
		gocron.WithStopTimeout(30 * time.Second),
	}
	if clock != nil {
		opts = append(opts, gocron.WithClock(clock))
	}

	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler: s,
		logger:    l,
		hour:      uint(hour),
		minute:    uint(minute),
		location:  loc,
		taskMap:   taskMap,
		ctx:       ctx,
		cancel:    cancel,
		jobs:      make(map[string]gocron.Job),
	}, nil
}

// Start schedules every task and starts the scheduler's internal ticking.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}
	if s.stopped {
		return fmt.Errorf("scheduler has been stopped")
	}

	names := make([]string, 0, len(s.taskMap))
	for name := range s.taskMap {
		names = append(names, name)
	}
	sort.Strings(names)

	at := gocron.NewAtTimes(gocron.NewAtTime(s.hour, s.minute, 0))
	for _, name := range names {
		job, err := s.scheduler.NewJob(
			gocron.DailyJob(1, at),
			gocron.NewTask(s.run, name, s.taskMap[name]),
			gocron.WithName(name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			s.logger.Error("Failed to schedule task", "task_name", name, "error", err)
			return fmt.Errorf("failed to schedule task %s: %w", name, err)
		}
		s.jobs[name] = job

		next, _ := job.NextRun()
		s.logger.Info("Scheduled task", "task_name", name, "time_of_day", fmt.Sprintf("%02d:%02d", s.hour, s.minute), "timezone", s.location.String(), "next_run", next)
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Info("Scheduler started", "tasks_scheduled", len(s.jobs))
	return nil
}

func (s *Scheduler) run(name string, task tasks.ScheduledTaskFunc) {
	s.logger.Info("Running scheduled task", "task_name", name)
	startTime := time.Now()
	if err := task(s.ctx); err != nil {
		s.logger.Error("Scheduled task failed", "task_name", name, "error", err)
	}
	s.logger.Info("Finished scheduled task", "task_name", name, "duration", time.Since(startTime))
}

// NextRun returns the next fire instant of the named task.
func (s *Scheduler) NextRun(name string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return time.Time{}, ErrSchedulerNotRunning
	}
	job, ok := s.jobs[name]
	if !ok {
		return time.Time{}, gocron.ErrJobNotFound
	}
	return job.NextRun()
}

// Stop cancels running tasks and shuts the scheduler down, waiting for them
// to return. A stopped scheduler cannot be restarted.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil
	}
	s.stopped = true
	s.cancel()

	wasRunning := s.running
	s.running = false
	if wasRunning {
		s.logger.Debug("Stopping scheduler gracefully (waiting for jobs)...")
	}

	if err := s.scheduler.Shutdown(); err != nil {
		s.logger.Error("Error during scheduler shutdown", "error", err)
		return err
	}
	if wasRunning {
		s.logger.Info("Scheduler stopped gracefully.")
	}
	return nil
}
