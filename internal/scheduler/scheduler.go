package scheduler

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Scheduler owns the process's periodic jobs. Boards, live notifications and
// the match feed each register duration jobs on it instead of running their
// own tickers.
type Scheduler struct {
	s     gocron.Scheduler
	clock clockwork.Clock
}

func NewScheduler(clock clockwork.Clock, timezone string) (*Scheduler, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		slog.Error("Failed to load location", "timezone", timezone, "error", err)
		location = time.UTC
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
		gocron.WithClock(clock),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:     s,
		clock: clock,
	}, nil
}

// Every runs task each interval until the returned job is removed. A run that
// would overlap the previous one is skipped.
func (s *Scheduler) Every(name string, interval time.Duration, task func()) (uuid.UUID, error) {
	job, err := s.s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create %s job: %w", name, err)
	}
	return job.ID(), nil
}

// Remove deletes a job. Removing an unknown job is not an error.
func (s *Scheduler) Remove(id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	err := s.s.RemoveJob(id)
	if err != nil && !errors.Is(err, gocron.ErrJobNotFound) {
		return fmt.Errorf("failed to remove job %s: %w", id, err)
	}
	return nil
}

func (s *Scheduler) JobCount() int {
	return len(s.s.Jobs())
}

func (s *Scheduler) Clock() clockwork.Clock {
	return s.clock
}

func (s *Scheduler) Start() {
	s.s.Start()
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}
