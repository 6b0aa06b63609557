package scanner

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/SwarmHayes/swarm-trading-bot/internal/logging"
)

// Job is a unit of scheduled work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler runs jobs on cron schedules.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	logger zerolog.Logger
}

// NewScheduler creates a scheduler. Jobs run against ctx, so cancelling
// it unblocks any in-flight run.
func NewScheduler(ctx context.Context, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		ctx:    ctx,
		logger: logging.WithComponent(logger, "scheduler"),
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Msg("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Scheduler stopped")
}

// AddJob registers a job on a cron schedule, e.g. "@every 5m" or
// "*/15 9-16 * * MON-FRI".
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.logger.Debug().Str("job", job.Name()).Msg("Running job")

		if err := job.Run(s.ctx); err != nil {
			s.logger.Error().
				Err(err).
				Str("job", job.Name()).
				Msg("Job failed")
			return
		}
		s.logger.Debug().Str("job", job.Name()).Msg("Job completed")
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("schedule", schedule).
		Str("job", job.Name()).
		Msg("Job registered")
	return nil
}
