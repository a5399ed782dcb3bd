package refresh

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrEmptyJobName    = errors.New("job name is required")
	ErrInvalidInterval = errors.New("refresh interval must be positive")
)

// Runner re-runs tasks on a fixed interval. It replaces the browser's
// setInterval(renderAll) with a gocron scheduler.
type Runner struct {
	scheduler gocron.Scheduler
	logger    zerolog.Logger
	stopOnce  sync.Once
	stopErr   error
}

// New creates a stopped Runner
func New(logger zerolog.Logger) (*Runner, error) {
	logger = logger.With().Str("component", "refresh").Logger()

	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					logger.Error().
						Str("job_id", jobID.String()).
						Str("job_name", jobName).
						Interface("panic", recoverData).
						Msg("refresh job panicked")
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}

	return &Runner{
		scheduler: sched,
		logger:    logger,
	}, nil
}

// Every registers task to run immediately once the runner starts and then
// every interval. A run that overlaps the previous one is skipped.
func (r *Runner) Every(name string, interval time.Duration, task func()) (gocron.Job, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyJobName
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	jobLogger := r.logger.With().Str("job_name", name).Dur("interval", interval).Logger()

	wrappedTask := func() {
		jobLogger.Debug().Msg("refresh started")
		task()
		jobLogger.Debug().Msg("refresh completed")
	}

	job, err := r.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(wrappedTask),
		gocron.WithName(name),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		jobLogger.Error().Err(err).Msg("failed to register refresh job")
		return nil, err
	}
	jobLogger.Debug().Msg("refresh job registered")
	return job, nil
}

// Start begins running registered jobs
func (r *Runner) Start() {
	r.logger.Debug().Msg("refresh runner starting")
	r.scheduler.Start()
}

// Stop shuts the scheduler down and waits for running jobs. Safe to call
// more than once.
func (r *Runner) Stop() error {
	r.stopOnce.Do(func() {
		r.logger.Debug().Msg("refresh runner stopping")
		r.stopErr = r.scheduler.Shutdown()
	})
	return r.stopErr
}
