package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Scheduler=MockSchedulerService

import (
	"context"
	"errors"
	"fmt"
	"stay/config"
	"stay/infras/otel"
	"stay/internal/domains/scheduler/model"
	"stay/internal/domains/scheduler/model/dto"
	"stay/internal/domains/scheduler/repository"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/timezone"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrSkip tells the scheduler the job no longer applies. The job is marked done.
var ErrSkip = errors.New("job precondition no longer holds")

var (
	errNoHandler      = errors.New("no handler registered for job type")
	errAlreadyStarted = errors.New("scheduler already started")
)

// Handler runs one job. Jobs are delivered at least once, so handlers must tolerate repeats.
type Handler func(ctx context.Context, job model.Job) error

type Scheduler interface {
	// Schedule enqueues spec. It reports false when its unique key was already taken.
	Schedule(ctx context.Context, spec model.Spec) (bool, error)
	ScheduleTx(ctx context.Context, tx *sqlx.Tx, spec model.Spec) (bool, error)
	OnDue(jobType model.Type, handler Handler)
	// Recurring keeps one pending occurrence of jobType enqueued on the cron schedule.
	Recurring(ctx context.Context, jobType model.Type, cronSpec string) error
	// RunDue claims one batch of due jobs and runs it to completion.
	RunDue(ctx context.Context) (int, error)
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetJobsResponse, error)
}

type serviceImpl struct {
	repo repository.Job
	cfg  *config.Config
	otel otel.Otel

	mu        sync.RWMutex
	handlers  map[model.Type]Handler
	schedules map[model.Type]cron.Schedule

	stop    chan struct{}
	done    chan struct{}
	started bool
}

func New(repo repository.Job, cfg *config.Config, otel otel.Otel) Scheduler {
	return &serviceImpl{
		repo:      repo,
		cfg:       cfg,
		otel:      otel,
		handlers:  make(map[model.Type]Handler),
		schedules: make(map[model.Type]cron.Schedule),
	}
}

func (s *serviceImpl) Schedule(ctx context.Context, spec model.Spec) (inserted bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+".Schedule")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	job, err := model.NewJob(spec, constant.RoleSystem, timezone.Now())
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	inserted, err = s.repo.Insert(ctx, job)
	if err != nil {
		log.Error().Err(err).Str("type", string(spec.Type)).Msg("failed to schedule job")

		return false, fmt.Errorf("failed to schedule job: %w", err)
	}

	return inserted, nil
}

func (s *serviceImpl) ScheduleTx(ctx context.Context, tx *sqlx.Tx, spec model.Spec) (inserted bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+".ScheduleTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	job, err := model.NewJob(spec, constant.RoleSystem, timezone.Now())
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	inserted, err = s.repo.InsertTx(ctx, tx, job)
	if err != nil {
		log.Error().Err(err).Str("type", string(spec.Type)).Msg("failed to schedule job")

		return false, fmt.Errorf("failed to schedule job: %w", err)
	}

	if !inserted {
		log.Debug().Str("type", string(spec.Type)).Str("key", spec.UniqueKey).Msg("job already scheduled")
	}

	return inserted, nil
}

func (s *serviceImpl) OnDue(jobType model.Type, handler Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handlers[jobType] = handler
}

func (s *serviceImpl) Recurring(ctx context.Context, jobType model.Type, cronSpec string) error {
	schedule, err := cron.ParseStandard(cronSpec)
	if err != nil {
		return fmt.Errorf("invalid cron spec %q for %s: %w", cronSpec, jobType, err)
	}

	s.mu.Lock()
	s.schedules[jobType] = schedule
	s.mu.Unlock()

	return s.scheduleNext(ctx, jobType, timezone.Now())
}

// scheduleNext enqueues the occurrence after now. The key makes concurrent workers agree on one row.
func (s *serviceImpl) scheduleNext(ctx context.Context, jobType model.Type, now time.Time) error {
	s.mu.RLock()
	schedule, ok := s.schedules[jobType]
	s.mu.RUnlock()

	if !ok {
		return nil
	}

	next := schedule.Next(now)

	_, err := s.Schedule(ctx, model.Spec{
		Type:      jobType,
		RunAt:     next,
		UniqueKey: model.RecurringKey(jobType, next),
	})

	return err
}

func (s *serviceImpl) RunDue(ctx context.Context) (n int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+".RunDue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()
	lease := now.Add(time.Duration(s.cfg.Scheduler.LeaseSeconds) * time.Second)

	jobs, err := s.repo.ClaimDue(ctx, now, lease, max(1, s.cfg.Scheduler.BatchSize))
	if err != nil {
		log.Error().Err(err).Msg("failed to claim due jobs")

		return 0, fmt.Errorf("failed to claim due jobs: %w", err)
	}

	var g errgroup.Group

	g.SetLimit(max(1, s.cfg.Scheduler.Workers))

	for _, job := range jobs {
		g.Go(func() error {
			s.execute(ctx, job)

			return nil
		})
	}

	_ = g.Wait()

	return len(jobs), nil
}

func (s *serviceImpl) execute(ctx context.Context, job model.Job) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+"."+string(job.Type))
	defer scope.End()

	s.mu.RLock()
	handler, ok := s.handlers[job.Type]
	s.mu.RUnlock()

	logger := log.With().Str("job", job.ID).Str("type", string(job.Type)).Int("attempt", job.Attempts).Logger()

	var err error
	if !ok {
		err = errNoHandler
	} else {
		err = s.invoke(ctx, handler, job)
	}

	now := timezone.Now()

	switch {
	case err == nil || errors.Is(err, ErrSkip):
		if err != nil {
			logger.Info().Msg("job skipped")
		}

		if markErr := s.repo.MarkDone(ctx, job.ID, now); markErr != nil {
			logger.Error().Err(markErr).Msg("failed to mark job done")
		}
	case !ok || job.Attempts >= s.cfg.Scheduler.MaxAttempts:
		scope.TraceError(err)
		logger.Error().Err(err).Msg("job failed permanently")

		if markErr := s.repo.MarkFailed(ctx, job.ID, err.Error(), now); markErr != nil {
			logger.Error().Err(markErr).Msg("failed to mark job failed")
		}
	default:
		backoff := time.Duration(s.cfg.Scheduler.RetryBackoffSeconds) * time.Second
		runAt := model.RetryAt(now, job.Attempts, backoff)

		logger.Warn().Err(err).Time("retry_at", runAt).Msg("job failed, retrying")

		if markErr := s.repo.MarkRetry(ctx, job.ID, runAt, err.Error(), now); markErr != nil {
			logger.Error().Err(markErr).Msg("failed to mark job for retry")
		}

		return
	}

	if err := s.scheduleNext(ctx, job.Type, now); err != nil {
		logger.Error().Err(err).Msg("failed to schedule next occurrence")
	}
}

func (s *serviceImpl) invoke(ctx context.Context, handler Handler, job model.Job) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("job handler panicked: %v", p)
		}
	}()

	return handler(ctx, job)
}

// Start polls for due jobs until ctx ends or Stop is called.
func (s *serviceImpl) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()

		return errAlreadyStarted
	}

	s.started = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.mu.Unlock()

	interval := time.Duration(max(1, s.cfg.Scheduler.PollIntervalSeconds)) * time.Second

	log.Info().Dur("interval", interval).Int("workers", s.cfg.Scheduler.Workers).Msg("scheduler started")

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case <-ticker.C:
				// A full batch may mean more work is due right away.
				for {
					n, err := s.RunDue(ctx)
					if err != nil || n < s.cfg.Scheduler.BatchSize {
						break
					}
				}
			}
		}
	}()

	return nil
}

// Stop waits for the in-flight batch, or for ctx to end.
func (s *serviceImpl) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()

		return nil
	}

	s.started = false
	close(s.stop)
	done := s.done
	s.mu.Unlock()

	select {
	case <-done:
		log.Info().Msg("scheduler stopped")

		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetJobsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count jobs")

		return res, fmt.Errorf("failed to count jobs: %w", err)
	}

	jobs, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get jobs")

		return res, fmt.Errorf("failed to get jobs: %w", err)
	}

	res.FromModels(jobs, total, params.Limit)

	return res, nil
}
