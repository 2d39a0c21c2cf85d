package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	schedulerModel "stay/internal/domains/scheduler/model"
	schedulerRepo "stay/internal/domains/scheduler/repository"
	gDto "stay/shared/dto"
)

func (s *Store) Jobs() schedulerRepo.Job {
	return jobs{s}
}

// ScheduledJobs returns every job in insertion order.
func (s *Store) ScheduledJobs() []schedulerModel.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]schedulerModel.Job, 0, len(s.jobOrder))
	for _, id := range s.jobOrder {
		out = append(out, s.jobs[id])
	}

	return out
}

type jobs struct {
	s *Store
}

func (j jobs) Insert(_ context.Context, job schedulerModel.Job) (bool, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()

	if job.UniqueKey != nil {
		if _, taken := j.s.jobKeys[*job.UniqueKey]; taken {
			return false, nil
		}

		j.s.jobKeys[*job.UniqueKey] = job.ID
	}

	j.s.jobs[job.ID] = job
	j.s.jobOrder = append(j.s.jobOrder, job.ID)

	return true, nil
}

func (j jobs) InsertTx(ctx context.Context, _ *sqlx.Tx, job schedulerModel.Job) (bool, error) {
	return j.Insert(ctx, job)
}

func (j jobs) ClaimDue(_ context.Context, now, leaseUntil time.Time, limit int) ([]schedulerModel.Job, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()

	var due []schedulerModel.Job

	for _, id := range j.s.jobOrder {
		job := j.s.jobs[id]

		pending := job.Status == schedulerModel.StatusPending && !job.RunAt.After(now)
		abandoned := job.Status == schedulerModel.StatusRunning && job.LockedUntil != nil && job.LockedUntil.Before(now)

		if pending || abandoned {
			due = append(due, job)
		}
	}

	sort.SliceStable(due, func(a, b int) bool { return due[a].RunAt.Before(due[b].RunAt) })
	due = due[:min(limit, len(due))]

	for i := range due {
		lease := leaseUntil
		due[i].Status = schedulerModel.StatusRunning
		due[i].Attempts++
		due[i].LockedUntil = &lease
		due[i].ModifiedAt = now
		j.s.jobs[due[i].ID] = due[i]
	}

	return due, nil
}

func (j jobs) MarkDone(_ context.Context, id string, now time.Time) error {
	return j.update(id, func(job *schedulerModel.Job) {
		job.Status = schedulerModel.StatusDone
		job.LockedUntil = nil
		job.ModifiedAt = now
	})
}

func (j jobs) MarkRetry(_ context.Context, id string, runAt time.Time, lastError string, now time.Time) error {
	return j.update(id, func(job *schedulerModel.Job) {
		job.Status = schedulerModel.StatusPending
		job.RunAt = runAt
		job.LastError = lastError
		job.LockedUntil = nil
		job.ModifiedAt = now
	})
}

func (j jobs) MarkFailed(_ context.Context, id string, lastError string, now time.Time) error {
	return j.update(id, func(job *schedulerModel.Job) {
		job.Status = schedulerModel.StatusFailed
		job.LastError = lastError
		job.LockedUntil = nil
		job.ModifiedAt = now
	})
}

func (j jobs) update(id string, fn func(job *schedulerModel.Job)) error {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()

	job, ok := j.s.jobs[id]
	if !ok {
		return nil
	}

	fn(&job)
	j.s.jobs[id] = job

	return nil
}

func (j jobs) GetAll(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]schedulerModel.Job, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()

	var out []schedulerModel.Job

	for _, id := range j.s.jobOrder {
		if job := j.s.jobs[id]; matches(job, filter) {
			out = append(out, job)
		}
	}

	from, to := page(len(out), params)

	return out[from:to], nil
}

func (j jobs) Count(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	all, err := j.GetAll(ctx, gDto.QueryParams{}, filter)

	return len(all), err
}
