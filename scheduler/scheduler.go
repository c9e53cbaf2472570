package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"nyayasetu/logger"
)

// Job is one scheduled task. The context carries the per-run timeout.
type Job func(ctx context.Context) error

// Scheduler runs periodic jobs in a fixed timezone.
type Scheduler struct {
	cron       *cron.Cron
	jobs       map[string]cron.EntryID
	jobTimeout time.Duration
}

func New(timezone string, jobTimeout time.Duration) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("scheduler: invalid timezone %s: %w", timezone, err)
	}
	if jobTimeout <= 0 {
		jobTimeout = 30 * time.Minute
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		jobs:       make(map[string]cron.EntryID),
		jobTimeout: jobTimeout,
	}, nil
}

// AddJob registers a job with a standard 5-field cron schedule,
// e.g. "0 7 * * *" for 7:00 every day.
func (s *Scheduler) AddJob(name, schedule string, job Job) error {
	entryID, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		start := time.Now()
		logger.InfoWithFields("scheduled job starting", logger.Fields{"job": name})

		if err := job(ctx); err != nil {
			logger.ErrorWithFields("scheduled job failed", logger.Fields{
				"job":   name,
				"error": err.Error(),
			})
			return
		}
		logger.InfoWithFields("scheduled job completed", logger.Fields{
			"job":      name,
			"duration": time.Since(start).String(),
		})
	})
	if err != nil {
		return fmt.Errorf("scheduler: failed to schedule job %s: %w", name, err)
	}

	s.jobs[name] = entryID
	logger.InfoWithFields("scheduled job registered", logger.Fields{"job": name, "schedule": schedule})
	return nil
}

// RemoveJob unschedules a registered job.
func (s *Scheduler) RemoveJob(name string) {
	if entryID, ok := s.jobs[name]; ok {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
	}
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling; the returned context is done once running jobs
// have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// JobInfo describes one registered job.
type JobInfo struct {
	Name    string
	NextRun time.Time
	LastRun time.Time
}

// ListJobs reports the registered jobs with their next and previous runs.
func (s *Scheduler) ListJobs() []JobInfo {
	entries := s.cron.Entries()
	infos := make([]JobInfo, 0, len(s.jobs))
	for name, entryID := range s.jobs {
		for _, entry := range entries {
			if entry.ID == entryID {
				infos = append(infos, JobInfo{Name: name, NextRun: entry.Next, LastRun: entry.Prev})
				break
			}
		}
	}
	return infos
}
