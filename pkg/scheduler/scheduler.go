package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"cardapio-digital/pkg/logger"
)

// EventScheduler runs the periodic maintenance jobs (store health check, catalog snapshot)
type EventScheduler interface {
	Start()
	Stop()
	AddJob(id, cronExpr string, task func()) error
	RemoveJob(id string) error
	GetJob(id string) (*JobInfo, bool)
	ListJobs() map[string]*JobInfo
	IsRunning() bool
}

type JobInfo struct {
	ID       string
	CronExpr string
	LastRun  *time.Time
	NextRun  *time.Time
	job      *gocron.Job
}

type GocronScheduler struct {
	scheduler *gocron.Scheduler
	jobs      map[string]*JobInfo
	mu        sync.RWMutex
	running   bool
}

func NewEventScheduler() EventScheduler {
	s := gocron.NewScheduler(time.UTC)
	// a slow snapshot must not overlap the next tick
	s.SingletonModeAll()

	return &GocronScheduler{
		scheduler: s,
		jobs:      make(map[string]*JobInfo),
	}
}

func (s *GocronScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.scheduler.StartAsync()
	s.running = true
	logger.Info("Scheduler started", "jobs", len(s.jobs))
}

func (s *GocronScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.scheduler.Stop()
	s.running = false
	logger.Info("Scheduler stopped")
}

func (s *GocronScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *GocronScheduler) AddJob(id, cronExpr string, task func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		return fmt.Errorf("job with ID %s already exists", id)
	}

	job, err := s.scheduler.Cron(cronExpr).Do(func() {
		now := time.Now()
		s.mu.Lock()
		if info, ok := s.jobs[id]; ok {
			info.LastRun = &now
		}
		s.mu.Unlock()

		logger.Debug("Running scheduled job", "job_id", id)
		task()
	})
	if err != nil {
		return fmt.Errorf("failed to create job %s: %w", id, err)
	}

	nextRun := job.NextRun()
	s.jobs[id] = &JobInfo{
		ID:       id,
		CronExpr: cronExpr,
		NextRun:  &nextRun,
		job:      job,
	}

	logger.Info("Job added", "job_id", id, "cron", cronExpr, "next_run", nextRun.Format(time.RFC3339))
	return nil
}

func (s *GocronScheduler) RemoveJob(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("job with ID %s not found", id)
	}
	if info.job != nil {
		s.scheduler.RemoveByReference(info.job)
	}
	delete(s.jobs, id)
	logger.Info("Job removed", "job_id", id)
	return nil
}

func (s *GocronScheduler) GetJob(id string) (*JobInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, exists := s.jobs[id]
	if !exists {
		return nil, false
	}
	return snapshot(info), true
}

func (s *GocronScheduler) ListJobs() map[string]*JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make(map[string]*JobInfo, len(s.jobs))
	for id, info := range s.jobs {
		jobs[id] = snapshot(info)
	}
	return jobs
}

// snapshot copies info so callers never share the scheduler's timestamps
func snapshot(info *JobInfo) *JobInfo {
	out := &JobInfo{ID: info.ID, CronExpr: info.CronExpr}
	if info.LastRun != nil {
		lastRun := *info.LastRun
		out.LastRun = &lastRun
	}
	if info.job != nil {
		nextRun := info.job.NextRun()
		out.NextRun = &nextRun
	} else if info.NextRun != nil {
		nextRun := *info.NextRun
		out.NextRun = &nextRun
	}
	return out
}

func ValidateCronExpression(cronExpr string) error {
	s := gocron.NewScheduler(time.UTC)
	if _, err := s.Cron(cronExpr).Do(func() {}); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}
