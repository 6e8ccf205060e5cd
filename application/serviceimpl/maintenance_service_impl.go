package serviceimpl

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cardapio-digital/domain/dto"
	"cardapio-digital/domain/ports"
	"cardapio-digital/domain/services"
	"cardapio-digital/pkg/logger"
	"cardapio-digital/pkg/scheduler"
)

const (
	storeHealthCron = "* * * * *"
	jobTimeout      = 2 * time.Minute
)

type MaintenanceConfig struct {
	SnapshotEnabled bool
	SnapshotCron    string
	SnapshotKeep    int
}

type MaintenanceServiceImpl struct {
	scheduler scheduler.EventScheduler
	health    ports.StoreHealth
	snapshots services.SnapshotService
	cfg       MaintenanceConfig
}

func NewMaintenanceService(
	sched scheduler.EventScheduler,
	health ports.StoreHealth,
	snapshots services.SnapshotService,
	cfg MaintenanceConfig,
) services.MaintenanceService {
	return &MaintenanceServiceImpl{
		scheduler: sched,
		health:    health,
		snapshots: snapshots,
		cfg:       cfg,
	}
}

func (s *MaintenanceServiceImpl) ScheduleDefaults(ctx context.Context) error {
	err := s.scheduler.AddJob(services.JobStoreHealth, storeHealthCron, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		s.CheckStore(jobCtx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", services.JobStoreHealth, err)
	}

	if !s.cfg.SnapshotEnabled {
		logger.InfoContext(ctx, "Catalog snapshots disabled")
		return nil
	}
	if err := scheduler.ValidateCronExpression(s.cfg.SnapshotCron); err != nil {
		return fmt.Errorf("SNAPSHOT_CRON: %w", err)
	}

	err = s.scheduler.AddJob(services.JobCatalogSnapshot, s.cfg.SnapshotCron, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if _, err := s.RunSnapshot(jobCtx); err != nil {
			logger.ErrorContext(jobCtx, "Scheduled snapshot failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", services.JobCatalogSnapshot, err)
	}

	logger.InfoContext(ctx, "Maintenance jobs scheduled", "snapshot_cron", s.cfg.SnapshotCron)
	return nil
}

func (s *MaintenanceServiceImpl) CheckStore(ctx context.Context) error {
	if err := s.health.Verify(ctx); err != nil {
		logger.ErrorContext(ctx, "Store health check failed", "error", err)
		return err
	}
	logger.DebugContext(ctx, "Store health check passed")
	return nil
}

// RunSnapshot takes a snapshot and prunes the old ones; a failed prune does not fail the run
func (s *MaintenanceServiceImpl) RunSnapshot(ctx context.Context) (*dto.SnapshotResponse, error) {
	resp, err := s.snapshots.TakeSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if s.cfg.SnapshotKeep > 0 {
		if _, err := s.snapshots.Prune(ctx, s.cfg.SnapshotKeep); err != nil {
			logger.WarnContext(ctx, "Snapshot prune failed", "error", err)
		}
	}
	return resp, nil
}

func (s *MaintenanceServiceImpl) ListJobs(ctx context.Context) []dto.JobResponse {
	jobs := s.scheduler.ListJobs()

	resp := make([]dto.JobResponse, 0, len(jobs))
	for _, info := range jobs {
		resp = append(resp, dto.JobResponse{
			ID:       info.ID,
			CronExpr: info.CronExpr,
			LastRun:  info.LastRun,
			NextRun:  info.NextRun,
		})
	}
	sort.Slice(resp, func(i, j int) bool { return resp[i].ID < resp[j].ID })
	return resp
}
