package services

import (
	"context"

	"cardapio-digital/domain/dto"
)

const (
	JobStoreHealth     = "store-health"
	JobCatalogSnapshot = "catalog-snapshot"
)

// MaintenanceService owns the periodic jobs: store health check and catalog snapshots
type MaintenanceService interface {
	ScheduleDefaults(ctx context.Context) error
	CheckStore(ctx context.Context) error
	RunSnapshot(ctx context.Context) (*dto.SnapshotResponse, error)
	ListJobs(ctx context.Context) []dto.JobResponse
}
