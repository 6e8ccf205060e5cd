package serviceimpl

import (
	"context"
	"errors"
	"testing"

	"cardapio-digital/domain/services"
	"cardapio-digital/pkg/scheduler"
)

type fakeScheduler struct {
	jobs map[string]*scheduler.JobInfo
	fns  map[string]func()
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{jobs: map[string]*scheduler.JobInfo{}, fns: map[string]func(){}}
}

func (f *fakeScheduler) Start()          {}
func (f *fakeScheduler) Stop()           {}
func (f *fakeScheduler) IsRunning() bool { return true }

func (f *fakeScheduler) AddJob(id, cronExpr string, task func()) error {
	f.jobs[id] = &scheduler.JobInfo{ID: id, CronExpr: cronExpr}
	f.fns[id] = task
	return nil
}

func (f *fakeScheduler) RemoveJob(id string) error {
	delete(f.jobs, id)
	delete(f.fns, id)
	return nil
}

func (f *fakeScheduler) GetJob(id string) (*scheduler.JobInfo, bool) {
	info, ok := f.jobs[id]
	return info, ok
}

func (f *fakeScheduler) ListJobs() map[string]*scheduler.JobInfo {
	return f.jobs
}

func TestScheduleDefaults(t *testing.T) {
	f := newFixture()
	seedMenu(f)
	sched := newFakeScheduler()
	storage := newMemStorage()
	snapshots := NewSnapshotService(f.categories, f.items, storage, "snapshots")
	svc := NewMaintenanceService(sched, f.health, snapshots, MaintenanceConfig{
		SnapshotEnabled: true,
		SnapshotCron:    "0 4 * * *",
		SnapshotKeep:    3,
	})

	if err := svc.ScheduleDefaults(context.Background()); err != nil {
		t.Fatalf("ScheduleDefaults: %v", err)
	}
	jobs := svc.ListJobs(context.Background())
	if len(jobs) != 2 || jobs[0].ID != services.JobCatalogSnapshot || jobs[1].ID != services.JobStoreHealth {
		t.Fatalf("jobs = %+v", jobs)
	}

	sched.fns[services.JobStoreHealth]()
	if f.health.calls != 1 {
		t.Fatalf("health calls = %d", f.health.calls)
	}
	sched.fns[services.JobCatalogSnapshot]()
	if files, _ := storage.ListFiles("snapshots"); len(files) != 1 {
		t.Fatalf("snapshot files = %v", files)
	}
}

func TestScheduleDefaultsRejectsBadCron(t *testing.T) {
	f := newFixture()
	svc := NewMaintenanceService(newFakeScheduler(), f.health, nil, MaintenanceConfig{
		SnapshotEnabled: true,
		SnapshotCron:    "every day",
	})
	if err := svc.ScheduleDefaults(context.Background()); err == nil {
		t.Fatal("expected cron validation error")
	}
}

func TestCheckStore(t *testing.T) {
	f := newFixture()
	f.health.err = errBoom
	svc := NewMaintenanceService(newFakeScheduler(), f.health, nil, MaintenanceConfig{})
	if err := svc.CheckStore(context.Background()); !errors.Is(err, errBoom) {
		t.Fatalf("err = %v", err)
	}
}
