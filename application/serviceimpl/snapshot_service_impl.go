package serviceimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"cardapio-digital/domain/dto"
	"cardapio-digital/domain/ports"
	"cardapio-digital/domain/repositories"
	"cardapio-digital/domain/services"
	"cardapio-digital/pkg/envelope"
	"cardapio-digital/pkg/logger"
)

const snapshotContentType = "application/gzip"

type SnapshotServiceImpl struct {
	categoryRepo repositories.CategoryRepository
	menuItemRepo repositories.MenuItemRepository
	storage      ports.StoragePort
	prefix       string
	now          func() time.Time
}

func NewSnapshotService(
	categoryRepo repositories.CategoryRepository,
	menuItemRepo repositories.MenuItemRepository,
	storage ports.StoragePort,
	prefix string,
) services.SnapshotService {
	return &SnapshotServiceImpl{
		categoryRepo: categoryRepo,
		menuItemRepo: menuItemRepo,
		storage:      storage,
		prefix:       strings.Trim(prefix, "/"),
		now:          time.Now,
	}
}

func (s *SnapshotServiceImpl) TakeSnapshot(ctx context.Context) (*dto.SnapshotResponse, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Snapshot: failed to list categories", "error", err)
		return nil, err
	}
	rows, err := s.menuItemRepo.ListAllWithCategory(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Snapshot: failed to list menu items", "error", err)
		return nil, err
	}

	takenAt := s.now().UTC()
	snapshot := dto.CatalogSnapshot{
		TakenAt:    takenAt,
		Categories: dto.CategoriesToResponses(categories),
		Items:      dto.JoinedItemsToResponses(rows),
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}
	compressed, err := envelope.Compress(raw)
	if err != nil {
		return nil, err
	}

	// timestamped names sort chronologically, Prune relies on it
	path := s.prefix + "/catalog-" + takenAt.Format("20060102T150405Z") + ".json.gz"
	url, err := s.storage.UploadFile(bytes.NewReader(compressed), path, snapshotContentType)
	if err != nil {
		logger.ErrorContext(ctx, "Snapshot: upload failed", "path", path, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Catalog snapshot stored",
		"path", path,
		"provider", s.storage.GetProviderName(),
		"categories", len(snapshot.Categories),
		"items", len(snapshot.Items),
		"bytes", len(compressed),
	)

	return &dto.SnapshotResponse{
		Path:       path,
		URL:        url,
		Provider:   s.storage.GetProviderName(),
		Categories: len(snapshot.Categories),
		Items:      len(snapshot.Items),
		TakenAt:    takenAt,
	}, nil
}

func (s *SnapshotServiceImpl) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		keep = 1
	}

	files, err := s.storage.ListFiles(s.prefix)
	if err != nil {
		logger.ErrorContext(ctx, "Snapshot: failed to list files", "error", err)
		return 0, err
	}

	snapshots := make([]string, 0, len(files))
	for _, f := range files {
		if strings.HasSuffix(f, ".json.gz") {
			snapshots = append(snapshots, f)
		}
	}
	if len(snapshots) <= keep {
		return 0, nil
	}

	removed := 0
	for _, path := range snapshots[:len(snapshots)-keep] {
		if err := s.storage.DeleteFile(path); err != nil {
			logger.WarnContext(ctx, "Snapshot: failed to delete", "path", path, "error", err)
			continue
		}
		removed++
	}

	logger.InfoContext(ctx, "Old snapshots pruned", "removed", removed, "kept", keep)
	return removed, nil
}
