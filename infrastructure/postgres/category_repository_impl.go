package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cardapio-digital/domain/models"
	"cardapio-digital/domain/repositories"
)

type CategoryRepositoryImpl struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) repositories.CategoryRepository {
	return &CategoryRepositoryImpl{db: db}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *models.Category) error {
	row := &categoryRow{
		ID:    uuid.NewString(),
		Name:  category.Name,
		Slug:  category.Slug,
		Image: category.Image,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return wrap("categories.create", err)
	}
	category.ID = row.ID
	category.CreatedAt = row.CreatedAt
	category.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *CategoryRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Category, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.first(ctx, "categories.getById", "id = ?", id)
}

func (r *CategoryRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if slug == "" {
		return nil, nil
	}
	return r.first(ctx, "categories.getBySlug", "slug = ?", slug)
}

func (r *CategoryRepositoryImpl) first(ctx context.Context, op, query string, arg any) (*models.Category, error) {
	var row categoryRow
	err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrap(op, err)
	}
	return row.toModel(), nil
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	if !validID(category.ID) {
		return nil, nil
	}
	res := r.db.WithContext(ctx).Model(&categoryRow{}).Where("id = ?", category.ID).Updates(map[string]any{
		"name":       category.Name,
		"slug":       category.Slug,
		"image":      category.Image,
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return nil, wrap("categories.update", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, category.ID)
}

func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&categoryRow{}).Error; err != nil {
		return wrap("categories.delete", err)
	}
	return nil
}

func (r *CategoryRepositoryImpl) List(ctx context.Context) ([]*models.Category, error) {
	var rows []categoryRow
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, wrap("categories.list", err)
	}
	categories := make([]*models.Category, 0, len(rows))
	for i := range rows {
		categories = append(categories, rows[i].toModel())
	}
	return categories, nil
}
