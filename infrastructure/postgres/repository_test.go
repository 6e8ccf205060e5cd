package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cardapio-digital/domain/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every connection to :memory: is a fresh database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustCategory(t *testing.T, repo *CategoryRepositoryImpl, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name, Slug: name}
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("create category %s: %v", name, err)
	}
	return c
}

func mustItem(t *testing.T, repo *MenuItemRepositoryImpl, item *models.MenuItem) *models.MenuItem {
	t.Helper()
	if err := repo.Create(context.Background(), item); err != nil {
		t.Fatalf("create item %s: %v", item.Name, err)
	}
	return item
}

func TestCategoryCRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db).(*CategoryRepositoryImpl)
	ctx := context.Background()

	mustCategory(t, repo, "Lanches")
	bebidas := mustCategory(t, repo, "Bebidas")

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Bebidas" || list[1].Name != "Lanches" {
		t.Fatalf("list not sorted by name: %+v", list)
	}

	got, err := repo.GetByID(ctx, bebidas.ID)
	if err != nil || got == nil || got.Name != "Bebidas" {
		t.Fatalf("GetByID = %+v, %v", got, err)
	}

	bebidas.Name = "Drinks"
	bebidas.Slug = "drinks"
	updated, err := repo.Update(ctx, bebidas)
	if err != nil || updated == nil || updated.Name != "Drinks" {
		t.Fatalf("Update = %+v, %v", updated, err)
	}
	bySlug, err := repo.GetBySlug(ctx, "drinks")
	if err != nil || bySlug == nil || bySlug.ID != bebidas.ID {
		t.Fatalf("GetBySlug = %+v, %v", bySlug, err)
	}

	if err := repo.Delete(ctx, bebidas.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := repo.GetByID(ctx, bebidas.ID)
	if err != nil || gone != nil {
		t.Fatalf("deleted category still found: %+v, %v", gone, err)
	}
}

func TestAbsenceIsNotAnError(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryRepository(db)
	items := NewMenuItemRepository(db)
	ctx := context.Background()

	for _, id := range []string{"not-a-uuid", uuid.NewString()} {
		if c, err := categories.GetByID(ctx, id); c != nil || err != nil {
			t.Errorf("GetByID(%q) = %+v, %v", id, c, err)
		}
		if c, err := categories.Update(ctx, &models.Category{ID: id, Name: "x"}); c != nil || err != nil {
			t.Errorf("Update(%q) = %+v, %v", id, c, err)
		}
		if m, err := items.Delete(ctx, id); m != nil || err != nil {
			t.Errorf("Delete(%q) = %+v, %v", id, m, err)
		}
		if list, err := items.ListByCategory(ctx, id); len(list) != 0 || err != nil {
			t.Errorf("ListByCategory(%q) = %+v, %v", id, list, err)
		}
	}
}

func TestMenuItemPromotionColumns(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryRepository(db).(*CategoryRepositoryImpl)
	items := NewMenuItemRepository(db).(*MenuItemRepositoryImpl)
	ctx := context.Background()

	cat := mustCategory(t, categories, "Bebidas")
	item := mustItem(t, items, &models.MenuItem{
		Name: "Chopp", Description: "500ml", Price: 1000, CategoryID: cat.ID,
		Promotion: &models.Promotion{Price: 800},
	})

	got, err := items.GetByID(ctx, item.ID)
	if err != nil || got == nil || got.Promotion == nil || got.Promotion.Price != 800 {
		t.Fatalf("GetByID = %+v, %v", got, err)
	}

	got.Promotion = nil
	updated, err := items.Update(ctx, got)
	if err != nil || updated == nil {
		t.Fatalf("Update = %+v, %v", updated, err)
	}
	if updated.Promotion != nil {
		t.Fatalf("promotion should be cleared, got %+v", updated.Promotion)
	}
}

// Deleting a category and then its items leaves no item referencing it.
func TestCascadeDeleteByCategory(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryRepository(db).(*CategoryRepositoryImpl)
	items := NewMenuItemRepository(db).(*MenuItemRepositoryImpl)
	ctx := context.Background()

	porcoes := mustCategory(t, categories, models.PortionsCategoryName)
	bebidas := mustCategory(t, categories, "Bebidas")
	mustItem(t, items, &models.MenuItem{Name: "Batata", Price: 2000, HalfPrice: 1200, CategoryID: porcoes.ID})
	mustItem(t, items, &models.MenuItem{Name: "Calabresa", Price: 3000, HalfPrice: 1800, CategoryID: porcoes.ID})
	mustItem(t, items, &models.MenuItem{Name: "Água", Price: 500, CategoryID: bebidas.ID})

	if err := categories.Delete(ctx, porcoes.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	n, err := items.DeleteByCategory(ctx, porcoes.ID)
	if err != nil || n != 2 {
		t.Fatalf("DeleteByCategory = %d, %v", n, err)
	}

	left, err := items.ListByCategory(ctx, porcoes.ID)
	if err != nil || len(left) != 0 {
		t.Fatalf("items survived cascade: %+v, %v", left, err)
	}
	others, err := items.ListByCategory(ctx, bebidas.ID)
	if err != nil || len(others) != 1 {
		t.Fatalf("unrelated items touched: %+v, %v", others, err)
	}
}

func TestListAllWithCategory(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryRepository(db).(*CategoryRepositoryImpl)
	items := NewMenuItemRepository(db).(*MenuItemRepositoryImpl)
	ctx := context.Background()

	porcoes := mustCategory(t, categories, models.PortionsCategoryName)
	orphanCat := mustCategory(t, categories, "Antiga")
	mustItem(t, items, &models.MenuItem{Name: "Calabresa", Price: 3000, CategoryID: porcoes.ID})
	mustItem(t, items, &models.MenuItem{Name: "Batata", Price: 2000, CategoryID: porcoes.ID})
	mustItem(t, items, &models.MenuItem{Name: "Órfão", Price: 100, CategoryID: orphanCat.ID})

	// partial cascade: the category is gone but its item is still stored
	if err := categories.Delete(ctx, orphanCat.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	rows, err := items.ListAllWithCategory(ctx)
	if err != nil {
		t.Fatalf("ListAllWithCategory: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (orphan left out)", len(rows))
	}
	if rows[0].Name != "Batata" || rows[1].Name != "Calabresa" {
		t.Fatalf("not sorted by name: %s, %s", rows[0].Name, rows[1].Name)
	}
	if rows[0].Category == nil || rows[0].Category.Name != models.PortionsCategoryName {
		t.Fatalf("category not joined: %+v", rows[0].Category)
	}
}

func TestHealthVerify(t *testing.T) {
	db := newTestDB(t)
	if err := NewHealth(db).Verify(context.Background()); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}
