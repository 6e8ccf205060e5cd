package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"cardapio-digital/domain/dto"
	"cardapio-digital/domain/services"
	"cardapio-digital/pkg/di"
	"cardapio-digital/pkg/logger"
)

// MenuFile is the seed document: categories with their items, prices as decimal strings
type MenuFile struct {
	Categories []SeedCategory `yaml:"categories"`
}

type SeedCategory struct {
	Name  string     `yaml:"name"`
	Image string     `yaml:"image"`
	Items []SeedItem `yaml:"items"`
}

type SeedItem struct {
	Name           string `yaml:"name"`
	Description    string `yaml:"description"`
	Price          string `yaml:"price"`
	HalfPrice      string `yaml:"halfPrice"`
	Image          string `yaml:"image"`
	PromotionPrice string `yaml:"promotionPrice"`
}

func main() {
	file := flag.String("file", "cmd/seed/menu.example.yaml", "menu YAML to load")
	dryRun := flag.Bool("dry-run", false, "validate the file without writing")
	flag.Parse()

	menu, err := loadMenu(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		if err := validateMenu(menu); err != nil {
			fmt.Fprintf(os.Stderr, "seed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d categories OK\n", *file, len(menu.Categories))
		return
	}

	container := di.NewContainer()
	if err := container.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "seed: failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer container.Cleanup()

	created, err := seed(context.Background(), container.CatalogQueryService, container.CatalogActionService, menu)
	if err != nil {
		logger.Error("Seed failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Seed completed", "file", *file, "items", created)
}

func loadMenu(path string) (*MenuFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var menu MenuFile
	if err := yaml.Unmarshal(raw, &menu); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &menu, nil
}

// validateMenu runs every entry through the admin form parsers
func validateMenu(menu *MenuFile) error {
	for _, c := range menu.Categories {
		if _, err := dto.ParseCategoryForm(c.values()); err != nil {
			return fmt.Errorf("category %q: %w", c.Name, err)
		}
		for _, item := range c.Items {
			// placeholder id, the real one comes from the store
			if _, err := dto.ParseMenuItemForm(item.values("seed")); err != nil {
				return fmt.Errorf("item %q: %w", item.Name, err)
			}
		}
	}
	return nil
}

// seed creates missing categories by name and then adds their items through the action layer
func seed(ctx context.Context, query services.CatalogQueryService, actions services.CatalogActionService, menu *MenuFile) (int, error) {
	existing, err := query.ListCategories(ctx)
	if err != nil {
		return 0, err
	}
	byName := make(map[string]string, len(existing))
	for _, c := range existing {
		byName[strings.ToLower(c.Name)] = c.ID
	}

	created := 0
	for _, c := range menu.Categories {
		categoryID, ok := byName[strings.ToLower(c.Name)]
		if !ok {
			form, err := dto.ParseCategoryForm(c.values())
			if err != nil {
				return created, fmt.Errorf("category %q: %w", c.Name, err)
			}
			result := actions.CreateCategory(ctx, form)
			if !result.Success {
				return created, fmt.Errorf("category %q: %s", c.Name, result.Error)
			}
			categoryID = result.Data.(*dto.CategoryResponse).ID
			logger.Info("Category created", "name", c.Name, "id", categoryID)
		}

		for _, item := range c.Items {
			form, err := dto.ParseMenuItemForm(item.values(categoryID))
			if err != nil {
				return created, fmt.Errorf("item %q: %w", item.Name, err)
			}
			result := actions.CreateMenuItem(ctx, form)
			if !result.Success {
				return created, fmt.Errorf("item %q: %s", item.Name, result.Error)
			}
			created++
		}
	}
	return created, nil
}

func (c SeedCategory) values() url.Values {
	v := url.Values{}
	v.Set(dto.FormName, c.Name)
	if c.Image != "" {
		v.Set(dto.FormImage, c.Image)
	}
	return v
}

func (i SeedItem) values(categoryID string) url.Values {
	v := url.Values{}
	v.Set(dto.FormName, i.Name)
	v.Set(dto.FormDescription, i.Description)
	v.Set(dto.FormPrice, i.Price)
	v.Set(dto.FormCategoryID, categoryID)
	if i.HalfPrice != "" {
		v.Set(dto.FormHalfPrice, i.HalfPrice)
	}
	if i.Image != "" {
		v.Set(dto.FormImage, i.Image)
	}
	if i.PromotionPrice != "" {
		v.Set(dto.FormInPromotion, "true")
		v.Set(dto.FormPromotionPrice, i.PromotionPrice)
	}
	return v
}
