package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"cardapio-digital/domain/cart"
	"cardapio-digital/domain/models"
)

func TestMenuItemToResponse(t *testing.T) {
	portions := &models.Category{ID: "c1", Name: models.PortionsCategoryName}
	drinks := &models.Category{ID: "c2", Name: "Bebidas"}

	tests := []struct {
		name      string
		item      *models.MenuItem
		category  *models.Category
		wantJSON  []string
		avoidJSON []string
	}{
		{
			name:      "portion exposes half price",
			item:      &models.MenuItem{ID: "i1", Name: "Batata", Price: 2000, HalfPrice: 1200, CategoryID: "c1"},
			category:  portions,
			wantJSON:  []string{`"price":20.00`, `"halfPrice":12.00`, `"selectableHalf":true`, `"image":"/placeholder-image.jpg"`},
			avoidJSON: []string{`"promotion"`},
		},
		{
			name:      "other category hides half price",
			item:      &models.MenuItem{ID: "i2", Name: "Chopp", Price: 1000, HalfPrice: 600, CategoryID: "c2"},
			category:  drinks,
			wantJSON:  []string{`"selectableHalf":false`, `"categoryName":"Bebidas"`},
			avoidJSON: []string{`"halfPrice"`},
		},
		{
			name:     "promotion projected",
			item:     &models.MenuItem{ID: "i3", Name: "Chopp", Price: 1000, Promotion: &models.Promotion{Price: 800}, Image: "https://x/y.jpg"},
			category: drinks,
			wantJSON: []string{`"promotion":{"inPromotion":true,"promotionPrice":8.00}`, `"image":"https://x/y.jpg"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(MenuItemToResponse(tt.item, tt.category))
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			s := string(raw)
			for _, want := range tt.wantJSON {
				if !strings.Contains(s, want) {
					t.Errorf("missing %s in %s", want, s)
				}
			}
			for _, avoid := range tt.avoidJSON {
				if strings.Contains(s, avoid) {
					t.Errorf("unexpected %s in %s", avoid, s)
				}
			}
		})
	}
}

func TestCategoryPlaceholder(t *testing.T) {
	resp := CategoryToResponse(&models.Category{ID: "c", Name: "Lanches"})
	if resp.Image != PlaceholderImage {
		t.Fatalf("image = %q", resp.Image)
	}
	if CategoryToResponse(nil) != nil {
		t.Fatal("nil category should project to nil")
	}
}

func TestCartToResponse(t *testing.T) {
	c := cart.New()
	c.AddItem(cart.Product{ID: "x", Name: "Batata", Price: 2000, HalfPrice: 1200}, models.PortionsCategoryName, cart.OptionHalf)
	c.AddItem(cart.Product{ID: "x", Name: "Batata", Price: 2000, HalfPrice: 1200}, models.PortionsCategoryName, cart.OptionHalf)

	resp := CartToResponse(c)
	if resp.Count != 2 || len(resp.Items) != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Total.Cents() != 2400 || resp.Items[0].UnitPrice.Cents() != 1200 {
		t.Fatalf("total %s unit %s", resp.Total.StringFixed(2), resp.Items[0].UnitPrice.StringFixed(2))
	}
}

func TestFilterMenuItems(t *testing.T) {
	items := []MenuItemResponse{
		{ID: "1", Name: "Batata Frita", Description: "Porção grande", CategoryID: "c1"},
		{ID: "2", Name: "Calabresa", Description: "Acebolada", CategoryID: "c1"},
		{ID: "3", Name: "Chopp", Description: "500ml gelado", CategoryID: "c2"},
	}
	tests := []struct {
		name   string
		filter MenuItemFilter
		want   []string
	}{
		{"empty", MenuItemFilter{}, []string{"1", "2", "3"}},
		{"name, any case", MenuItemFilter{Query: "BATATA"}, []string{"1"}},
		{"description", MenuItemFilter{Query: " gelado "}, []string{"3"}},
		{"category", MenuItemFilter{CategoryID: "c1"}, []string{"1", "2"}},
		{"query within category", MenuItemFilter{Query: "a", CategoryID: "c2"}, []string{"3"}},
		{"no match", MenuItemFilter{Query: "pizza"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterMenuItems(items, tt.filter)
			ids := make([]string, 0, len(got))
			for _, item := range got {
				ids = append(ids, item.ID)
			}
			if strings.Join(ids, ",") != strings.Join(tt.want, ",") {
				t.Fatalf("ids = %v, want %v", ids, tt.want)
			}
		})
	}
}
