package serviceimpl

import (
	"context"
	"errors"
	"testing"

	"cardapio-digital/domain/cart"
	"cardapio-digital/domain/dto"
	"cardapio-digital/domain/models"
	"cardapio-digital/domain/services"
)

func newCartFixture() (*fixture, *CartServiceImpl, *models.MenuItem, *models.MenuItem) {
	f := newFixture()
	porcoes := f.addCategory(models.PortionsCategoryName)
	bebidas := f.addCategory("Bebidas")
	batata := f.addItem(&models.MenuItem{Name: "Batata", Price: 2000, HalfPrice: 1200, CategoryID: porcoes.ID})
	chopp := f.addItem(&models.MenuItem{Name: "Chopp", Price: 1000, HalfPrice: 600, CategoryID: bebidas.ID,
		Promotion: &models.Promotion{Price: 800}})
	svc := NewCartService(newMemCarts(), f.categories, f.items, nil).(*CartServiceImpl)
	return f, svc, batata, chopp
}

func TestCartServicePortionScenario(t *testing.T) {
	_, svc, batata, _ := newCartFixture()
	ctx := context.Background()

	for _, opt := range []string{"half", "full", "half"} {
		if _, err := svc.AddItem(ctx, "s1", &dto.AddCartItemRequest{MenuItemID: batata.ID, SelectedOption: opt}); err != nil {
			t.Fatalf("AddItem(%s): %v", opt, err)
		}
	}

	resp, err := svc.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(resp.Items) != 2 || resp.Count != 3 || resp.Total.Cents() != 4400 {
		t.Fatalf("cart = %+v", resp)
	}
	if resp.Items[0].UniqueID != cart.UniqueID(batata.ID, cart.OptionHalf) || resp.Items[0].Quantity != 2 {
		t.Fatalf("first line = %+v", resp.Items[0])
	}
	if resp.Items[0].CategoryName != models.PortionsCategoryName {
		t.Fatalf("category name = %q", resp.Items[0].CategoryName)
	}

	// sessions do not share state
	other, _ := svc.Get(ctx, "s2")
	if len(other.Items) != 0 {
		t.Fatalf("session leak: %+v", other)
	}
	if n := svc.locks.Len(); n != 0 {
		t.Fatalf("%d session locks left after the adds returned", n)
	}
}

func TestCartServicePromotionPrice(t *testing.T) {
	_, svc, _, chopp := newCartFixture()

	resp, err := svc.AddItem(context.Background(), "s1", &dto.AddCartItemRequest{MenuItemID: chopp.ID})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if resp.Items[0].UnitPrice.Cents() != 800 || resp.Items[0].SelectedOption != "full" {
		t.Fatalf("line = %+v", resp.Items[0])
	}
}

func TestCartServiceRejections(t *testing.T) {
	_, svc, _, chopp := newCartFixture()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *dto.AddCartItemRequest
		want error
	}{
		{"unknown item", &dto.AddCartItemRequest{MenuItemID: "nope"}, services.ErrMenuItemNotFound},
		{"half outside portions", &dto.AddCartItemRequest{MenuItemID: chopp.ID, SelectedOption: "half"}, services.ErrHalfNotSelectable},
		{"bad option", &dto.AddCartItemRequest{MenuItemID: chopp.ID, SelectedOption: "double"}, cart.ErrInvalidOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AddItem(ctx, "s1", tt.req); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := svc.UpdateQuantity(ctx, "s1", "missing-full", 2); !errors.Is(err, services.ErrCartLineNotFound) {
		t.Fatalf("UpdateQuantity err = %v", err)
	}
	if _, err := svc.RemoveItem(ctx, "s1", "missing-full"); !errors.Is(err, services.ErrCartLineNotFound) {
		t.Fatalf("RemoveItem err = %v", err)
	}
}

func TestCartServiceQuantityAndRemove(t *testing.T) {
	_, svc, batata, chopp := newCartFixture()
	ctx := context.Background()

	svc.AddItem(ctx, "s1", &dto.AddCartItemRequest{MenuItemID: batata.ID})
	svc.AddItem(ctx, "s1", &dto.AddCartItemRequest{MenuItemID: chopp.ID})

	resp, err := svc.UpdateQuantity(ctx, "s1", cart.UniqueID(batata.ID, cart.OptionFull), 3)
	if err != nil || resp.Count != 4 {
		t.Fatalf("UpdateQuantity = %+v, %v", resp, err)
	}

	resp, err = svc.UpdateQuantity(ctx, "s1", cart.UniqueID(batata.ID, cart.OptionFull), 0)
	if err != nil || len(resp.Items) != 1 {
		t.Fatalf("quantity 0 should drop the line: %+v, %v", resp, err)
	}

	resp, err = svc.RemoveItem(ctx, "s1", cart.UniqueID(chopp.ID, cart.OptionFull))
	if err != nil || len(resp.Items) != 0 || resp.Total.Cents() != 0 {
		t.Fatalf("RemoveItem = %+v, %v", resp, err)
	}

	svc.AddItem(ctx, "s1", &dto.AddCartItemRequest{MenuItemID: chopp.ID})
	if err := svc.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if resp, _ := svc.Get(ctx, "s1"); len(resp.Items) != 0 {
		t.Fatalf("cart not cleared: %+v", resp)
	}
}
