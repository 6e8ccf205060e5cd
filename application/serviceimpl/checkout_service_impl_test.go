package serviceimpl

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"cardapio-digital/domain/cart"
	"cardapio-digital/domain/dto"
	"cardapio-digital/domain/models"
	"cardapio-digital/domain/services"
)

func boolPtr(b bool) *bool { return &b }

func TestCheckout(t *testing.T) {
	f := newFixture()
	porcoes := f.addCategory(models.PortionsCategoryName)
	batata := f.addItem(&models.MenuItem{Name: "Batata", Price: 2000, HalfPrice: 1200, CategoryID: porcoes.ID})

	carts := newMemCarts()
	locks := NewSessionLocks()
	cartSvc := NewCartService(carts, f.categories, f.items, locks)
	notifier := &fakeNotifier{}
	svc := NewCheckoutService(carts, locks, f.events, notifier, "+55 (11) 99999-0000")
	ctx := context.Background()

	cartSvc.AddItem(ctx, "s1", &dto.AddCartItemRequest{MenuItemID: batata.ID, SelectedOption: "half"})
	cartSvc.AddItem(ctx, "s1", &dto.AddCartItemRequest{MenuItemID: batata.ID, SelectedOption: "half"})
	cartSvc.AddItem(ctx, "s1", &dto.AddCartItemRequest{MenuItemID: batata.ID})

	resp, err := svc.Checkout(ctx, "s1", &dto.CheckoutRequest{
		CustomerName:  "Ana Souza",
		CustomerPhone: "11999999999",
		HasAccount:    boolPtr(true),
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	for _, want := range []string{
		"2x Batata (Meia porção) - R$ 24,00",
		"1x Batata (Porção inteira) - R$ 20,00",
		"Total: R$ 44,00",
		"Nome: Ana Souza",
		"Telefone: 11999999999",
		"Possui conta: Sim",
	} {
		if !strings.Contains(resp.Message, want) {
			t.Errorf("message missing %q:\n%s", want, resp.Message)
		}
	}
	if resp.Total.Cents() != 4400 {
		t.Fatalf("total = %s", resp.Total.String())
	}

	if !strings.HasPrefix(resp.URL, "https://wa.me/5511999990000?text=") {
		t.Fatalf("url = %s", resp.URL)
	}
	if strings.Contains(resp.URL, "+") || !strings.Contains(resp.URL, "%20") {
		t.Fatalf("spaces must be encoded as %%20: %s", resp.URL)
	}
	text := strings.TrimPrefix(resp.URL, "https://wa.me/5511999990000?text=")
	decoded, err := url.PathUnescape(text)
	if err != nil || decoded != resp.Message {
		t.Fatalf("url text does not decode to the message: %v", err)
	}

	if len(f.events.orders) != 1 || f.events.orders[0].Total != 4400 || len(f.events.orders[0].Items) != 2 {
		t.Fatalf("published orders = %+v", f.events.orders)
	}
	if f.events.orders[0].Status != models.OrderStatusPending || !f.events.orders[0].Customer.HasAccount {
		t.Fatalf("order = %+v", f.events.orders[0])
	}
	if len(notifier.orders) != 1 || notifier.orders[0].ID != resp.OrderID {
		t.Fatalf("notifier = %+v", notifier.orders)
	}

	after, _ := cartSvc.Get(ctx, "s1")
	if len(after.Items) != 0 {
		t.Fatal("cart must be cleared after checkout")
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := NewCheckoutService(newMemCarts(), nil, nil, nil, "5511999990000")
	_, err := svc.Checkout(context.Background(), "s1", &dto.CheckoutRequest{CustomerName: "Ana", CustomerPhone: "11999999999", HasAccount: boolPtr(false)})
	if !errors.Is(err, services.ErrEmptyCart) {
		t.Fatalf("err = %v", err)
	}
}

func TestCheckoutSurvivesPublishFailures(t *testing.T) {
	f := newFixture()
	cat := f.addCategory("Bebidas")
	item := f.addItem(&models.MenuItem{Name: "Água", Price: 500, CategoryID: cat.ID})

	carts := newMemCarts()
	NewCartService(carts, f.categories, f.items, nil).AddItem(context.Background(), "s1", &dto.AddCartItemRequest{MenuItemID: item.ID})

	f.events.err = errBoom
	svc := NewCheckoutService(carts, nil, f.events, &fakeNotifier{err: errBoom}, "5511999990000")
	resp, err := svc.Checkout(context.Background(), "s1", &dto.CheckoutRequest{CustomerName: "Ana", CustomerPhone: "11999999999", HasAccount: boolPtr(false)})
	if err != nil || !strings.Contains(resp.Message, "Possui conta: Não") {
		t.Fatalf("Checkout = %+v, %v", resp, err)
	}
}

// gatedCarts parks the first Load until release is closed
type gatedCarts struct {
	*memCarts
	once    sync.Once
	loaded  chan struct{}
	release chan struct{}
}

func (g *gatedCarts) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	c, err := g.memCarts.Load(ctx, sessionID)
	g.once.Do(func() {
		close(g.loaded)
		<-g.release
	})
	return c, err
}

// An add racing a checkout lands in the fresh cart instead of being wiped.
func TestCheckoutDoesNotLoseConcurrentAdd(t *testing.T) {
	f := newFixture()
	cat := f.addCategory("Bebidas")
	agua := f.addItem(&models.MenuItem{Name: "Água", Price: 500, CategoryID: cat.ID})
	chopp := f.addItem(&models.MenuItem{Name: "Chopp", Price: 1000, CategoryID: cat.ID})
	ctx := context.Background()

	mem := newMemCarts()
	if _, err := NewCartService(mem, f.categories, f.items, nil).AddItem(ctx, "s1", &dto.AddCartItemRequest{MenuItemID: agua.ID}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	gated := &gatedCarts{memCarts: mem, loaded: make(chan struct{}), release: make(chan struct{})}
	locks := NewSessionLocks()
	cartSvc := NewCartService(gated, f.categories, f.items, locks)
	svc := NewCheckoutService(gated, locks, nil, nil, "5511999990000")

	done := make(chan *dto.CheckoutResponse, 1)
	go func() {
		resp, err := svc.Checkout(ctx, "s1", &dto.CheckoutRequest{CustomerName: "Ana", CustomerPhone: "11999999999", HasAccount: boolPtr(false)})
		if err != nil {
			t.Errorf("Checkout: %v", err)
		}
		done <- resp
	}()
	<-gated.loaded

	added := make(chan error, 1)
	go func() {
		_, err := cartSvc.AddItem(ctx, "s1", &dto.AddCartItemRequest{MenuItemID: chopp.ID})
		added <- err
	}()
	select {
	case err := <-added:
		t.Fatalf("add finished while checkout held the cart: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
	close(gated.release)

	resp := <-done
	if resp == nil || strings.Contains(resp.Message, "Chopp") {
		t.Fatalf("order should only hold the earlier line: %+v", resp)
	}
	if err := <-added; err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	after, _ := cartSvc.Get(ctx, "s1")
	if len(after.Items) != 1 || after.Items[0].Name != "Chopp" {
		t.Fatalf("cart after checkout = %+v", after.Items)
	}
	if locks.Len() != 0 {
		t.Fatalf("%d session locks leaked", locks.Len())
	}
}

func TestEncodeText(t *testing.T) {
	got := encodeText("2x Batata & Chopp = R$ 1,00\nok")
	if got != "2x%20Batata%20%26%20Chopp%20%3D%20R%24%201%2C00%0Aok" {
		t.Fatalf("encodeText = %s", got)
	}
}
