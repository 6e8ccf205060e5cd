package serviceimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"cardapio-digital/domain/cart"
	"cardapio-digital/domain/models"
	"cardapio-digital/domain/ports"
	"cardapio-digital/domain/repositories"
	"cardapio-digital/pkg/money"
)

var errBoom = errors.New("boom")

// ========== Catalog store ==========

type memStore struct {
	mu         sync.Mutex
	seq        int
	categories map[string]*models.Category
	items      map[string]*models.MenuItem
	failWrites bool
	failItems  bool
}

func newMemStore() *memStore {
	return &memStore{
		categories: map[string]*models.Category{},
		items:      map[string]*models.MenuItem{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s%d", prefix, m.seq)
}

type memCategoryRepo struct{ *memStore }

func (r memCategoryRepo) Create(ctx context.Context, c *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return repositories.NewStoreError("categories.insert", errBoom)
	}
	c.ID = r.nextID("c")
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r memCategoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r memCategoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memCategoryRepo) Update(ctx context.Context, c *models.Category) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return nil, repositories.NewStoreError("categories.update", errBoom)
	}
	if _, ok := r.categories[c.ID]; !ok {
		return nil, nil
	}
	cp := *c
	r.categories[c.ID] = &cp
	out := cp
	return &out, nil
}

func (r memCategoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return repositories.NewStoreError("categories.delete", errBoom)
	}
	delete(r.categories, id)
	return nil
}

func (r memCategoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memMenuItemRepo struct{ *memStore }

func (r memMenuItemRepo) Create(ctx context.Context, item *models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return repositories.NewStoreError("menuitems.insert", errBoom)
	}
	item.ID = r.nextID("m")
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r memMenuItemRepo) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.items[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r memMenuItemRepo) Update(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return nil, repositories.NewStoreError("menuitems.update", errBoom)
	}
	if _, ok := r.items[item.ID]; !ok {
		return nil, nil
	}
	cp := *item
	r.items[item.ID] = &cp
	out := cp
	return &out, nil
}

func (r memMenuItemRepo) Delete(ctx context.Context, id string) (*models.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return nil, repositories.NewStoreError("menuitems.delete", errBoom)
	}
	m, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	delete(r.items, id)
	return m, nil
}

func (r memMenuItemRepo) DeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failItems {
		return 0, repositories.NewStoreError("menuitems.deleteMany", errBoom)
	}
	var n int64
	for id, m := range r.items {
		if m.CategoryID == categoryID {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func (r memMenuItemRepo) ListByCategory(ctx context.Context, categoryID string) ([]*models.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.MenuItem{}
	for _, m := range r.items {
		if m.CategoryID == categoryID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memMenuItemRepo) ListAllWithCategory(ctx context.Context) ([]*models.MenuItemWithCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.MenuItemWithCategory{}
	for _, m := range r.items {
		c, ok := r.categories[m.CategoryID]
		if !ok {
			continue
		}
		cat := *c
		out = append(out, &models.MenuItemWithCategory{MenuItem: *m, Category: &cat})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ========== Ports ==========

type fakeHealth struct {
	err   error
	calls int
}

func (f *fakeHealth) Verify(ctx context.Context) error {
	f.calls++
	return f.err
}

type fakeViewCache struct {
	mu          sync.Mutex
	data        map[string][]byte
	invalidated []string
	gets        int
}

func newFakeViewCache() *fakeViewCache {
	return &fakeViewCache{data: map[string][]byte{}}
}

func (f *fakeViewCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeViewCache) Set(ctx context.Context, key string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeViewCache) Invalidate(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
		f.invalidated = append(f.invalidated, k)
	}
	return nil
}

func (f *fakeViewCache) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok
}

type fakeEvents struct {
	catalog []*ports.CatalogChangedEvent
	orders  []*models.Order
	err     error
}

func (f *fakeEvents) PublishCatalogChanged(ctx context.Context, event *ports.CatalogChangedEvent) error {
	f.catalog = append(f.catalog, event)
	return f.err
}

func (f *fakeEvents) PublishOrderPlaced(ctx context.Context, order *models.Order) error {
	f.orders = append(f.orders, order)
	return f.err
}

type fakeNotifier struct {
	orders []*models.Order
	err    error
}

func (f *fakeNotifier) NotifyOrderPlaced(ctx context.Context, order *models.Order) error {
	f.orders = append(f.orders, order)
	return f.err
}

type memCarts struct {
	mu    sync.Mutex
	carts map[string][]byte
}

func newMemCarts() *memCarts {
	return &memCarts{carts: map[string][]byte{}}
}

func (m *memCarts) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, _ := cart.Unmarshal(m.carts[sessionID])
	return c, nil
}

func (m *memCarts) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.IsEmpty() {
		delete(m.carts, sessionID)
		return nil
	}
	raw, err := cart.Marshal(c)
	if err != nil {
		return err
	}
	m.carts[sessionID] = raw
	return nil
}

type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (m *memStorage) UploadFile(file io.Reader, path string, contentType string) (string, error) {
	raw, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = raw
	return m.GetFileURL(path), nil
}

func (m *memStorage) DeleteFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
	return nil
}

func (m *memStorage) GetFileURL(path string) string {
	return "mem://" + path
}

func (m *memStorage) GetFileContent(path string) (io.ReadCloser, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.files[path]
	if !ok {
		return nil, "", errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(raw)), "application/gzip", nil
}

func (m *memStorage) ListFiles(prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []string{}
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memStorage) GetProviderName() string {
	return "memory"
}

// ========== Fixtures ==========

type fixture struct {
	store      *memStore
	categories memCategoryRepo
	items      memMenuItemRepo
	health     *fakeHealth
	cache      *fakeViewCache
	events     *fakeEvents
}

func newFixture() *fixture {
	store := newMemStore()
	return &fixture{
		store:      store,
		categories: memCategoryRepo{store},
		items:      memMenuItemRepo{store},
		health:     &fakeHealth{},
		cache:      newFakeViewCache(),
		events:     &fakeEvents{},
	}
}

func (f *fixture) addCategory(name string) *models.Category {
	c := &models.Category{Name: name, Slug: strings.ToLower(name)}
	f.categories.Create(context.Background(), c)
	return c
}

func (f *fixture) addItem(item *models.MenuItem) *models.MenuItem {
	f.items.Create(context.Background(), item)
	return item
}

func moneyCents(v int64) money.Cents { return money.Cents(v) }
