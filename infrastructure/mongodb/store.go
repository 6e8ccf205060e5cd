package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"cardapio-digital/domain/repositories"
	"cardapio-digital/pkg/logger"
)

const (
	CategoriesCollection = "categories"
	MenuItemsCollection  = "menuitems"
)

type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// Store is the process-wide document store handle. It connects on first use,
// is shared by every repository and is closed by the DI container on shutdown.
type Store struct {
	cfg    Config
	mu     sync.Mutex
	client *mongo.Client
	ready  bool
}

func NewStore(cfg Config) *Store {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	return &Store{cfg: cfg}
}

// Database returns the handle, connecting or reconnecting when the cached client is not ready
func (s *Store) Database(ctx context.Context) (*mongo.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil && s.ready {
		return s.client.Database(s.cfg.Database), nil
	}
	if err := s.connectLocked(ctx); err != nil {
		return nil, err
	}
	return s.client.Database(s.cfg.Database), nil
}

func (s *Store) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := s.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

func (s *Store) connectLocked(ctx context.Context) error {
	if s.client != nil {
		_ = s.client.Disconnect(ctx)
		s.client = nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, s.cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(s.cfg.URI).
		SetConnectTimeout(s.cfg.ConnectTimeout).
		SetServerSelectionTimeout(s.cfg.ConnectTimeout)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to connect to MongoDB", "error", err)
		return repositories.NewUnavailableError("mongodb.connect", err)
	}

	s.client = client
	s.ready = true
	logger.InfoContext(ctx, "MongoDB client ready", "database", s.cfg.Database)
	return nil
}

// Verify pings the server. A failed ping forces one reconnect and a second
// ping; if that also fails the store is reported unavailable.
func (s *Store) Verify(ctx context.Context) error {
	err := s.ping(ctx)
	if err == nil {
		return nil
	}
	logger.WarnContext(ctx, "MongoDB ping failed, reconnecting", "error", err)

	s.mu.Lock()
	err = s.connectLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if err := s.ping(ctx); err != nil {
		s.markNotReady()
		logger.ErrorContext(ctx, "MongoDB unavailable after reconnect", "error", err)
		return repositories.NewUnavailableError("mongodb.ping", err)
	}
	return nil
}

func (s *Store) ping(ctx context.Context) error {
	db, err := s.Database(ctx)
	if err != nil {
		return err
	}
	pingCtx, cancel := context.WithTimeout(ctx, s.cfg.ConnectTimeout)
	defer cancel()
	return db.Client().Ping(pingCtx, readpref.Primary())
}

func (s *Store) markNotReady() {
	s.mu.Lock()
	s.ready = false
	s.mu.Unlock()
}

// EnsureIndexes creates the lookup indexes used by the repositories
func (s *Store) EnsureIndexes(ctx context.Context) error {
	db, err := s.Database(ctx)
	if err != nil {
		return err
	}

	_, err = db.Collection(CategoriesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "slug", Value: 1}}},
	})
	if err != nil {
		return s.wrap("categories.indexes", err)
	}

	_, err = db.Collection(MenuItemsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	if err != nil {
		return s.wrap("menuitems.indexes", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client = nil
	s.ready = false
	if err != nil {
		return fmt.Errorf("mongodb disconnect: %w", err)
	}
	return nil
}

// wrap converts driver errors; connection-level failures mark the handle not ready
func (s *Store) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if isConnectionError(err) {
		s.markNotReady()
		return repositories.NewUnavailableError(op, err)
	}
	return repositories.NewStoreError(op, err)
}

func isConnectionError(err error) bool {
	if errors.Is(err, repositories.ErrStoreUnavailable) {
		return true
	}
	var selection topology.ServerSelectionError
	if errors.As(err, &selection) {
		return true
	}
	return mongo.IsNetworkError(err) ||
		mongo.IsTimeout(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.Is(err, context.DeadlineExceeded)
}
