package di

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cardapio-digital/application/serviceimpl"
	"cardapio-digital/domain/cart"
	"cardapio-digital/domain/ports"
	"cardapio-digital/domain/repositories"
	"cardapio-digital/domain/services"
	"cardapio-digital/infrastructure/cartstore"
	"cardapio-digital/infrastructure/messaging"
	"cardapio-digital/infrastructure/mongodb"
	natspkg "cardapio-digital/infrastructure/nats"
	"cardapio-digital/infrastructure/postgres"
	redispkg "cardapio-digital/infrastructure/redis"
	"cardapio-digital/infrastructure/storage"
	"cardapio-digital/infrastructure/telegram"
	"cardapio-digital/infrastructure/websocket"
	"cardapio-digital/interfaces/api/handlers"
	"cardapio-digital/pkg/config"
	"cardapio-digital/pkg/logger"
	"cardapio-digital/pkg/scheduler"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	MongoStore     *mongodb.Store // set when STORE_DRIVER=mongo
	DB             *gorm.DB       // set when STORE_DRIVER=postgres
	StoreHealth    ports.StoreHealth
	RedisClient    *redispkg.Client // optional
	NATSClient     *natspkg.Client  // optional
	NATSSubscriber *natspkg.Subscriber
	Storage        ports.StoragePort
	EventScheduler scheduler.EventScheduler

	// Repositories
	CategoryRepository repositories.CategoryRepository
	MenuItemRepository repositories.MenuItemRepository
	CartRepository     cart.Repository

	// Ports
	ViewCache      ports.ViewCache
	EventPublisher ports.EventPublisher
	OrderNotifier  ports.OrderNotifier

	// WebSocket
	Hub          *websocket.Hub
	CatalogRelay *websocket.CatalogRelay

	// Services
	CatalogQueryService  services.CatalogQueryService
	CatalogActionService services.CatalogActionService
	CartService          services.CartService
	CheckoutService      services.CheckoutService
	AuthService          services.AuthService
	SnapshotService      services.SnapshotService
	MaintenanceService   services.MaintenanceService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initStore(); err != nil {
		return err
	}

	if err := c.initCache(); err != nil {
		return err
	}

	if err := c.initStorage(); err != nil {
		return err
	}

	c.initMessaging()
	c.initNotifications()

	if err := c.initServices(); err != nil {
		return err
	}

	return c.initScheduler()
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Info("Configuration loaded")
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

// initStore opens the catalog backend selected by STORE_DRIVER
func (c *Container) initStore() error {
	switch c.Config.Store.Driver {
	case StorePostgres:
		db, err := postgres.NewDatabase(postgres.DatabaseConfig{
			Host:     c.Config.Database.Host,
			Port:     c.Config.Database.Port,
			User:     c.Config.Database.User,
			Password: c.Config.Database.Password,
			DBName:   c.Config.Database.DBName,
			SSLMode:  c.Config.Database.SSLMode,
		})
		if err != nil {
			return err
		}
		if err := postgres.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		c.DB = db
		c.StoreHealth = postgres.NewHealth(db)
		c.CategoryRepository = postgres.NewCategoryRepository(db)
		c.MenuItemRepository = postgres.NewMenuItemRepository(db)
		logger.Info("Catalog store ready", "driver", StorePostgres, "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	case StoreMongo, "":
		store := mongodb.NewStore(mongodb.Config{
			URI:            c.Config.Mongo.URI,
			Database:       c.Config.Mongo.Database,
			ConnectTimeout: c.Config.Mongo.ConnectTimeout,
		})

		// the store reconnects lazily, so a cold database does not stop the API
		ctx, cancel := context.WithTimeout(context.Background(), c.Config.Mongo.ConnectTimeout)
		defer cancel()
		if err := store.EnsureIndexes(ctx); err != nil {
			logger.Warn("MongoDB not reachable at startup, will retry on first request", "error", err)
		}

		c.MongoStore = store
		c.StoreHealth = store
		c.CategoryRepository = mongodb.NewCategoryRepository(store)
		c.MenuItemRepository = mongodb.NewMenuItemRepository(store)
		logger.Info("Catalog store ready", "driver", StoreMongo, "db", c.Config.Mongo.Database)

	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (use %s or %s)", c.Config.Store.Driver, StoreMongo, StorePostgres)
	}
	return nil
}

// initCache wires Redis when configured; without it views are not cached and carts live on disk
func (c *Container) initCache() error {
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (cache disabled)", "error", err)
		} else {
			c.RedisClient = redisClient
			views := redispkg.NewViewCache(redisClient, c.Config.Store.ViewCacheTTL)
			// views cached by a previous release may carry an older projection
			if n, err := views.InvalidateAll(context.Background()); err != nil {
				logger.Warn("Failed to drop stale views", "error", err)
			} else if n > 0 {
				logger.Info("Stale views dropped", "count", n)
			}
			c.ViewCache = views
			c.CartRepository = redispkg.NewCartRepository(redisClient, c.Config.Cart.TTL)
			logger.Info("Redis view cache and cart store initialized", "ttl", c.Config.Store.ViewCacheTTL.String())
			return nil
		}
	}

	files, err := cartstore.NewFileRepository(c.Config.Cart.StorePath)
	if err != nil {
		return fmt.Errorf("failed to initialize cart store: %w", err)
	}
	c.CartRepository = files
	logger.Info("File cart store initialized", "path", c.Config.Cart.StorePath)
	return nil
}

func (c *Container) initStorage() error {
	switch c.Config.Storage.Type {
	case "s3":
		s3Storage, err := storage.NewS3Storage(storage.S3StorageConfig{
			Endpoint:  c.Config.Storage.S3.Endpoint,
			AccessKey: c.Config.Storage.S3.AccessKey,
			SecretKey: c.Config.Storage.S3.SecretKey,
			Bucket:    c.Config.Storage.S3.Bucket,
			UseSSL:    c.Config.Storage.S3.UseSSL,
			Region:    c.Config.Storage.S3.Region,
			PublicURL: c.Config.Storage.S3.PublicURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		c.Storage = s3Storage

	default:
		localStorage, err := storage.NewLocalStorage(storage.LocalStorageConfig{
			BasePath:       c.Config.Storage.BasePath,
			BaseURL:        c.Config.Storage.BaseURL,
			MinFreePercent: c.Config.Storage.MinFreePercent,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
		c.Storage = localStorage
	}

	logger.Info("Storage initialized", "provider", c.Storage.GetProviderName())
	return nil
}

// initMessaging fans catalog changes out over NATS when configured, in-process otherwise
func (c *Container) initMessaging() {
	c.Hub = websocket.NewHub()
	go c.Hub.Run()

	if c.Config.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{URL: c.Config.NATS.URL})
		if err != nil {
			logger.Warn("NATS client initialization failed (local events only)", "error", err)
		} else {
			c.NATSClient = natsClient
			c.EventPublisher = messaging.NewNATSEventPublisher(natspkg.NewPublisher(natsClient), c.Config.Order.WhatsAppNumber)

			c.NATSSubscriber = natspkg.NewSubscriber(natsClient.Conn())
			c.CatalogRelay = websocket.NewCatalogRelay(messaging.NewNATSCatalogSubscriber(c.NATSSubscriber), c.Hub)
			if err := c.CatalogRelay.Start(context.Background()); err != nil {
				logger.Warn("Failed to start catalog relay", "error", err)
			}

			logger.Info("NATS messaging initialized", "url", c.Config.NATS.URL)
			return
		}
	}

	c.EventPublisher = messaging.NewLocalEventPublisher(c.Hub)
	logger.Info("Local event publisher initialized")
}

func (c *Container) initNotifications() {
	c.OrderNotifier = telegram.NewTelegramNotifier(telegram.Config{
		BotToken: c.Config.Telegram.BotToken,
		ChatID:   c.Config.Telegram.ChatID,
	})
}

func (c *Container) initServices() error {
	c.CatalogQueryService = serviceimpl.NewCatalogQueryService(
		c.CategoryRepository,
		c.MenuItemRepository,
		c.ViewCache,
	)
	c.CatalogActionService = serviceimpl.NewCatalogActionService(
		c.CategoryRepository,
		c.MenuItemRepository,
		c.StoreHealth,
		c.ViewCache,
		c.EventPublisher,
	)
	cartLocks := serviceimpl.NewSessionLocks()
	c.CartService = serviceimpl.NewCartService(
		c.CartRepository,
		c.CategoryRepository,
		c.MenuItemRepository,
		cartLocks,
	)
	c.CheckoutService = serviceimpl.NewCheckoutService(
		c.CartRepository,
		cartLocks,
		c.EventPublisher,
		c.OrderNotifier,
		c.Config.Order.WhatsAppNumber,
	)
	c.AuthService = serviceimpl.NewAuthService(
		c.Config.Admin.Username,
		c.Config.Admin.PasswordHash,
		c.Config.JWT.Secret,
		c.Config.JWT.TTL,
	)
	c.SnapshotService = serviceimpl.NewSnapshotService(
		c.CategoryRepository,
		c.MenuItemRepository,
		c.Storage,
		c.Config.Snapshot.Prefix,
	)

	if c.Config.Admin.PasswordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH not set, admin login is disabled")
	}
	if c.Config.Order.WhatsAppNumber == "" {
		logger.Warn("ORDER_WHATSAPP_NUMBER not set, checkout links will have no recipient")
	}

	logger.Info("Services initialized")
	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()
	c.MaintenanceService = serviceimpl.NewMaintenanceService(
		c.EventScheduler,
		c.StoreHealth,
		c.SnapshotService,
		serviceimpl.MaintenanceConfig{
			SnapshotEnabled: c.Config.Snapshot.Enabled,
			SnapshotCron:    c.Config.Snapshot.Cron,
			SnapshotKeep:    c.Config.Snapshot.Keep,
		},
	)

	if err := c.MaintenanceService.ScheduleDefaults(context.Background()); err != nil {
		return err
	}

	c.EventScheduler.Start()
	return nil
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	if c.EventScheduler != nil && c.EventScheduler.IsRunning() {
		c.EventScheduler.Stop()
	}

	if c.CatalogRelay != nil {
		c.CatalogRelay.Stop()
	}

	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("Failed to close NATS connection", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		}
	}

	if c.MongoStore != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.MongoStore.Close(ctx); err != nil {
			logger.Warn("Failed to close MongoDB connection", "error", err)
		}
	}

	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetServices() *handlers.Services {
	return &handlers.Services{
		CatalogQueryService:  c.CatalogQueryService,
		CatalogActionService: c.CatalogActionService,
		CartService:          c.CartService,
		CheckoutService:      c.CheckoutService,
		AuthService:          c.AuthService,
		MaintenanceService:   c.MaintenanceService,
		Hub:                  c.Hub,
		AppName:              c.Config.App.Name,
	}
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}
