package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Mongo    MongoConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Order    OrderConfig
	Log      LogConfig
	Storage  StorageConfig
	Snapshot SnapshotConfig
	Cart     CartConfig
	Telegram TelegramConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Env         string
	CorsOrigins string
}

// StoreConfig selects the catalog backend: "mongo" (default) or "postgres"
type StoreConfig struct {
	Driver       string
	ViewCacheTTL time.Duration
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig is optional; an empty URL disables the view cache and the Redis cart store
type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type NATSConfig struct {
	URL string // empty disables catalog/order events over NATS
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// AdminConfig holds the single back-office credential.
// PasswordHash is a bcrypt hash.
type AdminConfig struct {
	Username     string
	PasswordHash string
}

type OrderConfig struct {
	WhatsAppNumber string // destination of the order hand-off link, digits only
	RestaurantName string
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, file, both
	FilePath   string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

type StorageConfig struct {
	Type           string // local, s3
	BasePath       string
	BaseURL        string
	MinFreePercent float64
	S3             S3Config
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
	PublicURL string
}

type SnapshotConfig struct {
	Enabled bool
	Cron    string
	Prefix  string
	Keep    int // newest snapshots kept after each run
}

// TelegramConfig enables the staff order alert when both values are set
type TelegramConfig struct {
	BotToken string
	ChatID   string
}

type CartConfig struct {
	StorePath string // file store directory, used when Redis is disabled
	TTL       time.Duration
}

const defaultJWTSecret = "your-secret-key"

func LoadConfig() (*Config, error) {
	// .env is optional, plain environment variables win otherwise
	_ = godotenv.Load()

	logMaxSize, _ := strconv.Atoi(getEnv("LOG_MAX_SIZE", "100"))
	logMaxBackups, _ := strconv.Atoi(getEnv("LOG_MAX_BACKUPS", "5"))
	logMaxAge, _ := strconv.Atoi(getEnv("LOG_MAX_AGE", "30"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	snapshotKeep, _ := strconv.Atoi(getEnv("SNAPSHOT_KEEP", "14"))
	minFreePercent, _ := strconv.ParseFloat(getEnv("STORAGE_MIN_FREE_PERCENT", "5"), 64)

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Bar e Bocha"),
			Port:        getEnv("APP_PORT", "8080"),
			Env:         getEnv("APP_ENV", "development"),
			CorsOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		},
		Store: StoreConfig{
			Driver:       strings.ToLower(getEnv("STORE_DRIVER", "mongo")),
			ViewCacheTTL: getDuration("VIEW_CACHE_TTL", 10*time.Minute),
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "cardapio"),
			ConnectTimeout: getDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "cardapio"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", defaultJWTSecret),
			TTL:    getDuration("JWT_TTL", 12*time.Hour),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Order: OrderConfig{
			WhatsAppNumber: getEnv("ORDER_WHATSAPP_NUMBER", ""),
			RestaurantName: getEnv("APP_NAME", "Bar e Bocha"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE", "logs/app.log"),
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
			Compress:   getEnv("LOG_COMPRESS", "true") == "true",
		},
		Storage: StorageConfig{
			Type:           getEnv("STORAGE_TYPE", "local"),
			BasePath:       getEnv("STORAGE_BASE_PATH", "./data"),
			BaseURL:        getEnv("STORAGE_BASE_URL", "http://localhost:8080/files"),
			MinFreePercent: minFreePercent,
			S3: S3Config{
				Endpoint:  getEnv("S3_ENDPOINT", "localhost:9000"),
				AccessKey: getEnv("S3_ACCESS_KEY", "minioadmin"),
				SecretKey: getEnv("S3_SECRET_KEY", "minioadmin"),
				Bucket:    getEnv("S3_BUCKET", "cardapio"),
				UseSSL:    getEnv("S3_USE_SSL", "false") == "true",
				Region:    getEnv("S3_REGION", "auto"),
				PublicURL: getEnv("S3_PUBLIC_URL", ""),
			},
		},
		Snapshot: SnapshotConfig{
			Enabled: getEnv("SNAPSHOT_ENABLED", "true") == "true",
			Cron:    getEnv("SNAPSHOT_CRON", "0 4 * * *"),
			Prefix:  getEnv("SNAPSHOT_PREFIX", "snapshots"),
			Keep:    snapshotKeep,
		},
		Cart: CartConfig{
			StorePath: getEnv("CART_STORE_PATH", "./data/carts"),
			TTL:       getDuration("CART_TTL", 7*24*time.Hour),
		},
		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		},
	}

	if config.IsProduction() && config.JWT.Secret == defaultJWTSecret {
		return nil, errors.New("JWT_SECRET must be set in production")
	}
	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getDuration accepts Go duration strings ("90s", "12h"); invalid values fall back to the default
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

// CorsOriginList splits CORS_ORIGINS, dropping empty entries
func (c *Config) CorsOriginList() []string {
	var origins []string
	for _, o := range strings.Split(c.App.CorsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
