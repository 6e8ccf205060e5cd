package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cardapio-digital/domain/ports"
	"cardapio-digital/domain/repositories"
	"cardapio-digital/pkg/logger"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func NewDatabase(config DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		config.Host, config.User, config.Password, config.DBName, config.Port, config.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&categoryRow{},
		&menuItemRow{},
	)
}

// Health implements ports.StoreHealth over the GORM connection pool
type Health struct {
	db *gorm.DB
}

func NewHealth(db *gorm.DB) ports.StoreHealth {
	return &Health{db: db}
}

// Verify pings twice; database/sql drops broken connections between attempts
func (h *Health) Verify(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return repositories.NewUnavailableError("postgres.pool", err)
	}
	if err := sqlDB.PingContext(ctx); err == nil {
		return nil
	}
	logger.WarnContext(ctx, "Database ping failed, retrying")
	if err := sqlDB.PingContext(ctx); err != nil {
		return repositories.NewUnavailableError("postgres.ping", err)
	}
	return nil
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return repositories.NewUnavailableError(op, err)
	}
	return repositories.NewStoreError(op, err)
}
