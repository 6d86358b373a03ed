package database

import (
	"context"
	"fmt"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open creates a new database connection. TranslateError is enabled so
// unique-constraint violations surface as gorm.ErrDuplicatedKey, which
// the repositories map to domain conflicts.
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate creates or updates all tables, including the uniqueness
// constraints the purchase transaction relies on.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Course{},
		&domain.Chapter{},
		&domain.Video{},
		&domain.Cart{},
		&domain.CartItem{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.Enrollment{},
	); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	return nil
}

type txKey struct{}

// GormTransactor implements domain.Transactor on a gorm connection.
// The transaction handle travels in the context so repositories join
// the same unit of work without holding transaction state themselves.
type GormTransactor struct {
	db *gorm.DB
}

// NewTransactor creates a gorm-backed transactor
func NewTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

// InTx implements domain.Transactor
func (t *GormTransactor) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// FromContext returns the transaction handle carried by ctx, or the
// fallback connection when the caller is not inside a unit of work.
func FromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}

var _ domain.Transactor = (*GormTransactor)(nil)
