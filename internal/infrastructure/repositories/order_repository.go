package repositories

import (
	"context"
	"errors"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/infrastructure/database"
	"gorm.io/gorm"
)

// OrderRepositoryImpl implements domain.OrderRepository using GORM
type OrderRepositoryImpl struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

// Create implements domain.OrderRepository
func (r *OrderRepositoryImpl) Create(ctx context.Context, order *domain.Order) error {
	return database.FromContext(ctx, r.db).Create(order).Error
}

// CreateItems implements domain.OrderRepository
func (r *OrderRepositoryImpl) CreateItems(ctx context.Context, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return database.FromContext(ctx, r.db).Create(&items).Error
}

// MarkPaid implements domain.OrderRepository
func (r *OrderRepositoryImpl) MarkPaid(ctx context.Context, orderID uint) error {
	return database.FromContext(ctx, r.db).
		Model(&domain.Order{}).
		Where("id = ?", orderID).
		Update("is_paid", true).Error
}

// FindByID implements domain.OrderRepository
func (r *OrderRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	var order domain.Order
	err := database.FromContext(ctx, r.db).
		Preload("Items").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListByStudent implements domain.OrderRepository
func (r *OrderRepositoryImpl) ListByStudent(ctx context.Context, studentID uint) ([]domain.Order, error) {
	var orders []domain.Order
	err := database.FromContext(ctx, r.db).
		Preload("Items").
		Where("student_id = ?", studentID).
		Order("created_at asc").
		Find(&orders).Error
	return orders, err
}

var _ domain.OrderRepository = (*OrderRepositoryImpl)(nil)
