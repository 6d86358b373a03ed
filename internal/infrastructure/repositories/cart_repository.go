package repositories

import (
	"context"
	"errors"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/infrastructure/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepositoryImpl implements domain.CartRepository using GORM
type CartRepositoryImpl struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *gorm.DB) domain.CartRepository {
	return &CartRepositoryImpl{db: db}
}

// Create implements domain.CartRepository. The unique index on user_id
// keeps a second concurrent create from producing two carts; the loser
// gets ErrCartExists and should fall back to the winner's row.
func (r *CartRepositoryImpl) Create(ctx context.Context, cart *domain.Cart) error {
	if err := database.FromContext(ctx, r.db).Create(cart).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrCartExists
		}
		return err
	}
	return nil
}

// FindByUser implements domain.CartRepository. Items are loaded with
// their course in insertion order.
func (r *CartRepositoryImpl) FindByUser(ctx context.Context, userID uint) (*domain.Cart, error) {
	var cart domain.Cart
	err := database.FromContext(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id asc") }).
		Preload("Items.Course").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// FindByUserForUpdate implements domain.CartRepository. SELECT FOR
// UPDATE on the cart row serializes all mutations of one user's cart
// for the remainder of the transaction. Items are not preloaded; the
// mutation paths only need the row itself.
func (r *CartRepositoryImpl) FindByUserForUpdate(ctx context.Context, userID uint) (*domain.Cart, error) {
	var cart domain.Cart
	err := database.FromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// FindByIDForUpdate implements domain.CartRepository. Same locking as
// FindByUserForUpdate, keyed by cart ID, with items loaded for the
// purchase path.
func (r *CartRepositoryImpl) FindByIDForUpdate(ctx context.Context, id uint) (*domain.Cart, error) {
	var cart domain.Cart
	err := database.FromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id asc") }).
		First(&cart, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// AddItem implements domain.CartRepository. The (cart_id, course_id)
// unique index is the backstop against duplicate items.
func (r *CartRepositoryImpl) AddItem(ctx context.Context, item *domain.CartItem) error {
	if err := database.FromContext(ctx, r.db).Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrCourseAlreadyInCart
		}
		return err
	}
	return nil
}

// RemoveItem implements domain.CartRepository
func (r *CartRepositoryImpl) RemoveItem(ctx context.Context, cartID, courseID uint) error {
	result := database.FromContext(ctx, r.db).
		Where("cart_id = ? AND course_id = ?", cartID, courseID).
		Delete(&domain.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCourseNotInCart
	}
	return nil
}

// CountItems implements domain.CartRepository
func (r *CartRepositoryImpl) CountItems(ctx context.Context, cartID uint) (int64, error) {
	var count int64
	err := database.FromContext(ctx, r.db).
		Model(&domain.CartItem{}).
		Where("cart_id = ?", cartID).
		Count(&count).Error
	return count, err
}

// Delete implements domain.CartRepository. Items go first so no
// orphaned rows survive the cart.
func (r *CartRepositoryImpl) Delete(ctx context.Context, cartID uint) error {
	db := database.FromContext(ctx, r.db)
	if err := db.Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error; err != nil {
		return err
	}
	return db.Delete(&domain.Cart{}, cartID).Error
}

var _ domain.CartRepository = (*CartRepositoryImpl)(nil)
