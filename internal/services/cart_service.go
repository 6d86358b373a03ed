package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
)

// CartServiceImpl implements domain.CartService. The cart is created
// lazily on first add and the row is deleted once the last item is
// removed, so empty carts never persist.
type CartServiceImpl struct {
	cartRepo   domain.CartRepository
	courseRepo domain.CourseRepository
	tx         domain.Transactor
}

// NewCartService creates a new cart service
func NewCartService(cartRepo domain.CartRepository, courseRepo domain.CourseRepository, tx domain.Transactor) domain.CartService {
	return &CartServiceImpl{
		cartRepo:   cartRepo,
		courseRepo: courseRepo,
		tx:         tx,
	}
}

// AddItem implements domain.CartService
func (s *CartServiceImpl) AddItem(ctx context.Context, userID, courseID uint) error {
	if _, err := s.courseRepo.FindByID(ctx, courseID); err != nil {
		return err
	}

	return s.tx.InTx(ctx, func(ctx context.Context) error {
		cart, err := s.cartRepo.FindByUserForUpdate(ctx, userID)
		if err != nil {
			if !errors.Is(err, domain.ErrCartNotFound) {
				return err
			}
			cart = &domain.Cart{UserID: userID}
			if err := s.cartRepo.Create(ctx, cart); err != nil {
				if !errors.Is(err, domain.ErrCartExists) {
					return fmt.Errorf("failed to create cart: %w", err)
				}
				// Lost the first-add race; the winner's row is this
				// user's cart, use it.
				cart, err = s.cartRepo.FindByUserForUpdate(ctx, userID)
				if err != nil {
					return err
				}
			}
		}

		return s.cartRepo.AddItem(ctx, &domain.CartItem{
			CartID:   cart.ID,
			CourseID: courseID,
		})
	})
}

// RemoveItem implements domain.CartService. The locked read serializes
// concurrent removes; without it two removes of the last two items can
// each see the other's row and leave an empty cart behind.
func (s *CartServiceImpl) RemoveItem(ctx context.Context, userID, courseID uint) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		cart, err := s.cartRepo.FindByUserForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrCartNotFound) {
				return domain.ErrCourseNotInCart
			}
			return err
		}

		if err := s.cartRepo.RemoveItem(ctx, cart.ID, courseID); err != nil {
			return err
		}

		count, err := s.cartRepo.CountItems(ctx, cart.ID)
		if err != nil {
			return err
		}
		if count == 0 {
			return s.cartRepo.Delete(ctx, cart.ID)
		}
		return nil
	})
}

// GetCart implements domain.CartService
func (s *CartServiceImpl) GetCart(ctx context.Context, userID uint) (*domain.Cart, error) {
	return s.cartRepo.FindByUser(ctx, userID)
}

var _ domain.CartService = (*CartServiceImpl)(nil)
