package services

import (
	"context"
	"errors"
	"log"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
)

// CheckoutServiceImpl implements domain.CheckoutService. A purchase is
// one atomic unit of work: order creation, enrollments, price
// snapshots, cart deletion and the paid flag either all land or none
// do. The enrollment uniqueness constraint, not the pre-check, is the
// source of truth for at-most-one enrollment; losing that race is the
// silent skip path, same as an already-owned course.
type CheckoutServiceImpl struct {
	cartRepo   domain.CartRepository
	courseRepo domain.CourseRepository
	orderRepo  domain.OrderRepository
	enrollRepo domain.EnrollmentRepository
	tx         domain.Transactor
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	cartRepo domain.CartRepository,
	courseRepo domain.CourseRepository,
	orderRepo domain.OrderRepository,
	enrollRepo domain.EnrollmentRepository,
	tx domain.Transactor,
) domain.CheckoutService {
	return &CheckoutServiceImpl{
		cartRepo:   cartRepo,
		courseRepo: courseRepo,
		orderRepo:  orderRepo,
		enrollRepo: enrollRepo,
		tx:         tx,
	}
}

// Purchase implements domain.CheckoutService. Already-owned courses
// are skipped without error and without a charge; the returned slice
// holds only the newly purchased courses and may be empty.
func (s *CheckoutServiceImpl) Purchase(ctx context.Context, userID, cartID uint) ([]domain.Course, error) {
	var purchased []domain.Course

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		purchased = purchased[:0]

		// The cart is read and locked inside the transaction so the
		// item set that gets purchased is the item set that gets
		// deleted; an add landing mid-purchase waits for the lock.
		cart, err := s.cartRepo.FindByIDForUpdate(ctx, cartID)
		if err != nil {
			return err
		}
		if cart.UserID != userID {
			return domain.ErrCartNotFound
		}
		if len(cart.Items) == 0 {
			return domain.ErrCartEmpty
		}

		order := &domain.Order{StudentID: userID}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}

		var items []domain.OrderItem
		for _, item := range cart.Items {
			enrolled, err := s.enrollRepo.Exists(ctx, userID, item.CourseID)
			if err != nil {
				return err
			}
			if enrolled {
				continue
			}

			// Price is snapshotted from the course row read inside the
			// transaction, not from the cart's cached association.
			course, err := s.courseRepo.FindByID(ctx, item.CourseID)
			if err != nil {
				return err
			}

			err = s.enrollRepo.Create(ctx, &domain.Enrollment{
				StudentID: userID,
				CourseID:  item.CourseID,
			})
			if err != nil {
				if errors.Is(err, domain.ErrAlreadyEnrolled) {
					// Lost the race against a concurrent purchase of
					// the same course; treat like an owned course.
					continue
				}
				return err
			}

			items = append(items, domain.OrderItem{
				OrderID:  order.ID,
				CourseID: course.ID,
				Price:    course.FinalPrice,
			})
			purchased = append(purchased, *course)
		}

		if err := s.orderRepo.CreateItems(ctx, items); err != nil {
			return err
		}
		if err := s.cartRepo.Delete(ctx, cart.ID); err != nil {
			return err
		}
		return s.orderRepo.MarkPaid(ctx, order.ID)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("CART_PURCHASED: user_id=%d cart_id=%d courses=%d", userID, cartID, len(purchased))
	return purchased, nil
}

var _ domain.CheckoutService = (*CheckoutServiceImpl)(nil)
