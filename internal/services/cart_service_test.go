package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/mocks"
)

type cartFixture struct {
	svc        domain.CartService
	cartRepo   *mocks.MockCartRepository
	courseRepo *mocks.MockCourseRepository
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	f := &cartFixture{
		cartRepo:   mocks.NewMockCartRepository(),
		courseRepo: mocks.NewMockCourseRepository(),
	}
	f.cartRepo.Courses = f.courseRepo
	f.svc = NewCartService(f.cartRepo, f.courseRepo, mocks.NewMockTransactor())
	return f
}

func (f *cartFixture) seedCourse(t *testing.T, price, discount int64) uint {
	t.Helper()
	course := &domain.Course{TeacherID: 1, Title: "Course", Price: price, Discount: discount}
	course.RecomputePricing()
	if err := f.courseRepo.Create(context.Background(), course); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return course.ID
}

func TestCartService_AddItem(t *testing.T) {
	t.Run("unknown course", func(t *testing.T) {
		f := newCartFixture(t)

		err := f.svc.AddItem(context.Background(), 10, 999)
		if !errors.Is(err, domain.ErrCourseNotFound) {
			t.Errorf("AddItem() error = %v, want ErrCourseNotFound", err)
		}
	})

	t.Run("first add creates the cart", func(t *testing.T) {
		f := newCartFixture(t)
		courseID := f.seedCourse(t, 500, 0)

		if err := f.svc.AddItem(context.Background(), 10, courseID); err != nil {
			t.Fatalf("AddItem() error = %v", err)
		}

		cart, err := f.svc.GetCart(context.Background(), 10)
		if err != nil {
			t.Fatalf("GetCart() error = %v", err)
		}
		if len(cart.Items) != 1 || cart.Items[0].CourseID != courseID {
			t.Errorf("cart items = %+v, want the added course", cart.Items)
		}
	})

	t.Run("adding the same course twice conflicts", func(t *testing.T) {
		f := newCartFixture(t)
		courseID := f.seedCourse(t, 500, 0)

		if err := f.svc.AddItem(context.Background(), 10, courseID); err != nil {
			t.Fatalf("first AddItem() error = %v", err)
		}
		if err := f.svc.AddItem(context.Background(), 10, courseID); !errors.Is(err, domain.ErrCourseAlreadyInCart) {
			t.Errorf("second AddItem() error = %v, want ErrCourseAlreadyInCart", err)
		}
	})

	t.Run("total reflects final prices", func(t *testing.T) {
		f := newCartFixture(t)
		first := f.seedCourse(t, 500, 0)
		second := f.seedCourse(t, 800, 200)

		if err := f.svc.AddItem(context.Background(), 10, first); err != nil {
			t.Fatalf("AddItem() error = %v", err)
		}
		if err := f.svc.AddItem(context.Background(), 10, second); err != nil {
			t.Fatalf("AddItem() error = %v", err)
		}

		cart, err := f.svc.GetCart(context.Background(), 10)
		if err != nil {
			t.Fatalf("GetCart() error = %v", err)
		}
		if got := cart.TotalPrice(); got != 1100 {
			t.Errorf("TotalPrice() = %d, want 1100", got)
		}
	})

	t.Run("losing the first-add race falls back to the winner's cart", func(t *testing.T) {
		f := newCartFixture(t)
		first := f.seedCourse(t, 500, 0)
		second := f.seedCourse(t, 300, 0)
		if err := f.svc.AddItem(context.Background(), 10, first); err != nil {
			t.Fatalf("AddItem() error = %v", err)
		}

		// A concurrent first add committed a cart between this call's
		// miss and its create. The miss is forced once; the create then
		// collides on the user_id uniqueness and must recover.
		f.cartRepo.FindByUserForUpdateFunc = func(ctx context.Context, userID uint) (*domain.Cart, error) {
			f.cartRepo.FindByUserForUpdateFunc = nil
			return nil, domain.ErrCartNotFound
		}

		if err := f.svc.AddItem(context.Background(), 10, second); err != nil {
			t.Fatalf("AddItem() after losing the create race error = %v", err)
		}
		cart, err := f.svc.GetCart(context.Background(), 10)
		if err != nil {
			t.Fatalf("GetCart() error = %v", err)
		}
		if len(cart.Items) != 2 {
			t.Errorf("cart items = %+v, want both courses in one cart", cart.Items)
		}
		if got := f.cartRepo.Count(); got != 1 {
			t.Errorf("cart rows = %d, want 1", got)
		}
	})

	t.Run("concurrent first adds share one cart", func(t *testing.T) {
		f := newCartFixture(t)
		first := f.seedCourse(t, 500, 0)
		second := f.seedCourse(t, 300, 0)

		var wg sync.WaitGroup
		for _, id := range []uint{first, second} {
			wg.Add(1)
			go func(courseID uint) {
				defer wg.Done()
				if err := f.svc.AddItem(context.Background(), 10, courseID); err != nil {
					t.Errorf("AddItem() error = %v", err)
				}
			}(id)
		}
		wg.Wait()

		cart, err := f.svc.GetCart(context.Background(), 10)
		if err != nil {
			t.Fatalf("GetCart() error = %v", err)
		}
		if len(cart.Items) != 2 {
			t.Errorf("cart items = %+v, want both courses", cart.Items)
		}
		if got := f.cartRepo.Count(); got != 1 {
			t.Errorf("cart rows = %d, want 1", got)
		}
	})

	t.Run("carts are per user", func(t *testing.T) {
		f := newCartFixture(t)
		courseID := f.seedCourse(t, 500, 0)

		if err := f.svc.AddItem(context.Background(), 10, courseID); err != nil {
			t.Fatalf("AddItem() error = %v", err)
		}
		if err := f.svc.AddItem(context.Background(), 11, courseID); err != nil {
			t.Errorf("AddItem() for another user error = %v", err)
		}
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	t.Run("no cart at all", func(t *testing.T) {
		f := newCartFixture(t)

		err := f.svc.RemoveItem(context.Background(), 10, 1)
		if !errors.Is(err, domain.ErrCourseNotInCart) {
			t.Errorf("RemoveItem() error = %v, want ErrCourseNotInCart", err)
		}
	})

	t.Run("course not in the cart", func(t *testing.T) {
		f := newCartFixture(t)
		carted := f.seedCourse(t, 500, 0)
		other := f.seedCourse(t, 300, 0)
		if err := f.svc.AddItem(context.Background(), 10, carted); err != nil {
			t.Fatalf("AddItem() error = %v", err)
		}

		if err := f.svc.RemoveItem(context.Background(), 10, other); !errors.Is(err, domain.ErrCourseNotInCart) {
			t.Errorf("RemoveItem() error = %v, want ErrCourseNotInCart", err)
		}
	})

	t.Run("removing the last item deletes the cart", func(t *testing.T) {
		f := newCartFixture(t)
		courseID := f.seedCourse(t, 500, 0)
		if err := f.svc.AddItem(context.Background(), 10, courseID); err != nil {
			t.Fatalf("AddItem() error = %v", err)
		}
		cart, err := f.svc.GetCart(context.Background(), 10)
		if err != nil {
			t.Fatalf("GetCart() error = %v", err)
		}

		if err := f.svc.RemoveItem(context.Background(), 10, courseID); err != nil {
			t.Fatalf("RemoveItem() error = %v", err)
		}
		if f.cartRepo.Exists(cart.ID) {
			t.Error("expected the emptied cart row to be deleted")
		}
		if _, err := f.svc.GetCart(context.Background(), 10); !errors.Is(err, domain.ErrCartNotFound) {
			t.Errorf("GetCart() error = %v, want ErrCartNotFound", err)
		}
	})

	t.Run("concurrent removes of the last two items delete the cart", func(t *testing.T) {
		f := newCartFixture(t)
		first := f.seedCourse(t, 500, 0)
		second := f.seedCourse(t, 300, 0)
		for _, id := range []uint{first, second} {
			if err := f.svc.AddItem(context.Background(), 10, id); err != nil {
				t.Fatalf("AddItem() error = %v", err)
			}
		}
		cart, err := f.svc.GetCart(context.Background(), 10)
		if err != nil {
			t.Fatalf("GetCart() error = %v", err)
		}

		var wg sync.WaitGroup
		for _, id := range []uint{first, second} {
			wg.Add(1)
			go func(courseID uint) {
				defer wg.Done()
				if err := f.svc.RemoveItem(context.Background(), 10, courseID); err != nil {
					t.Errorf("RemoveItem() error = %v", err)
				}
			}(id)
		}
		wg.Wait()

		if f.cartRepo.Exists(cart.ID) {
			t.Error("expected the emptied cart row to be deleted")
		}
	})

	t.Run("cart survives while items remain", func(t *testing.T) {
		f := newCartFixture(t)
		first := f.seedCourse(t, 500, 0)
		second := f.seedCourse(t, 300, 0)
		for _, id := range []uint{first, second} {
			if err := f.svc.AddItem(context.Background(), 10, id); err != nil {
				t.Fatalf("AddItem() error = %v", err)
			}
		}

		if err := f.svc.RemoveItem(context.Background(), 10, first); err != nil {
			t.Fatalf("RemoveItem() error = %v", err)
		}
		cart, err := f.svc.GetCart(context.Background(), 10)
		if err != nil {
			t.Fatalf("GetCart() error = %v", err)
		}
		if len(cart.Items) != 1 || cart.Items[0].CourseID != second {
			t.Errorf("cart items = %+v, want only the second course", cart.Items)
		}
	})
}
