package mocks

import (
	"context"
	"sync"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
)

// MockCartRepository implements domain.CartRepository for testing.
// The default behavior keeps carts in memory and enforces the per-user
// and (cart, course) uniqueness the real store gets from its indexes.
type MockCartRepository struct {
	CreateFunc              func(ctx context.Context, cart *domain.Cart) error
	FindByUserFunc          func(ctx context.Context, userID uint) (*domain.Cart, error)
	FindByUserForUpdateFunc func(ctx context.Context, userID uint) (*domain.Cart, error)
	FindByIDForUpdateFunc   func(ctx context.Context, id uint) (*domain.Cart, error)
	AddItemFunc             func(ctx context.Context, item *domain.CartItem) error
	RemoveItemFunc          func(ctx context.Context, cartID, courseID uint) error
	CountItemsFunc          func(ctx context.Context, cartID uint) (int64, error)
	DeleteFunc              func(ctx context.Context, cartID uint) error

	mu     sync.Mutex
	nextID uint
	carts  map[uint]*domain.Cart

	// Courses resolves item associations on reads, mirroring the
	// repository preload. Optional.
	Courses *MockCourseRepository
}

// NewMockCartRepository creates a new MockCartRepository with default behaviors
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{carts: make(map[uint]*domain.Cart)}
}

func (m *MockCartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, cart)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.carts {
		if existing.UserID == cart.UserID {
			return domain.ErrCartExists
		}
	}
	if cart.ID == 0 {
		m.nextID++
		cart.ID = m.nextID
	}
	copied := *cart
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	m.carts[cart.ID] = &copied
	return nil
}

func (m *MockCartRepository) snapshot(ctx context.Context, cart *domain.Cart) *domain.Cart {
	copied := *cart
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	if m.Courses != nil {
		for i := range copied.Items {
			if course, err := m.Courses.FindByID(ctx, copied.Items[i].CourseID); err == nil {
				copied.Items[i].Course = course
			}
		}
	}
	return &copied
}

func (m *MockCartRepository) FindByUser(ctx context.Context, userID uint) (*domain.Cart, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cart := range m.carts {
		if cart.UserID == userID {
			return m.snapshot(ctx, cart), nil
		}
	}
	return nil, domain.ErrCartNotFound
}

func (m *MockCartRepository) FindByUserForUpdate(ctx context.Context, userID uint) (*domain.Cart, error) {
	if m.FindByUserForUpdateFunc != nil {
		return m.FindByUserForUpdateFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cart := range m.carts {
		if cart.UserID == userID {
			return m.snapshot(ctx, cart), nil
		}
	}
	return nil, domain.ErrCartNotFound
}

func (m *MockCartRepository) FindByIDForUpdate(ctx context.Context, id uint) (*domain.Cart, error) {
	if m.FindByIDForUpdateFunc != nil {
		return m.FindByIDForUpdateFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[id]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return m.snapshot(ctx, cart), nil
}

func (m *MockCartRepository) AddItem(ctx context.Context, item *domain.CartItem) error {
	if m.AddItemFunc != nil {
		return m.AddItemFunc(ctx, item)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[item.CartID]
	if !ok {
		return domain.ErrCartNotFound
	}
	for _, existing := range cart.Items {
		if existing.CourseID == item.CourseID {
			return domain.ErrCourseAlreadyInCart
		}
	}
	m.nextID++
	item.ID = m.nextID
	cart.Items = append(cart.Items, domain.CartItem{ID: item.ID, CartID: item.CartID, CourseID: item.CourseID})
	return nil
}

func (m *MockCartRepository) RemoveItem(ctx context.Context, cartID, courseID uint) error {
	if m.RemoveItemFunc != nil {
		return m.RemoveItemFunc(ctx, cartID, courseID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[cartID]
	if !ok {
		return domain.ErrCourseNotInCart
	}
	for i, existing := range cart.Items {
		if existing.CourseID == courseID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return nil
		}
	}
	return domain.ErrCourseNotInCart
}

func (m *MockCartRepository) CountItems(ctx context.Context, cartID uint) (int64, error) {
	if m.CountItemsFunc != nil {
		return m.CountItemsFunc(ctx, cartID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[cartID]
	if !ok {
		return 0, nil
	}
	return int64(len(cart.Items)), nil
}

func (m *MockCartRepository) Delete(ctx context.Context, cartID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, cartID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, cartID)
	return nil
}

// Exists reports whether the cart row is still present.
func (m *MockCartRepository) Exists(cartID uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.carts[cartID]
	return ok
}

// Count reports how many cart rows exist.
func (m *MockCartRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.carts)
}

var _ domain.CartRepository = (*MockCartRepository)(nil)
