package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
)

// MockOrderRepository implements domain.OrderRepository for testing
type MockOrderRepository struct {
	CreateFunc        func(ctx context.Context, order *domain.Order) error
	CreateItemsFunc   func(ctx context.Context, items []domain.OrderItem) error
	MarkPaidFunc      func(ctx context.Context, orderID uint) error
	FindByIDFunc      func(ctx context.Context, id uint) (*domain.Order, error)
	ListByStudentFunc func(ctx context.Context, studentID uint) ([]domain.Order, error)

	mu     sync.Mutex
	nextID uint
	orders map[uint]*domain.Order
}

// NewMockOrderRepository creates a new MockOrderRepository with default behaviors
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{orders: make(map[uint]*domain.Order)}
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if order.ID == 0 {
		m.nextID++
		order.ID = m.nextID
	}
	copied := *order
	copied.Items = append([]domain.OrderItem(nil), order.Items...)
	m.orders[order.ID] = &copied
	return nil
}

func (m *MockOrderRepository) CreateItems(ctx context.Context, items []domain.OrderItem) error {
	if m.CreateItemsFunc != nil {
		return m.CreateItemsFunc(ctx, items)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range items {
		order, ok := m.orders[item.OrderID]
		if !ok {
			return domain.ErrOrderNotFound
		}
		m.nextID++
		item.ID = m.nextID
		order.Items = append(order.Items, item)
	}
	return nil
}

func (m *MockOrderRepository) MarkPaid(ctx context.Context, orderID uint) error {
	if m.MarkPaidFunc != nil {
		return m.MarkPaidFunc(ctx, orderID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.IsPaid = true
	return nil
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	copied.Items = append([]domain.OrderItem(nil), order.Items...)
	return &copied, nil
}

func (m *MockOrderRepository) ListByStudent(ctx context.Context, studentID uint) ([]domain.Order, error) {
	if m.ListByStudentFunc != nil {
		return m.ListByStudentFunc(ctx, studentID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Order
	for _, order := range m.orders {
		if order.StudentID == studentID {
			copied := *order
			copied.Items = append([]domain.OrderItem(nil), order.Items...)
			out = append(out, copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ domain.OrderRepository = (*MockOrderRepository)(nil)
