package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
)

// MockCodeRepository implements domain.CodeRepository for testing.
// The default behavior is a working in-memory keyed store with the
// same upsert and cooldown semantics as the Redis implementation, so
// OTP service tests can exercise real flows without Redis.
type MockCodeRepository struct {
	ClaimCooldownFunc func(ctx context.Context, phoneNumber string, window time.Duration) (bool, error)
	SaveFunc          func(ctx context.Context, code *domain.VerificationCode, ttl time.Duration) error
	FindFunc          func(ctx context.Context, phoneNumber string) (*domain.VerificationCode, error)
	DeleteFunc        func(ctx context.Context, phoneNumber string) error

	mu        sync.Mutex
	codes     map[string]*domain.VerificationCode
	expiries  map[string]time.Time
	cooldowns map[string]time.Time
}

// NewMockCodeRepository creates a new MockCodeRepository with default behaviors
func NewMockCodeRepository() *MockCodeRepository {
	return &MockCodeRepository{
		codes:     make(map[string]*domain.VerificationCode),
		expiries:  make(map[string]time.Time),
		cooldowns: make(map[string]time.Time),
	}
}

func (m *MockCodeRepository) ClaimCooldown(ctx context.Context, phoneNumber string, window time.Duration) (bool, error) {
	if m.ClaimCooldownFunc != nil {
		return m.ClaimCooldownFunc(ctx, phoneNumber, window)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if until, ok := m.cooldowns[phoneNumber]; ok && time.Now().Before(until) {
		return false, nil
	}
	m.cooldowns[phoneNumber] = time.Now().Add(window)
	return true, nil
}

func (m *MockCodeRepository) Save(ctx context.Context, code *domain.VerificationCode, ttl time.Duration) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, code, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *code
	m.codes[code.PhoneNumber] = &copied
	m.expiries[code.PhoneNumber] = time.Now().Add(ttl)
	return nil
}

func (m *MockCodeRepository) Find(ctx context.Context, phoneNumber string) (*domain.VerificationCode, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, phoneNumber)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.codes[phoneNumber]
	if !ok || time.Now().After(m.expiries[phoneNumber]) {
		return nil, domain.ErrOTPNotFound
	}
	copied := *code
	return &copied, nil
}

func (m *MockCodeRepository) Delete(ctx context.Context, phoneNumber string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, phoneNumber)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.codes, phoneNumber)
	delete(m.expiries, phoneNumber)
	return nil
}

// ExpireCooldown clears the cooldown for a number, simulating the
// window elapsing.
func (m *MockCodeRepository) ExpireCooldown(phoneNumber string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cooldowns, phoneNumber)
}

// ExpireCode force-expires the stored code, simulating TTL eviction.
func (m *MockCodeRepository) ExpireCode(phoneNumber string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.codes, phoneNumber)
	delete(m.expiries, phoneNumber)
}

// StoredCode returns the currently stored code for assertions.
func (m *MockCodeRepository) StoredCode(phoneNumber string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.codes[phoneNumber]
	if !ok {
		return "", false
	}
	return code.Code, true
}

var _ domain.CodeRepository = (*MockCodeRepository)(nil)
