package mocks

import (
	"context"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
)

// MockPasswordService implements domain.PasswordService for testing.
// The default hash is reversible-by-prefix so tests can assert on it.
type MockPasswordService struct {
	HashFunc     func(password string) (string, error)
	VerifyFunc   func(hashedPassword, password string) bool
	ValidateFunc func(password string) error
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed_"+password
}

func (m *MockPasswordService) Validate(password string) error {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(password)
	}
	return nil
}

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(userID uint, role string, sessionID string) (string, error)
	GenerateRefreshTokenFunc func(userID uint, role string, sessionID string) (string, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) GenerateAccessToken(userID uint, role string, sessionID string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, role, sessionID)
	}
	return "access_token", nil
}

func (m *MockTokenService) GenerateRefreshToken(userID uint, role string, sessionID string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID, role, sessionID)
	}
	return "refresh_token", nil
}

func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// MockNotificationService implements domain.NotificationService for testing
type MockNotificationService struct {
	SendSMSFunc func(to, message string) error
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	return nil
}

// MockOTPService implements domain.OTPService for testing
type MockOTPService struct {
	RequestFunc func(ctx context.Context, phoneNumber string) error
	VerifyFunc  func(ctx context.Context, phoneNumber, code string) error
	ConsumeFunc func(ctx context.Context, phoneNumber string) error
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Request(ctx context.Context, phoneNumber string) error {
	if m.RequestFunc != nil {
		return m.RequestFunc(ctx, phoneNumber)
	}
	return nil
}

func (m *MockOTPService) Verify(ctx context.Context, phoneNumber, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, phoneNumber, code)
	}
	return nil
}

func (m *MockOTPService) Consume(ctx context.Context, phoneNumber string) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, phoneNumber)
	}
	return nil
}

// MockMediaProbeService implements domain.MediaProbeService for testing
type MockMediaProbeService struct {
	ProbeDurationFunc func(ctx context.Context, fileURL string) (float64, error)
}

// NewMockMediaProbeService creates a new MockMediaProbeService with default behaviors
func NewMockMediaProbeService() *MockMediaProbeService {
	return &MockMediaProbeService{}
}

func (m *MockMediaProbeService) ProbeDuration(ctx context.Context, fileURL string) (float64, error) {
	if m.ProbeDurationFunc != nil {
		return m.ProbeDurationFunc(ctx, fileURL)
	}
	return 0, nil
}

// MockTransactor implements domain.Transactor for testing; the default
// behavior runs the function directly with no transaction.
type MockTransactor struct {
	InTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

// NewMockTransactor creates a new MockTransactor with default behaviors
func NewMockTransactor() *MockTransactor {
	return &MockTransactor{}
}

func (m *MockTransactor) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.InTxFunc != nil {
		return m.InTxFunc(ctx, fn)
	}
	return fn(ctx)
}

var (
	_ domain.PasswordService     = (*MockPasswordService)(nil)
	_ domain.TokenService        = (*MockTokenService)(nil)
	_ domain.NotificationService = (*MockNotificationService)(nil)
	_ domain.OTPService          = (*MockOTPService)(nil)
	_ domain.MediaProbeService   = (*MockMediaProbeService)(nil)
	_ domain.Transactor          = (*MockTransactor)(nil)
)
