package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/mocks"
)

type authServiceFixture struct {
	svc         domain.AuthService
	userRepo    *mocks.MockUserRepository
	sessionRepo *mocks.MockSessionRepository
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	otpSvc      *mocks.MockOTPService
	consumed    []string
}

func newAuthServiceFixture(t *testing.T) *authServiceFixture {
	t.Helper()
	f := &authServiceFixture{
		userRepo:    mocks.NewMockUserRepository(),
		sessionRepo: mocks.NewMockSessionRepository(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
		otpSvc:      mocks.NewMockOTPService(),
	}
	f.otpSvc.ConsumeFunc = func(ctx context.Context, phoneNumber string) error {
		f.consumed = append(f.consumed, phoneNumber)
		return nil
	}
	f.svc = NewAuthService(f.userRepo, f.sessionRepo, f.passwordSvc, f.tokenSvc, f.otpSvc, 7*24*time.Hour, 15*time.Minute)
	return f
}

func TestAuthService_VerifyAndRegister(t *testing.T) {
	t.Run("invalid code blocks everything", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		f.otpSvc.VerifyFunc = func(ctx context.Context, phoneNumber, code string) error {
			return domain.ErrOTPInvalid
		}

		if _, err := f.svc.VerifyAndRegister(context.Background(), "+989121234567", "000000", "secret1x"); !errors.Is(err, domain.ErrOTPInvalid) {
			t.Errorf("VerifyAndRegister() error = %v, want ErrOTPInvalid", err)
		}
		if len(f.consumed) != 0 {
			t.Error("code must not be consumed on a failed verification")
		}
	})

	t.Run("existing account resolves without touching the password", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		existing := &domain.User{ID: 42, PhoneNumber: "+989121234567", Role: domain.RoleStudent}
		f.userRepo.FindByPhoneFunc = func(ctx context.Context, phoneNumber string) (*domain.User, error) {
			return existing, nil
		}
		f.passwordSvc.ValidateFunc = func(password string) error {
			t.Error("password must not be validated for an existing account")
			return nil
		}
		var created bool
		f.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
			created = true
			return nil
		}

		result, err := f.svc.VerifyAndRegister(context.Background(), "+989121234567", "123456", "")
		if err != nil {
			t.Fatalf("VerifyAndRegister() error = %v", err)
		}
		if created {
			t.Error("no account should be created when one exists")
		}
		if result.User.ID != 42 {
			t.Errorf("resolved user ID = %d, want 42", result.User.ID)
		}
		if result.AccessToken == "" || result.RefreshToken == "" || result.SessionID == "" {
			t.Error("expected a full credential pair with a session")
		}
		if len(f.consumed) != 1 || f.consumed[0] != "+989121234567" {
			t.Errorf("consumed = %v, want the verified number once", f.consumed)
		}
	})

	t.Run("new account requires a password", func(t *testing.T) {
		f := newAuthServiceFixture(t)

		_, err := f.svc.VerifyAndRegister(context.Background(), "+989121234567", "123456", "")
		if !errors.Is(err, domain.ErrPasswordRequired) {
			t.Errorf("VerifyAndRegister() error = %v, want ErrPasswordRequired", err)
		}
		if len(f.consumed) != 0 {
			t.Error("code must survive a failed registration")
		}
	})

	t.Run("weak password rejected", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		f.passwordSvc.ValidateFunc = func(password string) error {
			return domain.ErrWeakPassword
		}

		_, err := f.svc.VerifyAndRegister(context.Background(), "+989121234567", "123456", "short")
		if !errors.Is(err, domain.ErrWeakPassword) {
			t.Errorf("VerifyAndRegister() error = %v, want ErrWeakPassword", err)
		}
	})

	t.Run("missing account registers a student", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		var created *domain.User
		f.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
			user.ID = 7
			created = user
			return nil
		}

		result, err := f.svc.VerifyAndRegister(context.Background(), "+989121234567", "123456", "secret1x")
		if err != nil {
			t.Fatalf("VerifyAndRegister() error = %v", err)
		}
		if created == nil {
			t.Fatal("expected an account to be created")
		}
		if created.Role != domain.RoleStudent {
			t.Errorf("new account role = %q, want student", created.Role)
		}
		if created.PasswordHash == "secret1x" {
			t.Error("password must be stored hashed")
		}
		if result.User.ID != 7 {
			t.Errorf("result user ID = %d, want 7", result.User.ID)
		}
		if len(f.consumed) != 1 {
			t.Errorf("consumed = %v, want exactly one consume", f.consumed)
		}
	})
}

func TestAuthService_ChangePhoneNumber(t *testing.T) {
	t.Run("new number owned by someone else", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		f.userRepo.FindByPhoneFunc = func(ctx context.Context, phoneNumber string) (*domain.User, error) {
			return &domain.User{ID: 99, PhoneNumber: phoneNumber}, nil
		}

		err := f.svc.ChangePhoneNumber(context.Background(), 42, "+989127654321", "123456")
		if !errors.Is(err, domain.ErrPhoneNumberTaken) {
			t.Errorf("ChangePhoneNumber() error = %v, want ErrPhoneNumberTaken", err)
		}
		if len(f.consumed) != 0 {
			t.Error("code must not be consumed on conflict")
		}
	})

	t.Run("updates the number and consumes the code", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
			return &domain.User{ID: id, PhoneNumber: "+989121234567"}, nil
		}
		var updated *domain.User
		f.userRepo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
			updated = user
			return nil
		}

		if err := f.svc.ChangePhoneNumber(context.Background(), 42, "+989127654321", "123456"); err != nil {
			t.Fatalf("ChangePhoneNumber() error = %v", err)
		}
		if updated == nil || updated.PhoneNumber != "+989127654321" {
			t.Errorf("updated user = %+v, want new phone number", updated)
		}
		if len(f.consumed) != 1 || f.consumed[0] != "+989127654321" {
			t.Errorf("consumed = %v, want the new number once", f.consumed)
		}
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	t.Run("old password mismatch", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		f.userRepo.FindByPhoneFunc = func(ctx context.Context, phoneNumber string) (*domain.User, error) {
			return &domain.User{ID: 42, PasswordHash: "hashed_current1"}, nil
		}

		err := f.svc.ResetPassword(context.Background(), "+989121234567", "123456", "wrong", "fresh1xx")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("ResetPassword() error = %v, want ErrInvalidCredentials", err)
		}
		if len(f.consumed) != 0 {
			t.Error("code must not be consumed on failure")
		}
	})

	t.Run("rehashes and consumes on success", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		f.userRepo.FindByPhoneFunc = func(ctx context.Context, phoneNumber string) (*domain.User, error) {
			return &domain.User{ID: 42, PasswordHash: "hashed_current1"}, nil
		}
		var updated *domain.User
		f.userRepo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
			updated = user
			return nil
		}

		if err := f.svc.ResetPassword(context.Background(), "+989121234567", "123456", "current1", "fresh1xx"); err != nil {
			t.Fatalf("ResetPassword() error = %v", err)
		}
		if updated == nil || updated.PasswordHash != "hashed_fresh1xx" {
			t.Errorf("updated hash = %+v, want the new password hashed", updated)
		}
		if len(f.consumed) != 1 {
			t.Errorf("consumed = %v, want exactly one consume", f.consumed)
		}
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("invalid refresh token", func(t *testing.T) {
		f := newAuthServiceFixture(t)

		if _, err := f.svc.RefreshToken(context.Background(), "garbage"); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("RefreshToken() error = %v, want ErrTokenInvalid", err)
		}
	})

	t.Run("missing session", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		f.tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
			return &domain.TokenClaims{UserID: 42, SessionID: "gone"}, nil
		}

		if _, err := f.svc.RefreshToken(context.Background(), "valid"); !errors.Is(err, domain.ErrSessionNotFound) {
			t.Errorf("RefreshToken() error = %v, want ErrSessionNotFound", err)
		}
	})

	t.Run("issues a fresh access token", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		session := &domain.Session{ID: "sess-1", UserID: 42, ExpiresAt: time.Now().Add(time.Hour)}
		if err := f.sessionRepo.Create(context.Background(), session); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		f.tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
			return &domain.TokenClaims{UserID: 42, SessionID: "sess-1"}, nil
		}
		f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
			return &domain.User{ID: id, Role: domain.RoleStudent}, nil
		}

		result, err := f.svc.RefreshToken(context.Background(), "valid")
		if err != nil {
			t.Fatalf("RefreshToken() error = %v", err)
		}
		if result.AccessToken == "" {
			t.Error("expected a new access token")
		}
		if result.SessionID != "sess-1" {
			t.Errorf("session ID = %q, want sess-1", result.SessionID)
		}
	})
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthServiceFixture(t)
	session := &domain.Session{ID: "sess-1", UserID: 42, ExpiresAt: time.Now().Add(time.Hour)}
	if err := f.sessionRepo.Create(context.Background(), session); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := f.svc.Logout(context.Background(), "sess-1"); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := f.sessionRepo.FindByID(context.Background(), "sess-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("FindByID() after logout error = %v, want ErrSessionNotFound", err)
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	f := newAuthServiceFixture(t)
	f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return &domain.User{ID: id, PhoneNumber: "+989121234567"}, nil
	}
	var updated *domain.User
	f.userRepo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
		updated = user
		return nil
	}

	user, err := f.svc.UpdateProfile(context.Background(), 42, "Sara Ahmadi", "Backend instructor", "https://cdn.example.com/a.png")
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if user.FullName != "Sara Ahmadi" || user.Bio != "Backend instructor" {
		t.Errorf("profile = %+v, want updated fields", user)
	}
	if updated == nil {
		t.Error("expected the account to be persisted")
	}
}
