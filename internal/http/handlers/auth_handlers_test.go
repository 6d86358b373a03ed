package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/mocks"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/services"
)

type authHandlerFixture struct {
	router      *gin.Engine
	userRepo    *mocks.MockUserRepository
	codeRepo    *mocks.MockCodeRepository
	sessionRepo *mocks.MockSessionRepository
}

// newAuthHandlerFixture wires the handlers against real services with
// in-memory stores, so requests exercise the whole verification flow.
func newAuthHandlerFixture(t *testing.T) *authHandlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &authHandlerFixture{
		userRepo:    mocks.NewMockUserRepository(),
		codeRepo:    mocks.NewMockCodeRepository(),
		sessionRepo: mocks.NewMockSessionRepository(),
	}

	otpSvc := services.NewOTPService(f.codeRepo, mocks.NewMockNotificationService(), services.OTPConfig{
		Length:   6,
		TTL:      5 * time.Minute,
		Cooldown: 3 * time.Minute,
	})
	authSvc := services.NewAuthService(
		f.userRepo,
		f.sessionRepo,
		mocks.NewMockPasswordService(),
		mocks.NewMockTokenService(),
		otpSvc,
		7*24*time.Hour,
		15*time.Minute,
	)

	h := NewAuthHandlers(authSvc, otpSvc)
	f.router = gin.New()
	f.router.POST("/auth/otp/request", h.RequestCode)
	f.router.POST("/auth/otp/verify", h.Verify)
	return f
}

func (f *authHandlerFixture) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestAuthHandlers_RequestCode(t *testing.T) {
	t.Run("missing phone number", func(t *testing.T) {
		f := newAuthHandlerFixture(t)
		if w := f.post(t, "/auth/otp/request", gin.H{}); w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("sends a code", func(t *testing.T) {
		f := newAuthHandlerFixture(t)
		w := f.post(t, "/auth/otp/request", gin.H{"phone_number": "+989121234567"})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		if _, ok := f.codeRepo.StoredCode("+989121234567"); !ok {
			t.Error("expected a stored verification code")
		}
	})

	t.Run("repeat request is throttled", func(t *testing.T) {
		f := newAuthHandlerFixture(t)
		f.post(t, "/auth/otp/request", gin.H{"phone_number": "+989121234567"})
		if w := f.post(t, "/auth/otp/request", gin.H{"phone_number": "+989121234567"}); w.Code != http.StatusTooManyRequests {
			t.Errorf("status = %d, want 429", w.Code)
		}
	})
}

func TestAuthHandlers_Verify(t *testing.T) {
	requestCode := func(t *testing.T, f *authHandlerFixture, phone string) string {
		t.Helper()
		if w := f.post(t, "/auth/otp/request", gin.H{"phone_number": phone}); w.Code != http.StatusOK {
			t.Fatalf("request code status = %d", w.Code)
		}
		code, ok := f.codeRepo.StoredCode(phone)
		if !ok {
			t.Fatal("no stored code")
		}
		return code
	}

	t.Run("no active code", func(t *testing.T) {
		f := newAuthHandlerFixture(t)
		w := f.post(t, "/auth/otp/verify", gin.H{"phone_number": "+989121234567", "code": "123456"})
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	t.Run("wrong code", func(t *testing.T) {
		f := newAuthHandlerFixture(t)
		code := requestCode(t, f, "+989121234567")
		wrong := "000000"
		if code == wrong {
			wrong = "111111"
		}
		w := f.post(t, "/auth/otp/verify", gin.H{"phone_number": "+989121234567", "code": wrong})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("new account without a password", func(t *testing.T) {
		f := newAuthHandlerFixture(t)
		code := requestCode(t, f, "+989121234567")
		w := f.post(t, "/auth/otp/verify", gin.H{"phone_number": "+989121234567", "code": code})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400: %s", w.Code, w.Body.String())
		}
	})

	t.Run("registers and returns credentials", func(t *testing.T) {
		f := newAuthHandlerFixture(t)
		var created *domain.User
		f.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
			user.ID = 7
			created = user
			return nil
		}
		code := requestCode(t, f, "+989121234567")

		w := f.post(t, "/auth/otp/verify", gin.H{
			"phone_number": "+989121234567",
			"code":         code,
			"password":     "secret1x",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		if created == nil || created.Role != domain.RoleStudent {
			t.Errorf("created = %+v, want a student account", created)
		}

		var resp struct {
			Data struct {
				AccessToken  string `json:"access_token"`
				RefreshToken string `json:"refresh_token"`
				User         struct {
					ID uint `json:"id"`
				} `json:"user"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if resp.Data.AccessToken == "" || resp.Data.RefreshToken == "" {
			t.Error("expected a credential pair")
		}
		if resp.Data.User.ID != 7 {
			t.Errorf("user ID = %d, want 7", resp.Data.User.ID)
		}

		// The code is single use; a replay must fail.
		w = f.post(t, "/auth/otp/verify", gin.H{
			"phone_number": "+989121234567",
			"code":         code,
			"password":     "secret1x",
		})
		if w.Code != http.StatusNotFound {
			t.Errorf("replay status = %d, want 404", w.Code)
		}
	})
}
