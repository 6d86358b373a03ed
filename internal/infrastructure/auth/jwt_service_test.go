package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "lovecodelearn", 15*time.Minute, 7*24*time.Hour)

	token, err := svc.GenerateAccessToken(42, domain.RoleTeacher, "sess-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != domain.RoleTeacher {
		t.Errorf("Role = %q, want teacher", claims.Role)
	}
	if claims.SessionID != "sess-1" {
		t.Errorf("SessionID = %q, want sess-1", claims.SessionID)
	}
}

func TestJWTService_Validate(t *testing.T) {
	svc := NewJWTService("test-secret", "lovecodelearn", 15*time.Minute, time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		if _, err := svc.ValidateAccessToken("not-a-token"); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("error = %v, want ErrTokenInvalid", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other-secret", "lovecodelearn", 15*time.Minute, time.Hour)
		token, err := other.GenerateAccessToken(42, domain.RoleStudent, "")
		if err != nil {
			t.Fatalf("GenerateAccessToken() error = %v", err)
		}
		if _, err := svc.ValidateAccessToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("error = %v, want ErrTokenInvalid", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewJWTService("test-secret", "lovecodelearn", -time.Minute, time.Hour)
		token, err := expired.GenerateAccessToken(42, domain.RoleStudent, "")
		if err != nil {
			t.Fatalf("GenerateAccessToken() error = %v", err)
		}
		if _, err := svc.ValidateAccessToken(token); !errors.Is(err, domain.ErrTokenExpired) {
			t.Errorf("error = %v, want ErrTokenExpired", err)
		}
	})
}
