package domain

import (
	"errors"
	"testing"
)

func TestVerificationErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
		description string
	}{
		{
			name:        "ErrOTPThrottled",
			err:         ErrOTPThrottled,
			expectedMsg: "verification code was requested too recently",
			description: "should indicate the issuance cooldown",
		},
		{
			name:        "ErrOTPNotFound",
			err:         ErrOTPNotFound,
			expectedMsg: "verification code not found",
			description: "should indicate no active code for the number",
		},
		{
			name:        "ErrOTPInvalid",
			err:         ErrOTPInvalid,
			expectedMsg: "invalid verification code",
			description: "should indicate a code mismatch",
		},
		{
			name:        "ErrOTPExpired",
			err:         ErrOTPExpired,
			expectedMsg: "verification code has expired",
			description: "should indicate a stale code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("error should not be nil")
			}
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected message %q, got %q (%s)", tt.expectedMsg, tt.err.Error(), tt.description)
			}
		})
	}
}

func TestPurchaseErrors_AreDistinct(t *testing.T) {
	all := []error{
		ErrCartNotFound,
		ErrCartEmpty,
		ErrCourseAlreadyInCart,
		ErrCourseNotInCart,
		ErrOrderNotFound,
		ErrAlreadyEnrolled,
		ErrCourseNotFound,
	}

	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors %q and %q should be distinct sentinels", a, b)
			}
		}
	}
}

func TestAccountErrors_Sentinels(t *testing.T) {
	wrapped := errors.Join(ErrPasswordRequired)
	if !errors.Is(wrapped, ErrPasswordRequired) {
		t.Error("wrapped ErrPasswordRequired should match with errors.Is")
	}
	if errors.Is(ErrPasswordRequired, ErrWeakPassword) {
		t.Error("ErrPasswordRequired must not match ErrWeakPassword")
	}
}
