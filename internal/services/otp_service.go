package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
)

// OTPServiceImpl implements domain.OTPService on the keyed code store.
// Issuing a new code overwrites the previous one, so at most one code
// is active per phone number.
type OTPServiceImpl struct {
	codeRepo        domain.CodeRepository
	notificationSvc domain.NotificationService
	config          OTPConfig
}

type OTPConfig struct {
	Length   int
	TTL      time.Duration
	Cooldown time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(codeRepo domain.CodeRepository, notificationSvc domain.NotificationService, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		codeRepo:        codeRepo,
		notificationSvc: notificationSvc,
		config:          config,
	}
}

// Request implements domain.OTPService. Delivery is fire-and-forget:
// an SMS failure is logged but never surfaced to the caller.
func (s *OTPServiceImpl) Request(ctx context.Context, phoneNumber string) error {
	ok, err := s.codeRepo.ClaimCooldown(ctx, phoneNumber, s.config.Cooldown)
	if err != nil {
		return fmt.Errorf("failed to check issuance cooldown: %w", err)
	}
	if !ok {
		return domain.ErrOTPThrottled
	}

	codeValue, err := s.generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	code := &domain.VerificationCode{
		PhoneNumber: phoneNumber,
		Code:        codeValue,
		IssuedAt:    time.Now(),
	}
	if err := s.codeRepo.Save(ctx, code, s.config.TTL); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	message := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", codeValue, int(s.config.TTL.Minutes()))
	if err := s.notificationSvc.SendSMS(phoneNumber, message); err != nil {
		log.Printf("OTP_DELIVERY_FAILED: phone=%s error=%v", phoneNumber, err)
	}

	return nil
}

// Verify implements domain.OTPService. The record is kept on success;
// the caller consumes it once the whole operation it gates succeeds.
func (s *OTPServiceImpl) Verify(ctx context.Context, phoneNumber, code string) error {
	stored, err := s.codeRepo.Find(ctx, phoneNumber)
	if err != nil {
		return err
	}

	if time.Since(stored.IssuedAt) > s.config.TTL {
		return domain.ErrOTPExpired
	}
	if subtle.ConstantTimeCompare([]byte(stored.Code), []byte(code)) != 1 {
		return domain.ErrOTPInvalid
	}
	return nil
}

// Consume implements domain.OTPService (single-use enforcement)
func (s *OTPServiceImpl) Consume(ctx context.Context, phoneNumber string) error {
	return s.codeRepo.Delete(ctx, phoneNumber)
}

// generateCode produces a uniformly random numeric code; leading
// zeros are allowed.
func (s *OTPServiceImpl) generateCode() (string, error) {
	digits := make([]byte, s.config.Length)
	for i := range digits {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}

var _ domain.OTPService = (*OTPServiceImpl)(nil)
