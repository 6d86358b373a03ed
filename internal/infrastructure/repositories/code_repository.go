package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
	"github.com/redis/go-redis/v9"
)

// CodeRepositoryImpl implements domain.CodeRepository using Redis.
// The code lives under one key per phone number, so saving a new code
// overwrites the previous one and the key TTL enforces expiry. The
// cooldown is a separate SetNX-claimed key: concurrent requests for
// the same number race on a single atomic write, so the cooldown
// cannot be bypassed.
type CodeRepositoryImpl struct {
	client *redis.Client
}

// NewCodeRepository creates a new verification code repository
func NewCodeRepository(client *redis.Client) domain.CodeRepository {
	return &CodeRepositoryImpl{client: client}
}

func codeKey(phone string) string     { return fmt.Sprintf("otp:%s", phone) }
func cooldownKey(phone string) string { return fmt.Sprintf("otp:cd:%s", phone) }

// ClaimCooldown implements domain.CodeRepository
func (r *CodeRepositoryImpl) ClaimCooldown(ctx context.Context, phoneNumber string, window time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, cooldownKey(phoneNumber), 1, window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim cooldown: %w", err)
	}
	return ok, nil
}

// Save implements domain.CodeRepository
func (r *CodeRepositoryImpl) Save(ctx context.Context, code *domain.VerificationCode, ttl time.Duration) error {
	data, err := json.Marshal(code)
	if err != nil {
		return fmt.Errorf("failed to marshal verification code: %w", err)
	}
	if err := r.client.Set(ctx, codeKey(code.PhoneNumber), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	return nil
}

// Find implements domain.CodeRepository
func (r *CodeRepositoryImpl) Find(ctx context.Context, phoneNumber string) (*domain.VerificationCode, error) {
	data, err := r.client.Get(ctx, codeKey(phoneNumber)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrOTPNotFound
		}
		return nil, fmt.Errorf("failed to read verification code: %w", err)
	}

	var code domain.VerificationCode
	if err := json.Unmarshal([]byte(data), &code); err != nil {
		return nil, fmt.Errorf("failed to unmarshal verification code: %w", err)
	}
	return &code, nil
}

// Delete implements domain.CodeRepository
func (r *CodeRepositoryImpl) Delete(ctx context.Context, phoneNumber string) error {
	return r.client.Del(ctx, codeKey(phoneNumber)).Err()
}

var _ domain.CodeRepository = (*CodeRepositoryImpl)(nil)
