package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
	"github.com/google/uuid"
)

// AuthServiceImpl implements domain.AuthService. Every entry point is
// gated by the OTP service; the consumed code is deleted only after
// the operation it authorized has succeeded.
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	sessionTTL  time.Duration
	accessTTL   time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	sessionTTL time.Duration,
	accessTTL time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		sessionTTL:  sessionTTL,
		accessTTL:   accessTTL,
	}
}

// VerifyAndRegister implements domain.AuthService. An existing account
// is resolved as-is (the password argument is ignored, this is not a
// password reset); a missing account is created lazily with role
// student, which requires a password.
func (s *AuthServiceImpl) VerifyAndRegister(ctx context.Context, phoneNumber, code, password string) (*domain.AuthResult, error) {
	if err := s.otpSvc.Verify(ctx, phoneNumber, code); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByPhone(ctx, phoneNumber)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user, err = s.registerStudent(ctx, phoneNumber, password)
		if err != nil {
			return nil, err
		}
		log.Printf("USER_REGISTERED: user_id=%d phone=%s", user.ID, phoneNumber)
	}

	if err := s.otpSvc.Consume(ctx, phoneNumber); err != nil {
		return nil, fmt.Errorf("failed to consume verification code: %w", err)
	}

	return s.issueCredentials(ctx, user)
}

func (s *AuthServiceImpl) registerStudent(ctx context.Context, phoneNumber, password string) (*domain.User, error) {
	if password == "" {
		return nil, domain.ErrPasswordRequired
	}
	if err := s.passwordSvc.Validate(password); err != nil {
		return nil, err
	}

	hashed, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		PhoneNumber:  phoneNumber,
		PasswordHash: hashed,
		Role:         domain.RoleStudent,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// ChangePhoneNumber implements domain.AuthService. The code must have
// been requested for the new number.
func (s *AuthServiceImpl) ChangePhoneNumber(ctx context.Context, userID uint, newPhoneNumber, code string) error {
	if err := s.otpSvc.Verify(ctx, newPhoneNumber, code); err != nil {
		return err
	}

	existing, err := s.userRepo.FindByPhone(ctx, newPhoneNumber)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if existing != nil && existing.ID != userID {
		return domain.ErrPhoneNumberTaken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	user.PhoneNumber = newPhoneNumber
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.otpSvc.Consume(ctx, newPhoneNumber); err != nil {
		return fmt.Errorf("failed to consume verification code: %w", err)
	}

	log.Printf("PHONE_CHANGED: user_id=%d phone=%s", user.ID, newPhoneNumber)
	return nil
}

// ResetPassword implements domain.AuthService
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, phoneNumber, code, oldPassword, newPassword string) error {
	if err := s.otpSvc.Verify(ctx, phoneNumber, code); err != nil {
		return err
	}

	user, err := s.userRepo.FindByPhone(ctx, phoneNumber)
	if err != nil {
		return err
	}

	if !s.passwordSvc.Verify(user.PasswordHash, oldPassword) {
		return domain.ErrInvalidCredentials
	}
	if err := s.passwordSvc.Validate(newPassword); err != nil {
		return err
	}

	hashed, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.otpSvc.Consume(ctx, phoneNumber); err != nil {
		return fmt.Errorf("failed to consume verification code: %w", err)
	}

	log.Printf("PASSWORD_RESET: user_id=%d", user.ID)
	return nil
}

// RefreshToken implements domain.AuthService
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// GetProfile implements domain.AuthService
func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// UpdateProfile implements domain.AuthService
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, userID uint, fullName, bio, avatarURL string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FullName = fullName
	user.Bio = bio
	user.AvatarURL = avatarURL
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthServiceImpl) issueCredentials(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID, user.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

var _ domain.AuthService = (*AuthServiceImpl)(nil)
