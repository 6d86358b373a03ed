package auth

import (
	"unicode"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
	"golang.org/x/crypto/bcrypt"
)

// PasswordServiceImpl implements domain.PasswordService
type PasswordServiceImpl struct {
	cost      int
	minLength int
}

// NewPasswordService creates a new password service
func NewPasswordService(minLength int) domain.PasswordService {
	return &PasswordServiceImpl{
		cost:      bcrypt.DefaultCost,
		minLength: minLength,
	}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// Validate implements the strength policy: minimum length plus at
// least one letter and one digit.
func (p *PasswordServiceImpl) Validate(password string) error {
	if len(password) < p.minLength {
		return domain.ErrWeakPassword
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return domain.ErrWeakPassword
	}
	return nil
}
