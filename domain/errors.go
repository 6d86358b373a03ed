package domain

import "errors"

// Verification code errors
var (
	ErrOTPThrottled = errors.New("verification code was requested too recently")
	ErrOTPNotFound  = errors.New("verification code not found")
	ErrOTPInvalid   = errors.New("invalid verification code")
	ErrOTPExpired   = errors.New("verification code has expired")
)

// Account errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordRequired   = errors.New("password is required for registration")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPhoneNumberTaken   = errors.New("phone number already belongs to another account")
	ErrWeakPassword       = errors.New("password does not meet the strength policy")
)

// Catalog errors
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrChapterNotFound    = errors.New("chapter not found")
	ErrVideoNotFound      = errors.New("video not found")
	ErrChapterNumberTaken = errors.New("chapter number already used in this course")
	ErrSlugTaken          = errors.New("course slug already in use")
	ErrNotCourseOwner     = errors.New("course belongs to another teacher")
)

// Cart errors
var (
	ErrCartNotFound        = errors.New("cart not found")
	ErrCartExists          = errors.New("cart already exists for this user")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrCourseAlreadyInCart = errors.New("course already exists in cart")
	ErrCourseNotInCart     = errors.New("course not found in cart")
)

// Purchase errors
var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrAlreadyEnrolled = errors.New("student is already enrolled in this course")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)
