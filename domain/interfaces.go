package domain

import (
	"context"
	"time"
)

// Transactor runs a function inside a single atomic unit of work
// against the durable store. Repositories called with the ctx passed to
// fn participate in the same transaction; if fn returns an error no
// partial state remains.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines account data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByPhone(ctx context.Context, phoneNumber string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
}

// CodeRepository is the keyed upsert store for verification codes.
// One active code per phone number; saving overwrites the prior code.
type CodeRepository interface {
	// ClaimCooldown atomically claims the per-phone issuance slot.
	// It returns false when a code was issued within the window.
	ClaimCooldown(ctx context.Context, phoneNumber string, window time.Duration) (bool, error)
	Save(ctx context.Context, code *VerificationCode, ttl time.Duration) error
	Find(ctx context.Context, phoneNumber string) (*VerificationCode, error)
	Delete(ctx context.Context, phoneNumber string) error
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// CourseRepository defines catalog data access operations, including
// the aggregate-duration queries the cascade derives from.
type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Course, error)
	FindBySlug(ctx context.Context, slug string) (*Course, error)
	List(ctx context.Context) ([]Course, error)

	CreateChapter(ctx context.Context, chapter *Chapter) error
	UpdateChapter(ctx context.Context, chapter *Chapter) error
	DeleteChapter(ctx context.Context, id uint) error
	FindChapterByID(ctx context.Context, id uint) (*Chapter, error)
	ListChapters(ctx context.Context, courseID uint) ([]Chapter, error)

	CreateVideo(ctx context.Context, video *Video) error
	UpdateVideo(ctx context.Context, video *Video) error
	DeleteVideo(ctx context.Context, id uint) error
	FindVideoByID(ctx context.Context, id uint) (*Video, error)
	ListVideos(ctx context.Context, chapterID uint) ([]Video, error)

	// Duration aggregation reads the current full child set; the
	// updates below overwrite, never increment.
	SumVideoDurations(ctx context.Context, chapterID uint) (float64, error)
	SumChapterDurations(ctx context.Context, courseID uint) (float64, error)
	UpdateChapterDuration(ctx context.Context, chapterID uint, minutes float64) error
	UpdateCourseDuration(ctx context.Context, courseID uint, minutes float64) error
}

// CartRepository defines cart data access operations. Create returns
// ErrCartExists when the per-user uniqueness constraint is violated.
type CartRepository interface {
	Create(ctx context.Context, cart *Cart) error
	FindByUser(ctx context.Context, userID uint) (*Cart, error)
	// The ForUpdate variants lock the cart row for the rest of the
	// transaction. Mutation paths use them so per-user cart changes
	// are serialized.
	FindByUserForUpdate(ctx context.Context, userID uint) (*Cart, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*Cart, error)
	AddItem(ctx context.Context, item *CartItem) error
	RemoveItem(ctx context.Context, cartID, courseID uint) error
	CountItems(ctx context.Context, cartID uint) (int64, error)
	Delete(ctx context.Context, cartID uint) error
}

// OrderRepository defines order data access operations
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	CreateItems(ctx context.Context, items []OrderItem) error
	MarkPaid(ctx context.Context, orderID uint) error
	FindByID(ctx context.Context, id uint) (*Order, error)
	ListByStudent(ctx context.Context, studentID uint) ([]Order, error)
}

// EnrollmentRepository defines enrollment data access operations
type EnrollmentRepository interface {
	// Create returns ErrAlreadyEnrolled when the (student, course)
	// uniqueness constraint is violated.
	Create(ctx context.Context, enrollment *Enrollment) error
	Exists(ctx context.Context, studentID, courseID uint) (bool, error)
	ListByStudent(ctx context.Context, studentID uint) ([]Enrollment, error)
}

// OTPService defines verification code operations
type OTPService interface {
	Request(ctx context.Context, phoneNumber string) error
	Verify(ctx context.Context, phoneNumber, code string) error
	Consume(ctx context.Context, phoneNumber string) error
}

// AuthService defines identity resolution business logic
type AuthService interface {
	VerifyAndRegister(ctx context.Context, phoneNumber, code, password string) (*AuthResult, error)
	ChangePhoneNumber(ctx context.Context, userID uint, newPhoneNumber, code string) error
	ResetPassword(ctx context.Context, phoneNumber, code, oldPassword, newPassword string) error
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetProfile(ctx context.Context, userID uint) (*User, error)
	UpdateProfile(ctx context.Context, userID uint, fullName, bio, avatarURL string) (*User, error)
}

// CourseInput carries the user-settable course fields. Derived fields
// are recomputed by the service, never accepted from input.
type CourseInput struct {
	Title       string
	Slug        string
	Description string
	Price       int64
	Discount    int64
}

// VideoInput carries the user-settable video fields.
type VideoInput struct {
	Title   string
	FileURL string
	IsFree  bool
}

// CatalogService defines course authoring and the duration cascade
type CatalogService interface {
	CreateCourse(ctx context.Context, teacherID uint, input CourseInput) (*Course, error)
	UpdateCourse(ctx context.Context, teacherID, courseID uint, input CourseInput) (*Course, error)
	DeleteCourse(ctx context.Context, teacherID, courseID uint) error
	GetCourse(ctx context.Context, slug string) (*Course, error)
	ListCourses(ctx context.Context) ([]Course, error)
	ListChapters(ctx context.Context, courseID uint) ([]Chapter, error)

	CreateChapter(ctx context.Context, teacherID, courseID uint, title string, number uint) (*Chapter, error)
	UpdateChapter(ctx context.Context, teacherID, chapterID uint, title string, number uint) (*Chapter, error)
	DeleteChapter(ctx context.Context, teacherID, chapterID uint) error

	AddVideo(ctx context.Context, teacherID, chapterID uint, input VideoInput) (*Video, error)
	UpdateVideo(ctx context.Context, teacherID, videoID uint, input VideoInput) (*Video, error)
	DeleteVideo(ctx context.Context, teacherID, videoID uint) error
}

// CartService defines the cart ledger operations
type CartService interface {
	AddItem(ctx context.Context, userID, courseID uint) error
	RemoveItem(ctx context.Context, userID, courseID uint) error
	GetCart(ctx context.Context, userID uint) (*Cart, error)
}

// CheckoutService converts a cart into an order plus enrollments
type CheckoutService interface {
	Purchase(ctx context.Context, userID, cartID uint) ([]Course, error)
}

// PasswordService defines password hashing and the strength policy
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
	Validate(password string) error
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID uint, role string, sessionID string) (string, error)
	GenerateRefreshToken(userID uint, role string, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// NotificationService defines the code delivery channel
type NotificationService interface {
	SendSMS(to, message string) error
}

// MediaProbeService reports the duration of a video file in minutes
type MediaProbeService interface {
	ProbeDuration(ctx context.Context, fileURL string) (float64, error)
}
