package domain

import (
	"math"
	"time"
)

// Role values for User.Role
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// User represents an account in the system. The phone number is the
// login identifier.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PhoneNumber  string    `gorm:"uniqueIndex;size:32" json:"phone_number"`
	PasswordHash string    `gorm:"column:password" json:"-"`
	FullName     string    `gorm:"size:100" json:"full_name"`
	Bio          string    `json:"bio"`
	AvatarURL    string    `json:"avatar_url"`
	Role         string    `gorm:"index;size:10;default:student" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsTeacher reports whether the account may author courses.
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }

// VerificationCode is the single active OTP record for a phone number.
// Stored in Redis under the phone-number key; expiry is enforced by the
// key TTL.
type VerificationCode struct {
	PhoneNumber string    `json:"phone_number"`
	Code        string    `json:"code"`
	IssuedAt    time.Time `json:"issued_at"`
}

// AuthResult represents the outcome of a successful verification:
// the resolved account plus its session credential pair.
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// Session represents a user session backing a refresh token.
type Session struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenClaims represents JWT token claims.
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Course is owned by exactly one teacher. FinalPrice, IsFree and
// DurationMinutes are derived fields: they are never written directly
// by a user action, only recomputed from their inputs.
type Course struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	TeacherID       uint      `gorm:"index" json:"teacher_id"`
	Title           string    `gorm:"size:100" json:"title"`
	Slug            string    `gorm:"uniqueIndex;size:100" json:"slug"`
	Description     string    `json:"description"`
	Price           int64     `json:"price"`
	Discount        int64     `json:"discount"`
	FinalPrice      int64     `json:"final_price"`
	IsFree          bool      `json:"is_free"`
	DurationMinutes float64   `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RecomputePricing derives FinalPrice and IsFree from Price and
// Discount. Must be called after every mutation of either input.
func (c *Course) RecomputePricing() {
	c.FinalPrice = c.Price - c.Discount
	if c.FinalPrice < 0 {
		c.FinalPrice = 0
	}
	c.IsFree = c.FinalPrice == 0
}

// Chapter is a course headline. ChapterNumber is unique per course;
// DurationMinutes is derived from the chapter's videos.
type Chapter struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CourseID        uint      `gorm:"uniqueIndex:idx_course_chapter" json:"course_id"`
	ChapterNumber   uint      `gorm:"uniqueIndex:idx_course_chapter" json:"chapter_number"`
	Title           string    `gorm:"size:200" json:"title"`
	DurationMinutes float64   `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Video is the leaf of the duration tree; its duration is the only one
// not derived, it comes from the media probe.
type Video struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ChapterID       uint      `gorm:"index" json:"chapter_id"`
	Title           string    `gorm:"size:200" json:"title"`
	FileURL         string    `json:"file_url"`
	DurationMinutes float64   `json:"duration_minutes"`
	IsFree          bool      `json:"is_free"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RoundDuration normalizes a probed duration to two decimal places.
func RoundDuration(minutes float64) float64 {
	return math.Round(minutes*100) / 100
}

// Cart is the per-user staging list of courses pending purchase. At
// most one cart exists per user; an emptied cart row is deleted.
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex" json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
}

// TotalPrice sums the final prices of the carted courses. Items must be
// loaded with their Course association.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, item := range c.Items {
		if item.Course != nil {
			total += item.Course.FinalPrice
		}
	}
	return total
}

// CartItem references one course in a cart. The (cart_id, course_id)
// unique index keeps the item set duplicate-free.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"uniqueIndex:idx_cart_course" json:"cart_id"`
	CourseID  uint      `gorm:"uniqueIndex:idx_cart_course" json:"course_id"`
	Course    *Course   `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Order is the durable record of a purchase. Immutable once created
// except IsPaid, which transitions false to true exactly once inside
// the purchase transaction.
type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	StudentID uint        `gorm:"index" json:"student_id"`
	IsPaid    bool        `json:"is_paid"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time   `json:"created_at"`
}

// TotalCost sums the snapshotted item prices.
func (o *Order) TotalCost() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Price
	}
	return total
}

// OrderItem captures a course's final price at the moment of purchase.
// Later price changes must not alter past orders.
type OrderItem struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	OrderID  uint  `gorm:"index" json:"order_id"`
	CourseID uint  `gorm:"index" json:"course_id"`
	Price    int64 `json:"price"`
}

// Enrollment is the durable "has access" fact. The (student_id,
// course_id) unique index is the source of truth for at-most-one
// enrollment, not the application-level pre-check.
type Enrollment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StudentID   uint      `gorm:"uniqueIndex:idx_student_course" json:"student_id"`
	CourseID    uint      `gorm:"uniqueIndex:idx_student_course" json:"course_id"`
	PurchasedAt time.Time `gorm:"autoCreateTime" json:"purchased_at"`
}
