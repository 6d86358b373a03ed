package repositories

import (
	"context"
	"errors"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/infrastructure/database"
	"gorm.io/gorm"
)

// EnrollmentRepositoryImpl implements domain.EnrollmentRepository
// using GORM. The (student_id, course_id) unique index is the final
// safety net against double enrollment.
type EnrollmentRepositoryImpl struct {
	db *gorm.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *gorm.DB) domain.EnrollmentRepository {
	return &EnrollmentRepositoryImpl{db: db}
}

// Create implements domain.EnrollmentRepository
func (r *EnrollmentRepositoryImpl) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	if err := database.FromContext(ctx, r.db).Create(enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyEnrolled
		}
		return err
	}
	return nil
}

// Exists implements domain.EnrollmentRepository
func (r *EnrollmentRepositoryImpl) Exists(ctx context.Context, studentID, courseID uint) (bool, error) {
	var count int64
	err := database.FromContext(ctx, r.db).
		Model(&domain.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	return count > 0, err
}

// ListByStudent implements domain.EnrollmentRepository
func (r *EnrollmentRepositoryImpl) ListByStudent(ctx context.Context, studentID uint) ([]domain.Enrollment, error) {
	var enrollments []domain.Enrollment
	err := database.FromContext(ctx, r.db).
		Where("student_id = ?", studentID).
		Order("purchased_at asc").
		Find(&enrollments).Error
	return enrollments, err
}

var _ domain.EnrollmentRepository = (*EnrollmentRepositoryImpl)(nil)
