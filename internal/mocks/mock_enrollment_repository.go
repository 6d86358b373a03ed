package mocks

import (
	"context"
	"sync"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
)

type enrollmentKey struct {
	studentID uint
	courseID  uint
}

// MockEnrollmentRepository implements domain.EnrollmentRepository for
// testing. The default behavior enforces the (student, course)
// uniqueness under a mutex, so concurrent Create calls race the same
// way they would against the real unique index.
type MockEnrollmentRepository struct {
	CreateFunc        func(ctx context.Context, enrollment *domain.Enrollment) error
	ExistsFunc        func(ctx context.Context, studentID, courseID uint) (bool, error)
	ListByStudentFunc func(ctx context.Context, studentID uint) ([]domain.Enrollment, error)

	mu          sync.Mutex
	nextID      uint
	enrollments map[enrollmentKey]domain.Enrollment
}

// NewMockEnrollmentRepository creates a new MockEnrollmentRepository with default behaviors
func NewMockEnrollmentRepository() *MockEnrollmentRepository {
	return &MockEnrollmentRepository{enrollments: make(map[enrollmentKey]domain.Enrollment)}
}

func (m *MockEnrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, enrollment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := enrollmentKey{studentID: enrollment.StudentID, courseID: enrollment.CourseID}
	if _, ok := m.enrollments[key]; ok {
		return domain.ErrAlreadyEnrolled
	}
	m.nextID++
	enrollment.ID = m.nextID
	m.enrollments[key] = *enrollment
	return nil
}

func (m *MockEnrollmentRepository) Exists(ctx context.Context, studentID, courseID uint) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, studentID, courseID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.enrollments[enrollmentKey{studentID: studentID, courseID: courseID}]
	return ok, nil
}

func (m *MockEnrollmentRepository) ListByStudent(ctx context.Context, studentID uint) ([]domain.Enrollment, error) {
	if m.ListByStudentFunc != nil {
		return m.ListByStudentFunc(ctx, studentID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Enrollment
	for _, enrollment := range m.enrollments {
		if enrollment.StudentID == studentID {
			out = append(out, enrollment)
		}
	}
	return out, nil
}

// Count reports the number of stored enrollments.
func (m *MockEnrollmentRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.enrollments)
}

var _ domain.EnrollmentRepository = (*MockEnrollmentRepository)(nil)
