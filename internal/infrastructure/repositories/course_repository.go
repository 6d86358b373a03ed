package repositories

import (
	"context"
	"errors"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/infrastructure/database"
	"gorm.io/gorm"
)

// CourseRepositoryImpl implements domain.CourseRepository using GORM
type CourseRepositoryImpl struct {
	db *gorm.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *gorm.DB) domain.CourseRepository {
	return &CourseRepositoryImpl{db: db}
}

// Create implements domain.CourseRepository. The slug unique index
// maps to ErrSlugTaken.
func (r *CourseRepositoryImpl) Create(ctx context.Context, course *domain.Course) error {
	if err := database.FromContext(ctx, r.db).Create(course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrSlugTaken
		}
		return err
	}
	return nil
}

// Update implements domain.CourseRepository
func (r *CourseRepositoryImpl) Update(ctx context.Context, course *domain.Course) error {
	if err := database.FromContext(ctx, r.db).Save(course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrSlugTaken
		}
		return err
	}
	return nil
}

// Delete implements domain.CourseRepository. The course's chapters,
// videos, cart items and enrollments go with it; order items stay,
// they are historical price snapshots. A cart emptied by the delete is
// removed so no empty cart row survives. Callers run this inside a
// transaction.
func (r *CourseRepositoryImpl) Delete(ctx context.Context, id uint) error {
	db := database.FromContext(ctx, r.db)

	chapterIDs := db.Model(&domain.Chapter{}).Select("id").Where("course_id = ?", id)
	if err := db.Where("chapter_id IN (?)", chapterIDs).Delete(&domain.Video{}).Error; err != nil {
		return err
	}
	if err := db.Where("course_id = ?", id).Delete(&domain.Chapter{}).Error; err != nil {
		return err
	}

	var cartIDs []uint
	if err := db.Model(&domain.CartItem{}).Distinct().Where("course_id = ?", id).Pluck("cart_id", &cartIDs).Error; err != nil {
		return err
	}
	if err := db.Where("course_id = ?", id).Delete(&domain.CartItem{}).Error; err != nil {
		return err
	}
	if len(cartIDs) > 0 {
		err := db.Where("id IN ?", cartIDs).
			Where("NOT EXISTS (SELECT 1 FROM cart_items WHERE cart_items.cart_id = carts.id)").
			Delete(&domain.Cart{}).Error
		if err != nil {
			return err
		}
	}

	if err := db.Where("course_id = ?", id).Delete(&domain.Enrollment{}).Error; err != nil {
		return err
	}
	return db.Delete(&domain.Course{}, id).Error
}

// FindByID implements domain.CourseRepository
func (r *CourseRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Course, error) {
	var course domain.Course
	err := database.FromContext(ctx, r.db).First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

// FindBySlug implements domain.CourseRepository
func (r *CourseRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*domain.Course, error) {
	var course domain.Course
	err := database.FromContext(ctx, r.db).Where("slug = ?", slug).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

// List implements domain.CourseRepository
func (r *CourseRepositoryImpl) List(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course
	err := database.FromContext(ctx, r.db).Order("created_at desc").Find(&courses).Error
	return courses, err
}

// CreateChapter implements domain.CourseRepository
func (r *CourseRepositoryImpl) CreateChapter(ctx context.Context, chapter *domain.Chapter) error {
	if err := database.FromContext(ctx, r.db).Create(chapter).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrChapterNumberTaken
		}
		return err
	}
	return nil
}

// UpdateChapter implements domain.CourseRepository
func (r *CourseRepositoryImpl) UpdateChapter(ctx context.Context, chapter *domain.Chapter) error {
	if err := database.FromContext(ctx, r.db).Save(chapter).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrChapterNumberTaken
		}
		return err
	}
	return nil
}

// DeleteChapter implements domain.CourseRepository
func (r *CourseRepositoryImpl) DeleteChapter(ctx context.Context, id uint) error {
	db := database.FromContext(ctx, r.db)
	if err := db.Where("chapter_id = ?", id).Delete(&domain.Video{}).Error; err != nil {
		return err
	}
	return db.Delete(&domain.Chapter{}, id).Error
}

// FindChapterByID implements domain.CourseRepository
func (r *CourseRepositoryImpl) FindChapterByID(ctx context.Context, id uint) (*domain.Chapter, error) {
	var chapter domain.Chapter
	err := database.FromContext(ctx, r.db).First(&chapter, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrChapterNotFound
		}
		return nil, err
	}
	return &chapter, nil
}

// ListChapters implements domain.CourseRepository
func (r *CourseRepositoryImpl) ListChapters(ctx context.Context, courseID uint) ([]domain.Chapter, error) {
	var chapters []domain.Chapter
	err := database.FromContext(ctx, r.db).
		Where("course_id = ?", courseID).
		Order("chapter_number asc").
		Find(&chapters).Error
	return chapters, err
}

// CreateVideo implements domain.CourseRepository
func (r *CourseRepositoryImpl) CreateVideo(ctx context.Context, video *domain.Video) error {
	return database.FromContext(ctx, r.db).Create(video).Error
}

// UpdateVideo implements domain.CourseRepository
func (r *CourseRepositoryImpl) UpdateVideo(ctx context.Context, video *domain.Video) error {
	return database.FromContext(ctx, r.db).Save(video).Error
}

// DeleteVideo implements domain.CourseRepository
func (r *CourseRepositoryImpl) DeleteVideo(ctx context.Context, id uint) error {
	return database.FromContext(ctx, r.db).Delete(&domain.Video{}, id).Error
}

// FindVideoByID implements domain.CourseRepository
func (r *CourseRepositoryImpl) FindVideoByID(ctx context.Context, id uint) (*domain.Video, error) {
	var video domain.Video
	err := database.FromContext(ctx, r.db).First(&video, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVideoNotFound
		}
		return nil, err
	}
	return &video, nil
}

// ListVideos implements domain.CourseRepository
func (r *CourseRepositoryImpl) ListVideos(ctx context.Context, chapterID uint) ([]domain.Video, error) {
	var videos []domain.Video
	err := database.FromContext(ctx, r.db).
		Where("chapter_id = ?", chapterID).
		Order("id asc").
		Find(&videos).Error
	return videos, err
}

// SumVideoDurations implements domain.CourseRepository. It always
// reads the full current child set, so concurrent recomputations
// converge on the same value.
func (r *CourseRepositoryImpl) SumVideoDurations(ctx context.Context, chapterID uint) (float64, error) {
	var total float64
	err := database.FromContext(ctx, r.db).
		Model(&domain.Video{}).
		Where("chapter_id = ?", chapterID).
		Select("COALESCE(SUM(duration_minutes), 0)").
		Scan(&total).Error
	return total, err
}

// SumChapterDurations implements domain.CourseRepository
func (r *CourseRepositoryImpl) SumChapterDurations(ctx context.Context, courseID uint) (float64, error) {
	var total float64
	err := database.FromContext(ctx, r.db).
		Model(&domain.Chapter{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(SUM(duration_minutes), 0)").
		Scan(&total).Error
	return total, err
}

// UpdateChapterDuration implements domain.CourseRepository
func (r *CourseRepositoryImpl) UpdateChapterDuration(ctx context.Context, chapterID uint, minutes float64) error {
	return database.FromContext(ctx, r.db).
		Model(&domain.Chapter{}).
		Where("id = ?", chapterID).
		Update("duration_minutes", minutes).Error
}

// UpdateCourseDuration implements domain.CourseRepository
func (r *CourseRepositoryImpl) UpdateCourseDuration(ctx context.Context, courseID uint, minutes float64) error {
	return database.FromContext(ctx, r.db).
		Model(&domain.Course{}).
		Where("id = ?", courseID).
		Update("duration_minutes", minutes).Error
}

var _ domain.CourseRepository = (*CourseRepositoryImpl)(nil)
