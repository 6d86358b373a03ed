package services

import (
	"context"
	"log"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
)

// CatalogServiceImpl implements domain.CatalogService. It owns the
// derived-state contract: pricing is recomputed on every course write
// and the duration cascade runs synchronously, in the same unit of
// work, on every video mutation.
type CatalogServiceImpl struct {
	courseRepo domain.CourseRepository
	probeSvc   domain.MediaProbeService
	tx         domain.Transactor
}

// NewCatalogService creates a new catalog service
func NewCatalogService(courseRepo domain.CourseRepository, probeSvc domain.MediaProbeService, tx domain.Transactor) domain.CatalogService {
	return &CatalogServiceImpl{
		courseRepo: courseRepo,
		probeSvc:   probeSvc,
		tx:         tx,
	}
}

// CreateCourse implements domain.CatalogService
func (s *CatalogServiceImpl) CreateCourse(ctx context.Context, teacherID uint, input domain.CourseInput) (*domain.Course, error) {
	course := &domain.Course{
		TeacherID:   teacherID,
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
		Price:       input.Price,
		Discount:    input.Discount,
	}
	course.RecomputePricing()

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// UpdateCourse implements domain.CatalogService
func (s *CatalogServiceImpl) UpdateCourse(ctx context.Context, teacherID, courseID uint, input domain.CourseInput) (*domain.Course, error) {
	course, err := s.ownedCourse(ctx, teacherID, courseID)
	if err != nil {
		return nil, err
	}

	course.Title = input.Title
	course.Slug = input.Slug
	course.Description = input.Description
	course.Price = input.Price
	course.Discount = input.Discount
	course.RecomputePricing()

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse implements domain.CatalogService. The cascade over
// chapters, videos, cart items and enrollments runs in one unit of
// work.
func (s *CatalogServiceImpl) DeleteCourse(ctx context.Context, teacherID, courseID uint) error {
	if _, err := s.ownedCourse(ctx, teacherID, courseID); err != nil {
		return err
	}
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.courseRepo.Delete(ctx, courseID)
	})
}

// GetCourse implements domain.CatalogService
func (s *CatalogServiceImpl) GetCourse(ctx context.Context, slug string) (*domain.Course, error) {
	return s.courseRepo.FindBySlug(ctx, slug)
}

// ListCourses implements domain.CatalogService
func (s *CatalogServiceImpl) ListCourses(ctx context.Context) ([]domain.Course, error) {
	return s.courseRepo.List(ctx)
}

// ListChapters implements domain.CatalogService
func (s *CatalogServiceImpl) ListChapters(ctx context.Context, courseID uint) ([]domain.Chapter, error) {
	return s.courseRepo.ListChapters(ctx, courseID)
}

// CreateChapter implements domain.CatalogService
func (s *CatalogServiceImpl) CreateChapter(ctx context.Context, teacherID, courseID uint, title string, number uint) (*domain.Chapter, error) {
	if _, err := s.ownedCourse(ctx, teacherID, courseID); err != nil {
		return nil, err
	}

	chapter := &domain.Chapter{
		CourseID:      courseID,
		ChapterNumber: number,
		Title:         title,
	}
	if err := s.courseRepo.CreateChapter(ctx, chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

// UpdateChapter implements domain.CatalogService. Renumbering into an
// occupied slot surfaces as ErrChapterNumberTaken.
func (s *CatalogServiceImpl) UpdateChapter(ctx context.Context, teacherID, chapterID uint, title string, number uint) (*domain.Chapter, error) {
	chapter, err := s.courseRepo.FindChapterByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(ctx, teacherID, chapter.CourseID); err != nil {
		return nil, err
	}

	chapter.Title = title
	chapter.ChapterNumber = number
	if err := s.courseRepo.UpdateChapter(ctx, chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

// DeleteChapter implements domain.CatalogService. Removing a chapter
// drops its videos, so the course duration is resynced in the same
// unit of work.
func (s *CatalogServiceImpl) DeleteChapter(ctx context.Context, teacherID, chapterID uint) error {
	chapter, err := s.courseRepo.FindChapterByID(ctx, chapterID)
	if err != nil {
		return err
	}
	if _, err := s.ownedCourse(ctx, teacherID, chapter.CourseID); err != nil {
		return err
	}

	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.courseRepo.DeleteChapter(ctx, chapterID); err != nil {
			return err
		}
		total, err := s.courseRepo.SumChapterDurations(ctx, chapter.CourseID)
		if err != nil {
			return err
		}
		return s.courseRepo.UpdateCourseDuration(ctx, chapter.CourseID, domain.RoundDuration(total))
	})
}

// AddVideo implements domain.CatalogService
func (s *CatalogServiceImpl) AddVideo(ctx context.Context, teacherID, chapterID uint, input domain.VideoInput) (*domain.Video, error) {
	chapter, err := s.courseRepo.FindChapterByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(ctx, teacherID, chapter.CourseID); err != nil {
		return nil, err
	}

	video := &domain.Video{
		ChapterID:       chapterID,
		Title:           input.Title,
		FileURL:         input.FileURL,
		IsFree:          input.IsFree,
		DurationMinutes: s.probe(ctx, input.FileURL),
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.courseRepo.CreateVideo(ctx, video); err != nil {
			return err
		}
		return s.syncDurations(ctx, chapter)
	})
	if err != nil {
		return nil, err
	}
	return video, nil
}

// UpdateVideo implements domain.CatalogService
func (s *CatalogServiceImpl) UpdateVideo(ctx context.Context, teacherID, videoID uint, input domain.VideoInput) (*domain.Video, error) {
	video, err := s.courseRepo.FindVideoByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	chapter, err := s.courseRepo.FindChapterByID(ctx, video.ChapterID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(ctx, teacherID, chapter.CourseID); err != nil {
		return nil, err
	}

	video.Title = input.Title
	video.IsFree = input.IsFree
	if input.FileURL != video.FileURL {
		video.FileURL = input.FileURL
		video.DurationMinutes = s.probe(ctx, input.FileURL)
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.courseRepo.UpdateVideo(ctx, video); err != nil {
			return err
		}
		return s.syncDurations(ctx, chapter)
	})
	if err != nil {
		return nil, err
	}
	return video, nil
}

// DeleteVideo implements domain.CatalogService
func (s *CatalogServiceImpl) DeleteVideo(ctx context.Context, teacherID, videoID uint) error {
	video, err := s.courseRepo.FindVideoByID(ctx, videoID)
	if err != nil {
		return err
	}
	chapter, err := s.courseRepo.FindChapterByID(ctx, video.ChapterID)
	if err != nil {
		return err
	}
	if _, err := s.ownedCourse(ctx, teacherID, chapter.CourseID); err != nil {
		return err
	}

	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.courseRepo.DeleteVideo(ctx, videoID); err != nil {
			return err
		}
		return s.syncDurations(ctx, chapter)
	})
}

// syncDurations recomputes the chapter aggregate from the full current
// video set, then the course aggregate from the full chapter set.
// Overwriting from ground truth keeps repeated or interleaved
// recomputations convergent.
func (s *CatalogServiceImpl) syncDurations(ctx context.Context, chapter *domain.Chapter) error {
	chapterTotal, err := s.courseRepo.SumVideoDurations(ctx, chapter.ID)
	if err != nil {
		return err
	}
	if err := s.courseRepo.UpdateChapterDuration(ctx, chapter.ID, domain.RoundDuration(chapterTotal)); err != nil {
		return err
	}

	courseTotal, err := s.courseRepo.SumChapterDurations(ctx, chapter.CourseID)
	if err != nil {
		return err
	}
	return s.courseRepo.UpdateCourseDuration(ctx, chapter.CourseID, domain.RoundDuration(courseTotal))
}

// probe asks the media probe for the video duration. A probe failure
// is logged and yields duration 0; video creation never blocks on the
// probe.
func (s *CatalogServiceImpl) probe(ctx context.Context, fileURL string) float64 {
	minutes, err := s.probeSvc.ProbeDuration(ctx, fileURL)
	if err != nil {
		log.Printf("MEDIA_PROBE_FAILED: file=%s error=%v", fileURL, err)
		return 0
	}
	return minutes
}

func (s *CatalogServiceImpl) ownedCourse(ctx context.Context, teacherID, courseID uint) (*domain.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, domain.ErrNotCourseOwner
	}
	return course, nil
}

var _ domain.CatalogService = (*CatalogServiceImpl)(nil)
