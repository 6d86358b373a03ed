package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
)

// MockCourseRepository implements domain.CourseRepository for testing.
// The default behavior keeps courses, chapters and videos in memory so
// the duration cascade can be exercised against real child sets.
type MockCourseRepository struct {
	CreateFunc     func(ctx context.Context, course *domain.Course) error
	UpdateFunc     func(ctx context.Context, course *domain.Course) error
	DeleteFunc     func(ctx context.Context, id uint) error
	FindByIDFunc   func(ctx context.Context, id uint) (*domain.Course, error)
	FindBySlugFunc func(ctx context.Context, slug string) (*domain.Course, error)
	ListFunc       func(ctx context.Context) ([]domain.Course, error)

	CreateChapterFunc   func(ctx context.Context, chapter *domain.Chapter) error
	UpdateChapterFunc   func(ctx context.Context, chapter *domain.Chapter) error
	DeleteChapterFunc   func(ctx context.Context, id uint) error
	FindChapterByIDFunc func(ctx context.Context, id uint) (*domain.Chapter, error)
	ListChaptersFunc    func(ctx context.Context, courseID uint) ([]domain.Chapter, error)

	CreateVideoFunc   func(ctx context.Context, video *domain.Video) error
	UpdateVideoFunc   func(ctx context.Context, video *domain.Video) error
	DeleteVideoFunc   func(ctx context.Context, id uint) error
	FindVideoByIDFunc func(ctx context.Context, id uint) (*domain.Video, error)
	ListVideosFunc    func(ctx context.Context, chapterID uint) ([]domain.Video, error)

	SumVideoDurationsFunc     func(ctx context.Context, chapterID uint) (float64, error)
	SumChapterDurationsFunc   func(ctx context.Context, courseID uint) (float64, error)
	UpdateChapterDurationFunc func(ctx context.Context, chapterID uint, minutes float64) error
	UpdateCourseDurationFunc  func(ctx context.Context, courseID uint, minutes float64) error

	mu       sync.Mutex
	nextID   uint
	courses  map[uint]*domain.Course
	chapters map[uint]*domain.Chapter
	videos   map[uint]*domain.Video
}

// NewMockCourseRepository creates a new MockCourseRepository with default behaviors
func NewMockCourseRepository() *MockCourseRepository {
	return &MockCourseRepository{
		courses:  make(map[uint]*domain.Course),
		chapters: make(map[uint]*domain.Chapter),
		videos:   make(map[uint]*domain.Video),
	}
}

func (m *MockCourseRepository) allocateID() uint {
	m.nextID++
	return m.nextID
}

func (m *MockCourseRepository) Create(ctx context.Context, course *domain.Course) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, course)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkSlug(course); err != nil {
		return err
	}
	if course.ID == 0 {
		course.ID = m.allocateID()
	}
	copied := *course
	m.courses[course.ID] = &copied
	return nil
}

// checkSlug enforces slug uniqueness. Fixtures that omit the slug are
// exempt. Callers hold mu.
func (m *MockCourseRepository) checkSlug(course *domain.Course) error {
	if course.Slug == "" {
		return nil
	}
	for _, existing := range m.courses {
		if existing.ID != course.ID && existing.Slug == course.Slug {
			return domain.ErrSlugTaken
		}
	}
	return nil
}

func (m *MockCourseRepository) Update(ctx context.Context, course *domain.Course) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, course)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[course.ID]; !ok {
		return domain.ErrCourseNotFound
	}
	if err := m.checkSlug(course); err != nil {
		return err
	}
	copied := *course
	m.courses[course.ID] = &copied
	return nil
}

func (m *MockCourseRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(m.courses, id)
	for cid, ch := range m.chapters {
		if ch.CourseID == id {
			for vid, v := range m.videos {
				if v.ChapterID == cid {
					delete(m.videos, vid)
				}
			}
			delete(m.chapters, cid)
		}
	}
	return nil
}

func (m *MockCourseRepository) FindByID(ctx context.Context, id uint) (*domain.Course, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	course, ok := m.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	copied := *course
	return &copied, nil
}

func (m *MockCourseRepository) FindBySlug(ctx context.Context, slug string) (*domain.Course, error) {
	if m.FindBySlugFunc != nil {
		return m.FindBySlugFunc(ctx, slug)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, course := range m.courses {
		if course.Slug == slug {
			copied := *course
			return &copied, nil
		}
	}
	return nil, domain.ErrCourseNotFound
}

func (m *MockCourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Course, 0, len(m.courses))
	for _, course := range m.courses {
		out = append(out, *course)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockCourseRepository) CreateChapter(ctx context.Context, chapter *domain.Chapter) error {
	if m.CreateChapterFunc != nil {
		return m.CreateChapterFunc(ctx, chapter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.chapters {
		if existing.CourseID == chapter.CourseID && existing.ChapterNumber == chapter.ChapterNumber {
			return domain.ErrChapterNumberTaken
		}
	}
	if chapter.ID == 0 {
		chapter.ID = m.allocateID()
	}
	copied := *chapter
	m.chapters[chapter.ID] = &copied
	return nil
}

func (m *MockCourseRepository) UpdateChapter(ctx context.Context, chapter *domain.Chapter) error {
	if m.UpdateChapterFunc != nil {
		return m.UpdateChapterFunc(ctx, chapter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chapters[chapter.ID]; !ok {
		return domain.ErrChapterNotFound
	}
	for _, existing := range m.chapters {
		if existing.ID != chapter.ID && existing.CourseID == chapter.CourseID && existing.ChapterNumber == chapter.ChapterNumber {
			return domain.ErrChapterNumberTaken
		}
	}
	copied := *chapter
	m.chapters[chapter.ID] = &copied
	return nil
}

func (m *MockCourseRepository) DeleteChapter(ctx context.Context, id uint) error {
	if m.DeleteChapterFunc != nil {
		return m.DeleteChapterFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chapters[id]; !ok {
		return domain.ErrChapterNotFound
	}
	delete(m.chapters, id)
	for vid, v := range m.videos {
		if v.ChapterID == id {
			delete(m.videos, vid)
		}
	}
	return nil
}

func (m *MockCourseRepository) FindChapterByID(ctx context.Context, id uint) (*domain.Chapter, error) {
	if m.FindChapterByIDFunc != nil {
		return m.FindChapterByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	chapter, ok := m.chapters[id]
	if !ok {
		return nil, domain.ErrChapterNotFound
	}
	copied := *chapter
	return &copied, nil
}

func (m *MockCourseRepository) ListChapters(ctx context.Context, courseID uint) ([]domain.Chapter, error) {
	if m.ListChaptersFunc != nil {
		return m.ListChaptersFunc(ctx, courseID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Chapter
	for _, chapter := range m.chapters {
		if chapter.CourseID == courseID {
			out = append(out, *chapter)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChapterNumber < out[j].ChapterNumber })
	return out, nil
}

func (m *MockCourseRepository) CreateVideo(ctx context.Context, video *domain.Video) error {
	if m.CreateVideoFunc != nil {
		return m.CreateVideoFunc(ctx, video)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if video.ID == 0 {
		video.ID = m.allocateID()
	}
	copied := *video
	m.videos[video.ID] = &copied
	return nil
}

func (m *MockCourseRepository) UpdateVideo(ctx context.Context, video *domain.Video) error {
	if m.UpdateVideoFunc != nil {
		return m.UpdateVideoFunc(ctx, video)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.videos[video.ID]; !ok {
		return domain.ErrVideoNotFound
	}
	copied := *video
	m.videos[video.ID] = &copied
	return nil
}

func (m *MockCourseRepository) DeleteVideo(ctx context.Context, id uint) error {
	if m.DeleteVideoFunc != nil {
		return m.DeleteVideoFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.videos[id]; !ok {
		return domain.ErrVideoNotFound
	}
	delete(m.videos, id)
	return nil
}

func (m *MockCourseRepository) FindVideoByID(ctx context.Context, id uint) (*domain.Video, error) {
	if m.FindVideoByIDFunc != nil {
		return m.FindVideoByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	video, ok := m.videos[id]
	if !ok {
		return nil, domain.ErrVideoNotFound
	}
	copied := *video
	return &copied, nil
}

func (m *MockCourseRepository) ListVideos(ctx context.Context, chapterID uint) ([]domain.Video, error) {
	if m.ListVideosFunc != nil {
		return m.ListVideosFunc(ctx, chapterID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Video
	for _, video := range m.videos {
		if video.ChapterID == chapterID {
			out = append(out, *video)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockCourseRepository) SumVideoDurations(ctx context.Context, chapterID uint) (float64, error) {
	if m.SumVideoDurationsFunc != nil {
		return m.SumVideoDurationsFunc(ctx, chapterID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, video := range m.videos {
		if video.ChapterID == chapterID {
			total += video.DurationMinutes
		}
	}
	return total, nil
}

func (m *MockCourseRepository) SumChapterDurations(ctx context.Context, courseID uint) (float64, error) {
	if m.SumChapterDurationsFunc != nil {
		return m.SumChapterDurationsFunc(ctx, courseID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, chapter := range m.chapters {
		if chapter.CourseID == courseID {
			total += chapter.DurationMinutes
		}
	}
	return total, nil
}

func (m *MockCourseRepository) UpdateChapterDuration(ctx context.Context, chapterID uint, minutes float64) error {
	if m.UpdateChapterDurationFunc != nil {
		return m.UpdateChapterDurationFunc(ctx, chapterID, minutes)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	chapter, ok := m.chapters[chapterID]
	if !ok {
		return domain.ErrChapterNotFound
	}
	chapter.DurationMinutes = minutes
	return nil
}

func (m *MockCourseRepository) UpdateCourseDuration(ctx context.Context, courseID uint, minutes float64) error {
	if m.UpdateCourseDurationFunc != nil {
		return m.UpdateCourseDurationFunc(ctx, courseID, minutes)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	course, ok := m.courses[courseID]
	if !ok {
		return domain.ErrCourseNotFound
	}
	course.DurationMinutes = minutes
	return nil
}

var _ domain.CourseRepository = (*MockCourseRepository)(nil)
