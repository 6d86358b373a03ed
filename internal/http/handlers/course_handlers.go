package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/http/middleware"
)

// CourseHandlers handles catalog HTTP requests
type CourseHandlers struct {
	catalogSvc domain.CatalogService
}

// NewCourseHandlers creates new course handlers
func NewCourseHandlers(catalogSvc domain.CatalogService) *CourseHandlers {
	return &CourseHandlers{catalogSvc: catalogSvc}
}

// CourseRequest represents course create/update request
type CourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"min=0"`
	Discount    int64  `json:"discount" binding:"min=0"`
}

// ChapterRequest represents chapter creation request
type ChapterRequest struct {
	Title         string `json:"title" binding:"required"`
	ChapterNumber uint   `json:"chapter_number" binding:"required"`
}

// VideoRequest represents video create/update request
type VideoRequest struct {
	Title   string `json:"title" binding:"required"`
	FileURL string `json:"file_url" binding:"required"`
	IsFree  bool   `json:"is_free"`
}

func (r CourseRequest) toInput() domain.CourseInput {
	return domain.CourseInput{
		Title:       r.Title,
		Slug:        r.Slug,
		Description: r.Description,
		Price:       r.Price,
		Discount:    r.Discount,
	}
}

func (r VideoRequest) toInput() domain.VideoInput {
	return domain.VideoInput{
		Title:   r.Title,
		FileURL: r.FileURL,
		IsFree:  r.IsFree,
	}
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func (h *CourseHandlers) respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
	case errors.Is(err, domain.ErrChapterNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Chapter not found"})
	case errors.Is(err, domain.ErrVideoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
	case errors.Is(err, domain.ErrNotCourseOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the course owner"})
	case errors.Is(err, domain.ErrChapterNumberTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Chapter number already used in this course"})
	case errors.Is(err, domain.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Course slug already in use"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Catalog operation failed"})
	}
}

// ListCourses handles the public course listing
func (h *CourseHandlers) ListCourses(c *gin.Context) {
	courses, err := h.catalogSvc.ListCourses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list courses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": courses})
}

// GetCourse handles fetching one course by slug
func (h *CourseHandlers) GetCourse(c *gin.Context) {
	course, err := h.catalogSvc.GetCourse(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": course})
}

// ListChapters handles listing a course's chapters
func (h *CourseHandlers) ListChapters(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	chapters, err := h.catalogSvc.ListChapters(c.Request.Context(), courseID)
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": chapters})
}

// CreateCourse handles course creation (teacher only)
func (h *CourseHandlers) CreateCourse(c *gin.Context) {
	teacherID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course, err := h.catalogSvc.CreateCourse(c.Request.Context(), teacherID, req.toInput())
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": course})
}

// UpdateCourse handles course updates (owner only)
func (h *CourseHandlers) UpdateCourse(c *gin.Context) {
	teacherID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course, err := h.catalogSvc.UpdateCourse(c.Request.Context(), teacherID, courseID, req.toInput())
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": course})
}

// DeleteCourse handles course deletion (owner only)
func (h *CourseHandlers) DeleteCourse(c *gin.Context) {
	teacherID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogSvc.DeleteCourse(c.Request.Context(), teacherID, courseID); err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Course deleted"}})
}

// CreateChapter handles chapter creation (owner only)
func (h *CourseHandlers) CreateChapter(c *gin.Context) {
	teacherID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chapter, err := h.catalogSvc.CreateChapter(c.Request.Context(), teacherID, courseID, req.Title, req.ChapterNumber)
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": chapter})
}

// UpdateChapter handles chapter rename and renumbering (owner only)
func (h *CourseHandlers) UpdateChapter(c *gin.Context) {
	teacherID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	chapterID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chapter, err := h.catalogSvc.UpdateChapter(c.Request.Context(), teacherID, chapterID, req.Title, req.ChapterNumber)
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": chapter})
}

// DeleteChapter handles chapter deletion (owner only)
func (h *CourseHandlers) DeleteChapter(c *gin.Context) {
	teacherID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	chapterID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogSvc.DeleteChapter(c.Request.Context(), teacherID, chapterID); err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Chapter deleted"}})
}

// AddVideo handles video creation under a chapter (owner only)
func (h *CourseHandlers) AddVideo(c *gin.Context) {
	teacherID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	chapterID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, err := h.catalogSvc.AddVideo(c.Request.Context(), teacherID, chapterID, req.toInput())
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": video})
}

// UpdateVideo handles video updates (owner only)
func (h *CourseHandlers) UpdateVideo(c *gin.Context) {
	teacherID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	videoID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, err := h.catalogSvc.UpdateVideo(c.Request.Context(), teacherID, videoID, req.toInput())
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": video})
}

// DeleteVideo handles video deletion (owner only)
func (h *CourseHandlers) DeleteVideo(c *gin.Context) {
	teacherID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	videoID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogSvc.DeleteVideo(c.Request.Context(), teacherID, videoID); err != nil {
		h.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Video deleted"}})
}
