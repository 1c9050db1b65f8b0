package handlers

import (
	"errors"
	"net/http"

	"github.com/edubridge/lms-backend/internal/models"
	"github.com/edubridge/lms-backend/internal/repositories"
	"github.com/edubridge/lms-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseHandler handles course-related HTTP requests
type CourseHandler struct {
	courseService services.CourseService
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService services.CourseService) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
	}
}

// BrowseCourses handles GET /courses
func (h *CourseHandler) BrowseCourses(c *gin.Context) {
	page, limit := pagination(c)
	courses, err := h.courseService.BrowseCourses(c.Request.Context(), c.Query("category"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get courses: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, courses)
}

// GetCourseByID handles GET /courses/:id
func (h *CourseHandler) GetCourseByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}
	course, err := h.courseService.GetCourseByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get course: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, course)
}

// GetAllCourses handles GET /admin/courses
func (h *CourseHandler) GetAllCourses(c *gin.Context) {
	page, limit := pagination(c)
	courses, err := h.courseService.GetAllCourses(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get courses: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, courses)
}

// CreateCourse handles POST /admin/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var course models.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.courseService.CreateCourse(c.Request.Context(), &course, c.GetString("userEmail"))
	if err != nil {
		if services.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateCourse handles PUT /admin/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}

	var course models.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	course.ID = id

	updated, err := h.courseService.UpdateCourse(c.Request.Context(), &course)
	if err != nil {
		switch {
		case services.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update course: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteCourse handles DELETE /admin/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}
	if err := h.courseService.DeleteCourse(c.Request.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete course: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course deleted"})
}

// GetCourseCount handles GET /admin/courses/count
func (h *CourseHandler) GetCourseCount(c *gin.Context) {
	count, err := h.courseService.GetCourseCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count courses: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
