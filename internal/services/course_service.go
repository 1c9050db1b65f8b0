package services

import (
	"context"
	"sort"

	"github.com/edubridge/lms-backend/internal/models"
	"github.com/edubridge/lms-backend/internal/promotion"
	"github.com/edubridge/lms-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	BrowseCourses(ctx context.Context, category string, page, limit int) ([]*models.Course, error)
	GetCourseByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	GetAllCourses(ctx context.Context, page, limit int) ([]*models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course, createdBy string) (*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) (*models.Course, error)
	DeleteCourse(ctx context.Context, id primitive.ObjectID) error
	GetCourseCount(ctx context.Context) (int64, error)
}

type courseService struct {
	courseRepo repositories.CourseRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo repositories.CourseRepository) CourseService {
	return &courseService{courseRepo: courseRepo}
}

// BrowseCourses retrieves published courses for the catalog
func (s *courseService) BrowseCourses(ctx context.Context, category string, page, limit int) ([]*models.Course, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	courses, err := s.courseRepo.FindPublished(ctx, category, page, limit)
	if err != nil {
		return nil, err
	}
	for _, course := range courses {
		sortModules(course)
	}
	return courses, nil
}

// GetCourseByID retrieves a course by ID
func (s *courseService) GetCourseByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sortModules(course)
	return course, nil
}

// GetAllCourses retrieves all courses, published or not, for the admin panel
func (s *courseService) GetAllCourses(ctx context.Context, page, limit int) ([]*models.Course, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.courseRepo.FindAll(ctx, page, limit)
}

// CreateCourse creates a new course
func (s *courseService) CreateCourse(ctx context.Context, course *models.Course, createdBy string) (*models.Course, error) {
	if course.Title == "" {
		return nil, &promotion.ValidationError{Message: "course title is required"}
	}
	course.CreatedBy = createdBy
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// UpdateCourse updates an existing course
func (s *courseService) UpdateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	if course.Title == "" {
		return nil, &promotion.ValidationError{Message: "course title is required"}
	}
	existing, err := s.courseRepo.FindByID(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	course.CreatedBy = existing.CreatedBy
	course.CreatedAt = existing.CreatedAt
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse deletes a course
func (s *courseService) DeleteCourse(ctx context.Context, id primitive.ObjectID) error {
	return s.courseRepo.Delete(ctx, id)
}

// GetCourseCount counts all courses
func (s *courseService) GetCourseCount(ctx context.Context) (int64, error) {
	return s.courseRepo.Count(ctx)
}

func sortModules(course *models.Course) {
	sort.SliceStable(course.Modules, func(i, j int) bool {
		return course.Modules[i].Position < course.Modules[j].Position
	})
}
