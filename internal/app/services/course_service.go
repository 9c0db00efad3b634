package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lfarias/gestor-academico/internal/app/models"
	"github.com/lfarias/gestor-academico/internal/pkg/apperrors"
)

// CourseStore is the data access surface the course service relies on.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	List(ctx context.Context, offset uint64, limit int) ([]*models.Course, int64, error)
	Update(ctx context.Context, course *models.Course) error
	HasSections(ctx context.Context, code string) (bool, error)
	Delete(ctx context.Context, code string) error
}

// CourseService handles course catalog operations
type CourseService struct {
	store CourseStore
}

// NewCourseService creates a new course service instance
func NewCourseService(store CourseStore) *CourseService {
	return &CourseService{
		store: store,
	}
}

// validateCourse validates course data before database operations
func (s *CourseService) validateCourse(course *models.Course) error {
	if course == nil {
		return fmt.Errorf("%w: course is nil", apperrors.ErrValidationFailed)
	}

	if strings.TrimSpace(course.Code) == "" {
		return fmt.Errorf("%w: code cannot be empty", apperrors.ErrValidationFailed)
	}

	if strings.TrimSpace(course.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	for _, prereq := range course.Prerequisites {
		if strings.TrimSpace(prereq) == "" {
			return fmt.Errorf("%w: prerequisite code cannot be empty", apperrors.ErrValidationFailed)
		}
	}

	return nil
}

// CreateCourse registers a new course
func (s *CourseService) CreateCourse(ctx context.Context, course *models.Course) error {
	if err := s.validateCourse(course); err != nil {
		return err
	}

	return s.store.Create(ctx, course)
}

// GetCourseByCode retrieves a course by its code
func (s *CourseService) GetCourseByCode(ctx context.Context, code string) (*models.Course, error) {
	course, err := s.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	return course, nil
}

// ListCourses retrieves a page of courses
func (s *CourseService) ListCourses(ctx context.Context, offset uint64, limit int) ([]*models.Course, int64, error) {
	return s.store.List(ctx, offset, limit)
}

// UpdateCourse edits a course's name and/or prerequisite list. A nil field
// keeps the stored value, matching partial edit semantics.
func (s *CourseService) UpdateCourse(ctx context.Context, code string, name *string, prerequisites *[]string) (*models.Course, error) {
	course, err := s.GetCourseByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if name != nil {
		course.Name = *name
	}
	if prerequisites != nil {
		course.Prerequisites = *prerequisites
	}

	if err := s.validateCourse(course); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// DeleteCourse removes a course. Deletion is blocked while sections
// reference the course.
func (s *CourseService) DeleteCourse(ctx context.Context, code string) error {
	course, err := s.store.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if course == nil {
		return apperrors.ErrCourseNotFound
	}

	hasSections, err := s.store.HasSections(ctx, code)
	if err != nil {
		return err
	}
	if hasSections {
		return apperrors.ErrCourseHasSections
	}

	return s.store.Delete(ctx, code)
}
