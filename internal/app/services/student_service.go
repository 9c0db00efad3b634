package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lfarias/gestor-academico/internal/app/models"
	"github.com/lfarias/gestor-academico/internal/pkg/apperrors"
)

// StudentStore is the data access surface the student service relies on.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	List(ctx context.Context, offset uint64, limit int) ([]*models.Student, int64, error)
	Update(ctx context.Context, student *models.Student) error
	HasEnrollments(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

// StudentService handles student registry operations
type StudentService struct {
	store StudentStore
}

// NewStudentService creates a new student service instance
func NewStudentService(store StudentStore) *StudentService {
	return &StudentService{
		store: store,
	}
}

func (s *StudentService) validateStudent(student *models.Student) error {
	if student == nil {
		return fmt.Errorf("%w: student is nil", apperrors.ErrValidationFailed)
	}

	if strings.TrimSpace(student.ID) == "" {
		return fmt.Errorf("%w: id cannot be empty", apperrors.ErrValidationFailed)
	}

	if strings.TrimSpace(student.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	return nil
}

// CreateStudent registers a new student
func (s *StudentService) CreateStudent(ctx context.Context, student *models.Student) error {
	if err := s.validateStudent(student); err != nil {
		return err
	}

	return s.store.Create(ctx, student)
}

// GetStudentByID retrieves a student by registration number
func (s *StudentService) GetStudentByID(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	return student, nil
}

// ListStudents retrieves a page of students
func (s *StudentService) ListStudents(ctx context.Context, offset uint64, limit int) ([]*models.Student, int64, error) {
	return s.store.List(ctx, offset, limit)
}

// UpdateStudent renames a student
func (s *StudentService) UpdateStudent(ctx context.Context, id, name string) (*models.Student, error) {
	student, err := s.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	student.Name = name
	if err := s.validateStudent(student); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// DeleteStudent removes a student. Deletion is blocked while enrollments
// reference the student.
func (s *StudentService) DeleteStudent(ctx context.Context, id string) error {
	student, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if student == nil {
		return apperrors.ErrStudentNotFound
	}

	hasEnrollments, err := s.store.HasEnrollments(ctx, id)
	if err != nil {
		return err
	}
	if hasEnrollments {
		return apperrors.ErrStudentHasEnrollments
	}

	return s.store.Delete(ctx, id)
}
