package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lfarias/gestor-academico/internal/app/models"
	"github.com/lfarias/gestor-academico/internal/pkg/apperrors"
)

// SectionStore is the data access surface the section service relies on.
type SectionStore interface {
	Create(ctx context.Context, section *models.Section) error
	GetByCode(ctx context.Context, code string) (*models.Section, error)
	List(ctx context.Context, offset uint64, limit int) ([]*models.Section, int64, error)
	Update(ctx context.Context, section *models.Section) error
	HasEnrollments(ctx context.Context, code string) (bool, error)
	Delete(ctx context.Context, code string) error
	Roster(ctx context.Context, code string) ([]models.RosterEntry, error)
}

// SectionService handles section ("turma") operations
type SectionService struct {
	store       SectionStore
	courseStore CourseStore
}

// NewSectionService creates a new section service instance
func NewSectionService(store SectionStore, courseStore CourseStore) *SectionService {
	return &SectionService{
		store:       store,
		courseStore: courseStore,
	}
}

// validateSection validates section data before database operations.
// The schedule descriptor is stored as given: a descriptor that fails to
// parse is not rejected here, it simply conflicts with everything at
// enrollment time.
func (s *SectionService) validateSection(section *models.Section) error {
	if section == nil {
		return fmt.Errorf("%w: section is nil", apperrors.ErrValidationFailed)
	}

	if strings.TrimSpace(section.Code) == "" {
		return fmt.Errorf("%w: code cannot be empty", apperrors.ErrValidationFailed)
	}

	if strings.TrimSpace(section.CourseCode) == "" {
		return fmt.Errorf("%w: course code cannot be empty", apperrors.ErrValidationFailed)
	}

	if strings.TrimSpace(section.Schedule) == "" {
		return fmt.Errorf("%w: schedule cannot be empty", apperrors.ErrValidationFailed)
	}

	if section.Capacity < 0 {
		return fmt.Errorf("%w: capacity cannot be negative", apperrors.ErrValidationFailed)
	}

	return nil
}

// CreateSection opens a new section of an existing course
func (s *SectionService) CreateSection(ctx context.Context, section *models.Section) error {
	if err := s.validateSection(section); err != nil {
		return err
	}

	course, err := s.courseStore.GetByCode(ctx, section.CourseCode)
	if err != nil {
		return err
	}
	if course == nil {
		return apperrors.ErrCourseNotFound
	}

	return s.store.Create(ctx, section)
}

// GetSectionByCode retrieves a section by its code
func (s *SectionService) GetSectionByCode(ctx context.Context, code string) (*models.Section, error) {
	section, err := s.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if section == nil {
		return nil, apperrors.ErrSectionNotFound
	}

	return section, nil
}

// ListSections retrieves a page of sections
func (s *SectionService) ListSections(ctx context.Context, offset uint64, limit int) ([]*models.Section, int64, error) {
	return s.store.List(ctx, offset, limit)
}

// UpdateSection edits a section's instructor, schedule and/or capacity.
// Lowering the capacity below the current occupancy is allowed; it only
// blocks new enrollments.
func (s *SectionService) UpdateSection(ctx context.Context, code string, instructor, schedule *string, capacity *int) (*models.Section, error) {
	section, err := s.GetSectionByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if instructor != nil {
		section.Instructor = *instructor
	}
	if schedule != nil {
		section.Schedule = *schedule
	}
	if capacity != nil {
		section.Capacity = *capacity
	}

	if err := s.validateSection(section); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, section); err != nil {
		return nil, err
	}

	return section, nil
}

// DeleteSection removes a section. Deletion is blocked while enrollments
// reference the section.
func (s *SectionService) DeleteSection(ctx context.Context, code string) error {
	section, err := s.store.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if section == nil {
		return apperrors.ErrSectionNotFound
	}

	hasEnrollments, err := s.store.HasEnrollments(ctx, code)
	if err != nil {
		return err
	}
	if hasEnrollments {
		return apperrors.ErrSectionHasEnrollments
	}

	return s.store.Delete(ctx, code)
}

// Roster lists the students enrolled in a section
func (s *SectionService) Roster(ctx context.Context, code string) ([]models.RosterEntry, error) {
	section, err := s.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, apperrors.ErrSectionNotFound
	}

	return s.store.Roster(ctx, code)
}
