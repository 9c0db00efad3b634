package services

import (
	"context"
	"fmt"

	"github.com/lfarias/gestor-academico/internal/app/models"
	"github.com/lfarias/gestor-academico/internal/pkg/apperrors"
	"github.com/lfarias/gestor-academico/internal/pkg/logger"
	"github.com/lfarias/gestor-academico/internal/pkg/schedule"
)

// EnrollmentTx is the transaction-scoped data access surface of the
// enrollment pipeline. Every read the six checks perform, and the two
// writes of the commit step, go through it.
type EnrollmentTx interface {
	StudentByID(ctx context.Context, id string) (*models.Student, error)
	SectionByCode(ctx context.Context, code string) (*models.Section, error)
	CourseByCode(ctx context.Context, code string) (*models.Course, error)
	FindEnrollment(ctx context.Context, studentID, sectionCode string) (*models.Enrollment, error)
	ApprovedCourseCodes(ctx context.Context, studentID string) (map[string]struct{}, error)
	EnrollmentSchedules(ctx context.Context, studentID string) ([]string, error)
	CreateEnrollment(ctx context.Context, studentID, sectionCode string) (*models.Enrollment, error)
	IncrementOccupancy(ctx context.Context, sectionCode string) error
}

// EnrollmentStore extends EnrollmentTx with the transaction boundary and
// the point-writes that live outside the pipeline. InSectionTx must
// serialize invocations targeting the same section; everything fn does is
// committed atomically or rolled back as a whole.
type EnrollmentStore interface {
	EnrollmentTx
	InSectionTx(ctx context.Context, sectionCode string, fn func(ctx context.Context, tx EnrollmentTx) error) error
	SetGrade(ctx context.Context, studentID, sectionCode string, grade float64) (int64, error)
	SetAttendance(ctx context.Context, studentID, sectionCode string, attendance float64) (int64, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.TranscriptEntry, error)
}

// EnrollmentService runs the enrollment validation pipeline and records
// grades and attendance.
type EnrollmentService struct {
	store EnrollmentStore
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(store EnrollmentStore) *EnrollmentService {
	return &EnrollmentService{
		store: store,
	}
}

// Enroll runs the six-check validation pipeline and, if every check
// passes, inserts the enrollment and increments the section's occupancy in
// the same transaction. The checks short-circuit in a fixed order, so a
// request failing several of them always reports the same error:
//
//  1. student, section and the section's course must exist
//  2. no duplicate enrollment for the (student, section) pair
//  3. student not already approved in the section's course
//  4. course prerequisites satisfied
//  5. section has a free seat
//  6. no schedule conflict with the student's current enrollments
//
// The whole sequence runs under a per-section lock, so two concurrent
// attempts at the last free seat cannot both pass check 5.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, sectionCode string) (*models.Enrollment, error) {
	var enrollment *models.Enrollment

	err := s.store.InSectionTx(ctx, sectionCode, func(ctx context.Context, tx EnrollmentTx) error {
		// 1. Entity existence
		student, err := tx.StudentByID(ctx, studentID)
		if err != nil {
			return err
		}
		if student == nil {
			return apperrors.ErrStudentNotFound
		}

		section, err := tx.SectionByCode(ctx, sectionCode)
		if err != nil {
			return err
		}
		if section == nil {
			return apperrors.ErrSectionNotFound
		}

		// The CRUD deletion guards keep this from happening, but a
		// dangling course reference must not slip through.
		course, err := tx.CourseByCode(ctx, section.CourseCode)
		if err != nil {
			return err
		}
		if course == nil {
			return apperrors.ErrCourseNotFound
		}

		// 2. Duplicate enrollment
		existing, err := tx.FindEnrollment(ctx, studentID, sectionCode)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperrors.ErrAlreadyEnrolled
		}

		// 3. Already approved in this course, any section
		approved, err := tx.ApprovedCourseCodes(ctx, studentID)
		if err != nil {
			return err
		}
		if _, ok := approved[course.Code]; ok {
			return apperrors.ErrAlreadyApproved
		}

		// 4. Prerequisites
		if !prerequisitesSatisfied(course, approved) {
			return apperrors.ErrPrerequisitesNotMet
		}

		// 5. Capacity
		if section.Occupied >= section.Capacity {
			return apperrors.NewSectionFullError(section.Capacity)
		}

		// 6. Schedule conflict, stored order, first hit wins
		schedules, err := tx.EnrollmentSchedules(ctx, studentID)
		if err != nil {
			return err
		}
		for _, existing := range schedules {
			if schedule.Conflict(existing, section.Schedule) {
				return apperrors.NewScheduleConflictError(existing)
			}
		}

		// Commit: both writes or neither
		enrollment, err = tx.CreateEnrollment(ctx, studentID, sectionCode)
		if err != nil {
			return err
		}
		return tx.IncrementOccupancy(ctx, sectionCode)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("studentId", studentID).
		Str("sectionCode", sectionCode).
		Int64("enrollmentId", enrollment.ID).
		Msg("Enrollment committed")

	return enrollment, nil
}

// HasPrerequisites reports whether the student's approved history
// satisfies the course's prerequisite list. Courses without prerequisites
// always pass. This is a pure read.
func (s *EnrollmentService) HasPrerequisites(ctx context.Context, studentID string, course *models.Course) (bool, error) {
	if len(course.Prerequisites) == 0 {
		return true, nil
	}

	approved, err := s.store.ApprovedCourseCodes(ctx, studentID)
	if err != nil {
		return false, err
	}

	return prerequisitesSatisfied(course, approved), nil
}

func prerequisitesSatisfied(course *models.Course, approved map[string]struct{}) bool {
	for _, prereq := range course.Prerequisites {
		if _, ok := approved[prereq]; !ok {
			return false
		}
	}
	return true
}

// RecordGrade records the final grade of an existing enrollment. The write
// is an idempotent overwrite; recording against a missing enrollment
// reports ErrEnrollmentNotFound.
func (s *EnrollmentService) RecordGrade(ctx context.Context, studentID, sectionCode string, grade float64) error {
	if grade < 0 || grade > 10 {
		return fmt.Errorf("%w: grade must be between 0 and 10", apperrors.ErrValidationFailed)
	}

	affected, err := s.store.SetGrade(ctx, studentID, sectionCode, grade)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// RecordAttendance records the attendance percentage of an existing
// enrollment, with the same overwrite semantics as RecordGrade.
func (s *EnrollmentService) RecordAttendance(ctx context.Context, studentID, sectionCode string, attendance float64) error {
	if attendance < 0 || attendance > 100 {
		return fmt.Errorf("%w: attendance must be between 0 and 100", apperrors.ErrValidationFailed)
	}

	affected, err := s.store.SetAttendance(ctx, studentID, sectionCode, attendance)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}
