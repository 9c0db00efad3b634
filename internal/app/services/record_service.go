package services

import (
	"context"

	"github.com/lfarias/gestor-academico/internal/app/models"
	"github.com/lfarias/gestor-academico/internal/pkg/apperrors"
)

// RecordService computes a student's academic record: the transcript and
// the cumulative average ("CR").
type RecordService struct {
	store EnrollmentStore
}

// NewRecordService creates a new record service instance
func NewRecordService(store EnrollmentStore) *RecordService {
	return &RecordService{
		store: store,
	}
}

// Transcript returns one entry per enrollment of the student, in stored
// enrollment order. Ungraded enrollments appear with grade unset.
func (s *RecordService) Transcript(ctx context.Context, studentID string) ([]models.TranscriptEntry, error) {
	student, err := s.store.StudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	return s.store.ListByStudent(ctx, studentID)
}

// AverageGrade returns the arithmetic mean over the student's graded
// enrollments. Ungraded enrollments count toward neither numerator nor
// denominator. With no graded enrollment at all the average is undefined
// and nil is returned.
func (s *RecordService) AverageGrade(ctx context.Context, studentID string) (*float64, error) {
	entries, err := s.Transcript(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var sum float64
	var count int
	for _, entry := range entries {
		if entry.Grade != nil {
			sum += *entry.Grade
			count++
		}
	}

	if count == 0 {
		return nil, nil
	}

	average := sum / float64(count)
	return &average, nil
}
