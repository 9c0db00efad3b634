package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfarias/gestor-academico/internal/pkg/apperrors"
)

func newRecordFixture() *fakeEnrollmentStore {
	store := newFakeStore()
	store.addCourse("MATH1")
	store.addCourse("PHYS1")
	store.addCourse("CHEM1")
	store.addSection("MATH1-A", "MATH1", "seg-8-10", 40)
	store.addSection("PHYS1-A", "PHYS1", "ter-8-10", 40)
	store.addSection("CHEM1-A", "CHEM1", "qua-8-10", 40)
	store.addStudent("S1")
	return store
}

func TestTranscriptOrderAndContent(t *testing.T) {
	store := newRecordFixture()
	store.addEnrollment("S1", "MATH1-A", gradePtr(7.0))
	store.addEnrollment("S1", "PHYS1-A", gradePtr(5.0))
	store.addEnrollment("S1", "CHEM1-A", nil)

	service := NewRecordService(store)

	entries, err := service.Transcript(context.Background(), "S1")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Entries come back in enrollment order.
	assert.Equal(t, "MATH1", entries[0].CourseCode)
	assert.Equal(t, "PHYS1", entries[1].CourseCode)
	assert.Equal(t, "CHEM1", entries[2].CourseCode)
	assert.Equal(t, 7.0, *entries[0].Grade)
	assert.Nil(t, entries[2].Grade)
}

func TestTranscriptStudentNotFound(t *testing.T) {
	service := NewRecordService(newRecordFixture())

	_, err := service.Transcript(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestTranscriptEmptyForNewStudent(t *testing.T) {
	service := NewRecordService(newRecordFixture())

	entries, err := service.Transcript(context.Background(), "S1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAverageGradeSkipsUngraded(t *testing.T) {
	store := newRecordFixture()
	store.addEnrollment("S1", "MATH1-A", gradePtr(7.0))
	store.addEnrollment("S1", "PHYS1-A", gradePtr(5.0))
	store.addEnrollment("S1", "CHEM1-A", nil)

	service := NewRecordService(store)

	average, err := service.AverageGrade(context.Background(), "S1")
	require.NoError(t, err)
	require.NotNil(t, average)
	// The ungraded enrollment counts toward neither sum nor divisor.
	assert.InDelta(t, 6.0, *average, 1e-9)
}

func TestAverageGradeUndefinedWithoutGrades(t *testing.T) {
	store := newRecordFixture()
	store.addEnrollment("S1", "MATH1-A", nil)

	service := NewRecordService(store)

	average, err := service.AverageGrade(context.Background(), "S1")
	require.NoError(t, err)
	assert.Nil(t, average)
}

func TestAverageGradeStudentNotFound(t *testing.T) {
	service := NewRecordService(newRecordFixture())

	_, err := service.AverageGrade(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
