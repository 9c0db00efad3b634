package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfarias/gestor-academico/internal/app/models"
	"github.com/lfarias/gestor-academico/internal/pkg/apperrors"
)

// fakeStudentStore is an in-memory StudentStore.
type fakeStudentStore struct {
	students       map[string]*models.Student
	withEnrollment map[string]bool
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{
		students:       make(map[string]*models.Student),
		withEnrollment: make(map[string]bool),
	}
}

func (f *fakeStudentStore) Create(_ context.Context, student *models.Student) error {
	if _, ok := f.students[student.ID]; ok {
		return apperrors.ErrStudentAlreadyExists
	}
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id string) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, nil
	}
	copied := *student
	return &copied, nil
}

func (f *fakeStudentStore) List(_ context.Context, _ uint64, _ int) ([]*models.Student, int64, error) {
	var all []*models.Student
	for _, student := range f.students {
		all = append(all, student)
	}
	return all, int64(len(all)), nil
}

func (f *fakeStudentStore) Update(_ context.Context, student *models.Student) error {
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) HasEnrollments(_ context.Context, id string) (bool, error) {
	return f.withEnrollment[id], nil
}

func (f *fakeStudentStore) Delete(_ context.Context, id string) error {
	delete(f.students, id)
	return nil
}

func TestCreateStudent(t *testing.T) {
	store := newFakeStudentStore()
	service := NewStudentService(store)
	ctx := context.Background()

	err := service.CreateStudent(ctx, &models.Student{ID: "20230145", Name: "Ana Souza"})
	require.NoError(t, err)

	err = service.CreateStudent(ctx, &models.Student{ID: "20230145", Name: "Ana again"})
	assert.ErrorIs(t, err, apperrors.ErrStudentAlreadyExists)

	err = service.CreateStudent(ctx, &models.Student{ID: "", Name: "Nameless"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateStudent(t *testing.T) {
	store := newFakeStudentStore()
	service := NewStudentService(store)
	ctx := context.Background()

	require.NoError(t, service.CreateStudent(ctx, &models.Student{ID: "20230145", Name: "Ana Souza"}))

	student, err := service.UpdateStudent(ctx, "20230145", "Ana Souza Lima")
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza Lima", student.Name)

	_, err = service.UpdateStudent(ctx, "20230145", "  ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = service.UpdateStudent(ctx, "ghost", "Nobody")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestDeleteStudentBlockedByEnrollments(t *testing.T) {
	store := newFakeStudentStore()
	service := NewStudentService(store)
	ctx := context.Background()

	require.NoError(t, service.CreateStudent(ctx, &models.Student{ID: "20230145", Name: "Ana Souza"}))
	store.withEnrollment["20230145"] = true

	err := service.DeleteStudent(ctx, "20230145")
	assert.ErrorIs(t, err, apperrors.ErrStudentHasEnrollments)

	store.withEnrollment["20230145"] = false
	require.NoError(t, service.DeleteStudent(ctx, "20230145"))

	err = service.DeleteStudent(ctx, "20230145")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
