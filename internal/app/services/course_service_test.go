package services

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfarias/gestor-academico/internal/app/models"
	"github.com/lfarias/gestor-academico/internal/pkg/apperrors"
)

// fakeCourseStore is an in-memory CourseStore.
type fakeCourseStore struct {
	courses     map[string]*models.Course
	withSection map[string]bool
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{
		courses:     make(map[string]*models.Course),
		withSection: make(map[string]bool),
	}
}

func (f *fakeCourseStore) Create(_ context.Context, course *models.Course) error {
	if _, ok := f.courses[course.Code]; ok {
		return apperrors.ErrCourseAlreadyExists
	}
	copied := *course
	f.courses[course.Code] = &copied
	return nil
}

func (f *fakeCourseStore) GetByCode(_ context.Context, code string) (*models.Course, error) {
	course, ok := f.courses[code]
	if !ok {
		return nil, nil
	}
	copied := *course
	return &copied, nil
}

func (f *fakeCourseStore) List(_ context.Context, offset uint64, limit int) ([]*models.Course, int64, error) {
	codes := make([]string, 0, len(f.courses))
	for code := range f.courses {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var page []*models.Course
	for i, code := range codes {
		if uint64(i) < offset || len(page) >= limit {
			continue
		}
		page = append(page, f.courses[code])
	}
	return page, int64(len(f.courses)), nil
}

func (f *fakeCourseStore) Update(_ context.Context, course *models.Course) error {
	if _, ok := f.courses[course.Code]; !ok {
		return apperrors.ErrCourseNotFound
	}
	copied := *course
	f.courses[course.Code] = &copied
	return nil
}

func (f *fakeCourseStore) HasSections(_ context.Context, code string) (bool, error) {
	return f.withSection[code], nil
}

func (f *fakeCourseStore) Delete(_ context.Context, code string) error {
	delete(f.courses, code)
	return nil
}

func strPtr(s string) *string { return &s }

func TestCreateCourse(t *testing.T) {
	store := newFakeCourseStore()
	service := NewCourseService(store)
	ctx := context.Background()

	err := service.CreateCourse(ctx, &models.Course{Code: "MATH1", Name: "Calculus I"})
	require.NoError(t, err)

	err = service.CreateCourse(ctx, &models.Course{Code: "MATH1", Name: "Calculus I again"})
	assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)
}

func TestCreateCourseValidation(t *testing.T) {
	service := NewCourseService(newFakeCourseStore())
	ctx := context.Background()

	err := service.CreateCourse(ctx, &models.Course{Code: "  ", Name: "x"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	err = service.CreateCourse(ctx, &models.Course{Code: "MATH1", Name: ""})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	err = service.CreateCourse(ctx, &models.Course{Code: "MATH2", Name: "x", Prerequisites: []string{" "}})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestGetCourseByCodeNotFound(t *testing.T) {
	service := NewCourseService(newFakeCourseStore())

	_, err := service.GetCourseByCode(context.Background(), "NOPE")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestUpdateCoursePartial(t *testing.T) {
	store := newFakeCourseStore()
	service := NewCourseService(store)
	ctx := context.Background()

	require.NoError(t, service.CreateCourse(ctx, &models.Course{
		Code:          "MATH2",
		Name:          "Calculus II",
		Prerequisites: []string{"MATH1"},
	}))

	// Renaming keeps the prerequisite list.
	course, err := service.UpdateCourse(ctx, "MATH2", strPtr("Advanced Calculus"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Advanced Calculus", course.Name)
	assert.Equal(t, []string{"MATH1"}, course.Prerequisites)

	// An explicit empty list clears it.
	course, err = service.UpdateCourse(ctx, "MATH2", nil, &[]string{})
	require.NoError(t, err)
	assert.Empty(t, course.Prerequisites)
	assert.Equal(t, "Advanced Calculus", course.Name)
}

func TestDeleteCourseBlockedBySections(t *testing.T) {
	store := newFakeCourseStore()
	service := NewCourseService(store)
	ctx := context.Background()

	require.NoError(t, service.CreateCourse(ctx, &models.Course{Code: "MATH1", Name: "Calculus I"}))
	store.withSection["MATH1"] = true

	err := service.DeleteCourse(ctx, "MATH1")
	assert.ErrorIs(t, err, apperrors.ErrCourseHasSections)

	store.withSection["MATH1"] = false
	require.NoError(t, service.DeleteCourse(ctx, "MATH1"))

	err = service.DeleteCourse(ctx, "MATH1")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}
