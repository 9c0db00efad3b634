package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfarias/gestor-academico/internal/app/models"
	"github.com/lfarias/gestor-academico/internal/pkg/apperrors"
)

// fakeEnrollmentStore is an in-memory EnrollmentStore. InSectionTx takes a
// single mutex for the whole callback, which matches the serialization the
// real store provides per section, and restores a snapshot when the
// callback fails so rejected attempts leave no trace.
type fakeEnrollmentStore struct {
	mu       sync.Mutex
	students map[string]*models.Student
	sections map[string]*models.Section
	courses  map[string]*models.Course
	rows     []*models.Enrollment
	nextID   int64
}

func newFakeStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{
		students: make(map[string]*models.Student),
		sections: make(map[string]*models.Section),
		courses:  make(map[string]*models.Course),
	}
}

func (f *fakeEnrollmentStore) addCourse(code string, prereqs ...string) {
	f.courses[code] = &models.Course{Code: code, Name: code, Prerequisites: prereqs}
}

func (f *fakeEnrollmentStore) addSection(code, courseCode, schedule string, capacity int) {
	f.sections[code] = &models.Section{
		Code:       code,
		CourseCode: courseCode,
		Instructor: "Prof. Silva",
		Schedule:   schedule,
		Capacity:   capacity,
	}
}

func (f *fakeEnrollmentStore) addStudent(id string) {
	f.students[id] = &models.Student{ID: id, Name: "Student " + id}
}

func (f *fakeEnrollmentStore) addEnrollment(studentID, sectionCode string, grade *float64) {
	f.nextID++
	f.rows = append(f.rows, &models.Enrollment{
		ID:          f.nextID,
		StudentID:   studentID,
		SectionCode: sectionCode,
		Grade:       grade,
	})
	f.sections[sectionCode].Occupied++
}

func (f *fakeEnrollmentStore) StudentByID(_ context.Context, id string) (*models.Student, error) {
	return f.students[id], nil
}

func (f *fakeEnrollmentStore) SectionByCode(_ context.Context, code string) (*models.Section, error) {
	section, ok := f.sections[code]
	if !ok {
		return nil, nil
	}
	copied := *section
	return &copied, nil
}

func (f *fakeEnrollmentStore) CourseByCode(_ context.Context, code string) (*models.Course, error) {
	return f.courses[code], nil
}

func (f *fakeEnrollmentStore) FindEnrollment(_ context.Context, studentID, sectionCode string) (*models.Enrollment, error) {
	for _, row := range f.rows {
		if row.StudentID == studentID && row.SectionCode == sectionCode {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeEnrollmentStore) ApprovedCourseCodes(_ context.Context, studentID string) (map[string]struct{}, error) {
	approved := make(map[string]struct{})
	for _, row := range f.rows {
		if row.StudentID == studentID && row.Approved() {
			approved[f.sections[row.SectionCode].CourseCode] = struct{}{}
		}
	}
	return approved, nil
}

func (f *fakeEnrollmentStore) EnrollmentSchedules(_ context.Context, studentID string) ([]string, error) {
	var schedules []string
	for _, row := range f.rows {
		if row.StudentID == studentID {
			schedules = append(schedules, f.sections[row.SectionCode].Schedule)
		}
	}
	return schedules, nil
}

func (f *fakeEnrollmentStore) CreateEnrollment(_ context.Context, studentID, sectionCode string) (*models.Enrollment, error) {
	f.nextID++
	enrollment := &models.Enrollment{ID: f.nextID, StudentID: studentID, SectionCode: sectionCode}
	f.rows = append(f.rows, enrollment)
	return enrollment, nil
}

func (f *fakeEnrollmentStore) IncrementOccupancy(_ context.Context, sectionCode string) error {
	f.sections[sectionCode].Occupied++
	return nil
}

func (f *fakeEnrollmentStore) InSectionTx(ctx context.Context, _ string, fn func(ctx context.Context, tx EnrollmentTx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	snapshot := f.snapshot()
	if err := fn(ctx, f); err != nil {
		f.restore(snapshot)
		return err
	}
	return nil
}

type fakeSnapshot struct {
	rows     []*models.Enrollment
	occupied map[string]int
	nextID   int64
}

func (f *fakeEnrollmentStore) snapshot() fakeSnapshot {
	snap := fakeSnapshot{
		rows:     append([]*models.Enrollment(nil), f.rows...),
		occupied: make(map[string]int, len(f.sections)),
		nextID:   f.nextID,
	}
	for code, section := range f.sections {
		snap.occupied[code] = section.Occupied
	}
	return snap
}

func (f *fakeEnrollmentStore) restore(snap fakeSnapshot) {
	f.rows = snap.rows
	f.nextID = snap.nextID
	for code, occupied := range snap.occupied {
		f.sections[code].Occupied = occupied
	}
}

func (f *fakeEnrollmentStore) SetGrade(_ context.Context, studentID, sectionCode string, grade float64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.StudentID == studentID && row.SectionCode == sectionCode {
			row.Grade = &grade
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeEnrollmentStore) SetAttendance(_ context.Context, studentID, sectionCode string, attendance float64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.StudentID == studentID && row.SectionCode == sectionCode {
			row.Attendance = &attendance
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeEnrollmentStore) ListByStudent(_ context.Context, studentID string) ([]models.TranscriptEntry, error) {
	var entries []models.TranscriptEntry
	for _, row := range f.rows {
		if row.StudentID == studentID {
			entries = append(entries, models.TranscriptEntry{
				CourseCode: f.sections[row.SectionCode].CourseCode,
				Grade:      row.Grade,
				Attendance: row.Attendance,
			})
		}
	}
	return entries, nil
}

func gradePtr(g float64) *float64 { return &g }

func TestEnrollSuccess(t *testing.T) {
	store := newFakeStore()
	store.addCourse("MATH1")
	store.addSection("MATH1-A", "MATH1", "seg-8-10", 40)
	store.addStudent("S1")

	service := NewEnrollmentService(store)

	enrollment, err := service.Enroll(context.Background(), "S1", "MATH1-A")
	require.NoError(t, err)
	assert.Equal(t, "S1", enrollment.StudentID)
	assert.Equal(t, "MATH1-A", enrollment.SectionCode)
	assert.NotZero(t, enrollment.ID)
	assert.Nil(t, enrollment.Grade)
	assert.Equal(t, 1, store.sections["MATH1-A"].Occupied)
}

func TestEnrollStudentNotFound(t *testing.T) {
	store := newFakeStore()
	store.addCourse("MATH1")
	store.addSection("MATH1-A", "MATH1", "seg-8-10", 40)

	service := NewEnrollmentService(store)

	_, err := service.Enroll(context.Background(), "ghost", "MATH1-A")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestEnrollSectionNotFound(t *testing.T) {
	store := newFakeStore()
	store.addStudent("S1")

	service := NewEnrollmentService(store)

	_, err := service.Enroll(context.Background(), "S1", "NOPE-1")
	assert.ErrorIs(t, err, apperrors.ErrSectionNotFound)
}

func TestEnrollDuplicate(t *testing.T) {
	store := newFakeStore()
	store.addCourse("MATH1")
	store.addSection("MATH1-A", "MATH1", "seg-8-10", 40)
	store.addStudent("S1")
	store.addEnrollment("S1", "MATH1-A", nil)

	service := NewEnrollmentService(store)

	_, err := service.Enroll(context.Background(), "S1", "MATH1-A")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
	assert.Equal(t, 1, store.sections["MATH1-A"].Occupied)
}

func TestEnrollAlreadyApprovedInOtherSection(t *testing.T) {
	store := newFakeStore()
	store.addCourse("MATH1")
	store.addSection("MATH1-A", "MATH1", "seg-8-10", 40)
	store.addSection("MATH1-B", "MATH1", "ter-8-10", 40)
	store.addStudent("S1")
	store.addEnrollment("S1", "MATH1-A", gradePtr(7.0))

	service := NewEnrollmentService(store)

	_, err := service.Enroll(context.Background(), "S1", "MATH1-B")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApproved)
}

func TestEnrollFailedAttemptAllowsRetakeInOtherSection(t *testing.T) {
	store := newFakeStore()
	store.addCourse("MATH1")
	store.addSection("MATH1-A", "MATH1", "seg-8-10", 40)
	store.addSection("MATH1-B", "MATH1", "ter-8-10", 40)
	store.addStudent("S1")
	// Grade below the passing threshold does not count as approval.
	store.addEnrollment("S1", "MATH1-A", gradePtr(4.0))

	service := NewEnrollmentService(store)

	enrollment, err := service.Enroll(context.Background(), "S1", "MATH1-B")
	require.NoError(t, err)
	assert.Equal(t, "MATH1-B", enrollment.SectionCode)
}

func TestEnrollPrerequisitesNotMet(t *testing.T) {
	store := newFakeStore()
	store.addCourse("MATH1")
	store.addCourse("MATH2", "MATH1")
	store.addSection("MATH2-A", "MATH2", "qua-8-10", 40)
	store.addStudent("S1")

	service := NewEnrollmentService(store)

	_, err := service.Enroll(context.Background(), "S1", "MATH2-A")
	assert.ErrorIs(t, err, apperrors.ErrPrerequisitesNotMet)
}

func TestEnrollPrerequisitesSatisfiedByApproval(t *testing.T) {
	store := newFakeStore()
	store.addCourse("MATH1")
	store.addCourse("MATH2", "MATH1")
	store.addSection("MATH1-A", "MATH1", "seg-8-10", 40)
	store.addSection("MATH2-A", "MATH2", "qua-8-10", 40)
	store.addStudent("S1")
	store.addEnrollment("S1", "MATH1-A", gradePtr(8.0))

	service := NewEnrollmentService(store)

	_, err := service.Enroll(context.Background(), "S1", "MATH2-A")
	assert.NoError(t, err)
}

func TestEnrollSectionFull(t *testing.T) {
	store := newFakeStore()
	store.addCourse("MATH1")
	store.addSection("MATH1-A", "MATH1", "seg-8-10", 1)
	store.addStudent("S1")
	store.addStudent("S2")
	store.addEnrollment("S1", "MATH1-A", nil)

	service := NewEnrollmentService(store)

	_, err := service.Enroll(context.Background(), "S2", "MATH1-A")
	assert.ErrorIs(t, err, apperrors.ErrSectionFull)
	assert.Equal(t, map[string]interface{}{"capacity": 1}, apperrors.Details(err))
}

func TestEnrollScheduleConflict(t *testing.T) {
	store := newFakeStore()
	store.addCourse("MATH1")
	store.addCourse("PHYS1")
	store.addSection("MATH1-A", "MATH1", "seg-8-10", 40)
	store.addSection("PHYS1-A", "PHYS1", "seg-9-11", 40)
	store.addStudent("S1")
	store.addEnrollment("S1", "MATH1-A", nil)

	service := NewEnrollmentService(store)

	_, err := service.Enroll(context.Background(), "S1", "PHYS1-A")
	assert.ErrorIs(t, err, apperrors.ErrScheduleConflict)
	assert.Equal(t, map[string]interface{}{"conflictingSchedule": "seg-8-10"}, apperrors.Details(err))
	assert.Equal(t, 0, store.sections["PHYS1-A"].Occupied)
}

func TestEnrollMalformedStoredScheduleConflicts(t *testing.T) {
	store := newFakeStore()
	store.addCourse("MATH1")
	store.addCourse("PHYS1")
	store.addSection("MATH1-A", "MATH1", "whenever", 40)
	store.addSection("PHYS1-A", "PHYS1", "ter-8-10", 40)
	store.addStudent("S1")
	store.addEnrollment("S1", "MATH1-A", nil)

	service := NewEnrollmentService(store)

	// An unparseable stored schedule blocks any further enrollment.
	_, err := service.Enroll(context.Background(), "S1", "PHYS1-A")
	assert.ErrorIs(t, err, apperrors.ErrScheduleConflict)
}

func TestEnrollDuplicateReportedBeforeCapacity(t *testing.T) {
	store := newFakeStore()
	store.addCourse("MATH1")
	store.addSection("MATH1-A", "MATH1", "seg-8-10", 1)
	store.addStudent("S1")
	store.addEnrollment("S1", "MATH1-A", nil)

	service := NewEnrollmentService(store)

	// The section is also full, but the duplicate check runs first.
	_, err := service.Enroll(context.Background(), "S1", "MATH1-A")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
}

func TestEnrollPrerequisitesReportedBeforeCapacity(t *testing.T) {
	store := newFakeStore()
	store.addCourse("MATH1")
	store.addCourse("MATH2", "MATH1")
	store.addSection("MATH2-A", "MATH2", "qua-8-10", 0)
	store.addStudent("S1")

	service := NewEnrollmentService(store)

	_, err := service.Enroll(context.Background(), "S1", "MATH2-A")
	assert.ErrorIs(t, err, apperrors.ErrPrerequisitesNotMet)
}

func TestEnrollConcurrentLastSeat(t *testing.T) {
	store := newFakeStore()
	store.addCourse("MATH1")
	store.addSection("MATH1-A", "MATH1", "seg-8-10", 1)

	const contenders = 16
	for i := 0; i < contenders; i++ {
		store.addStudent(studentID(i))
	}

	service := NewEnrollmentService(store)

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.Enroll(context.Background(), studentID(i), "MATH1-A")
		}(i)
	}
	wg.Wait()

	var won, full int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		default:
			assert.ErrorIs(t, err, apperrors.ErrSectionFull)
			full++
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, contenders-1, full)
	assert.Equal(t, 1, store.sections["MATH1-A"].Occupied)
}

func studentID(i int) string {
	return string(rune('A' + i))
}

func TestHasPrerequisites(t *testing.T) {
	store := newFakeStore()
	store.addCourse("MATH1")
	store.addCourse("MATH2", "MATH1")
	store.addCourse("CALC3", "MATH1", "MATH2")
	store.addSection("MATH1-A", "MATH1", "seg-8-10", 40)
	store.addStudent("S1")
	store.addEnrollment("S1", "MATH1-A", gradePtr(9.0))

	service := NewEnrollmentService(store)
	ctx := context.Background()

	ok, err := service.HasPrerequisites(ctx, "S1", store.courses["MATH1"])
	require.NoError(t, err)
	assert.True(t, ok, "course without prerequisites always passes")

	ok, err = service.HasPrerequisites(ctx, "S1", store.courses["MATH2"])
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.HasPrerequisites(ctx, "S1", store.courses["CALC3"])
	require.NoError(t, err)
	assert.False(t, ok, "every prerequisite must be approved, not just one")
}

func TestRecordGrade(t *testing.T) {
	store := newFakeStore()
	store.addCourse("MATH1")
	store.addSection("MATH1-A", "MATH1", "seg-8-10", 40)
	store.addStudent("S1")
	store.addEnrollment("S1", "MATH1-A", nil)

	service := NewEnrollmentService(store)
	ctx := context.Background()

	require.NoError(t, service.RecordGrade(ctx, "S1", "MATH1-A", 7.5))
	assert.Equal(t, 7.5, *store.rows[0].Grade)

	// Overwrite is allowed.
	require.NoError(t, service.RecordGrade(ctx, "S1", "MATH1-A", 9.0))
	assert.Equal(t, 9.0, *store.rows[0].Grade)
}

func TestRecordGradeValidation(t *testing.T) {
	store := newFakeStore()
	service := NewEnrollmentService(store)
	ctx := context.Background()

	err := service.RecordGrade(ctx, "S1", "MATH1-A", -0.5)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	err = service.RecordGrade(ctx, "S1", "MATH1-A", 10.5)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	err = service.RecordGrade(ctx, "S1", "MATH1-A", 5.0)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}

func TestRecordAttendance(t *testing.T) {
	store := newFakeStore()
	store.addCourse("MATH1")
	store.addSection("MATH1-A", "MATH1", "seg-8-10", 40)
	store.addStudent("S1")
	store.addEnrollment("S1", "MATH1-A", nil)

	service := NewEnrollmentService(store)
	ctx := context.Background()

	require.NoError(t, service.RecordAttendance(ctx, "S1", "MATH1-A", 90))
	assert.Equal(t, 90.0, *store.rows[0].Attendance)

	err := service.RecordAttendance(ctx, "S1", "MATH1-A", 101)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	err = service.RecordAttendance(ctx, "S2", "MATH1-A", 80)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}

func TestEnrollSemesterScenario(t *testing.T) {
	store := newFakeStore()
	store.addCourse("MATH1")
	store.addSection("MATH1-A", "MATH1", "seg-8-10", 1)
	store.addStudent("S1")
	store.addStudent("S2")

	service := NewEnrollmentService(store)
	ctx := context.Background()

	// S1 takes the only seat; S2 bounces.
	_, err := service.Enroll(ctx, "S1", "MATH1-A")
	require.NoError(t, err)

	_, err = service.Enroll(ctx, "S2", "MATH1-A")
	require.ErrorIs(t, err, apperrors.ErrSectionFull)
	assert.Equal(t, 1, store.sections["MATH1-A"].Occupied)

	require.NoError(t, service.RecordGrade(ctx, "S1", "MATH1-A", 8.0))

	// MATH2 opens at an hour overlapping S1's standing MATH1-A slot.
	store.addCourse("MATH2", "MATH1")
	store.addSection("MATH2-A", "MATH2", "seg-9-11", 5)

	_, err = service.Enroll(ctx, "S1", "MATH2-A")
	require.ErrorIs(t, err, apperrors.ErrScheduleConflict)

	// Moving the section clears the overlap; adjacency is not a conflict.
	store.sections["MATH2-A"].Schedule = "seg-10-11"
	_, err = service.Enroll(ctx, "S1", "MATH2-A")
	require.NoError(t, err)
	assert.Equal(t, 1, store.sections["MATH2-A"].Occupied)
}

func TestEnrollFullProgression(t *testing.T) {
	store := newFakeStore()
	store.addCourse("MATH1")
	store.addCourse("MATH2", "MATH1")
	store.addSection("MATH1-A", "MATH1", "seg-8-10", 2)
	store.addSection("MATH2-A", "MATH2", "qua-8-10", 2)
	store.addStudent("S1")

	service := NewEnrollmentService(store)
	ctx := context.Background()

	// Blocked from MATH2 until MATH1 is approved.
	_, err := service.Enroll(ctx, "S1", "MATH2-A")
	require.ErrorIs(t, err, apperrors.ErrPrerequisitesNotMet)

	_, err = service.Enroll(ctx, "S1", "MATH1-A")
	require.NoError(t, err)

	require.NoError(t, service.RecordGrade(ctx, "S1", "MATH1-A", 7.0))

	_, err = service.Enroll(ctx, "S1", "MATH2-A")
	require.NoError(t, err)

	// And never into MATH1 again.
	_, err = service.Enroll(ctx, "S1", "MATH1-A")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
}
