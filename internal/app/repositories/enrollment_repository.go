package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lfarias/gestor-academico/internal/app/models"
	"github.com/lfarias/gestor-academico/internal/app/services"
	"github.com/lfarias/gestor-academico/internal/db"
	"github.com/lfarias/gestor-academico/internal/pkg/apperrors"
	"github.com/lfarias/gestor-academico/internal/pkg/dberrors"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so every query in
// this repository can run against the pool or inside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// EnrollmentRepository handles database operations for enrollments. It also
// exposes the cross-table reads the enrollment pipeline needs (student,
// section and course lookups, approval history, schedules), so the whole
// check-then-commit sequence can run on one transaction.
type EnrollmentRepository struct {
	database *db.PostgresDB
	db       querier
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(database *db.PostgresDB) *EnrollmentRepository {
	return &EnrollmentRepository{
		database: database,
		db:       database.Pool,
	}
}

// InSectionTx runs fn inside a transaction that holds a row lock on the
// target section. Concurrent enrollment attempts into the same section
// serialize on that lock, so two of them can never both see the last free
// seat. A missing section acquires no lock; fn's own existence check
// handles that case.
func (r *EnrollmentRepository) InSectionTx(ctx context.Context, sectionCode string, fn func(ctx context.Context, tx services.EnrollmentTx) error) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT 1 FROM sections WHERE code = $1 FOR UPDATE`, sectionCode); err != nil {
			return fmt.Errorf("error locking section: %w", err)
		}
		return fn(ctx, &EnrollmentRepository{db: tx})
	})
}

// StudentByID retrieves a student. Returns nil when absent.
func (r *EnrollmentRepository) StudentByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	err := r.db.QueryRow(ctx, `SELECT id, name FROM students WHERE id = $1`, id).
		Scan(&student.ID, &student.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return &student, nil
}

// SectionByCode retrieves a section. Returns nil when absent.
func (r *EnrollmentRepository) SectionByCode(ctx context.Context, code string) (*models.Section, error) {
	var section models.Section
	err := r.db.QueryRow(ctx, `
		SELECT code, course_code, instructor, schedule, capacity, occupied
		FROM sections WHERE code = $1`, code).
		Scan(&section.Code, &section.CourseCode, &section.Instructor,
			&section.Schedule, &section.Capacity, &section.Occupied)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving section: %w", err)
	}
	return &section, nil
}

// CourseByCode retrieves a course. Returns nil when absent.
func (r *EnrollmentRepository) CourseByCode(ctx context.Context, code string) (*models.Course, error) {
	var course models.Course
	err := r.db.QueryRow(ctx, `SELECT code, name, prerequisites FROM courses WHERE code = $1`, code).
		Scan(&course.Code, &course.Name, &course.Prerequisites)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return &course, nil
}

// FindEnrollment retrieves the enrollment for a (student, section) pair.
// Returns nil when the pair is not enrolled.
func (r *EnrollmentRepository) FindEnrollment(ctx context.Context, studentID, sectionCode string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, section_code, grade, attendance
		FROM enrollments
		WHERE student_id = $1 AND section_code = $2`, studentID, sectionCode).
		Scan(&enrollment.ID, &enrollment.StudentID, &enrollment.SectionCode,
			&enrollment.Grade, &enrollment.Attendance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	return &enrollment, nil
}

// ApprovedCourseCodes returns the set of course codes in which the student
// holds at least one enrollment with a passing grade, in any section.
func (r *EnrollmentRepository) ApprovedCourseCodes(ctx context.Context, studentID string) (map[string]struct{}, error) {
	query := `
		SELECT DISTINCT t.course_code
		FROM enrollments e
		JOIN sections t ON t.code = e.section_code
		WHERE e.student_id = $1 AND e.grade >= $2
	`

	rows, err := r.db.Query(ctx, query, studentID, models.PassingGrade)
	if err != nil {
		return nil, fmt.Errorf("error retrieving approved courses: %w", err)
	}
	defer rows.Close()

	approved := make(map[string]struct{})
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		approved[code] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return approved, nil
}

// EnrollmentSchedules returns the schedule descriptors of every section the
// student is currently enrolled in, regardless of grade, in stored order.
func (r *EnrollmentRepository) EnrollmentSchedules(ctx context.Context, studentID string) ([]string, error) {
	query := `
		SELECT t.schedule
		FROM enrollments e
		JOIN sections t ON t.code = e.section_code
		WHERE e.student_id = $1
		ORDER BY e.id
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollment schedules: %w", err)
	}
	defer rows.Close()

	var schedules []string
	for rows.Next() {
		var schedule string
		if err := rows.Scan(&schedule); err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

// CreateEnrollment inserts an enrollment with grade and attendance unset.
func (r *EnrollmentRepository) CreateEnrollment(ctx context.Context, studentID, sectionCode string) (*models.Enrollment, error) {
	query := `
		INSERT INTO enrollments (student_id, section_code)
		VALUES ($1, $2)
		RETURNING id
	`

	enrollment := &models.Enrollment{
		StudentID:   studentID,
		SectionCode: sectionCode,
	}
	if err := r.db.QueryRow(ctx, query, studentID, sectionCode).Scan(&enrollment.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_student_section_key") {
			return nil, apperrors.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}

	return enrollment, nil
}

// IncrementOccupancy bumps the section's occupied seat counter by one.
func (r *EnrollmentRepository) IncrementOccupancy(ctx context.Context, sectionCode string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE sections SET occupied = occupied + 1 WHERE code = $1`, sectionCode)
	if err != nil {
		return fmt.Errorf("error incrementing occupancy: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSectionNotFound
	}

	return nil
}

// SetGrade records a grade for a (student, section) pair. Returns the
// number of rows affected; zero means no such enrollment exists.
func (r *EnrollmentRepository) SetGrade(ctx context.Context, studentID, sectionCode string, grade float64) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE enrollments SET grade = $1
		WHERE student_id = $2 AND section_code = $3`,
		grade, studentID, sectionCode)
	if err != nil {
		return 0, fmt.Errorf("error recording grade: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// SetAttendance records an attendance percentage for a (student, section)
// pair. Returns the number of rows affected.
func (r *EnrollmentRepository) SetAttendance(ctx context.Context, studentID, sectionCode string, attendance float64) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE enrollments SET attendance = $1
		WHERE student_id = $2 AND section_code = $3`,
		attendance, studentID, sectionCode)
	if err != nil {
		return 0, fmt.Errorf("error recording attendance: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// ListByStudent returns the student's transcript rows in stored enrollment order.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID string) ([]models.TranscriptEntry, error) {
	query := `
		SELECT t.course_code, e.grade, e.attendance
		FROM enrollments e
		JOIN sections t ON t.code = e.section_code
		WHERE e.student_id = $1
		ORDER BY e.id
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving transcript: %w", err)
	}
	defer rows.Close()

	var entries []models.TranscriptEntry
	for rows.Next() {
		var entry models.TranscriptEntry
		if err := rows.Scan(&entry.CourseCode, &entry.Grade, &entry.Attendance); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
