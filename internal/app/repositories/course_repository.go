package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lfarias/gestor-academico/internal/app/models"
	"github.com/lfarias/gestor-academico/internal/pkg/apperrors"
	"github.com/lfarias/gestor-academico/internal/pkg/dberrors"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (code, name, prerequisites)
		VALUES ($1, $2, $3)
	`

	prereqs := course.Prerequisites
	if prereqs == nil {
		prereqs = []string{}
	}

	_, err := r.db.Exec(ctx, query, course.Code, course.Name, prereqs)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseAlreadyExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByCode retrieves a course by its code. Returns nil when no course exists.
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	query := `
		SELECT code, name, prerequisites
		FROM courses
		WHERE code = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, code).Scan(
		&course.Code,
		&course.Name,
		&course.Prerequisites,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// List retrieves a page of courses ordered by code, plus the total count.
func (r *CourseRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.Course, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	query := `
		SELECT code, name, prerequisites
		FROM courses
		ORDER BY code
		OFFSET $1 LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.Code,
			&course.Name,
			&course.Prerequisites,
		); err != nil {
			return nil, 0, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// Update rewrites the name and prerequisite list of an existing course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	prereqs := course.Prerequisites
	if prereqs == nil {
		prereqs = []string{}
	}

	query := `
		UPDATE courses
		SET name = $1, prerequisites = $2
		WHERE code = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, course.Name, prereqs, course.Code)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// HasSections reports whether any section references the course
func (r *CourseRepository) HasSections(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM sections WHERE course_code = $1)`,
		code).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking course sections: %w", err)
	}

	return exists, nil
}

// Delete removes a course by code
func (r *CourseRepository) Delete(ctx context.Context, code string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE code = $1`, code)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseHasSections
		}
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
