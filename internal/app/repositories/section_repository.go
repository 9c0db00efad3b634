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

// SectionRepository handles database operations for sections
type SectionRepository struct {
	db *pgxpool.Pool
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(db *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{
		db: db,
	}
}

// Create inserts a new section with zero occupancy
func (r *SectionRepository) Create(ctx context.Context, section *models.Section) error {
	query := `
		INSERT INTO sections (code, course_code, instructor, schedule, capacity, occupied)
		VALUES ($1, $2, $3, $4, $5, 0)
	`

	_, err := r.db.Exec(ctx, query,
		section.Code, section.CourseCode, section.Instructor, section.Schedule, section.Capacity)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrSectionAlreadyExists
		}
		return fmt.Errorf("error creating section: %w", err)
	}

	section.Occupied = 0
	return nil
}

// GetByCode retrieves a section by its code. Returns nil when no section exists.
func (r *SectionRepository) GetByCode(ctx context.Context, code string) (*models.Section, error) {
	query := `
		SELECT code, course_code, instructor, schedule, capacity, occupied
		FROM sections
		WHERE code = $1
	`

	var section models.Section
	err := r.db.QueryRow(ctx, query, code).Scan(
		&section.Code,
		&section.CourseCode,
		&section.Instructor,
		&section.Schedule,
		&section.Capacity,
		&section.Occupied,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving section: %w", err)
	}

	return &section, nil
}

// List retrieves a page of sections ordered by code, plus the total count.
func (r *SectionRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.Section, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sections`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting sections: %w", err)
	}

	query := `
		SELECT code, course_code, instructor, schedule, capacity, occupied
		FROM sections
		ORDER BY code
		OFFSET $1 LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sections []*models.Section
	for rows.Next() {
		var section models.Section
		if err := rows.Scan(
			&section.Code,
			&section.CourseCode,
			&section.Instructor,
			&section.Schedule,
			&section.Capacity,
			&section.Occupied,
		); err != nil {
			return nil, 0, err
		}
		sections = append(sections, &section)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return sections, total, nil
}

// Update rewrites the mutable fields of an existing section. Occupied is
// deliberately excluded: only the enrollment pipeline touches it.
func (r *SectionRepository) Update(ctx context.Context, section *models.Section) error {
	query := `
		UPDATE sections
		SET instructor = $1, schedule = $2, capacity = $3
		WHERE code = $4
	`

	cmdTag, err := r.db.Exec(ctx, query,
		section.Instructor, section.Schedule, section.Capacity, section.Code)
	if err != nil {
		return fmt.Errorf("error updating section: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSectionNotFound
	}

	return nil
}

// HasEnrollments reports whether any enrollment references the section
func (r *SectionRepository) HasEnrollments(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM enrollments WHERE section_code = $1)`,
		code).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking section enrollments: %w", err)
	}

	return exists, nil
}

// Delete removes a section by code
func (r *SectionRepository) Delete(ctx context.Context, code string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM sections WHERE code = $1`, code)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSectionHasEnrollments
		}
		return fmt.Errorf("error deleting section: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSectionNotFound
	}

	return nil
}

// Roster lists the students enrolled in a section, in enrollment order.
func (r *SectionRepository) Roster(ctx context.Context, code string) ([]models.RosterEntry, error) {
	query := `
		SELECT s.id, s.name, e.grade, e.attendance
		FROM enrollments e
		JOIN students s ON s.id = e.student_id
		WHERE e.section_code = $1
		ORDER BY e.id
	`

	rows, err := r.db.Query(ctx, query, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roster []models.RosterEntry
	for rows.Next() {
		var entry models.RosterEntry
		if err := rows.Scan(
			&entry.StudentID,
			&entry.StudentName,
			&entry.Grade,
			&entry.Attendance,
		); err != nil {
			return nil, err
		}
		roster = append(roster, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return roster, nil
}
