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

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create inserts a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (id, name)
		VALUES ($1, $2)
	`

	_, err := r.db.Exec(ctx, query, student.ID, student.Name)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrStudentAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by registration number. Returns nil when absent.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	query := `
		SELECT id, name
		FROM students
		WHERE id = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.Name,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// List retrieves a page of students ordered by id, plus the total count.
func (r *StudentRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.Student, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	query := `
		SELECT id, name
		FROM students
		ORDER BY id
		OFFSET $1 LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(&student.ID, &student.Name); err != nil {
			return nil, 0, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// Update rewrites a student's name
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $1
		WHERE id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, student.Name, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// HasEnrollments reports whether any enrollment references the student
func (r *StudentRepository) HasEnrollments(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1)`,
		id).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking student enrollments: %w", err)
	}

	return exists, nil
}

// Delete removes a student by id
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentHasEnrollments
		}
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
