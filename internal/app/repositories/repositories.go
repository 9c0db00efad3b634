package repositories

import (
	"github.com/lfarias/gestor-academico/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository     *CourseRepository
	SectionRepository    *SectionRepository
	StudentRepository    *StudentRepository
	EnrollmentRepository *EnrollmentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		CourseRepository:     NewCourseRepository(database.Pool),
		SectionRepository:    NewSectionRepository(database.Pool),
		StudentRepository:    NewStudentRepository(database.Pool),
		EnrollmentRepository: NewEnrollmentRepository(database),
	}
}
