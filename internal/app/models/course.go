package models

// Course represents a course in the academic catalog. Prerequisites holds
// the codes of courses a student must have been approved in before
// enrolling in any of this course's sections.
type Course struct {
	Code          string   `json:"code" db:"code" example:"MATH1"`
	Name          string   `json:"name" db:"name" example:"Calculus I"`
	Prerequisites []string `json:"prerequisites" db:"prerequisites"`
}
