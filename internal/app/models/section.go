package models

// Section is a scheduled, capacity-bounded offering of a course (a "turma").
// Occupied is mutated only by the enrollment pipeline, never directly.
type Section struct {
	Code       string `json:"code" db:"code" example:"MATH1-A"`
	CourseCode string `json:"courseCode" db:"course_code" example:"MATH1"`
	Instructor string `json:"instructor" db:"instructor" example:"Prof. Silva"`
	Schedule   string `json:"schedule" db:"schedule" example:"seg-8-10"` // day-start-end descriptor
	Capacity   int    `json:"capacity" db:"capacity" example:"40"`
	Occupied   int    `json:"occupied" db:"occupied" example:"12"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
}
