package models

// PassingGrade is the minimum grade at which an enrollment counts as
// approved for prerequisite and already-approved checks.
const PassingGrade = 6.0

// Enrollment ties a student to a section. Grade and Attendance stay unset
// until recorded, so both are nullable.
type Enrollment struct {
	ID          int64    `json:"id" db:"id" example:"1"`
	StudentID   string   `json:"studentId" db:"student_id" example:"20230145"`
	SectionCode string   `json:"sectionCode" db:"section_code" example:"MATH1-A"`
	Grade       *float64 `json:"grade,omitempty" db:"grade" example:"7.5"`          // 0-10, nullable
	Attendance  *float64 `json:"attendance,omitempty" db:"attendance" example:"90"` // percentage 0-100, nullable
}

// Approved reports whether this enrollment counts as an approval.
func (e *Enrollment) Approved() bool {
	return e.Grade != nil && *e.Grade >= PassingGrade
}

// TranscriptEntry is one line of a student's academic record.
type TranscriptEntry struct {
	CourseCode string   `json:"courseCode" db:"course_code" example:"MATH1"`
	Grade      *float64 `json:"grade,omitempty" db:"grade" example:"7.5"`
	Attendance *float64 `json:"attendance,omitempty" db:"attendance" example:"90"`
}

// RosterEntry is one line of a section's student listing.
type RosterEntry struct {
	StudentID   string   `json:"studentId" db:"student_id" example:"20230145"`
	StudentName string   `json:"studentName" db:"student_name" example:"Ana Souza"`
	Grade       *float64 `json:"grade,omitempty" db:"grade" example:"7.5"`
	Attendance  *float64 `json:"attendance,omitempty" db:"attendance" example:"90"`
}
