package dto

// EnrollRequest asks to enroll a student into a section.
type EnrollRequest struct {
	StudentID   string `json:"studentId" binding:"required" example:"20230145"`
	SectionCode string `json:"sectionCode" binding:"required" example:"MATH1-A"`
}

// RecordGradeRequest records the final grade of an enrollment.
type RecordGradeRequest struct {
	StudentID   string  `json:"studentId" binding:"required" example:"20230145"`
	SectionCode string  `json:"sectionCode" binding:"required" example:"MATH1-A"`
	Grade       float64 `json:"grade" example:"7.5"`
}

// RecordAttendanceRequest records the attendance percentage of an enrollment.
type RecordAttendanceRequest struct {
	StudentID   string  `json:"studentId" binding:"required" example:"20230145"`
	SectionCode string  `json:"sectionCode" binding:"required" example:"MATH1-A"`
	Attendance  float64 `json:"attendance" example:"90"`
}
