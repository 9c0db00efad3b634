package dto

// CreateStudentRequest carries the data to register a new student.
type CreateStudentRequest struct {
	ID   string `json:"id" binding:"required" example:"20230145"`
	Name string `json:"name" binding:"required" example:"Ana Souza"`
}

// UpdateStudentRequest carries a student name edit.
type UpdateStudentRequest struct {
	Name string `json:"name" binding:"required" example:"Ana Souza"`
}

// AverageResponse reports a student's cumulative average (CR). Average is
// null when the student has no graded enrollments.
type AverageResponse struct {
	StudentID string   `json:"studentId" example:"20230145"`
	Average   *float64 `json:"average" example:"6.0"`
}
