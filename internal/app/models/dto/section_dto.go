package dto

// CreateSectionRequest carries the data to open a new section of a course.
type CreateSectionRequest struct {
	Code       string `json:"code" binding:"required" example:"MATH1-A"`
	CourseCode string `json:"courseCode" binding:"required" example:"MATH1"`
	Instructor string `json:"instructor" binding:"required" example:"Prof. Silva"`
	Schedule   string `json:"schedule" binding:"required" example:"seg-8-10"`
	Capacity   int    `json:"capacity" binding:"required" example:"40"`
}

// UpdateSectionRequest carries a partial section edit.
type UpdateSectionRequest struct {
	Instructor *string `json:"instructor,omitempty" example:"Prof. Souza"`
	Schedule   *string `json:"schedule,omitempty" example:"ter-14-16"`
	Capacity   *int    `json:"capacity,omitempty" example:"50"`
}
