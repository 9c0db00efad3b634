package dto

// CreateCourseRequest carries the data to register a new course.
type CreateCourseRequest struct {
	Code          string   `json:"code" binding:"required" example:"MATH1"`
	Name          string   `json:"name" binding:"required" example:"Calculus I"`
	Prerequisites []string `json:"prerequisites" example:"MATH0"`
}

// UpdateCourseRequest carries a partial course edit. Absent fields keep
// their stored values; an empty prerequisite list clears the requirement.
type UpdateCourseRequest struct {
	Name          *string   `json:"name,omitempty" example:"Calculus I"`
	Prerequisites *[]string `json:"prerequisites,omitempty"`
}
