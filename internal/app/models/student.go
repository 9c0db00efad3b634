package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID   string `json:"id" db:"id" example:"20230145"` // Student's registration number
	Name string `json:"name" db:"name" example:"Ana Souza"`
}
