package dto

import "time"

// APIResponse is the standard envelope for all API endpoints. Either Data
// or Error is set, never both.
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2026-08-28T12:01:05.123Z"`
}

// NewDataResponse wraps payload data in the standard envelope.
func NewDataResponse(data interface{}) APIResponse {
	return APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	}
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// PaginationInfo describes the page window of a list response.
type PaginationInfo struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	PageSize    int `json:"pageSize"`
	TotalItems  int `json:"totalItems"`
}

// PagedResponse combines list items with their pagination info.
type PagedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}
