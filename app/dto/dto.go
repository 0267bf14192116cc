// Package dto contains Data Transfer Objects for API request and response structures
package dto

// MessageResponse is the body for operations that only report an outcome
type MessageResponse struct {
	Message string `json:"message" example:"Campaign deleted successfully"`
}

// FieldError is one field-level validation failure
type FieldError struct {
	Field   string `json:"field" example:"endDate"`
	Message string `json:"message" example:"End date must be after start date"`
}

// ValidationErrorResponse is returned when a request body or parameter fails validation
type ValidationErrorResponse struct {
	Status string       `json:"status" example:"error"`
	Errors []FieldError `json:"errors"`
}

// ErrorResponse is returned for every non-validation failure
type ErrorResponse struct {
	Message string `json:"message" example:"Campaign not found"`
	Error   string `json:"error,omitempty"`
	Stack   string `json:"stack,omitempty"`
}
