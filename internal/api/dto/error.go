package dto

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a generic success response body.
type SuccessResponse struct {
	Success bool `json:"success"`
}
