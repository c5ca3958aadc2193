package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// SubmitRequest represents the JSON submission body.
type SubmitRequest struct {
	Text      string `json:"text" example:"The quick brown fox jumps over the lazy dog while the slow green turtle watches from the riverbank."`
	Language  string `json:"language" example:"en"`
	GroupID   string `json:"group_id" example:"42"`
	UseOrgAPI bool   `json:"useOrgApi" example:"false"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status          string `json:"status" example:"ok"`
	OrganizationAPI bool   `json:"organization_api,omitempty" example:"true"`
	Error           string `json:"error,omitempty"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Invalid ID format. Please use the original text ID from the submission response, not the report ID."`
	Code    string `json:"code" example:"VALIDATION_ERROR"`
}
