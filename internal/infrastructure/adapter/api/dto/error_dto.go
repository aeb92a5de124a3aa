package dto

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HealthResponse reports liveness and dependency reachability
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
