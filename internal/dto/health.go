package dto

// HealthResponse is the payload for the health endpoints
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}
