package transport

import "github.com/taskflow/backend/domain"

// Responses mirror the service's public HTTP contract: raw JSON shapes,
// no envelope.

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type DeleteResponse struct {
	Success bool `json:"success"`
}

// MeResponse wraps the session identity for GET /api/me.
type MeResponse struct {
	User *domain.Identity `json:"user"`
}
