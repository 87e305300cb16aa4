package types

import (
	"github.com/pageza/workwise/backend/internal/models"
)

// AuthResponse is returned by the sign-in endpoints
type AuthResponse struct {
	Token         string       `json:"token"`
	Identity      *models.User `json:"identity"`
	ProfileExists bool         `json:"profile_exists"`
}

// SignupResponse is returned after a profile was created
type SignupResponse struct {
	Token    string          `json:"token"`
	Identity *models.User    `json:"identity"`
	Profile  *models.Profile `json:"profile"`
	Redirect string          `json:"redirect"`
}

// ErrorResponse is the JSON error body. Fields maps form fields to messages.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
