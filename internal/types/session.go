package types

import (
	"github.com/pageza/workwise/backend/internal/models"
)

// SessionContext is what the request already knows about the caller.
// It is built per request by the HTTP layer and passed into the sign-up flow.
type SessionContext struct {
	// Identity is set when the caller signed in earlier (OAuth or login)
	Identity *models.User
	// ClientKey identifies the submitting client in logs
	ClientKey string
}

// Authenticated reports whether an identity was established earlier
func (s SessionContext) Authenticated() bool {
	return s.Identity != nil
}

// ProviderPhotoURL returns the photo the identity carries from its provider
func (s SessionContext) ProviderPhotoURL() string {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.PhotoURL
}
