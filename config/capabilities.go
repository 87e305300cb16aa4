package config

// Social sign-in providers
const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

// Capabilities describes which optional integrations are available.
// It is resolved once at startup and handed to the services that branch on it.
type Capabilities struct {
	OAuthProviders map[string]bool
	PhotoUpload    bool
	DisplaySync    bool
}

// ResolveCapabilities derives the capability set from the loaded configuration
func ResolveCapabilities(cfg *Config) Capabilities {
	caps := Capabilities{
		OAuthProviders: map[string]bool{},
		PhotoUpload:    cfg.Blob.Backend != BlobBackendNone,
		DisplaySync:    cfg.OAuth.DisplaySync,
	}
	if cfg.OAuth.GoogleClientID != "" {
		caps.OAuthProviders[ProviderGoogle] = true
	}
	if cfg.OAuth.FacebookEnabled {
		caps.OAuthProviders[ProviderFacebook] = true
	}
	return caps
}

// ProviderEnabled reports whether sign-in through the given provider is available
func (c Capabilities) ProviderEnabled(provider string) bool {
	return c.OAuthProviders[provider]
}
