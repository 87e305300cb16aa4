package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func TestGoogleVerifier(t *testing.T) {
	v := NewGoogleVerifier("client-id")
	v.validate = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		assert.Equal(t, "client-id", audience)
		if token != "valid" {
			return nil, errors.New("idtoken: invalid token")
		}
		return &idtoken.Payload{
			Subject: "1234567890",
			Claims: map[string]interface{}{
				"email":          "g@example.com",
				"email_verified": true,
				"name":           "Gee",
				"picture":        "https://lh3.googleusercontent.com/a/photo",
			},
		}, nil
	}

	profile, err := v.Verify(context.Background(), "valid")
	require.NoError(t, err)
	assert.Equal(t, &ProviderProfile{
		Subject:  "1234567890",
		Email:    "g@example.com",
		Name:     "Gee",
		PhotoURL: "https://lh3.googleusercontent.com/a/photo",
	}, profile)

	_, err = v.Verify(context.Background(), "forged")
	assert.Error(t, err)
}

func TestGoogleVerifierUnverifiedEmail(t *testing.T) {
	v := NewGoogleVerifier("client-id")
	v.validate = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		return &idtoken.Payload{Subject: "1", Claims: map[string]interface{}{"email_verified": false}}, nil
	}

	_, err := v.Verify(context.Background(), "token")
	assert.ErrorContains(t, err, "email not verified")
}

func newGraphServer(t *testing.T, appID string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("access_token") != "user-token" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]interface{}{"message": "Invalid OAuth access token.", "code": 190},
			})
			return
		}

		switch r.URL.Path {
		case "/app":
			_ = json.NewEncoder(w).Encode(map[string]string{"id": appID})
		case "/me":
			assert.Equal(t, "id,name,email,picture.type(large)", r.URL.Query().Get("fields"))
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"id":    "fb-42",
				"name":  "Eff Bee",
				"email": "fb@example.com",
				"picture": map[string]interface{}{
					"data": map[string]string{"url": "https://graph.facebook.com/fb-42/picture"},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFacebookVerifier(t *testing.T) {
	srv := newGraphServer(t, "app-1")
	v := NewFacebookVerifier(srv.URL+"/", "app-1", srv.Client())

	profile, err := v.Verify(context.Background(), "user-token")
	require.NoError(t, err)
	assert.Equal(t, "fb-42", profile.Subject)
	assert.Equal(t, "fb@example.com", profile.Email)
	assert.Equal(t, "https://graph.facebook.com/fb-42/picture", profile.PhotoURL)

	_, err = v.Verify(context.Background(), "stolen-token")
	assert.ErrorContains(t, err, "Invalid OAuth access token.")
}

func TestFacebookVerifierWrongApp(t *testing.T) {
	srv := newGraphServer(t, "someone-elses-app")
	v := NewFacebookVerifier(srv.URL, "app-1", nil)

	_, err := v.Verify(context.Background(), "user-token")
	assert.ErrorContains(t, err, "another app")
}
