package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/api/idtoken"
)

// ProviderProfile is what a provider tells us about the signed-in person
type ProviderProfile struct {
	Subject  string
	Email    string
	Name     string
	PhotoURL string
}

// GoogleVerifier validates Google ID tokens against the configured client id
type GoogleVerifier struct {
	clientID string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID, validate: idtoken.Validate}
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*ProviderProfile, error) {
	payload, err := v.validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("google: %w", err)
	}

	claim := func(name string) string {
		s, _ := payload.Claims[name].(string)
		return s
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return nil, errors.New("google: email not verified")
	}

	return &ProviderProfile{
		Subject:  payload.Subject,
		Email:    claim("email"),
		Name:     claim("name"),
		PhotoURL: claim("picture"),
	}, nil
}

// FacebookVerifier validates user access tokens through the Graph API
type FacebookVerifier struct {
	graphURL string
	appID    string
	client   *http.Client
}

func NewFacebookVerifier(graphURL, appID string, client *http.Client) *FacebookVerifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &FacebookVerifier{
		graphURL: strings.TrimRight(graphURL, "/"),
		appID:    appID,
		client:   client,
	}
}

type graphError struct {
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

type graphApp struct {
	graphError
	ID string `json:"id"`
}

type graphMe struct {
	graphError
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

func (v *FacebookVerifier) Verify(ctx context.Context, token string) (*ProviderProfile, error) {
	// The token must have been issued to our app
	var app graphApp
	if err := v.get(ctx, "/app", url.Values{"access_token": {token}}, &app); err != nil {
		return nil, err
	}
	if app.ID != v.appID {
		return nil, errors.New("facebook: token was issued to another app")
	}

	var me graphMe
	params := url.Values{
		"access_token": {token},
		"fields":       {"id,name,email,picture.type(large)"},
	}
	if err := v.get(ctx, "/me", params, &me); err != nil {
		return nil, err
	}
	if me.ID == "" {
		return nil, errors.New("facebook: empty user id")
	}

	return &ProviderProfile{
		Subject:  me.ID,
		Email:    me.Email,
		Name:     me.Name,
		PhotoURL: me.Picture.Data.URL,
	}, nil
}

func (v *FacebookVerifier) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.graphURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("facebook: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("facebook: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		graphError
	}
	raw := json.NewDecoder(resp.Body)
	if resp.StatusCode != http.StatusOK {
		if err := raw.Decode(&body); err == nil && body.Error != nil {
			return fmt.Errorf("facebook: %s (code %d)", body.Error.Message, body.Error.Code)
		}
		return fmt.Errorf("facebook: unexpected status %d", resp.StatusCode)
	}
	if err := raw.Decode(out); err != nil {
		return fmt.Errorf("facebook: decode response: %w", err)
	}
	return nil
}
