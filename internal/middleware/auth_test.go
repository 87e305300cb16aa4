package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/workwise/backend/internal/middleware"
	"github.com/pageza/workwise/backend/internal/models"
	"github.com/pageza/workwise/backend/internal/service"
	"github.com/pageza/workwise/backend/internal/testhelpers"
	"github.com/pageza/workwise/backend/internal/types"
)

func setupAuthRouter(resolver middleware.IdentityResolver, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/required", middleware.RequireAuth(resolver), handler)
	router.GET("/optional", middleware.OptionalAuth(resolver), handler)
	return router
}

func echoIdentity(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"identity": ""})
		return
	}
	c.JSON(http.StatusOK, gin.H{"identity": identity.ID.String()})
}

func TestRequireAuth(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "a@example.com"}
	auth := new(testhelpers.MockAuthService)
	auth.On("ValidateToken", "good").Return(&types.TokenClaims{IdentityID: user.ID}, nil)
	auth.On("ValidateToken", "bad").Return(nil, service.ErrInvalidToken)
	auth.On("CurrentIdentity", mock.Anything, user.ID).Return(user, nil)
	router := setupAuthRouter(auth, echoIdentity)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"invalid token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/required", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), user.ID.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestRequireAuthDeletedIdentity(t *testing.T) {
	id := uuid.New()
	auth := new(testhelpers.MockAuthService)
	auth.On("ValidateToken", "orphan").Return(&types.TokenClaims{IdentityID: id}, nil)
	auth.On("CurrentIdentity", mock.Anything, id).Return(nil, service.ErrIdentityNotFound)
	router := setupAuthRouter(auth, echoIdentity)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/required", nil)
	req.Header.Set("Authorization", "Bearer orphan")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "session is no longer valid")
}

func TestOptionalAuth(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	auth := new(testhelpers.MockAuthService)
	auth.On("ValidateToken", "good").Return(&types.TokenClaims{IdentityID: user.ID}, nil)
	auth.On("ValidateToken", "bad").Return(nil, service.ErrInvalidToken)
	auth.On("CurrentIdentity", mock.Anything, user.ID).Return(user, nil)
	router := setupAuthRouter(auth, echoIdentity)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/optional", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"identity":""}`, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer good")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer bad")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
