package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecohub/internal/auth"
	"ecohub/internal/models"
	"ecohub/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAuthenticator struct {
	users map[string]*models.User
}

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*models.User, *auth.Claims, error) {
	switch token {
	case "expired-token":
		return nil, nil, auth.ErrInvalidToken
	case "outage-token":
		return nil, nil, services.Internal(errors.New("dial tcp 10.0.0.5:6379: connect: connection refused"), "failed to check token")
	}
	if u, ok := s.users[token]; ok {
		return u, &auth.Claims{}, nil
	}
	return nil, nil, services.Unauthorized("invalid or expired token")
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	a := stubAuthenticator{users: map[string]*models.User{
		"user-token":  {ID: "u1", Role: models.RoleUser},
		"admin-token": {ID: "a1", Role: models.RoleAdmin},
	}}
	r := gin.New()
	r.Use(RequestID(), Metrics())
	r.GET("/me", AuthRequired(a), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUser(c).ID})
	})
	r.GET("/admin", AuthRequired(a), AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthRequired(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing header", "/me", "", http.StatusUnauthorized},
		{"wrong scheme", "/me", "Basic user-token", http.StatusUnauthorized},
		{"bad token", "/me", "Bearer nope", http.StatusUnauthorized},
		{"expired token", "/me", "Bearer expired-token", http.StatusUnauthorized},
		{"valid token", "/me", "Bearer user-token", http.StatusOK},
		{"lowercase scheme", "/me", "bearer user-token", http.StatusOK},
		{"admin route as user", "/admin", "Bearer user-token", http.StatusForbidden},
		{"admin route as admin", "/admin", "Bearer admin-token", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAuthRequiredStoreFailure(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer outage-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "6379")
}

func TestAuthRequiredRejectionMessage(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer nope")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid or expired token"}`, w.Body.String())
}

func TestRequestIDPropagation(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("  Bearer   abc "))
	assert.Empty(t, bearerToken("Bearer"))
	assert.Empty(t, bearerToken("Token abc"))
}
