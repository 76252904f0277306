package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/mocks"
)

func authTestRouter(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(tokenSvc, sessionRepo), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		role, _ := c.Get("user_role")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})
	return r
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	r := authTestRouter(mocks.NewMockTokenService(), mocks.NewMockSessionRepository())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header required")
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	r := authTestRouter(mocks.NewMockTokenService(), mocks.NewMockSessionRepository())

	for _, header := range []string{"Bearer", "Basic abc123", "token-without-scheme"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthMiddlewareTokenErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantBody string
	}{
		{"expired", domain.ErrTokenExpired, "Token expired"},
		{"invalid", domain.ErrTokenInvalid, "Invalid token"},
		{"malformed", domain.ErrTokenMalformed, "Invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenSvc := mocks.NewMockTokenService()
			tokenSvc.ValidateAccessTokenFunc = func(string) (*domain.TokenClaims, error) {
				return nil, tt.err
			}
			r := authTestRouter(tokenSvc, mocks.NewMockSessionRepository())

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer some-token")
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestAuthMiddlewareSessionRevoked(t *testing.T) {
	// Valid token, but the session is gone from Redis. The default mock
	// session repository reports not-found.
	r := authTestRouter(mocks.NewMockTokenService(), mocks.NewMockSessionRepository())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Session invalid or expired")
}

func TestAuthMiddlewareSessionUserMismatch(t *testing.T) {
	sessionRepo := mocks.NewMockSessionRepository()
	sessionRepo.FindByIDFunc = func(_ context.Context, sessionID string) (*domain.Session, error) {
		return &domain.Session{ID: sessionID, UserID: "someone-else", ExpiresAt: time.Now().Add(time.Hour)}, nil
	}
	r := authTestRouter(mocks.NewMockTokenService(), sessionRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Session user mismatch")
}

func TestAuthMiddlewareSuccess(t *testing.T) {
	sessionRepo := mocks.NewMockSessionRepository()
	sessionRepo.FindByIDFunc = func(_ context.Context, sessionID string) (*domain.Session, error) {
		return &domain.Session{ID: sessionID, UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}, nil
	}
	r := authTestRouter(mocks.NewMockTokenService(), sessionRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.Contains(t, w.Body.String(), "patient")
}
