package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/mocks"
)

type authHandlerFixture struct {
	authSvc         *mocks.MockAuthService
	verificationSvc *mocks.MockVerificationService
	userRepo        *mocks.MockUserRepository
	router          *gin.Engine
}

func newAuthHandlerFixture() *authHandlerFixture {
	gin.SetMode(gin.TestMode)
	f := &authHandlerFixture{
		authSvc:         mocks.NewMockAuthService(),
		verificationSvc: mocks.NewMockVerificationService(),
		userRepo:        mocks.NewMockUserRepository(),
	}
	h := NewAuthHandlers(f.authSvc, f.verificationSvc, f.userRepo)

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/verify-email", h.VerifyEmail)
	r.POST("/auth/verify-email/resend", h.ResendVerification)
	r.POST("/auth/refresh", h.Refresh)
	r.GET("/auth/me", func(c *gin.Context) { c.Set("user_id", "user-1") }, h.Me)
	r.POST("/auth/logout", func(c *gin.Context) { c.Set("session_id", "sess_1") }, h.Logout)
	f.router = r
	return f
}

func (f *authHandlerFixture) post(t *testing.T, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)
	return w
}

func registerBody() gin.H {
	return gin.H{
		"email":      "ani@example.com",
		"password":   "s3cret!",
		"first_name": "Ani",
		"last_name":  "Wijaya",
		"role":       "patient",
	}
}

func TestRegisterHandler(t *testing.T) {
	f := newAuthHandlerFixture()

	var gotReg domain.Registration
	f.authSvc.RegisterFunc = func(_ context.Context, reg domain.Registration) (*domain.User, error) {
		gotReg = reg
		return &domain.User{ID: "user-1", Email: reg.Email}, nil
	}

	w := f.post(t, "/auth/register", registerBody())
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "verify your email")
	assert.Equal(t, domain.RolePatient, gotReg.Role)
	assert.Equal(t, "Ani", gotReg.FirstName)
}

func TestRegisterHandlerRejectsUnknownRole(t *testing.T) {
	f := newAuthHandlerFixture()
	f.authSvc.RegisterFunc = func(context.Context, domain.Registration) (*domain.User, error) {
		t.Error("service must not be called for an unknown role")
		return nil, nil
	}

	body := registerBody()
	body["role"] = "superuser"
	w := f.post(t, "/auth/register", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterHandlerDuplicate(t *testing.T) {
	f := newAuthHandlerFixture()
	f.authSvc.RegisterFunc = func(context.Context, domain.Registration) (*domain.User, error) {
		return nil, domain.ErrUserAlreadyExists
	}

	w := f.post(t, "/auth/register", registerBody())
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginHandler(t *testing.T) {
	f := newAuthHandlerFixture()

	w := f.post(t, "/auth/login", gin.H{"email": "ani@example.com", "password": "pw"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")
	assert.Contains(t, w.Body.String(), "refresh_token")
	assert.Contains(t, w.Body.String(), `"role":"patient"`)
}

func TestLoginHandlerFailures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"inactive account", domain.ErrUserInactive, http.StatusForbidden},
		{"unverified email", domain.ErrEmailNotVerified, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthHandlerFixture()
			f.authSvc.LoginFunc = func(context.Context, string, string) (*domain.AuthResult, error) {
				return nil, tt.err
			}

			w := f.post(t, "/auth/login", gin.H{"email": "a@example.com", "password": "pw"})
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestVerifyEmailHandler(t *testing.T) {
	f := newAuthHandlerFixture()
	f.verificationSvc.VerifyFunc = func(_ context.Context, token string) (string, error) {
		if token == "good" {
			return "user-1", nil
		}
		return "", domain.ErrVerificationNotFound
	}

	w := f.post(t, "/auth/verify-email", gin.H{"token": "good"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")

	w = f.post(t, "/auth/verify-email", gin.H{"token": "bad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResendVerificationHandler(t *testing.T) {
	f := newAuthHandlerFixture()
	f.userRepo.FindByEmailFunc = func(_ context.Context, email string) (*domain.User, error) {
		return &domain.User{ID: "user-1", Email: email, EmailVerified: false}, nil
	}
	generated := false
	f.verificationSvc.GenerateFunc = func(_ context.Context, email, userID string) (*domain.VerificationRequest, error) {
		generated = true
		return &domain.VerificationRequest{Email: email, UserID: userID, Token: "tok"}, nil
	}

	w := f.post(t, "/auth/verify-email/resend", gin.H{"email": "ani@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, generated)
}

func TestResendVerificationHandlerThrottled(t *testing.T) {
	f := newAuthHandlerFixture()
	f.userRepo.FindByEmailFunc = func(_ context.Context, email string) (*domain.User, error) {
		return &domain.User{ID: "user-1", Email: email, EmailVerified: false}, nil
	}
	f.verificationSvc.CanResendFunc = func(context.Context, string) (bool, int64, error) {
		return false, 42, nil
	}

	w := f.post(t, "/auth/verify-email/resend", gin.H{"email": "ani@example.com"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"retry_after":42`)
}

func TestResendVerificationHandlerDoesNotLeakAccounts(t *testing.T) {
	f := newAuthHandlerFixture()
	// Default user repo: not found.

	w := f.post(t, "/auth/verify-email/resend", gin.H{"email": "ghost@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "If the account exists")
}

func TestResendVerificationHandlerAlreadyVerified(t *testing.T) {
	f := newAuthHandlerFixture()
	f.userRepo.FindByEmailFunc = func(_ context.Context, email string) (*domain.User, error) {
		return &domain.User{ID: "user-1", Email: email, EmailVerified: true}, nil
	}

	w := f.post(t, "/auth/verify-email/resend", gin.H{"email": "ani@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshHandler(t *testing.T) {
	f := newAuthHandlerFixture()
	f.authSvc.RefreshTokenFunc = func(_ context.Context, token string) (*domain.AuthResult, error) {
		if token != "good_refresh" {
			return nil, domain.ErrTokenInvalid
		}
		return &domain.AuthResult{AccessToken: "new_access", ExpiresIn: 900}, nil
	}

	w := f.post(t, "/auth/refresh", gin.H{"refresh_token": "good_refresh"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "new_access")

	w = f.post(t, "/auth/refresh", gin.H{"refresh_token": "bad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeHandler(t *testing.T) {
	f := newAuthHandlerFixture()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"patient"`)
	assert.Contains(t, w.Body.String(), `"email_verified":true`)
}

func TestLogoutHandler(t *testing.T) {
	f := newAuthHandlerFixture()
	loggedOut := ""
	f.authSvc.LogoutFunc = func(_ context.Context, sessionID string) error {
		loggedOut = sessionID
		return nil
	}

	w := f.post(t, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sess_1", loggedOut)
}
