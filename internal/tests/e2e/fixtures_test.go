package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// do performs a JSON request against the test server, with an optional
// bearer token.
func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, env.URL(path), reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := env.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func (env *testEnv) get(t *testing.T, path, token string) *http.Response {
	t.Helper()
	return env.do(t, http.MethodGet, path, token, nil)
}

func (env *testEnv) post(t *testing.T, path, token string, body interface{}) *http.Response {
	t.Helper()
	return env.do(t, http.MethodPost, path, token, body)
}

// decodeBody reads the response body as a JSON object and closes it.
func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return out
}

// dataField decodes the body and returns its "data" envelope.
func dataField(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %v", body)
	return data
}

// dataList decodes the body and returns its "data" envelope as a list.
func dataList(t *testing.T, resp *http.Response) []interface{} {
	t.Helper()

	body := decodeBody(t, resp)
	list, ok := body["data"].([]interface{})
	require.True(t, ok, "response has no data list: %v", body)
	return list
}

func registrationBody(email string, role domain.Role) map[string]interface{} {
	return map[string]interface{}{
		"email":      email,
		"password":   "Sehat-2024!",
		"first_name": "Test",
		"last_name":  "Account",
		"phone":      "+6281234567890",
		"role":       string(role),
	}
}

// register creates an account through the public endpoint.
func (env *testEnv) register(t *testing.T, email string, role domain.Role) {
	t.Helper()

	resp := env.post(t, "/auth/register", "", registrationBody(email, role))
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode, "register %s", email)
}

// verificationTokenFor digs the pending verification token for the
// user out of redis, the way the emailed link would carry it.
func (env *testEnv) verificationTokenFor(t *testing.T, email string) string {
	t.Helper()

	user, err := env.UserRepo.FindByEmail(context.Background(), email)
	require.NoError(t, err)

	for _, key := range env.Redis.Keys() {
		if !strings.HasPrefix(key, "verify:tok:") {
			continue
		}
		val, err := env.Redis.Get(key)
		require.NoError(t, err)
		if val == user.ID {
			return strings.TrimPrefix(key, "verify:tok:")
		}
	}

	t.Fatalf("no pending verification token for %s", email)
	return ""
}

// createVerifiedUser registers through the API and marks the email
// verified directly, skipping the token round trip. Returns the user ID.
func (env *testEnv) createVerifiedUser(t *testing.T, email string, role domain.Role) string {
	t.Helper()

	env.register(t, email, role)

	user, err := env.UserRepo.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NoError(t, env.UserRepo.MarkEmailVerified(context.Background(), user.ID))
	return user.ID
}

type loginResult struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
	UserID       string
}

// login authenticates through the public endpoint and returns the tokens.
func (env *testEnv) login(t *testing.T, email string) loginResult {
	t.Helper()

	resp := env.post(t, "/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "Sehat-2024!",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "login %s", email)

	data := dataField(t, resp)
	user, _ := data["user"].(map[string]interface{})
	userID, _ := user["id"].(string)

	return loginResult{
		AccessToken:  data["access_token"].(string),
		RefreshToken: data["refresh_token"].(string),
		SessionID:    data["session_id"].(string),
		UserID:       userID,
	}
}
