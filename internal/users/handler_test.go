package users_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Kurller/Remote-job-Application-Manager/internal/bootstrap"
	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/config"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		JWTSecret:       "test-secret",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRegisterLoginRefresh(t *testing.T) {
	router := newTestRouter(t)

	resp := postJSON(t, router, "/api/v1/auth/register", map[string]string{
		"email":    "jane@example.com",
		"password": "secret123",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var registered struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&registered); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if registered.User.ID == "" || registered.AccessToken == "" || registered.RefreshToken == "" {
		t.Fatalf("expected user and tokens, got %+v", registered)
	}
	if registered.User.Role != "user" {
		t.Fatalf("expected role user, got %s", registered.User.Role)
	}

	// Duplicate registration is rejected.
	dup := postJSON(t, router, "/api/v1/auth/register", map[string]string{
		"email":    "jane@example.com",
		"password": "secret123",
	})
	if dup.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for duplicate email, got %d", dup.Code)
	}

	login := postJSON(t, router, "/api/v1/auth/login", map[string]string{
		"email":    "jane@example.com",
		"password": "secret123",
	})
	if login.Code != http.StatusOK {
		t.Fatalf("expected status 200 on login, got %d: %s", login.Code, login.Body.String())
	}

	var loggedIn struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(login.Body).Decode(&loggedIn); err != nil {
		t.Fatalf("decode login response: %v", err)
	}

	refresh := postJSON(t, router, "/api/v1/auth/refresh", map[string]string{
		"refreshToken": loggedIn.RefreshToken,
	})
	if refresh.Code != http.StatusOK {
		t.Fatalf("expected status 200 on refresh, got %d: %s", refresh.Code, refresh.Body.String())
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	router := newTestRouter(t)

	resp := postJSON(t, router, "/api/v1/auth/register", map[string]string{
		"email":    "sam@example.com",
		"password": "secret123",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	login := postJSON(t, router, "/api/v1/auth/login", map[string]string{
		"email":    "sam@example.com",
		"password": "wrong-password",
	})
	if login.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", login.Code)
	}
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	router := newTestRouter(t)

	resp := postJSON(t, router, "/api/v1/auth/refresh", map[string]string{
		"refreshToken": "not-a-token",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}
