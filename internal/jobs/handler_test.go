package jobs_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Kurller/Remote-job-Application-Manager/internal/bootstrap"
	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/config"
)

func newTestRouter(t *testing.T) (*gin.Engine, string) {
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

	body, _ := json.Marshal(map[string]string{
		"email":    "recruiter@example.com",
		"password": "secret123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("register test user: status %d: %s", resp.Code, resp.Body.String())
	}

	var registered struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&registered); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return app.Router, registered.AccessToken
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestJobsCRUD(t *testing.T) {
	router, token := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/jobs", token, map[string]string{
		"title":       "Backend Engineer",
		"company":     "Acme",
		"location":    "Remote",
		"type":        "full-time",
		"description": "Build services",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected job id, got empty")
	}
	if created.Status != "open" {
		t.Fatalf("expected status open, got %s", created.Status)
	}

	get := doJSON(t, router, http.MethodGet, "/api/v1/jobs/"+created.ID, token, nil)
	if get.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", get.Code)
	}

	list := doJSON(t, router, http.MethodGet, "/api/v1/jobs?type=full-time", token, nil)
	if list.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", list.Code)
	}
	var jobList []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(list.Body).Decode(&jobList); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(jobList) != 1 || jobList[0].ID != created.ID {
		t.Fatalf("expected one matching job, got %+v", jobList)
	}

	update := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/jobs/%s/status", created.ID), token, map[string]string{
		"status": "closed",
	})
	if update.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", update.Code, update.Body.String())
	}
	var updated struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(update.Body).Decode(&updated); err != nil {
		t.Fatalf("decode update response: %v", err)
	}
	if updated.Status != "closed" {
		t.Fatalf("expected status closed, got %s", updated.Status)
	}

	del := doJSON(t, router, http.MethodDelete, "/api/v1/jobs/"+created.ID, token, nil)
	if del.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", del.Code)
	}

	missing := doJSON(t, router, http.MethodGet, "/api/v1/jobs/"+created.ID, token, nil)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", missing.Code)
	}
}

func TestJobsCreateRequiresTitle(t *testing.T) {
	router, token := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/jobs", token, map[string]string{
		"company": "Acme",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestJobsRequireAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/api/v1/jobs", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", resp.Code)
	}
}

func TestJobsUpdateStatusRejectsUnknownState(t *testing.T) {
	router, token := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/jobs", token, map[string]string{
		"title": "QA Engineer",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	update := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/jobs/%s/status", created.ID), token, map[string]string{
		"status": "archived",
	})
	if update.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", update.Code)
	}
}
