package cvs_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
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
		"email":    "uploader@example.com",
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

func uploadFile(t *testing.T, router *gin.Engine, token, fileName string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("cv", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cvs/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCVUploadListDownloadDelete(t *testing.T) {
	router, token := newTestRouter(t)

	content := []byte("%PDF-1.4 test content")
	resp := uploadFile(t, router, token, "resume.pdf", content)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		ID       string `json:"id"`
		FileName string `json:"fileName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if created.ID == "" || created.FileName != "resume.pdf" {
		t.Fatalf("unexpected upload response: %+v", created)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/cvs", nil)
	listReq.Header.Set("Authorization", "Bearer "+token)
	listResp := httptest.NewRecorder()
	router.ServeHTTP(listResp, listReq)
	if listResp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", listResp.Code)
	}
	var list []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("expected one cv, got %+v", list)
	}

	dlReq := httptest.NewRequest(http.MethodGet, "/api/v1/cvs/download/"+created.ID, nil)
	dlReq.Header.Set("Authorization", "Bearer "+token)
	dlResp := httptest.NewRecorder()
	router.ServeHTTP(dlResp, dlReq)
	if dlResp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", dlResp.Code)
	}
	downloaded, _ := io.ReadAll(dlResp.Body)
	if !bytes.Equal(downloaded, content) {
		t.Fatalf("downloaded content mismatch")
	}
	if disposition := dlResp.Header().Get("Content-Disposition"); disposition == "" {
		t.Fatalf("expected Content-Disposition header")
	}

	delReq := httptest.NewRequest(http.MethodDelete, "/api/v1/cvs/delete/"+created.ID, nil)
	delReq.Header.Set("Authorization", "Bearer "+token)
	delResp := httptest.NewRecorder()
	router.ServeHTTP(delResp, delReq)
	if delResp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", delResp.Code)
	}
}

func TestCVUploadRejectsUnsupportedType(t *testing.T) {
	router, token := newTestRouter(t)

	resp := uploadFile(t, router, token, "notes.txt", []byte("plain text"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}
