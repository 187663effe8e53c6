package tailoring_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Kurller/Remote-job-Application-Manager/internal/bootstrap"
	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/config"
)

type apiFixture struct {
	router *gin.Engine
	token  string
	cvID   string
	jobID  string
}

// newAPIFixture builds the full app against a fake OpenRouter endpoint and
// seeds one uploaded CV and one job through the HTTP surface.
func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	llmSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "A tailored summary."}},
			},
		})
	}))
	t.Cleanup(llmSrv.Close)

	cfg := config.Config{
		Port:             "0",
		Env:              "dev",
		CORSAllowOrigin:  []string{"http://localhost:5173"},
		ObjectStoreType:  "local",
		LocalStoreDir:    t.TempDir(),
		JWTSecret:        "test-secret",
		OpenRouterAPIKey: "test-key",
		LLMModel:         "openai/gpt-4o-mini",
		LLMBaseURL:       llmSrv.URL,
		LLMTimeout:       5 * time.Second,
		LLMMaxTokens:     400,
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}

	f := &apiFixture{router: app.Router}
	f.token = f.register(t)
	f.cvID = f.uploadCV(t)
	f.jobID = f.createJob(t)
	return f
}

func (f *apiFixture) register(t *testing.T) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"email":    "tailor@example.com",
		"password": "secret123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	f.router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("register: status %d: %s", resp.Code, resp.Body.String())
	}
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return out.AccessToken
}

func (f *apiFixture) uploadCV(t *testing.T) string {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile("cv", "base.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(minimalPDF("Original CV content")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cvs/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+f.token)
	resp := httptest.NewRecorder()
	f.router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload cv: status %d: %s", resp.Code, resp.Body.String())
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	return out.ID
}

func (f *apiFixture) createJob(t *testing.T) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"title":       "Backend Engineer",
		"description": "Build Go services",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.token)
	resp := httptest.NewRecorder()
	f.router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create job: status %d: %s", resp.Code, resp.Body.String())
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode job response: %v", err)
	}
	return out.ID
}

func (f *apiFixture) generate(t *testing.T, cvID, jobID string, force bool) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]any{
		"cv_id":  cvID,
		"job_id": jobID,
		"force":  force,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tailored-cvs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.token)
	resp := httptest.NewRecorder()
	f.router.ServeHTTP(resp, req)
	return resp
}

func TestTailoredCVGenerateAndReuse(t *testing.T) {
	f := newAPIFixture(t)

	first := f.generate(t, f.cvID, f.jobID, false)
	if first.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for fresh generation, got %d: %s", first.Code, first.Body.String())
	}
	var created struct {
		ID          string `json:"id"`
		Summary     string `json:"summary"`
		AIGenerated bool   `json:"aiGenerated"`
	}
	if err := json.NewDecoder(first.Body).Decode(&created); err != nil {
		t.Fatalf("decode generate response: %v", err)
	}
	if !created.AIGenerated || created.Summary != "A tailored summary." {
		t.Fatalf("unexpected outcome: %+v", created)
	}

	second := f.generate(t, f.cvID, f.jobID, false)
	if second.Code != http.StatusOK {
		t.Fatalf("expected status 200 for reuse, got %d: %s", second.Code, second.Body.String())
	}
	var reused struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(second.Body).Decode(&reused); err != nil {
		t.Fatalf("decode reuse response: %v", err)
	}
	if reused.ID != created.ID {
		t.Fatalf("reuse must return the same outcome, got %s vs %s", reused.ID, created.ID)
	}

	forced := f.generate(t, f.cvID, f.jobID, true)
	if forced.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for forced regeneration, got %d", forced.Code)
	}
	var regenerated struct {
		ID            string     `json:"id"`
		RegeneratedAt *time.Time `json:"regeneratedAt"`
	}
	if err := json.NewDecoder(forced.Body).Decode(&regenerated); err != nil {
		t.Fatalf("decode forced response: %v", err)
	}
	if regenerated.ID != created.ID {
		t.Fatalf("forced regeneration must update in place")
	}
	if regenerated.RegeneratedAt == nil {
		t.Fatalf("expected regeneratedAt after forced regeneration")
	}
}

func TestTailoredCVRejections(t *testing.T) {
	f := newAPIFixture(t)

	missing := f.generate(t, "", f.jobID, false)
	if missing.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for missing cv_id, got %d", missing.Code)
	}

	unknownJob := f.generate(t, f.cvID, "no-such-job", false)
	if unknownJob.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown job, got %d", unknownJob.Code)
	}
	if !strings.Contains(unknownJob.Body.String(), "Job not found") {
		t.Fatalf("expected Job not found message, got %s", unknownJob.Body.String())
	}

	unknownCV := f.generate(t, "no-such-cv", f.jobID, false)
	if unknownCV.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown cv, got %d", unknownCV.Code)
	}
	if !strings.Contains(unknownCV.Body.String(), "Base CV not found") {
		t.Fatalf("expected Base CV not found message, got %s", unknownCV.Body.String())
	}
}

func TestTailoredCVListAndDownload(t *testing.T) {
	f := newAPIFixture(t)

	gen := f.generate(t, f.cvID, f.jobID, false)
	if gen.Code != http.StatusCreated {
		t.Fatalf("generate: status %d: %s", gen.Code, gen.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(gen.Body).Decode(&created); err != nil {
		t.Fatalf("decode generate response: %v", err)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/tailored-cvs", nil)
	listReq.Header.Set("Authorization", "Bearer "+f.token)
	listResp := httptest.NewRecorder()
	f.router.ServeHTTP(listResp, listReq)
	if listResp.Code != http.StatusOK {
		t.Fatalf("list: status %d", listResp.Code)
	}
	var list []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("expected one outcome, got %+v", list)
	}

	dlReq := httptest.NewRequest(http.MethodGet, "/api/v1/tailored-cvs/download/"+created.ID, nil)
	dlReq.Header.Set("Authorization", "Bearer "+f.token)
	dlResp := httptest.NewRecorder()
	f.router.ServeHTTP(dlResp, dlReq)
	if dlResp.Code != http.StatusOK {
		t.Fatalf("download: status %d: %s", dlResp.Code, dlResp.Body.String())
	}
	if !bytes.HasPrefix(dlResp.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF payload")
	}
	if dlResp.Header().Get("Content-Disposition") == "" {
		t.Fatalf("expected Content-Disposition header")
	}
}

// minimalPDF builds a valid single-page PDF with correct xref offsets.
func minimalPDF(text string) []byte {
	escaped := strings.ReplaceAll(text, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "(", `\(`)
	escaped = strings.ReplaceAll(escaped, ")", `\)`)

	stream := "BT\n/F1 12 Tf\n72 720 Td\n(" + escaped + ") Tj\nET"

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, 6)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")

	offsets[4] = b.Len()
	b.WriteString(fmt.Sprintf("4 0 obj\n<< /Length %d >>\nstream\n", len(stream)))
	b.WriteString(stream)
	b.WriteString("\nendstream\nendobj\n")

	offsets[5] = b.Len()
	b.WriteString("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xrefOffset := b.Len()
	b.WriteString("xref\n0 6\n")
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		b.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	b.WriteString(fmt.Sprintf("trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefOffset))

	return []byte(b.String())
}
