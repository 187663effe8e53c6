package applications_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Kurller/Remote-job-Application-Manager/internal/applications"
	"github.com/Kurller/Remote-job-Application-Manager/internal/candidates"
	"github.com/Kurller/Remote-job-Application-Manager/internal/jobs"
	"github.com/Kurller/Remote-job-Application-Manager/internal/tailoring"
)

type fixture struct {
	svc         *applications.Service
	userID      string
	candidateID string
	jobID       string
	tailoredID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	jobRepo := jobs.NewMemoryRepo()
	candidateRepo := candidates.NewMemoryRepo()
	tailoredRepo := tailoring.NewMemoryRepo()
	repo := applications.NewMemoryRepo()

	userID := uuid.NewString()
	jobID := uuid.NewString()
	candidateID := uuid.NewString()
	tailoredID := uuid.NewString()

	if err := jobRepo.Create(ctx, jobs.Job{ID: jobID, Title: "Backend Engineer", Status: "open", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("seed job: %v", err)
	}
	if err := candidateRepo.Create(ctx, candidates.Candidate{ID: candidateID, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("seed candidate: %v", err)
	}
	if err := tailoredRepo.Create(ctx, tailoring.TailoredCV{
		ID:         tailoredID,
		UserID:     userID,
		CVID:       uuid.NewString(),
		JobID:      jobID,
		JobTitle:   "Backend Engineer",
		FileName:   "tailored_base.pdf",
		StorageKey: "key",
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed tailored cv: %v", err)
	}

	return &fixture{
		svc:         applications.NewService(repo, jobRepo, candidateRepo, tailoredRepo),
		userID:      userID,
		candidateID: candidateID,
		jobID:       jobID,
		tailoredID:  tailoredID,
	}
}

func TestCreateAndListApplications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.svc.Create(ctx, f.userID, f.candidateID, f.jobID, f.tailoredID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if app.Status != "pending" {
		t.Fatalf("expected status pending, got %s", app.Status)
	}

	list, err := f.svc.List(ctx, f.userID, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one application, got %d", len(list))
	}
	detail := list[0]
	if detail.JobTitle != "Backend Engineer" {
		t.Fatalf("expected job title join, got %q", detail.JobTitle)
	}
	if detail.CandidateName != "Ada Lovelace" {
		t.Fatalf("expected candidate name join, got %q", detail.CandidateName)
	}
	if detail.CVFileName != "tailored_base.pdf" {
		t.Fatalf("expected cv file name join, got %q", detail.CVFileName)
	}
}

func TestCreateRejectsDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.userID, f.candidateID, f.jobID, f.tailoredID); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := f.svc.Create(ctx, f.userID, f.candidateID, f.jobID, f.tailoredID)
	if !errors.Is(err, applications.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestCreateRejectsForeignTailoredCV(t *testing.T) {
	f := newFixture(t)

	otherUser := uuid.NewString()
	_, err := f.svc.Create(context.Background(), otherUser, f.candidateID, f.jobID, f.tailoredID)
	if !errors.Is(err, applications.ErrForbiddenCV) {
		t.Fatalf("expected ErrForbiddenCV, got %v", err)
	}
}

func TestCreateValidatesReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.userID, "", f.jobID, f.tailoredID); !errors.Is(err, applications.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := f.svc.Create(ctx, f.userID, f.candidateID, uuid.NewString(), f.tailoredID); !errors.Is(err, applications.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if _, err := f.svc.Create(ctx, f.userID, uuid.NewString(), f.jobID, f.tailoredID); !errors.Is(err, applications.ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.svc.Create(ctx, f.userID, f.candidateID, f.jobID, f.tailoredID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := f.svc.UpdateStatus(ctx, app.ID, "shortlisted")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != "shortlisted" {
		t.Fatalf("expected shortlisted, got %s", updated.Status)
	}
	if updated.UpdatedAt == nil {
		t.Fatalf("expected updatedAt to be set")
	}

	if _, err := f.svc.UpdateStatus(ctx, app.ID, "archived"); !errors.Is(err, applications.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
}
