package applications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kurller/Remote-job-Application-Manager/internal/candidates"
	"github.com/Kurller/Remote-job-Application-Manager/internal/jobs"
	"github.com/Kurller/Remote-job-Application-Manager/internal/tailoring"
)

var (
	// ErrInvalidInput indicates missing or malformed application input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbiddenCV indicates the tailored CV belongs to another user.
	ErrForbiddenCV = errors.New("tailored cv belongs to another user")

	// ErrJobNotFound indicates the referenced job does not exist.
	ErrJobNotFound = errors.New("job not found")

	// ErrCandidateNotFound indicates the referenced candidate does not exist.
	ErrCandidateNotFound = errors.New("candidate not found")
)

// Service implements application submission and review.
type Service struct {
	Repo       Repo
	Jobs       jobs.Repo
	Candidates candidates.Repo
	Tailored   tailoring.Repo
}

// NewService constructs a Service.
func NewService(repo Repo, jobRepo jobs.Repo, candidateRepo candidates.Repo, tailoredRepo tailoring.Repo) *Service {
	return &Service{
		Repo:       repo,
		Jobs:       jobRepo,
		Candidates: candidateRepo,
		Tailored:   tailoredRepo,
	}
}

// Create validates references and submits a new application.
func (s *Service) Create(ctx context.Context, userId, candidateId, jobId, tailoredCVId string) (Application, error) {
	if strings.TrimSpace(candidateId) == "" || strings.TrimSpace(jobId) == "" || strings.TrimSpace(tailoredCVId) == "" {
		return Application{}, fmt.Errorf("%w: candidate_id, job_id and tailored_cv_id are required", ErrInvalidInput)
	}

	if _, err := s.Jobs.GetByID(ctx, jobId); err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			return Application{}, ErrJobNotFound
		}
		return Application{}, fmt.Errorf("load job: %w", err)
	}

	if _, err := s.Candidates.GetByID(ctx, candidateId); err != nil {
		if errors.Is(err, candidates.ErrNotFound) {
			return Application{}, ErrCandidateNotFound
		}
		return Application{}, fmt.Errorf("load candidate: %w", err)
	}

	// The tailored CV lookup is owner-scoped, so a hit for another user's
	// document comes back as not-found and is treated as a forbidden reference.
	if _, err := s.Tailored.GetByID(ctx, userId, tailoredCVId); err != nil {
		if errors.Is(err, tailoring.ErrNotFound) {
			return Application{}, ErrForbiddenCV
		}
		return Application{}, fmt.Errorf("load tailored cv: %w", err)
	}

	app := Application{
		ID:           uuid.NewString(),
		UserID:       userId,
		CandidateID:  candidateId,
		JobID:        jobId,
		TailoredCVID: tailoredCVId,
		Status:       "pending",
		AppliedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// List returns the user's applications enriched with display fields.
func (s *Service) List(ctx context.Context, userId string, limit, offset int) ([]Detail, error) {
	apps, err := s.Repo.ListByUser(ctx, userId, limit, offset)
	if err != nil {
		return nil, err
	}

	out := make([]Detail, 0, len(apps))
	for _, app := range apps {
		detail := Detail{Application: app}
		if job, err := s.Jobs.GetByID(ctx, app.JobID); err == nil {
			detail.JobTitle = job.Title
		}
		if candidate, err := s.Candidates.GetByID(ctx, app.CandidateID); err == nil {
			detail.CandidateName = candidate.FirstName + " " + candidate.LastName
		}
		if tc, err := s.Tailored.GetByID(ctx, userId, app.TailoredCVID); err == nil {
			detail.CVFileName = tc.FileName
		}
		out = append(out, detail)
	}
	return out, nil
}

// UpdateStatus moves an application to a new review state.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (Application, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !AllowedStatuses[status] {
		return Application{}, fmt.Errorf("%w: status must be one of pending, reviewed, shortlisted, rejected, hired", ErrInvalidInput)
	}
	return s.Repo.UpdateStatus(ctx, id, status)
}
