package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidInput indicates missing or malformed job input.
var ErrInvalidInput = errors.New("invalid input")

// Service implements job posting operations.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// CreateInput carries the fields for a new job posting.
type CreateInput struct {
	Title        string
	Company      string
	Description  string
	Location     string
	Type         string
	Requirements string
}

// Create validates and stores a new job posting.
func (s *Service) Create(ctx context.Context, in CreateInput) (Job, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Job{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	job := Job{
		ID:           uuid.NewString(),
		Title:        title,
		Company:      strings.TrimSpace(in.Company),
		Description:  strings.TrimSpace(in.Description),
		Location:     strings.TrimSpace(in.Location),
		Type:         strings.TrimSpace(in.Type),
		Requirements: strings.TrimSpace(in.Requirements),
		Status:       "open",
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// Get fetches a single job.
func (s *Service) Get(ctx context.Context, id string) (Job, error) {
	if strings.TrimSpace(id) == "" {
		return Job{}, fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns jobs matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Job, error) {
	return s.Repo.List(ctx, filter)
}

// UpdateStatus moves a job to a new lifecycle state.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (Job, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !AllowedStatuses[status] {
		return Job{}, fmt.Errorf("%w: status must be one of open, paused, closed", ErrInvalidInput)
	}
	return s.Repo.UpdateStatus(ctx, id, status)
}

// Delete removes a job posting.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}
	return s.Repo.Delete(ctx, id)
}
