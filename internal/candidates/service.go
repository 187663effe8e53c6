package candidates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidInput indicates missing or malformed candidate input.
var ErrInvalidInput = errors.New("invalid input")

// Service implements candidate operations.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Create validates and stores a new candidate.
func (s *Service) Create(ctx context.Context, firstName, lastName, email string) (Candidate, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.ToLower(strings.TrimSpace(email))

	if firstName == "" || lastName == "" {
		return Candidate{}, fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return Candidate{}, fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}

	candidate := Candidate{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, candidate); err != nil {
		return Candidate{}, err
	}
	return candidate, nil
}

// Get fetches a single candidate.
func (s *Service) Get(ctx context.Context, id string) (Candidate, error) {
	if strings.TrimSpace(id) == "" {
		return Candidate{}, fmt.Errorf("%w: candidate id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns candidates newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Candidate, error) {
	return s.Repo.List(ctx, limit, offset)
}

// Delete removes a candidate.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: candidate id is required", ErrInvalidInput)
	}
	return s.Repo.Delete(ctx, id)
}
