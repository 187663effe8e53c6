package cvs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/storage/object"
)

var (
	// ErrInvalidInput indicates missing or malformed upload input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates the file is not a PDF or Word document.
	ErrUnsupportedType = errors.New("unsupported file type")
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// Service implements CV upload and retrieval.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
}

// NewService constructs a Service.
func NewService(repo Repo, store object.ObjectStore) *Service {
	return &Service{Repo: repo, Store: store}
}

// Upload stores the file and records its metadata.
func (s *Service) Upload(ctx context.Context, userId, fileName string, r io.Reader) (CV, error) {
	if strings.TrimSpace(userId) == "" {
		return CV{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(fileName) == "" {
		return CV{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return CV{}, ErrUnsupportedType
	}

	storageKey, sizeBytes, mimeType, err := s.Store.Save(ctx, userId, fileName, r)
	if err != nil {
		return CV{}, fmt.Errorf("store file: %w", err)
	}

	cv := CV{
		ID:         uuid.NewString(),
		UserID:     userId,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  sizeBytes,
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, cv); err != nil {
		return CV{}, err
	}
	return cv, nil
}

// List returns the user's CVs newest-first.
func (s *Service) List(ctx context.Context, userId string, limit, offset int) ([]CV, error) {
	return s.Repo.ListByUser(ctx, userId, limit, offset)
}

// Get fetches CV metadata scoped to its owner.
func (s *Service) Get(ctx context.Context, userId, id string) (CV, error) {
	if strings.TrimSpace(id) == "" {
		return CV{}, fmt.Errorf("%w: cv id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userId, id)
}

// Download opens a CV's stored content for streaming.
func (s *Service) Download(ctx context.Context, userId, id string) (CV, io.ReadCloser, error) {
	cv, err := s.Get(ctx, userId, id)
	if err != nil {
		return CV{}, nil, err
	}
	rc, err := s.Store.Open(ctx, cv.StorageKey)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return CV{}, nil, ErrNotFound
		}
		return CV{}, nil, err
	}
	return cv, rc, nil
}

// Delete removes a CV record. Stored bytes are left for async cleanup.
func (s *Service) Delete(ctx context.Context, userId, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: cv id is required", ErrInvalidInput)
	}
	return s.Repo.Delete(ctx, userId, id)
}
