package tailoring

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kurller/Remote-job-Application-Manager/internal/cvs"
	"github.com/Kurller/Remote-job-Application-Manager/internal/extract"
	"github.com/Kurller/Remote-job-Application-Manager/internal/jobs"
	"github.com/Kurller/Remote-job-Application-Manager/internal/llm"
	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/metrics"
	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/storage/object"
	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/telemetry"
)

// Composer turns base document bytes plus a summary into a new document.
type Composer interface {
	Compose(base []byte, jobTitle, summary string) ([]byte, error)
}

// Service drives the tailoring pipeline: load inputs, check for a reusable
// outcome, extract text, generate a summary, compose and store the document,
// then persist the outcome row.
type Service struct {
	Repo     Repo
	CVs      cvs.Repo
	Jobs     jobs.Repo
	Store    object.ObjectStore
	LLM      llm.Client // nil when no credential is configured
	Composer Composer

	SummaryTimeout  time.Duration
	PipelineTimeout time.Duration
}

// NewService constructs a Service.
func NewService(repo Repo, cvRepo cvs.Repo, jobRepo jobs.Repo, store object.ObjectStore, client llm.Client, composer Composer, summaryTimeout, pipelineTimeout time.Duration) *Service {
	if summaryTimeout <= 0 {
		summaryTimeout = 20 * time.Second
	}
	if pipelineTimeout <= 0 {
		pipelineTimeout = time.Minute
	}
	return &Service{
		Repo:            repo,
		CVs:             cvRepo,
		Jobs:            jobRepo,
		Store:           store,
		LLM:             client,
		Composer:        composer,
		SummaryTimeout:  summaryTimeout,
		PipelineTimeout: pipelineTimeout,
	}
}

// Generate runs the pipeline for a (user, cv, job) triple. The returned bool
// reports whether a prior outcome was reused.
func (s *Service) Generate(ctx context.Context, userId, cvId, jobId string, force bool) (TailoredCV, bool, error) {
	started := time.Now()
	metrics.IncTailoringStarted()

	// The whole pipeline runs under one deadline so a hung store or database
	// cannot stall the request past the budget.
	ctx, cancel := context.WithTimeout(ctx, s.PipelineTimeout)
	defer cancel()

	outcome, reused, err := s.generate(ctx, userId, cvId, jobId, force)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		metrics.IncTailoringFailed()
		return TailoredCV{}, false, err
	}

	if reused {
		metrics.IncTailoringReused()
	} else {
		metrics.IncTailoringCompleted()
	}
	metrics.ObserveTailoringDurationMs(float64(time.Since(started).Milliseconds()))
	return outcome, reused, nil
}

func (s *Service) generate(ctx context.Context, userId, cvId, jobId string, force bool) (TailoredCV, bool, error) {
	if strings.TrimSpace(cvId) == "" || strings.TrimSpace(jobId) == "" {
		return TailoredCV{}, false, fmt.Errorf("%w: cv_id and job_id are required", ErrInvalidInput)
	}

	job, err := s.Jobs.GetByID(ctx, jobId)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			return TailoredCV{}, false, ErrJobNotFound
		}
		return TailoredCV{}, false, fmt.Errorf("load job: %w", err)
	}

	baseCV, err := s.CVs.GetByID(ctx, userId, cvId)
	if err != nil {
		if errors.Is(err, cvs.ErrNotFound) {
			return TailoredCV{}, false, ErrCVNotFound
		}
		return TailoredCV{}, false, fmt.Errorf("load cv: %w", err)
	}

	baseBytes, err := s.fetchBytes(ctx, baseCV.StorageKey)
	if err != nil {
		return TailoredCV{}, false, fmt.Errorf("%w: %v", ErrBaseUnavailable, err)
	}

	prior, priorErr := s.Repo.GetByTriple(ctx, userId, cvId, jobId)
	hasPrior := priorErr == nil
	if priorErr != nil && !errors.Is(priorErr, ErrNotFound) {
		return TailoredCV{}, false, fmt.Errorf("check reuse: %w", priorErr)
	}

	// Reusable iff the prior run produced a real AI summary and force is off.
	if hasPrior && prior.AIGenerated && !force {
		return prior, true, nil
	}

	summary := s.generateSummary(ctx, job, baseCV, baseBytes)

	composed, err := s.Composer.Compose(baseBytes, job.Title, summary.Text)
	if err != nil {
		return TailoredCV{}, false, fmt.Errorf("compose document: %w", err)
	}

	fileName := tailoredFileName(baseCV.FileName)
	var storageKey string
	if hasPrior {
		// Regeneration overwrites the prior object in place so the old bytes
		// are not orphaned under a stale key.
		storageKey = prior.StorageKey
		if _, err := s.Store.SaveWithKey(ctx, storageKey, "application/pdf", bytes.NewReader(composed)); err != nil {
			return TailoredCV{}, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	} else {
		storageKey, _, _, err = s.Store.Save(ctx, userId, fileName, bytes.NewReader(composed))
		if err != nil {
			return TailoredCV{}, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	}

	now := time.Now().UTC()
	outcome := TailoredCV{
		ID:          uuid.NewString(),
		UserID:      userId,
		CVID:        cvId,
		JobID:       jobId,
		JobTitle:    job.Title,
		FileName:    fileName,
		StorageKey:  storageKey,
		Summary:     summary.Text,
		AIGenerated: summary.Succeeded,
		CreatedAt:   now,
	}

	if hasPrior {
		outcome.ID = prior.ID
		outcome.CreatedAt = prior.CreatedAt
		outcome.RegeneratedAt = &now
		if err := s.Repo.Update(ctx, outcome); err != nil {
			return TailoredCV{}, false, fmt.Errorf("persist outcome: %w", err)
		}
	} else {
		if err := s.Repo.Create(ctx, outcome); err != nil {
			// A concurrent generation won the insert race; serve its row.
			if errors.Is(err, ErrDuplicate) {
				if winner, raceErr := s.Repo.GetByTriple(ctx, userId, cvId, jobId); raceErr == nil {
					return winner, true, nil
				}
			}
			return TailoredCV{}, false, fmt.Errorf("persist outcome: %w", err)
		}
	}

	telemetry.Info("tailoring.complete", map[string]any{
		"userId":      userId,
		"cvId":        cvId,
		"jobId":       jobId,
		"aiGenerated": outcome.AIGenerated,
		"regenerated": hasPrior,
	})
	return outcome, false, nil
}

func (s *Service) fetchBytes(ctx context.Context, storageKey string) ([]byte, error) {
	rc, err := s.Store.Open(ctx, storageKey)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// generateSummary never fails the pipeline. Extraction and generation errors
// degrade to the fallback summary with Succeeded=false.
func (s *Service) generateSummary(ctx context.Context, job jobs.Job, baseCV cvs.CV, baseBytes []byte) llm.Summary {
	text, err := extract.Text(baseBytes, baseCV.MimeType, baseCV.FileName)
	if err != nil {
		telemetry.Info("tailoring.extract_failed", map[string]any{
			"cvId": baseCV.ID,
			"err":  err.Error(),
		})
		text = ""
	}

	if s.LLM == nil {
		return llm.Summary{Text: llm.FallbackSummary, Succeeded: false}
	}

	llmCtx, cancel := context.WithTimeout(ctx, s.SummaryTimeout)
	defer cancel()

	generated, err := s.LLM.GenerateSummary(llmCtx, llm.SummaryInput{
		JobTitle:       job.Title,
		JobDescription: job.Description,
		CVText:         extract.Truncate(text, extract.PromptTextBudget),
	})
	if err != nil || strings.TrimSpace(generated) == "" {
		if err != nil {
			telemetry.Error("tailoring.summary_failed", map[string]any{
				"jobId": job.ID,
				"err":   err.Error(),
			})
		}
		return llm.Summary{Text: llm.FallbackSummary, Succeeded: false}
	}
	return llm.Summary{Text: strings.TrimSpace(generated), Succeeded: true}
}

// Get fetches an outcome scoped to its owner.
func (s *Service) Get(ctx context.Context, userId, id string) (TailoredCV, error) {
	if strings.TrimSpace(id) == "" {
		return TailoredCV{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userId, id)
}

// List returns the user's outcomes newest-first.
func (s *Service) List(ctx context.Context, userId string, limit, offset int) ([]TailoredCV, error) {
	return s.Repo.ListByUser(ctx, userId, limit, offset)
}

// Download opens the generated document for streaming.
func (s *Service) Download(ctx context.Context, userId, id string) (TailoredCV, io.ReadCloser, error) {
	tc, err := s.Get(ctx, userId, id)
	if err != nil {
		return TailoredCV{}, nil, err
	}
	rc, err := s.Store.Open(ctx, tc.StorageKey)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return TailoredCV{}, nil, ErrNotFound
		}
		return TailoredCV{}, nil, err
	}
	return tc, rc, nil
}

func tailoredFileName(baseName string) string {
	name := strings.TrimSuffix(baseName, ".pdf")
	name = strings.TrimSuffix(name, ".docx")
	name = strings.TrimSuffix(name, ".doc")
	if name == "" {
		name = "cv"
	}
	return "tailored_" + name + ".pdf"
}
