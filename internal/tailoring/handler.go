package tailoring

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kurller/Remote-job-Application-Manager/internal/compose"
	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/server/middleware"
	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches tailored-CV routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tailored-cvs", h.generate)
	rg.GET("/tailored-cvs", h.list)
	rg.GET("/tailored-cvs/download/:id", h.download)
}

type generateRequest struct {
	CVID  string `json:"cv_id"`
	JobID string `json:"job_id"`
	Force bool   `json:"force"`
}

func (h *Handler) generate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	outcome, reused, err := h.Svc.Generate(c.Request.Context(), userID, req.CVID, req.JobID, req.Force)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "cv_id and job_id are required", nil)
		case errors.Is(err, ErrJobNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Job not found", nil)
		case errors.Is(err, ErrCVNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Base CV not found", nil)
		case errors.Is(err, ErrBaseUnavailable):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Base CV inaccessible", nil)
		case errors.Is(err, compose.ErrMalformedSource):
			respond.Error(c, http.StatusInternalServerError, "compose_error", "Base CV could not be processed", nil)
		case errors.Is(err, ErrStorageUnavailable):
			respond.Error(c, http.StatusInternalServerError, "storage_error", "Failed to store tailored CV", nil)
		case errors.Is(err, ErrTimeout):
			respond.Error(c, http.StatusGatewayTimeout, "timeout", "Tailoring timed out", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate tailored cv", nil)
		}
		return
	}

	c.Set("tailoredCvId", outcome.ID)
	status := http.StatusCreated
	if reused {
		status = http.StatusOK
	}
	respond.JSON(c, status, toResponse(outcome))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	list, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list tailored cvs", nil)
		return
	}

	resp := make([]gin.H, 0, len(list))
	for _, tc := range list {
		resp = append(resp, toResponse(tc))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) download(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	tc, rc, err := h.Svc.Download(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Tailored CV not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to download tailored cv", nil)
		}
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tc.FileName))
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func toResponse(tc TailoredCV) gin.H {
	resp := gin.H{
		"id":          tc.ID,
		"cvId":        tc.CVID,
		"jobId":       tc.JobID,
		"jobTitle":    tc.JobTitle,
		"fileName":    tc.FileName,
		"summary":     tc.Summary,
		"aiGenerated": tc.AIGenerated,
		"createdAt":   tc.CreatedAt,
	}
	if tc.RegeneratedAt != nil {
		resp["regeneratedAt"] = tc.RegeneratedAt
	}
	return resp
}
