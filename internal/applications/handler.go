package applications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

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

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/applications", h.create)
	rg.GET("/applications", h.list)
	rg.PUT("/applications/:id/status", middleware.RequireAdmin(), h.updateStatus)
}

type createRequest struct {
	CandidateID  string `json:"candidate_id"`
	JobID        string `json:"job_id"`
	TailoredCVID string `json:"tailored_cv_id"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	app, err := h.Svc.Create(c.Request.Context(), userID, req.CandidateID, req.JobID, req.TailoredCVID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrJobNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Job not found", nil)
		case errors.Is(err, ErrCandidateNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Candidate not found", nil)
		case errors.Is(err, ErrForbiddenCV):
			respond.Error(c, http.StatusForbidden, "forbidden", "Invalid tailored CV", nil)
		case errors.Is(err, ErrDuplicate):
			respond.Error(c, http.StatusConflict, "conflict", "Candidate already applied to this job", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create application", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(app))
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
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}

	resp := make([]gin.H, 0, len(list))
	for _, detail := range list {
		item := toResponse(detail.Application)
		item["jobTitle"] = detail.JobTitle
		item["candidateName"] = detail.CandidateName
		item["cvFileName"] = detail.CVFileName
		resp = append(resp, item)
	}
	respond.JSON(c, http.StatusOK, resp)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	app, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Application not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update application", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(app))
}

func toResponse(app Application) gin.H {
	resp := gin.H{
		"id":           app.ID,
		"candidateId":  app.CandidateID,
		"jobId":        app.JobID,
		"tailoredCvId": app.TailoredCVID,
		"status":       app.Status,
		"appliedAt":    app.AppliedAt,
	}
	if app.UpdatedAt != nil {
		resp["updatedAt"] = app.UpdatedAt
	}
	return resp
}
