package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hiresift/hiresift-backend/internal/model"
	"github.com/hiresift/hiresift-backend/internal/repository"
	"github.com/hiresift/hiresift-backend/internal/response"
	"github.com/hiresift/hiresift-backend/internal/service"
)

// DashboardHandler handles the operator dashboard endpoints.
type DashboardHandler struct {
	dashboardService *service.DashboardService
	applicantService *service.ApplicantService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService, applicantService *service.ApplicantService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		applicantService: applicantService,
	}
}

// GetStats godoc
// GET /api/v1/admin/dashboard
// Returns candidate pool statistics.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// ListCandidates godoc
// GET /api/v1/admin/candidates?status=&page=&per_page=
// Lists applicants with pagination and optional status filter.
func (h *DashboardHandler) ListCandidates(c *gin.Context) {
	var status *model.ApplicantStatus
	if raw := c.Query("status"); raw != "" {
		s := model.ApplicantStatus(raw)
		status = &s
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	applicants, total, err := h.applicantService.ListApplicants(c.Request.Context(), status, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	totalPages := (total + perPage - 1) / perPage
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"candidates": applicants}, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

// GetCandidate godoc
// GET /api/v1/admin/candidates/:id
// Returns the full assessment record for one candidate.
func (h *DashboardHandler) GetCandidate(c *gin.Context) {
	id, ok := parseApplicantID(c)
	if !ok {
		return
	}

	detail, err := h.dashboardService.GetCandidateDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicantNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// UpdateCandidateStatus godoc
// PATCH /api/v1/admin/candidates/:id/status
// Manually approves or rejects a candidate.
func (h *DashboardHandler) UpdateCandidateStatus(c *gin.Context) {
	id, ok := parseApplicantID(c)
	if !ok {
		return
	}

	var req struct {
		Status model.ApplicantStatus `json:"status" binding:"required,oneof=approved rejected"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrValidation)
		return
	}

	if err := h.dashboardService.UpdateCandidateStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrApplicantNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// ListAssessments godoc
// GET /api/v1/admin/assessments
// Returns one overview row per applicant.
func (h *DashboardHandler) ListAssessments(c *gin.Context) {
	overviews, err := h.dashboardService.ListAssessments(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assessments": overviews})
}

// DeleteCandidate godoc
// DELETE /api/v1/admin/candidates/:id
// Removes a candidate and all their assessment artifacts.
func (h *DashboardHandler) DeleteCandidate(c *gin.Context) {
	id, ok := parseApplicantID(c)
	if !ok {
		return
	}

	if err := h.applicantService.DeleteApplicant(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrApplicantNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
