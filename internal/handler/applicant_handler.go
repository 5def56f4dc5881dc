package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hiresift/hiresift-backend/internal/model"
	"github.com/hiresift/hiresift-backend/internal/repository"
	"github.com/hiresift/hiresift-backend/internal/response"
	"github.com/hiresift/hiresift-backend/internal/service"
	"github.com/hiresift/hiresift-backend/internal/validator"
)

// ApplicantHandler handles candidate intake and the public assessment
// endpoints. Applicants are unauthenticated; knowing the applicant
// UUID is the capability to act on that assessment.
type ApplicantHandler struct {
	applicantService  *service.ApplicantService
	assessmentService *service.AssessmentService
	mediaService      *service.MediaService
}

// NewApplicantHandler creates a new ApplicantHandler.
func NewApplicantHandler(
	applicantService *service.ApplicantService,
	assessmentService *service.AssessmentService,
	mediaService *service.MediaService,
) *ApplicantHandler {
	return &ApplicantHandler{
		applicantService:  applicantService,
		assessmentService: assessmentService,
		mediaService:      mediaService,
	}
}

// SubmitApplication godoc
// POST /api/v1/applicants
// Registers a candidate (multipart: profile fields + optional resume file)
// and opens their assessment session.
func (h *ApplicantHandler) SubmitApplication(c *gin.Context) {
	var req model.SubmitApplicationRequest
	if err := c.ShouldBind(&req); err != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, validator.TranslateErrors(err))
		return
	}

	resumeFilename := ""
	if file, header, err := c.Request.FormFile("resume"); err == nil {
		defer file.Close()
		resumeFilename, err = h.mediaService.SaveResume(file, header)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUnsupportedFileType):
				response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
			case errors.Is(err, service.ErrFileTooLarge):
				response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
			default:
				response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			}
			return
		}
	}

	applicant, err := h.applicantService.SubmitApplication(c.Request.Context(), &req, resumeFilename)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"applicant": applicant})
}

// GetApplicant godoc
// GET /api/v1/applicants/:id
// Returns the applicant's current state.
func (h *ApplicantHandler) GetApplicant(c *gin.Context) {
	id, ok := parseApplicantID(c)
	if !ok {
		return
	}

	applicant, err := h.applicantService.GetApplicant(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"applicant": applicant})
}

// GetCodingQuestions godoc
// GET /api/v1/applicants/:id/assessment/coding
// Returns the coding questions for the applicant's session.
func (h *ApplicantHandler) GetCodingQuestions(c *gin.Context) {
	id, ok := parseApplicantID(c)
	if !ok {
		return
	}

	questions, err := h.assessmentService.GetCodingQuestions(c.Request.Context(), id)
	if err != nil {
		failAssessment(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// SubmitCoding godoc
// POST /api/v1/applicants/:id/assessment/coding
// Grades the coding round and advances the session to the HR round.
func (h *ApplicantHandler) SubmitCoding(c *gin.Context) {
	id, ok := parseApplicantID(c)
	if !ok {
		return
	}

	var req model.CodingSubmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	result, err := h.assessmentService.SubmitCoding(c.Request.Context(), id, &req)
	if err != nil {
		failAssessment(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetHRQuestions godoc
// GET /api/v1/applicants/:id/assessment/hr
// Returns the behavioral questions for the HR round.
func (h *ApplicantHandler) GetHRQuestions(c *gin.Context) {
	id, ok := parseApplicantID(c)
	if !ok {
		return
	}

	questions, err := h.assessmentService.GetHRQuestions(c.Request.Context(), id)
	if err != nil {
		failAssessment(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// SubmitHR godoc
// POST /api/v1/applicants/:id/assessment/hr
// Scores the HR round and completes the assessment with a decision.
func (h *ApplicantHandler) SubmitHR(c *gin.Context) {
	id, ok := parseApplicantID(c)
	if !ok {
		return
	}

	var req model.HRSubmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	result, err := h.assessmentService.SubmitHR(c.Request.Context(), id, &req)
	if err != nil {
		failAssessment(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func parseApplicantID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

func failAssessment(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveSession):
		response.Fail(c, http.StatusNotFound, response.ErrAssessmentNotStarted)
	case errors.Is(err, service.ErrAlreadySubmitted):
		response.Fail(c, http.StatusConflict, response.ErrAssessmentSubmitted)
	case errors.Is(err, service.ErrWrongStage):
		response.Fail(c, http.StatusConflict, response.ErrWrongAssessmentStage)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
