package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hiresift/hiresift-backend/internal/middleware"
	"github.com/hiresift/hiresift-backend/internal/model"
	"github.com/hiresift/hiresift-backend/internal/response"
	"github.com/hiresift/hiresift-backend/internal/service"
	"github.com/hiresift/hiresift-backend/internal/validator"
)

// AuthHandler handles operator authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// POST /api/v1/auth/login
// Authenticates the operator and returns a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.AdminLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token})
}

// Me godoc
// GET /api/v1/admin/me
// Returns the authenticated operator's identity.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"username": claims.Username})
}
