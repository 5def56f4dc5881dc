package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hiresift/hiresift-backend/internal/config"
	"github.com/hiresift/hiresift-backend/internal/handler"
	"github.com/hiresift/hiresift-backend/internal/middleware"
	"github.com/hiresift/hiresift-backend/internal/response"
	"github.com/hiresift/hiresift-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Applicant *handler.ApplicantHandler
	Dashboard *handler.DashboardHandler
	WS        *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for unauthenticated routes (30 requests per minute per IP).
	publicLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(publicLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
	}

	// ─── 2. Applicant Group (Public, Rate Limited) ─────────────────────
	// Applicants do not authenticate; possession of the applicant UUID
	// grants access to that assessment only.
	applicants := router.Group("/api/v1/applicants")
	applicants.Use(publicLimiter.Middleware())
	{
		applicants.POST("", handlers.Applicant.SubmitApplication)
		applicants.GET("/:id", handlers.Applicant.GetApplicant)
		applicants.GET("/:id/assessment/coding", handlers.Applicant.GetCodingQuestions)
		applicants.POST("/:id/assessment/coding", handlers.Applicant.SubmitCoding)
		applicants.GET("/:id/assessment/hr", handlers.Applicant.GetHRQuestions)
		applicants.POST("/:id/assessment/hr", handlers.Applicant.SubmitHR)
	}

	// ─── 3. Admin Group (JWT) ──────────────────────────────────────────
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.RequireAdminJWT(authService))
	{
		admin.GET("/me", handlers.Auth.Me)
		admin.GET("/dashboard", handlers.Dashboard.GetStats)
		admin.GET("/assessments", handlers.Dashboard.ListAssessments)
		admin.GET("/candidates", handlers.Dashboard.ListCandidates)
		admin.GET("/candidates/:id", handlers.Dashboard.GetCandidate)
		admin.PATCH("/candidates/:id/status", handlers.Dashboard.UpdateCandidateStatus)
		admin.DELETE("/candidates/:id", handlers.Dashboard.DeleteCandidate)
	}

	// ─── 4. WebSocket Group ────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/applicants/:id/progress", handlers.WS.ProgressStream)
	}

	return router
}
