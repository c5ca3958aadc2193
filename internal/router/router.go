package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"plagrelay/internal/config"
	"plagrelay/internal/handler"
	"plagrelay/internal/metrics"
	"plagrelay/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
// m may be nil, in which case no metrics are recorded or exposed.
func Setup(
	cfg *config.Config,
	m *metrics.Metrics,
	checkH *handler.CheckHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = cfg.Upload.MaxBytes()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	if m != nil {
		r.Use(middleware.Metrics(m))
	}

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	if m != nil && cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	if !cfg.Server.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")

	plagiarism := api.Group("/plagiarism")
	plagiarism.POST("/submit", checkH.SubmitPlagiarism)
	plagiarism.GET("/status/:id", checkH.PlagiarismStatus)
	plagiarism.GET("/report/:id", checkH.PlagiarismReport)
	plagiarism.GET("/report/:id/export", checkH.ExportPlagiarismReport)

	ai := api.Group("/ai")
	ai.POST("/submit", checkH.SubmitAI)
	ai.GET("/status/:id", checkH.AIStatus)
	ai.GET("/report/:id", checkH.AIReport)
	ai.GET("/report/:id/export", checkH.ExportAIReport)

	return r
}
