package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/applications"
	"recruit-backend/internal/companies"
	"recruit-backend/internal/evaluations"
	"recruit-backend/internal/postings"
	"recruit-backend/internal/shared/config"
	"recruit-backend/internal/shared/server/middleware"
	"recruit-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router registers.
type RouterDeps struct {
	Config              config.Config
	CompaniesHandler    *companies.Handler
	PostingsHandler     *postings.Handler
	ApplicationsHandler *applications.Handler
	EvaluationsHandler  *evaluations.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.CompaniesHandler.RegisterRoutes(api)
	deps.PostingsHandler.RegisterRoutes(api)
	deps.ApplicationsHandler.RegisterRoutes(api)
	deps.EvaluationsHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
