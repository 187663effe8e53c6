package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Kurller/Remote-job-Application-Manager/internal/applications"
	"github.com/Kurller/Remote-job-Application-Manager/internal/candidates"
	"github.com/Kurller/Remote-job-Application-Manager/internal/cvs"
	"github.com/Kurller/Remote-job-Application-Manager/internal/jobs"
	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/auth"
	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/config"
	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/metrics"
	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/server/middleware"
	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/server/respond"
	"github.com/Kurller/Remote-job-Application-Manager/internal/tailoring"
	"github.com/Kurller/Remote-job-Application-Manager/internal/users"
)

// RouterDeps carries everything the router needs to register routes.
type RouterDeps struct {
	Config              config.Config
	Signer              *auth.Signer
	UsersHandler        *users.Handler
	JobsHandler         *jobs.Handler
	CandidatesHandler   *candidates.Handler
	CVsHandler          *cvs.Handler
	TailoringHandler    *tailoring.Handler
	ApplicationsHandler *applications.Handler
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
		middleware.Auth(deps.Signer),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	deps.UsersHandler.RegisterRoutes(api)
	deps.JobsHandler.RegisterRoutes(api)
	deps.CandidatesHandler.RegisterRoutes(api)
	deps.CVsHandler.RegisterRoutes(api)
	deps.TailoringHandler.RegisterRoutes(api)
	deps.ApplicationsHandler.RegisterRoutes(api)

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
