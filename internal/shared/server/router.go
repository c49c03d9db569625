package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talentgap-backend/internal/analysis"
	"talentgap-backend/internal/employees"
	"talentgap-backend/internal/roles"
	"talentgap-backend/internal/shared/config"
	"talentgap-backend/internal/shared/metrics"
	"talentgap-backend/internal/shared/server/middleware"
	"talentgap-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config           config.Config
	EmployeesHandler *employees.Handler
	RolesHandler     *roles.Handler
	AnalysisHandler  *analysis.Handler
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
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: matrixGroup,
			Rules: map[string]middleware.RateLimitRule{
				// Matrix and summary walk the full employee x role grid.
				"MATRIX":  {Rate: 5, Burst: 20},
				"DEFAULT": {Rate: 50, Burst: 100},
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	deps.EmployeesHandler.RegisterRoutes(api)
	deps.RolesHandler.RegisterRoutes(api)
	deps.AnalysisHandler.RegisterRoutes(api)

	return r
}

func matrixGroup(c *gin.Context) string {
	switch c.FullPath() {
	case "/api/v1/analysis/matrix", "/api/v1/analysis/summary":
		return "MATRIX"
	default:
		return "DEFAULT"
	}
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
