package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobassist-backend/internal/services/health"
	"jobassist-backend/internal/shared/config"
	"jobassist-backend/internal/shared/metrics"
	"jobassist-backend/internal/shared/server/middleware"
	"jobassist-backend/internal/shared/server/respond"
)

const (
	apiPrefix = "/api/v1"

	rateLimitGroupAI = "AI"
)

// Routes is implemented by every feature handler.
type Routes interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries the handlers mounted under /api/v1.
type RouterDeps struct {
	Config   config.Config
	Health   *health.Service
	Public   []Routes
	Handlers []Routes
	Limiter  *middleware.RateLimiter
}

// aiPaths are the endpoints that call the language model or fetch remote pages.
var aiPaths = []string{
	apiPrefix + "/optimize-cv",
	apiPrefix + "/generate-cover-letter",
	apiPrefix + "/applications/create",
	apiPrefix + "/extract-job-description",
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
		middleware.Auth(apiPrefix+"/health", apiPrefix+"/metrics", apiPrefix+"/auth/google/"),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				rateLimitGroupAI: middleware.PerMinute(deps.Config.AIRequestsPerMin),
			},
			GroupFor: rateLimitGroup,
			Limiter:  deps.Limiter,
		}),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}

	api := r.Group(apiPrefix)
	api.GET("/health", func(c *gin.Context) {
		report := healthSvc.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})
	api.GET("/metrics", metrics.Handler())

	for _, h := range deps.Public {
		h.RegisterRoutes(api)
	}
	for _, h := range deps.Handlers {
		h.RegisterRoutes(api)
	}

	return r
}

func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return ""
	}
	path := c.Request.URL.Path
	for _, p := range aiPaths {
		if strings.EqualFold(path, p) {
			return rateLimitGroupAI
		}
	}
	return ""
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
