package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"documind-backend/internal/chats"
	"documind-backend/internal/dashboard"
	"documind-backend/internal/documents"
	"documind-backend/internal/flashcards"
	"documind-backend/internal/quizzes"
	"documind-backend/internal/shared/config"
	"documind-backend/internal/shared/metrics"
	"documind-backend/internal/shared/server/middleware"
	"documind-backend/internal/shared/server/respond"
	"documind-backend/internal/studygen"
	"documind-backend/internal/users"
)

// Generation endpoints hit the upstream LLM; keep them well below the
// provider's own rate limits.
var aiRateRule = middleware.RateLimitRule{Rate: 0.5, Burst: 5}

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config           config.Config
	UsersHandler     *users.Handler
	DocumentsHandler *documents.Handler
	FlashcardHandler *flashcards.Handler
	QuizHandler      *quizzes.Handler
	StudyGenHandler  *studygen.Handler
	ChatHandler      *chats.Handler
	DashboardHandler *dashboard.Handler
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

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})

	deps.UsersHandler.RegisterPublicRoutes(api.Group("/auth"))

	authed := api.Group("")
	authed.Use(middleware.Auth([]byte(deps.Config.JWTSecret)))

	deps.UsersHandler.RegisterRoutes(authed.Group("/auth"))
	deps.DocumentsHandler.RegisterRoutes(authed)
	deps.FlashcardHandler.RegisterRoutes(authed)
	deps.QuizHandler.RegisterRoutes(authed)
	deps.ChatHandler.RegisterRoutes(authed)
	deps.DashboardHandler.RegisterRoutes(authed)

	ai := authed.Group("/ai")
	ai.Use(middleware.RateLimit(middleware.NewRateLimiter(nil), aiRateRule))
	deps.StudyGenHandler.RegisterRoutes(ai)

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found")
	})

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
