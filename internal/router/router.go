package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/feedbackboard/backend/internal/api"
	"github.com/feedbackboard/backend/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by SetupRouter
type Handlers struct {
	Users     *api.UserHandler
	Feedbacks *api.FeedbackHandler
	Info      *api.InfoHandler
	Health    *api.HealthHandler
}

// SetupRouter configures the application routes. Every route is served both
// at the root and under /api.
func SetupRouter(h Handlers, tokens middleware.TokenValidator, allowedOrigins []string, log logrus.FieldLogger) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestLogger(log),
		middleware.ErrorHandler(log),
		middleware.CORS(allowedOrigins),
	)

	auth := middleware.AuthMiddleware(tokens)
	for _, group := range []*gin.RouterGroup{&router.RouterGroup, router.Group("/api")} {
		h.Health.RegisterRoutes(group)
		h.Info.RegisterRoutes(group)
		h.Users.RegisterRoutes(group, auth)
		h.Feedbacks.RegisterRoutes(group, auth)
	}

	return router
}
