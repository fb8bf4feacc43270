package server

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/feedbackboard/backend/config"
	"github.com/feedbackboard/backend/internal/api"
	"github.com/feedbackboard/backend/internal/cache"
	"github.com/feedbackboard/backend/internal/router"
	"github.com/feedbackboard/backend/internal/service"
	"github.com/feedbackboard/backend/internal/store"
)

var _ service.VoteCache = (*cache.VoteCountCache)(nil)

// Dependencies are the long-lived resources owned by the caller. Redis and
// Avatars are optional.
type Dependencies struct {
	Config  *config.Config
	DB      *gorm.DB
	Redis   *redis.Client
	Avatars service.AvatarStorage
	Log     *logrus.Logger
}

// BuildRouter assembles stores, services and handlers into a router
func BuildRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	users := store.NewUserStore(deps.DB, cfg.BcryptCost)
	feedbacks := store.NewFeedbackStore(deps.DB)
	votes := store.NewVoteStore(deps.DB)

	var (
		voteCache service.VoteCache
		pinger    api.Pinger
	)
	if deps.Redis != nil {
		c := cache.NewVoteCountCache(deps.Redis, cfg.VoteCacheTTL)
		voteCache, pinger = c, c
	}

	authService := service.NewAuthService(cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(users, authService, deps.Avatars, deps.Log)
	feedbackService := service.NewFeedbackService(feedbacks, votes, voteCache, deps.Log)

	return router.SetupRouter(router.Handlers{
		Users:     api.NewUserHandler(userService),
		Feedbacks: api.NewFeedbackHandler(feedbackService),
		Info:      api.NewInfoHandler(),
		Health:    api.NewHealthHandler(deps.DB, pinger),
	}, authService, cfg.CORSAllowedOrigins, deps.Log)
}
