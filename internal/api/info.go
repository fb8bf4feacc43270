package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feedbackboard/backend/internal/models"
	"github.com/feedbackboard/backend/internal/types"
)

// InfoHandler serves the static status and category labels
type InfoHandler struct{}

func NewInfoHandler() *InfoHandler {
	return &InfoHandler{}
}

func (h *InfoHandler) RegisterRoutes(router *gin.RouterGroup) {
	info := router.Group("/info")
	{
		info.GET("/statuses", h.Statuses)
		info.GET("/categories", h.Categories)
	}
}

func (h *InfoHandler) Statuses(c *gin.Context) {
	c.JSON(http.StatusOK, types.StatusesResponse{Statuses: models.StatusLabels})
}

func (h *InfoHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, types.CategoriesResponse{Categories: models.CategoryLabels})
}
