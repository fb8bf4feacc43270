package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feedbackboard/backend/internal/models"
	"github.com/feedbackboard/backend/internal/service"
	"github.com/feedbackboard/backend/internal/types"
)

type FeedbackHandler struct {
	feedbackService service.IFeedbackService
}

func NewFeedbackHandler(feedbackService service.IFeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (h *FeedbackHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	feedbacks := router.Group("/feedbacks")
	{
		feedbacks.POST("", auth, h.CreateFeedback)
		feedbacks.GET("", h.ListFeedback)
		feedbacks.GET("/:id", h.GetFeedback)
		feedbacks.PUT("/:id", auth, h.UpdateFeedback)
		feedbacks.DELETE("/:id", auth, h.DeleteFeedback)
	}

	votes := router.Group("/vote", auth)
	{
		votes.POST("/:feedbackId", h.Vote)
		votes.DELETE("/:feedbackId", h.Unvote)
	}
}

// CreateFeedback creates a new feedback item authored by the caller
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req types.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, fmt.Errorf("%w: %v", service.ErrValidation, err))
		return
	}

	feedback, err := h.feedbackService.Create(c.Request.Context(), userID, req.Title, req.Content, req.Category)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, feedback)
}

// ListFeedback lists feedback with optional category/status filters
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	filters, err := listFilters(c)
	if err != nil {
		handleError(c, err)
		return
	}

	page, err := h.feedbackService.List(c.Request.Context(), filters)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		handleError(c, err)
		return
	}

	feedback, err := h.feedbackService.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}

// UpdateFeedback applies a partial update. Only title, content, category and
// status may be sent.
func (h *FeedbackHandler) UpdateFeedback(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		handleError(c, err)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		handleError(c, fmt.Errorf("%w: %v", service.ErrValidation, err))
		return
	}
	upd, err := models.ParseFeedbackUpdate(body)
	if err != nil {
		handleError(c, err)
		return
	}

	feedback, err := h.feedbackService.Update(c.Request.Context(), userID, id, upd)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}

func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		handleError(c, err)
		return
	}

	if err := h.feedbackService.Delete(c.Request.Context(), userID, id); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FeedbackHandler) Vote(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	feedbackID, err := pathID(c, "feedbackId")
	if err != nil {
		handleError(c, err)
		return
	}

	if err := h.feedbackService.Vote(c.Request.Context(), userID, feedbackID); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, types.MessageResponse{Message: "Vote recorded"})
}

func (h *FeedbackHandler) Unvote(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	feedbackID, err := pathID(c, "feedbackId")
	if err != nil {
		handleError(c, err)
		return
	}

	if err := h.feedbackService.Unvote(c.Request.Context(), userID, feedbackID); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.MessageResponse{Message: "Vote removed"})
}
