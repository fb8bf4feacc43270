package types

import "github.com/feedbackboard/backend/internal/models"

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required"`
	Avatar   *string `json:"avatar"`
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// CreateFeedbackRequest represents the request body for submitting feedback
type CreateFeedbackRequest struct {
	Title    string          `json:"title" binding:"required"`
	Content  string          `json:"content" binding:"required"`
	Category models.Category `json:"category" binding:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusesResponse struct {
	Statuses map[models.Status]string `json:"statuses"`
}

type CategoriesResponse struct {
	Categories map[models.Category]string `json:"categories"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache,omitempty"`
}
