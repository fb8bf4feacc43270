package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feedbackboard/backend/internal/models"
	"github.com/feedbackboard/backend/internal/service"
	"github.com/feedbackboard/backend/internal/types"
)

// multipart overhead allowed on top of the avatar itself
const avatarFormSlack = 1 << 20

type UserHandler struct {
	userService service.IUserService
}

func NewUserHandler(userService service.IUserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	users := router.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.GET("/me", auth, h.Me)
		users.POST("/edit", auth, h.Edit)
		users.POST("/avatar", auth, h.UploadAvatar)
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, fmt.Errorf("%w: %v", service.ErrValidation, err))
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.Email, req.Password, req.Avatar)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, fmt.Errorf("%w: %v", service.ErrValidation, err))
		return
	}

	token, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.TokenResponse{Token: token})
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	user, err := h.userService.Me(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Edit accepts only email, password and avatar; any other key is rejected
// before the store is touched.
func (h *UserHandler) Edit(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		handleError(c, fmt.Errorf("%w: %v", service.ErrValidation, err))
		return
	}
	edit, err := models.ParseUserEdit(body)
	if err != nil {
		handleError(c, err)
		return
	}

	user, err := h.userService.Edit(c.Request.Context(), userID, edit)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxAvatarSize+avatarFormSlack)
	header, err := c.FormFile("avatar")
	if err != nil {
		handleError(c, fmt.Errorf("%w: avatar file is required: %v", service.ErrValidation, err))
		return
	}
	file, err := header.Open()
	if err != nil {
		handleError(c, fmt.Errorf("%w: %v", service.ErrValidation, err))
		return
	}
	defer file.Close()

	user, err := h.userService.UploadAvatar(c.Request.Context(), userID, file)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
