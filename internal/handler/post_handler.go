package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modubox/lockerhub/backend-go/internal/database/service"
	"github.com/modubox/lockerhub/backend-go/internal/middleware"
	"github.com/modubox/lockerhub/backend-go/internal/validation"
)

// PostHandler handles HTTP requests for support posts
type PostHandler struct {
	service service.PostService
	logger  *slog.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(service service.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		service: service,
		logger:  logger,
	}
}

type CreatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Create handles POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "로그인이 필요합니다"})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}

	if verr := validation.Validate(
		validation.NotBlank("title", req.Title),
		validation.NotBlank("content", req.Content),
	); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field, "rule": verr.Rule})
		return
	}

	post, err := h.service.CreatePost(userID, req.Title, req.Content, req.Tags)
	if err != nil {
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "서버 오류가 발생했습니다"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// List handles GET /posts
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.service.ListPosts()
	if err != nil {
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "서버 오류가 발생했습니다"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}
