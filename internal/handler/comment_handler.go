package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/modubox/lockerhub/backend-go/internal/database/repository"
	"github.com/modubox/lockerhub/backend-go/internal/database/service"
	"github.com/modubox/lockerhub/backend-go/internal/middleware"
	"github.com/modubox/lockerhub/backend-go/internal/validation"
)

// CommentHandler handles HTTP requests for comments
type CommentHandler struct {
	service service.CommentService
	logger  *slog.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(service service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		logger:  logger,
	}
}

type CreateCommentRequest struct {
	PostID  float64 `json:"post_id"`
	Content string  `json:"content"`
}

// Create handles POST /comments
func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "로그인이 필요합니다"})
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}

	if verr := validation.Validate(
		validation.Integer("post_id", req.PostID),
		validation.NotBlank("content", req.Content),
	); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field, "rule": verr.Rule})
		return
	}

	comment, err := h.service.CreateComment(uint(req.PostID), userID, req.Content)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// List handles GET /comments?postId=
func (h *CommentHandler) List(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Query("postId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postId은(는) 정수여야 합니다"})
		return
	}

	comments, err := h.service.ListByPost(uint(postID))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// Delete handles DELETE /comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := pathID(c)
	if !ok {
		return
	}

	userID, uok := middleware.GetUserID(c)
	authority, aok := middleware.GetAuthority(c)
	if !uok || !aok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "로그인이 필요합니다"})
		return
	}

	if err := h.service.DeleteComment(commentID, userID, authority); err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Restore handles PATCH /comments/restore/:id (ADMIN)
func (h *CommentHandler) Restore(c *gin.Context) {
	commentID, ok := pathID(c)
	if !ok {
		return
	}

	comment, err := h.service.RestoreComment(commentID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// respondServiceError maps service errors to HTTP responses
func (h *CommentHandler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommentNotDeleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotCommentAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "존재하지 않는 댓글입니다"})
	case errors.Is(err, repository.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "존재하지 않는 게시글입니다"})
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "서버 오류가 발생했습니다"})
	}
}
