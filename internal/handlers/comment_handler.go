package handlers

import (
	"context"
	"net/http"

	"github.com/devillage/teamproject/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// CommentService is the comment logic the handlers call into.
type CommentService interface {
	CreateComment(ctx context.Context, userID, postID uint, content string) (*models.Comment, error)
	ListComments(ctx context.Context, postID uint) ([]models.Comment, error)
	EditComment(ctx context.Context, userID, postID, commentID uint, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, userID, postID, commentID uint) error
	CreateReComment(ctx context.Context, userID, postID, commentID uint, content string) (*models.ReComment, error)
	EditReComment(ctx context.Context, userID, postID, commentID, reCommentID uint, content string) (*models.ReComment, error)
	DeleteReComment(ctx context.Context, userID, postID, commentID, reCommentID uint) error
}

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentService CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetComments)
	g.PATCH("/posts/:post_id/comments/:comment_id", h.UpdateComment)
	g.DELETE("/posts/:post_id/comments/:comment_id", h.DeleteComment)
	g.POST("/posts/:post_id/comments/:comment_id/re-comments", h.CreateReComment)
	g.PATCH("/posts/:post_id/comments/:comment_id/re-comments/:re_comment_id", h.UpdateReComment)
	g.DELETE("/posts/:post_id/comments/:comment_id/re-comments/:re_comment_id", h.DeleteReComment)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, postID, err := callerAndPost(c)
	if err != nil {
		return err
	}
	var req models.CommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.CreateComment(c.Request().Context(), userID, postID, req.Content)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": comment})
}

// GetComments retrieves all comments for a specific post
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}

	comments, err := h.commentService.ListComments(c.Request().Context(), postID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": comments})
}

// UpdateComment updates an existing comment
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	userID, postID, err := callerAndPost(c)
	if err != nil {
		return err
	}
	commentID, err := parseIDParam(c, "comment_id")
	if err != nil {
		return err
	}
	var req models.CommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.EditComment(c.Request().Context(), userID, postID, commentID, req.Content)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": comment})
}

// DeleteComment deletes a comment
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, postID, err := callerAndPost(c)
	if err != nil {
		return err
	}
	commentID, err := parseIDParam(c, "comment_id")
	if err != nil {
		return err
	}

	if err := h.commentService.DeleteComment(c.Request().Context(), userID, postID, commentID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateReComment replies to a comment
func (h *CommentHandler) CreateReComment(c echo.Context) error {
	userID, postID, err := callerAndPost(c)
	if err != nil {
		return err
	}
	commentID, err := parseIDParam(c, "comment_id")
	if err != nil {
		return err
	}
	var req models.CommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	reComment, err := h.commentService.CreateReComment(c.Request().Context(), userID, postID, commentID, req.Content)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": reComment})
}

// UpdateReComment edits a reply
func (h *CommentHandler) UpdateReComment(c echo.Context) error {
	userID, postID, err := callerAndPost(c)
	if err != nil {
		return err
	}
	commentID, err := parseIDParam(c, "comment_id")
	if err != nil {
		return err
	}
	reCommentID, err := parseIDParam(c, "re_comment_id")
	if err != nil {
		return err
	}
	var req models.CommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	reComment, err := h.commentService.EditReComment(c.Request().Context(), userID, postID, commentID, reCommentID, req.Content)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": reComment})
}

// DeleteReComment deletes a reply
func (h *CommentHandler) DeleteReComment(c echo.Context) error {
	userID, postID, err := callerAndPost(c)
	if err != nil {
		return err
	}
	commentID, err := parseIDParam(c, "comment_id")
	if err != nil {
		return err
	}
	reCommentID, err := parseIDParam(c, "re_comment_id")
	if err != nil {
		return err
	}

	if err := h.commentService.DeleteReComment(c.Request().Context(), userID, postID, commentID, reCommentID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
