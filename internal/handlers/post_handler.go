package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/devillage/teamproject/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// PostService is the post and interaction logic the handlers call into.
type PostService interface {
	SavePost(ctx context.Context, userID uint, req models.CreatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, postID uint) (*models.Post, error)
	ListPosts(ctx context.Context, category string, page, size int) (*models.PostPage, error)
	EditPost(ctx context.Context, userID, postID uint, req models.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, userID, postID uint) error
	ToggleBookmark(ctx context.Context, userID, postID uint) (*models.Bookmark, error)
	ToggleLike(ctx context.Context, userID, postID uint) (*models.Like, error)
	ReportPost(ctx context.Context, userID, postID uint) (*models.ReportedPost, error)
	ListBookmarks(ctx context.Context, userID uint) ([]models.Post, error)
	CountLikes(ctx context.Context, postID uint) (int64, error)
}

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:post_id", h.GetPost)
	g.PATCH("/posts/:post_id", h.UpdatePost)
	g.DELETE("/posts/:post_id", h.DeletePost)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.SavePost(c.Request().Context(), userID, req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": post})
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}

	post, err := h.postService.GetPost(c.Request().Context(), postID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": post})
}

// GetPosts lists posts, optionally filtered by category
func (h *PostHandler) GetPosts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	result, err := h.postService.ListPosts(c.Request().Context(), c.QueryParam("category"), page, size)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// UpdatePost edits an existing post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.EditPost(c.Request().Context(), userID, postID, req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": post})
}

// DeletePost deletes a post
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}

	if err := h.postService.DeletePost(c.Request().Context(), userID, postID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
