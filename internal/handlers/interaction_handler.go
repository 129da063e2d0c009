package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// InteractionHandler handles bookmarks, likes and reports on posts
type InteractionHandler struct {
	postService PostService
}

func NewInteractionHandler(postService PostService) *InteractionHandler {
	return &InteractionHandler{postService: postService}
}

// RegisterInteractionRoutes registers bookmark, like and report routes
func (h *InteractionHandler) RegisterInteractionRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/bookmark", h.ToggleBookmark)
	g.POST("/posts/:post_id/like", h.ToggleLike)
	g.GET("/posts/:post_id/likes/count", h.GetLikesCount)
	g.POST("/posts/:post_id/report", h.ReportPost)
}

// ToggleBookmark adds the bookmark, or removes it if the caller already has one.
func (h *InteractionHandler) ToggleBookmark(c echo.Context) error {
	userID, postID, err := callerAndPost(c)
	if err != nil {
		return err
	}

	bookmark, err := h.postService.ToggleBookmark(c.Request().Context(), userID, postID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{
		"user":     bookmark.UserID,
		"post":     bookmark.PostID,
		"bookmark": bookmark.ID,
	}})
}

// ToggleLike adds the like, or removes it if the caller already liked the post.
func (h *InteractionHandler) ToggleLike(c echo.Context) error {
	userID, postID, err := callerAndPost(c)
	if err != nil {
		return err
	}

	like, err := h.postService.ToggleLike(c.Request().Context(), userID, postID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{
		"user": like.UserID,
		"post": like.PostID,
		"like": like.ID,
	}})
}

// GetLikesCount retrieves the total number of likes for a specific post
func (h *InteractionHandler) GetLikesCount(c echo.Context) error {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}

	count, err := h.postService.CountLikes(c.Request().Context(), postID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"post": postID, "likes": count}})
}

// ReportPost reports a post; a repeated report is a conflict.
func (h *InteractionHandler) ReportPost(c echo.Context) error {
	userID, postID, err := callerAndPost(c)
	if err != nil {
		return err
	}

	report, err := h.postService.ReportPost(c.Request().Context(), userID, postID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{
		"user":   report.UserID,
		"post":   report.PostID,
		"report": report.ID,
	}})
}

func callerAndPost(c echo.Context) (uint, uint, error) {
	userID, err := requireUserID(c)
	if err != nil {
		return 0, 0, err
	}
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return 0, 0, err
	}
	return userID, postID, nil
}
