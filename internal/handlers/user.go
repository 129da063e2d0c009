package handlers

import (
	"net/http"
	"strconv"

	"github.com/devillage/teamproject/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler serves the caller's own collections
type UserHandler struct {
	postService        PostService
	activityRepository repositories.ActivityRepository // nil when MongoDB is not configured
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(postService PostService, activityRepo repositories.ActivityRepository) *UserHandler {
	return &UserHandler{postService: postService, activityRepository: activityRepo}
}

// RegisterUserRoutes registers the /users/me routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/me/bookmarks", h.GetBookmarks)
	if h.activityRepository != nil {
		g.GET("/users/me/activities", h.GetActivities)
	}
}

// GetBookmarks lists the posts the caller bookmarked
func (h *UserHandler) GetBookmarks(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	posts, err := h.postService.ListBookmarks(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": posts})
}

// GetActivities lists the caller's bookmark, like and report history
func (h *UserHandler) GetActivities(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	activities, err := h.activityRepository.GetActivitiesByUserID(c.Request().Context(), userID, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": activities})
}
