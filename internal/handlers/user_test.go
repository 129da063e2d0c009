package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/devillage/teamproject/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockActivityRepository struct {
	mock.Mock
}

func (m *mockActivityRepository) RecordActivity(ctx context.Context, activity *models.Activity) error {
	return m.Called(ctx, activity).Error(0)
}

func (m *mockActivityRepository) GetActivitiesByUserID(ctx context.Context, userID uint, skip, limit int64) ([]models.Activity, error) {
	args := m.Called(ctx, userID, skip, limit)
	activities, _ := args.Get(0).([]models.Activity)
	return activities, args.Error(1)
}

func TestGetActivities_ClampsLimit(t *testing.T) {
	repo := &mockActivityRepository{}
	repo.On("GetActivitiesByUserID", mock.Anything, uint(4), int64(0), int64(20)).
		Return([]models.Activity{{EventID: "e1", Action: models.ActionLikeAdded, UserID: 4, PostID: 2}}, nil)
	h := NewUserHandler(&mockPostService{}, repo)

	c, rec := newContext(http.MethodGet, "/api/v1/users/me/activities?skip=-3&limit=1000", "", 4, nil)
	require.NoError(t, h.GetActivities(c))
	assert.Contains(t, rec.Body.String(), "like.added")
	repo.AssertExpectations(t)
}

func TestGetBookmarks(t *testing.T) {
	svc := &mockPostService{}
	svc.On("ListBookmarks", mock.Anything, uint(4)).Return([]models.Post{{ID: 2}, {ID: 1}}, nil)
	h := NewUserHandler(svc, nil)

	c, rec := newContext(http.MethodGet, "/api/v1/users/me/bookmarks", "", 4, nil)
	require.NoError(t, h.GetBookmarks(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, _ = newContext(http.MethodGet, "/api/v1/users/me/bookmarks", "", 0, nil)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, h.GetBookmarks(c)))
}
