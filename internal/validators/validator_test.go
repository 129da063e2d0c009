package validators

import (
	"errors"
	"net/http"
	"testing"

	"github.com/devillage/teamproject/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&models.CreatePostRequest{Title: "t", Content: "c", Category: models.CategoryNotice}))
	assert.NoError(t, v.Validate(&models.UpdatePostRequest{}))

	err := v.Validate(&models.CreatePostRequest{Title: "t", Content: "c", Category: "OTHER"})
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadRequest, he.Code)

	assert.Error(t, v.Validate(&models.CreateLocalUserRequest{Name: "k", Email: "not-an-email", Password: "short"}))
	assert.Error(t, v.Validate(&models.CommentRequest{}))
}
