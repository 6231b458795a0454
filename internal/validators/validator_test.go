package validators

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/skillshare/backend/internal/models"
)

func TestValidate(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Validate(&models.CreateCommentRequest{Content: "hi"}))

	err := v.Validate(&models.UpdateProfileRequest{Name: "A", Email: "nope"})
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Contains(t, he.Message, "Name failed on min")
	assert.Contains(t, he.Message, "Email failed on email")
}

func TestValidate_ImageLimit(t *testing.T) {
	v := NewValidator()
	req := &models.CreatePostRequest{
		Description: "four photos",
		ImageURLs: []string{
			"https://cdn.example.com/1.jpg",
			"https://cdn.example.com/2.jpg",
			"https://cdn.example.com/3.jpg",
			"https://cdn.example.com/4.jpg",
		},
	}
	assert.Error(t, v.Validate(req))

	req.ImageURLs = req.ImageURLs[:3]
	assert.NoError(t, v.Validate(req))
}
