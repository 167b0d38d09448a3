package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/tolgakurt/forumcore/internal/pkg/apperrors"
)

func statusFor(t *testing.T, err error) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleAPIError(c, err)
	return w.Code
}

// TestHandleAPIError_StatusMapping verifies each error family lands on its
// HTTP status.
func TestHandleAPIError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperrors.ErrCategoryNotFound, http.StatusNotFound},
		{apperrors.ErrDiscussionNotFound, http.StatusNotFound},
		{apperrors.ErrPostNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{apperrors.NewAccessDeniedError("nope"), http.StatusForbidden},
		{apperrors.ErrCategoryHasDiscussions, http.StatusConflict},
		{apperrors.ErrConflict, http.StatusConflict},
		{apperrors.NewValidationError().Add("subject", "can't be blank"), http.StatusBadRequest},
		{apperrors.ErrBadRequest, http.StatusBadRequest},
		{fmt.Errorf("pool exhausted"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, statusFor(t, tc.err), "error: %v", tc.err)
	}
}

// TestHandleAPIError_ValidationDetails verifies field messages are carried
// in the response body.
func TestHandleAPIError_ValidationDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleAPIError(c, apperrors.NewValidationError().Add("subject", "can't be blank"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "subject")
	assert.Contains(t, w.Body.String(), "can't be blank")
}
