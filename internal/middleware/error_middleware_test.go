package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/emre/sisgo/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, err)
	return w
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "student not found",
			err:        apperrors.ErrStudentNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "RES_001",
		},
		{
			name:       "wrapped course not found",
			err:        fmt.Errorf("enroll: %w", apperrors.ErrCourseNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "RES_001",
		},
		{
			name:       "duplicate enrollment",
			err:        apperrors.ErrDuplicateEnrollment,
			wantStatus: http.StatusConflict,
			wantCode:   "RES_002",
		},
		{
			name:       "invalid student data",
			err:        fmt.Errorf("%w: first name is required", apperrors.ErrInvalidStudentData),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VAL_001",
		},
		{
			name:       "unknown error",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "SRV_001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := handleError(t, tt.err)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if !strings.Contains(w.Body.String(), tt.wantCode) {
				t.Errorf("body %q does not contain code %q", w.Body.String(), tt.wantCode)
			}
		})
	}
}

func TestHandleAPIError_InternalHidesDetails(t *testing.T) {
	w := handleError(t, errors.New("pq: password authentication failed"))

	if strings.Contains(w.Body.String(), "password") {
		t.Errorf("internal error details leaked: %s", w.Body.String())
	}
}
