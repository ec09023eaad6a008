package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/emre/sisgo/internal/app/models/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postJSON(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler(c)
	return w
}

func TestValidateRequest_Valid(t *testing.T) {
	var req dto.EnrollStudentRequest
	w := postJSON(t, ValidateRequest(&req), `{"studentId": 1, "courseId": 2}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if req.StudentID != 1 || req.CourseID != 2 {
		t.Errorf("request not bound: %+v", req)
	}
}

func TestValidateRequest_MalformedJSON(t *testing.T) {
	var req dto.EnrollStudentRequest
	w := postJSON(t, ValidateRequest(&req), `{"studentId": `)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestValidateRequest_FailsTagValidation(t *testing.T) {
	var req dto.CreateStudentRequest
	body := `{"firstName": "A", "lastName": "Lovelace", "dateOfBirth": "1999-12-10T00:00:00Z", "email": "ada@example.edu"}`
	w := postJSON(t, ValidateRequest(&req), body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for too-short first name, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "VAL_001") {
		t.Errorf("expected validation error code in body: %s", w.Body.String())
	}
}

func TestFormatValidationError(t *testing.T) {
	err := validate.Struct(dto.CreateTeacherRequest{})
	if err == nil {
		t.Fatal("expected validation errors for empty teacher request")
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		t.Fatalf("expected validator.ValidationErrors, got %T", err)
	}

	msg := formatValidationError(verrs[0])
	if !strings.Contains(msg, "is required") {
		t.Errorf("expected required message, got %q", msg)
	}
}
