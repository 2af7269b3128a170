package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmc/portal/internal/app/models/dto"
	"github.com/qmc/portal/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func errorResponse(t *testing.T, err error) (int, dto.ErrorDetail) {
	t.Helper()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, err)

	var body struct {
		Error dto.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body.Error
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{
			name:   "field validation",
			err:    apperrors.NewValidationError().Add("fullName", "Full name required"),
			status: http.StatusBadRequest,
			code:   dto.ErrorCodeValidationFailed,
		},
		{
			name:    "confirmation",
			err:     apperrors.NewCustomError(apperrors.ErrConfirmationRequired, "Clear all audit logs?"),
			status:  http.StatusBadRequest,
			code:    dto.ErrorCodeConfirmationRequired,
			message: "Clear all audit logs?",
		},
		{
			name:    "bad request",
			err:     apperrors.NewBadRequestError("Invalid request format"),
			status:  http.StatusBadRequest,
			code:    dto.ErrorCodeBadRequest,
			message: "Invalid request format",
		},
		{
			name:   "invalid credentials",
			err:    apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid credentials."),
			status: http.StatusUnauthorized,
			code:   dto.ErrorCodeInvalidCredentials,
		},
		{
			name:   "expired session",
			err:    fmt.Errorf("%w: token expired", apperrors.ErrSessionExpired),
			status: http.StatusUnauthorized,
			code:   dto.ErrorCodeExpiredToken,
		},
		{
			name:   "unauthenticated",
			err:    apperrors.ErrUnauthenticated,
			status: http.StatusUnauthorized,
			code:   dto.ErrorCodeUnauthorized,
		},
		{
			name:    "camera",
			err:     apperrors.NewDeviceError("Unable to access camera. Please check permissions or upload a photo instead.", errors.New("denied")),
			status:  http.StatusUnprocessableEntity,
			code:    dto.ErrorCodeDeviceAccess,
			message: "Unable to access camera. Please check permissions or upload a photo instead.",
		},
		{
			name:   "not found",
			err:    apperrors.ErrStaffNotFound,
			status: http.StatusNotFound,
			code:   dto.ErrorCodeResourceNotFound,
		},
		{
			name:   "conflict",
			err:    apperrors.ErrDraftSubmitted,
			status: http.StatusConflict,
			code:   dto.ErrorCodeConflict,
		},
		{
			name:    "corrupt document",
			err:     apperrors.NewCorruptDocumentError("qmc_staff_data", errors.New("unexpected end of JSON input")),
			status:  http.StatusInternalServerError,
			code:    dto.ErrorCodeCorruptDocument,
			message: `document "qmc_staff_data" could not be decoded`,
		},
		{
			name:    "anything else",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			code:    dto.ErrorCodeInternalServer,
			message: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := errorResponse(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, detail.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, detail.Message)
			}
		})
	}
}

func TestTokenFromRequest(t *testing.T) {
	const jwtLike = "aaa.bbb.ccc"

	tests := []struct {
		name   string
		header string
		query  string
		want   string
	}{
		{name: "bearer", header: "Bearer " + jwtLike, want: jwtLike},
		{name: "raw token", header: jwtLike, want: jwtLike},
		{name: "quoted", header: `"Bearer ` + jwtLike + `"`, want: jwtLike},
		{name: "garbage header", header: "Basic abc", want: ""},
		{name: "query fallback", query: jwtLike, want: jwtLike},
		{name: "nothing", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/?token="+tt.query, nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, TokenFromRequest(c))
		})
	}
}

func TestVisitorCookie(t *testing.T) {
	router := gin.New()
	router.Use(Visitor(false))
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, VisitorID(c))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	issued := rec.Body.String()
	require.NoError(t, uuid.Validate(issued))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, VisitorCookie, cookies[0].Name)
	assert.Equal(t, issued, cookies[0].Value)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: VisitorCookie, Value: issued})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, issued, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestBindJSON(t *testing.T) {
	bind := func(body string) error {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		var req dto.ChatRequest
		return BindJSON(c, &req)
	}

	assert.ErrorIs(t, bind(`{"query":`), apperrors.ErrBadRequest)

	var verr *apperrors.ValidationError
	require.ErrorAs(t, bind(`{"query":""}`), &verr)
	assert.Equal(t, "Please type a question", verr.Fields["query"])

	assert.NoError(t, bind(`{"query":"Fees?"}`))
}
