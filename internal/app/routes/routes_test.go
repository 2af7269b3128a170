package routes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmc/portal/internal/app/models"
	"github.com/qmc/portal/internal/bootstrap"
	"github.com/qmc/portal/internal/config"
	"github.com/qmc/portal/internal/pkg/kvstore"
	"github.com/qmc/portal/internal/pkg/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

type api struct {
	t       *testing.T
	handler http.Handler
	store   kvstore.Store
}

func newAPI(t *testing.T) *api {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Session.Secret = "test-secret"
	cfg.Session.TTL = "0s"
	cfg.Session.Issuer = "qmc-test"
	cfg.GenAI.Timeout = "1s"
	cfg.Store.Driver = config.StoreMemory
	cfg.School.Name = "Queen Marvellous College"
	cfg.School.Town = "Ikoga Badagry"
	cfg.School.Phone = "07015002169"

	store := kvstore.NewMemoryStore()
	deps, err := bootstrap.BuildDependencies(context.Background(), cfg, store, nil, nil, logger.Nop())
	require.NoError(t, err)

	return &api{t: t, handler: bootstrap.SetupRouter(cfg, deps, logger.Nop()), store: store}
}

func (a *api) do(method, path, body, token string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func (a *api) login() string {
	a.t.Helper()
	rec, env := a.do(http.MethodPost, "/api/v1/admin/login", `{"username":"pazzyloia","password":"12345678"}`, "")
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(a.t, data.Token)
	return data.Token
}

func TestLogin(t *testing.T) {
	a := newAPI(t)

	rec, env := a.do(http.MethodPost, "/api/v1/admin/login", `{"username":"pazzyloia","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "AUTH_001", env.Error.Code)

	token := a.login()

	rec, env = a.do(http.MethodGet, "/api/v1/admin/logs", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var logs []models.LogEntry
	require.NoError(t, json.Unmarshal(env.Data, &logs))
	require.Len(t, logs, 2)
	assert.Equal(t, "Login Success", logs[0].Action)
	assert.Equal(t, "Login Failure", logs[1].Action)
	assert.Equal(t, "Attempt with username: pazzyloia", logs[1].Details)
}

func TestAdminRequiresSession(t *testing.T) {
	a := newAPI(t)

	rec, env := a.do(http.MethodGet, "/api/v1/admin/dashboard", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "AUTH_008", env.Error.Code)

	rec, _ = a.do(http.MethodGet, "/api/v1/admin/dashboard", "", "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutEndsSession(t *testing.T) {
	a := newAPI(t)
	token := a.login()

	rec, _ := a.do(http.MethodPost, "/api/v1/admin/logout", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = a.do(http.MethodGet, "/api/v1/admin/staff", "", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStaffDeleteNeedsConfirmation(t *testing.T) {
	a := newAPI(t)
	token := a.login()

	rec, env := a.do(http.MethodDelete, "/api/v1/admin/staff/2", "", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VAL_003", env.Error.Code)

	rec, _ = a.do(http.MethodDelete, "/api/v1/admin/staff/2?confirm=true", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = a.do(http.MethodGet, "/api/v1/admin/staff", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var staff []models.StaffProfile
	require.NoError(t, json.Unmarshal(env.Data, &staff))
	for _, p := range staff {
		assert.NotEqual(t, "2", p.ID)
	}
}

func TestClearLogs(t *testing.T) {
	a := newAPI(t)
	token := a.login()

	rec, env := a.do(http.MethodDelete, "/api/v1/admin/logs", "", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VAL_003", env.Error.Code)

	rec, _ = a.do(http.MethodDelete, "/api/v1/admin/logs?confirm=true", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = a.do(http.MethodGet, "/api/v1/admin/logs", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestChatRejectsEmptyQuery(t *testing.T) {
	a := newAPI(t)

	rec, env := a.do(http.MethodPost, "/api/v1/admissions/chat", `{"query":""}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VAL_001", env.Error.Code)
}

func TestChatFallsBackWithoutGenerator(t *testing.T) {
	a := newAPI(t)

	rec, env := a.do(http.MethodPost, "/api/v1/admissions/chat", `{"query":"What are the fees?"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "07015002169")
}

func TestSubmitApplication(t *testing.T) {
	a := newAPI(t)

	rec, env := a.do(http.MethodPost, "/api/v1/admissions", `{"fullName":"Ada Obi","email":"ada@example.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VAL_001", env.Error.Code)
	assert.Contains(t, string(env.Error.Details), "Class of admission required")
	assert.Contains(t, string(env.Error.Details), "Photo required")

	form := `{"fullName":"Ada Obi","email":"ada@example.com","admissionClass":"JSS 1","passportPhoto":"data:image/png;base64,AAAA"}`
	rec, env = a.do(http.MethodPost, "/api/v1/admissions", form, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var saved models.AdmissionForm
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	assert.True(t, strings.HasPrefix(saved.ID, models.ApplicationIDPrefix))
	assert.Equal(t, models.StatusPending, saved.Status)

	_, err := a.store.Get(context.Background(), models.KeyApplications)
	assert.NoError(t, err)
}

func TestViewsFallBackToHome(t *testing.T) {
	a := newAPI(t)

	rec, env := a.do(http.MethodGet, "/api/v1/views/nowhere", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		View string `json:"view"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, "home", page.View)
	assert.NotEmpty(t, rec.Result().Cookies())
}

func TestAdminViewWithoutSession(t *testing.T) {
	a := newAPI(t)

	rec, env := a.do(http.MethodGet, "/api/v1/views/admin", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		View    string `json:"view"`
		Content struct {
			Authenticated bool `json:"authenticated"`
		} `json:"content"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, "admin", page.View)
	assert.False(t, page.Content.Authenticated)
}

func TestHealth(t *testing.T) {
	a := newAPI(t)

	rec, _ := a.do(http.MethodGet, "/api/v1/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
