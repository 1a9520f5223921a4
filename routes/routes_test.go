package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"newhire-onboarding-api/config"
	"newhire-onboarding-api/models"
	"newhire-onboarding-api/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testSecret        = "routes-test-secret"
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "correct-password"
)

// setupRouter wires a full engine against a private in-memory database, the
// way main does at startup.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	config.DB = db

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		config.DB = nil
	})

	t.Setenv("JWT_SECRET", testSecret)
	auth := services.NewAuthService(db, []byte(testSecret))
	require.NoError(t, auth.Bootstrap(testAdminEmail, testAdminPassword))

	router := gin.New()
	SetupRoutes(router)
	return router
}

func doJSON(router *gin.Engine, method, path string, payload interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.1:1234"
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func janeDoePayload() map[string]interface{} {
	return map[string]interface{}{
		"fullName":      "Jane Doe",
		"personalEmail": "jane@x.com",
		"startDate":     "2024-01-01",
		"jobTitle":      "Analyst",
		"office":        "HQ",
	}
}

func adminToken(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/admin/login", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	router := setupRouter(t)
	w := doJSON(router, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestGetStepsReturnsEightLabels(t *testing.T) {
	router := setupRouter(t)
	w := doJSON(router, http.MethodGet, "/api/steps", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var steps []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &steps))
	assert.Len(t, steps, models.StepCount)
	assert.Equal(t, "Request received", steps[0])
}

func TestSubmitAndFetchScenario(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/api/submit", janeDoePayload(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true,"submissionId":1}`, w.Body.String())

	w = doJSON(router, http.MethodGet, "/api/submission/1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Submission struct {
			FullName string   `json:"fullName"`
			Software []string `json:"software"`
		} `json:"submission"`
		Steps  []string `json:"steps"`
		Status []struct {
			StepIndex  int  `json:"stepIndex"`
			IsComplete bool `json:"isComplete"`
		} `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Jane Doe", resp.Submission.FullName)
	assert.Len(t, resp.Steps, models.StepCount)
	require.Len(t, resp.Status, 1)
	assert.Equal(t, 1, resp.Status[0].StepIndex)
	assert.True(t, resp.Status[0].IsComplete)
}

func TestSubmitMissingOffice(t *testing.T) {
	router := setupRouter(t)

	payload := janeDoePayload()
	delete(payload, "office")
	w := doJSON(router, http.MethodPost, "/api/submit", payload, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing office"}`, w.Body.String())
}

func TestGetSubmissionErrors(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(router, http.MethodGet, "/api/submission/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodGet, "/api/submission/99", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusEndpoint(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/api/submit", janeDoePayload(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/status/1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var statuses []struct {
		StepIndex  int  `json:"stepIndex"`
		IsComplete bool `json:"isComplete"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &statuses))
	require.Len(t, statuses, 1)
	assert.Equal(t, 1, statuses[0].StepIndex)
}

func TestAdminFlow(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/api/submit", janeDoePayload(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// No token: 401.
	w = doJSON(router, http.MethodGet, "/api/admin/submissions", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token: 401.
	w = doJSON(router, http.MethodGet, "/api/admin/submissions", nil, map[string]string{
		"Authorization": "Bearer garbage",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := adminToken(t, router)
	bearer := map[string]string{"Authorization": "Bearer " + token}

	w = doJSON(router, http.MethodGet, "/api/admin/submissions", nil, bearer)
	require.Equal(t, http.StatusOK, w.Code)

	var submissions []struct {
		SubmissionID int    `json:"submissionId"`
		FullName     string `json:"fullName"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &submissions))
	require.Len(t, submissions, 1)
	assert.Equal(t, "Jane Doe", submissions[0].FullName)

	// Flip step 4 complete, then back.
	w = doJSON(router, http.MethodPost, "/api/admin/update-status", map[string]interface{}{
		"submissionId": 1, "stepIndex": 4, "isComplete": true,
	}, bearer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = doJSON(router, http.MethodPost, "/api/admin/update-status", map[string]interface{}{
		"submissionId": 1, "stepIndex": 4, "isComplete": false,
	}, bearer)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/status/1", nil, nil)
	var statuses []struct {
		StepIndex  int  `json:"stepIndex"`
		IsComplete bool `json:"isComplete"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &statuses))
	require.Len(t, statuses, 2)
	assert.Equal(t, 4, statuses[1].StepIndex)
	assert.False(t, statuses[1].IsComplete)
}

func TestUpdateStatusValidation(t *testing.T) {
	router := setupRouter(t)
	token := adminToken(t, router)
	bearer := map[string]string{"Authorization": "Bearer " + token}

	cases := []struct {
		payload map[string]interface{}
		message string
	}{
		{map[string]interface{}{"stepIndex": 2, "isComplete": true}, "Missing submissionId"},
		{map[string]interface{}{"submissionId": 1, "isComplete": true}, "Missing stepIndex"},
		{map[string]interface{}{"submissionId": 1, "stepIndex": 2}, "Missing isComplete"},
		{map[string]interface{}{"submissionId": 1, "stepIndex": 99, "isComplete": true}, "Invalid stepIndex"},
	}

	for _, tc := range cases {
		w := doJSON(router, http.MethodPost, "/api/admin/update-status", tc.payload, bearer)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tc.message), w.Body.String())
	}

	// Unauthenticated update is rejected before validation.
	w := doJSON(router, http.MethodPost, "/api/admin/update-status", map[string]interface{}{
		"submissionId": 1, "stepIndex": 2, "isComplete": true,
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLoginFailures(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/api/admin/login", map[string]string{"email": testAdminEmail}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/admin/login", map[string]string{
		"email": testAdminEmail, "password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/api/admin/login", map[string]string{
		"email": "nobody@example.com", "password": testAdminPassword,
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid login"}`, w.Body.String())
}

func TestAdminLoginRateLimited(t *testing.T) {
	router := setupRouter(t)

	// Ten failed attempts exhaust the window; the 11th is limited even with
	// correct credentials.
	for i := 0; i < 10; i++ {
		w := doJSON(router, http.MethodPost, "/api/admin/login", map[string]string{
			"email": testAdminEmail, "password": "wrong",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := doJSON(router, http.MethodPost, "/api/admin/login", map[string]string{
		"email": testAdminEmail, "password": testAdminPassword,
	}, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestFormGate(t *testing.T) {
	router := setupRouter(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("form-secret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	t.Setenv("FORM_PASSWORD_HASH", string(hash))

	w := doJSON(router, http.MethodPost, "/login", map[string]string{"password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/login", map[string]string{"password": "form-secret"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	var authCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == "auth" {
			authCookie = c
		}
	}
	require.NotNil(t, authCookie)
	assert.True(t, authCookie.HttpOnly)
	assert.NotEmpty(t, authCookie.Value)

	// The cookie value is a verifiable form token.
	auth := services.NewAuthService(config.DB, []byte(testSecret))
	assert.NoError(t, auth.VerifyFormToken(authCookie.Value))
}

func TestFormGateUnconfigured(t *testing.T) {
	router := setupRouter(t)
	t.Setenv("FORM_PASSWORD_HASH", "")

	w := doJSON(router, http.MethodPost, "/login", map[string]string{"password": "anything"}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
