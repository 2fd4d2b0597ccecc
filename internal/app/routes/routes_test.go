package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appAuth "github.com/yigit/courseplanner/internal/app/auth"
	"github.com/yigit/courseplanner/internal/app/controllers"
	"github.com/yigit/courseplanner/internal/app/models"
	"github.com/yigit/courseplanner/internal/app/repositories"
	"github.com/yigit/courseplanner/internal/app/services"
	"github.com/yigit/courseplanner/internal/middleware"
	"github.com/yigit/courseplanner/internal/pkg/auth"
	"github.com/yigit/courseplanner/internal/pkg/logger"
	"github.com/yigit/courseplanner/internal/pkg/metrics"
	"github.com/yigit/courseplanner/internal/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.RegisterGinValidators()
}

type testServer struct {
	router *gin.Engine
	jwt    *auth.JWTService
	store  *repositories.MemoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	store := repositories.NewMemoryStore()
	courses := []models.Course{
		{Code: "CS101", Title: "Intro", Credits: models.NumericCredits(3)},
		{Code: "CS201", Title: "Data Structures", Credits: models.NumericCredits(4), Prerequisites: []string{"CS101"}},
		{Code: "CS999", Title: "Retired", Credits: models.NumericCredits(3)},
	}
	for i, c := range courses {
		require.NoError(t, store.UpsertCourse(ctx, 1, 2, i, c))
	}
	require.NoError(t, store.AddToBlacklist(ctx, 1, 2, "CS999"))
	require.NoError(t, store.UpsertConcentration(ctx, 1, 2, models.Concentration{
		ID: "core", Name: "Core", RequiredCourses: 1,
		Courses: []models.ConcentrationCourse{{Code: "CS101", Name: "Intro", Credits: models.NumericCredits(3)}},
	}))

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	svc := services.NewPlanService(repositories.NewMemoryRepositories(store),
		services.PlanServiceConfig{SeniorStandingCredits: 90}, m, logger.Nop())

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "routes-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "courseplanner.test",
	})

	router := gin.New()
	SetupRouter(router, controllers.NewPlanController(svc, appAuth.NewAuthorizationService()), middleware.NewAuthMiddleware(jwtService), reg)

	return &testServer{router: router, jwt: jwtService, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, studentID, role string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if studentID != "" {
		token, err := s.jwt.GenerateAccessToken(studentID, role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

const base = "/api/v1/plans/1/2"

func TestPingAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/ping", nil, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())

	s.do(t, http.MethodPost, base+"/check", map[string]string{"code": "CS101", "term": "1"}, "stu-1", auth.RoleStudent)

	w = s.do(t, http.MethodGet, "/metrics", nil, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "courseplanner_add_decisions_total")
}

func TestPlansRequireToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, base, nil, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlanLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, base, nil, "stu-1", auth.RoleStudent)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, base+"/courses", map[string]string{"code": "CS101", "term": "1"}, "stu-1", auth.RoleStudent)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var added struct {
		Added []models.PlannedCourse `json:"added"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &added))
	require.Len(t, added.Added, 1)
	introID := added.Added[0].ID

	w = s.do(t, http.MethodPost, base+"/courses", map[string]string{"code": "CS201", "term": "2", "status": "will-take"}, "stu-1", auth.RoleStudent)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, base+"/courses", map[string]string{"code": "CS101", "term": "3"}, "stu-1", auth.RoleStudent)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, base+"/courses/"+introID+"/dependents", nil, "stu-1", auth.RoleStudent)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), "CS201")

	w = s.do(t, http.MethodDelete, base+"/courses/"+introID, nil, "stu-1", auth.RoleStudent)
	require.Equal(t, http.StatusConflict, w.Code)
	env := decode(t, w)
	assert.Equal(t, "PLAN_002", env.Error.Code)
	assert.Contains(t, string(env.Error.Details), "CS201")

	w = s.do(t, http.MethodPatch, base+"/courses/"+introID+"/status", map[string]string{"status": "considering"}, "stu-1", auth.RoleStudent)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, base+"/concentrations?concentration=core", nil, "stu-1", auth.RoleStudent)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"isEligible":true`)

	w = s.do(t, http.MethodDelete, base+"/courses/"+introID+"?confirm=true", nil, "stu-1", auth.RoleStudent)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, base, nil, "stu-1", auth.RoleStudent)
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		Plan models.Plan `json:"plan"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &view))
	assert.Empty(t, view.Plan.Courses)
}

func TestAddRejectedCourse(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, base+"/courses", map[string]string{"code": "CS999", "term": "1"}, "stu-1", auth.RoleStudent)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decode(t, w)
	assert.Equal(t, "PLAN_001", env.Error.Code)
	assert.Contains(t, string(env.Error.Details), "blacklisted")
}

func TestRequestValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing code", map[string]string{"term": "1"}},
		{"malformed code", map[string]string{"code": "??", "term": "1"}},
		{"bad status", map[string]string{"code": "CS101", "term": "1", "status": "done"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, base+"/courses", tt.body, "stu-1", auth.RoleStudent)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "VAL_001", decode(t, w).Error.Code)
		})
	}

	w := s.do(t, http.MethodGet, "/api/v1/plans/x/2", nil, "stu-1", auth.RoleStudent)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownCatalogIs404(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/plans/9/9", nil, "stu-1", auth.RoleStudent)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdvisorActsOnStudentPlan(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, base+"/courses?studentId=stu-7", map[string]string{"code": "CS101", "term": "1"}, "adv-1", auth.RoleAdvisor)
	require.Equal(t, http.StatusCreated, w.Code)

	plan, err := s.store.Load(context.Background(), models.PlanKey{StudentID: "stu-7", CurriculumID: 1, DepartmentID: 2})
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Len(t, plan.Courses, 1)

	w = s.do(t, http.MethodGet, fmt.Sprintf("%s?studentId=%s", base, "stu-7"), nil, "stu-1", auth.RoleStudent)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
