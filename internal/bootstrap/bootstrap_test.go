package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/courseplanner/internal/config"
	"github.com/yigit/courseplanner/internal/pkg/auth"
	"github.com/yigit/courseplanner/internal/pkg/logger"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "bootstrap-secret")
	cfg, err := config.LoadConfig("does-not-exist.yaml")
	require.NoError(t, err)
	return cfg
}

func TestMemoryStackServesSeededCatalog(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Server.Mode = "test"
	lgr := logger.Nop()

	repos := BuildRepositories(context.Background(), cfg, nil, lgr)
	deps := BuildDependencies(cfg, repos, lgr)
	router := SetupRouter(cfg, deps, lgr)
	gin.SetMode(gin.TestMode)

	token, err := deps.JWTService.GenerateAccessToken("demo-student", auth.RoleStudent)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/plans/1/1/addable?term=1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "CS201")
	assert.NotContains(t, w.Body.String(), `"code":"CS101"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "courseplanner_http_request_duration_seconds")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestBuildRepositoriesWithoutSeed(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Database.Seed = false

	repos := BuildRepositories(context.Background(), cfg, nil, logger.Nop())
	_, err := repos.Courses.ListCourses(context.Background(), 1, 1)
	assert.Error(t, err)
}
