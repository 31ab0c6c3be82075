package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pageza/nutriplan/backend/config"
	"github.com/pageza/nutriplan/backend/internal/api"
	"github.com/pageza/nutriplan/backend/internal/cache"
	"github.com/pageza/nutriplan/backend/internal/catalog"
	"github.com/pageza/nutriplan/backend/internal/evaluator"
	"github.com/pageza/nutriplan/backend/internal/repository"
	"github.com/pageza/nutriplan/backend/internal/service"
	"github.com/pageza/nutriplan/backend/internal/testhelpers"
	"github.com/pageza/nutriplan/backend/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	router *gin.Engine
	auth   *service.OperatorAuthService
}

func setupApp(t *testing.T) testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ds, err := catalog.Default()
	require.NoError(t, err)
	ev := evaluator.NewFromConfig(config.DefaultRulesConfig(), ds)

	db := testhelpers.SetupSQLiteDatabase(t)
	svc := service.NewRecommendationService(ev, cache.Noop{}, repository.NewPlanRepository(db), zerolog.Nop())
	auth := service.NewOperatorAuthService("router-test-secret", 0)

	r := SetupRouter(zerolog.Nop(), []string{"http://localhost:5173"}, Handlers{
		Recommendation: api.NewRecommendationHandler(svc, nil),
		Catalog:        api.NewCatalogHandler(svc),
		Admin:          api.NewAdminHandler(svc, auth),
		Health:         api.NewHealthHandler(nil, gin.H{"catalog": ds.Source()}),
	})
	return testApp{router: r, auth: auth}
}

func (a testApp) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestHealthRoute(t *testing.T) {
	app := setupApp(t)

	w := app.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := app.do(req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestEvaluateSaveAndFetch(t *testing.T) {
	app := setupApp(t)

	form := url.Values{
		"age":              {"52"},
		"gender":           {"female"},
		"height_cm":        {"160"},
		"weight_kg":        {"78"},
		"blood_sugar_mgdl": {"130"},
		"blood_pressure":   {"145/92"},
		"diet_preference":  {"veg"},
		"activity_level":   {"sedentary"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate?save=true", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := app.do(req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var saved struct {
		ID         string `json:"id"`
		Evaluation struct {
			Tags []string `json:"tags"`
		} `json:"evaluation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Contains(t, saved.Evaluation.Tags, "diabetic")
	assert.Contains(t, saved.Evaluation.Tags, "low-sodium")
	assert.Contains(t, saved.Evaluation.Tags, "vegetarian")

	w = app.do(httptest.NewRequest(http.MethodGet, w.Header().Get("Location"), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), saved.ID)

	token, err := app.auth.IssueToken("ops", types.RoleViewer)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/plans", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = app.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, int64(1), list.Total)
}

func TestEvaluateInvalidProfile(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", strings.NewReader(`{"age":"0","gender":"other"}`))
	req.Header.Set("Content-Type", "application/json")
	w := app.do(req)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Error  string `json:"error"`
		Fields []struct {
			Field string `json:"field"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid profile", body.Error)
	assert.NotEmpty(t, body.Fields)
}

func TestUnknownPlanIsNotFound(t *testing.T) {
	app := setupApp(t)

	w := app.do(httptest.NewRequest(http.MethodGet, "/api/v1/plans/5b0b6f0e-7d3c-4b53-9d7e-1f6f1b0a2c11", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/evaluate", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := app.do(req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
