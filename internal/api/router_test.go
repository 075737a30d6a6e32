package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ayurveda-nutrition/internal/core/advisor"
	"ayurveda-nutrition/internal/core/cache"
	"ayurveda-nutrition/internal/core/catalog"
	"ayurveda-nutrition/internal/core/food"
	"ayurveda-nutrition/internal/core/matcher"
	"ayurveda-nutrition/internal/core/nutrition"
	"ayurveda-nutrition/internal/core/reference"
	"ayurveda-nutrition/internal/core/report"
	"ayurveda-nutrition/internal/infrastructure/config"
	"ayurveda-nutrition/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const engineerProfile = `{
  "age": 28,
  "gender": "female",
  "constitution": "vata-pitta",
  "occupation": "Software Engineer",
  "health_conditions": ["Eye Strain"],
  "season": "summer",
  "activity_level": "moderate"
}`

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Debug: true, Version: "test"},
		Server: config.ServerConfig{
			Port:           8080,
			RequestTimeout: 5 * time.Second,
			MaxBodyBytes:   1 << 20,
			CORSOrigins:    []string{"*"},
		},
	}
}

func newServices(t *testing.T, store cache.Store) Services {
	t.Helper()
	data, err := reference.Load(context.Background(), reference.NewEmbeddedSource())
	require.NoError(t, err)
	return servicesFor(data.Catalog, data.Foods, store)
}

func servicesFor(cat *catalog.Store, foods *food.Store, store cache.Store) Services {
	m := matcher.New()
	return Services{
		Recommendations: advisor.NewRecommendationService(cat, m, report.NewBuilder(m), store),
		Dishes:          advisor.NewDishService(nutrition.NewAggregator(foods)),
		Catalog:         advisor.NewCatalogService(cat, foods),
	}
}

func newRouter(t *testing.T, cfg *config.Config, svc Services) *gin.Engine {
	t.Helper()
	router, err := SetupRouter(cfg, svc)
	require.NoError(t, err)
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestSetupRouterRequiresServices(t *testing.T) {
	_, err := SetupRouter(testConfig(), Services{})
	assert.Error(t, err)
}

func TestHealthRoutes(t *testing.T) {
	router := newRouter(t, testConfig(), newServices(t, cache.NewMemoryStore(10, time.Minute)))

	w := do(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	var health map[string]any
	decode(t, w, &health)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "test", health["version"])

	w = do(router, http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusOK, w.Code)
	var ready struct {
		Status     string         `json:"status"`
		Categories int            `json:"categories"`
		Foods      int            `json:"foods"`
		Axes       map[string]int `json:"axes"`
		Cache      *cache.Stats   `json:"cache"`
	}
	decode(t, w, &ready)
	assert.Equal(t, "ready", ready.Status)
	assert.Positive(t, ready.Categories)
	assert.Positive(t, ready.Foods)
	assert.Equal(t, 4, ready.Axes["seasonal"])
	require.NotNil(t, ready.Cache)
	assert.Equal(t, "memory", ready.Cache.Backend)

	w = do(router, http.MethodGet, "/live", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestReadyWithEmptyReference(t *testing.T) {
	cat, err := catalog.NewStore(nil)
	require.NoError(t, err)
	foods, err := food.NewStore(nil)
	require.NoError(t, err)
	router := newRouter(t, testConfig(), servicesFor(cat, foods, nil))

	w := do(router, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "not_ready")
}

func TestRecommendationReport(t *testing.T) {
	router := newRouter(t, testConfig(), newServices(t, cache.NewMemoryStore(10, time.Minute)))

	w := do(router, http.MethodPost, "/api/v1/recommendations", engineerProfile)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	var rep report.Report
	decode(t, w, &rep)
	assert.NotEmpty(t, rep.ID)
	require.NotEmpty(t, rep.Recommendations)
	assert.Equal(t, 1.0, rep.Recommendations[0].MatchScore)
	assert.Equal(t, len(rep.Recommendations), rep.Summary.TotalCategories)
	assert.Len(t, rep.Insights, 5)
	assert.NotEmpty(t, rep.ActionItems)

	w = do(router, http.MethodPost, "/api/v1/recommendations", engineerProfile)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	var again report.Report
	decode(t, w, &again)
	assert.NotEqual(t, rep.ID, again.ID)
	assert.Equal(t, rep.Summary, again.Summary)
}

func TestRecommendationRejectsBadInput(t *testing.T) {
	router := newRouter(t, testConfig(), newServices(t, nil))

	tests := []struct {
		name    string
		body    string
		details string
	}{
		{"missing gender", `{"age": 30, "constitution": "vata", "season": "winter", "activity_level": "sedentary"}`, "gender"},
		{"unknown constitution", `{"age": 30, "gender": "male", "constitution": "fire", "season": "winter", "activity_level": "sedentary"}`, "constitution"},
		{"malformed json", `{"age": `, "body"},
		{"empty body", "", "body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/api/v1/recommendations", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			var resp common.ErrorResponse
			decode(t, w, &resp)
			assert.Equal(t, common.ErrCodeInvalidRequest, resp.Code)
			assert.Contains(t, resp.Details, tt.details)
		})
	}
}

func TestRecommendationMatch(t *testing.T) {
	router := newRouter(t, testConfig(), newServices(t, nil))

	w := do(router, http.MethodPost, "/api/v1/recommendations/match", engineerProfile)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Count           int                      `json:"count"`
		Recommendations []matcher.Recommendation `json:"recommendations"`
	}
	decode(t, w, &resp)
	assert.Equal(t, len(resp.Recommendations), resp.Count)
	for i := 1; i < len(resp.Recommendations); i++ {
		assert.GreaterOrEqual(t, resp.Recommendations[i-1].MatchScore, resp.Recommendations[i].MatchScore)
	}
}

func TestNutritionAggregate(t *testing.T) {
	router := newRouter(t, testConfig(), newServices(t, nil))

	body := `{"ingredients": [
	  {"name": "rice", "quantity": 1, "unit": "cup"},
	  {"name": "xyzfood", "quantity": 2, "unit": "cup"}
	]}`
	w := do(router, http.MethodPost, "/api/v1/nutrition/aggregate", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var dish nutrition.Dish
	decode(t, w, &dish)
	assert.Equal(t, 130.0, dish.Totals.Calories)
	assert.Equal(t, []string{"xyzfood"}, dish.Unresolved)
	require.Len(t, dish.Resolved, 1)
	assert.Equal(t, "rice", dish.Resolved[0].FoodID)

	w = do(router, http.MethodPost, "/api/v1/nutrition/aggregate", `{"ingredients": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPost, "/api/v1/nutrition/aggregate", `{"ingredients": [{"name": "rice", "quantity": -1, "unit": "cup"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ingredients[0].quantity")
}

func TestCatalogRoutes(t *testing.T) {
	router := newRouter(t, testConfig(), newServices(t, nil))

	w := do(router, http.MethodGet, "/api/v1/catalog/categories?axis=seasonal", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cats struct {
		Axis       string           `json:"axis"`
		Count      int              `json:"count"`
		Categories []catalog.Record `json:"categories"`
	}
	decode(t, w, &cats)
	assert.Equal(t, 4, cats.Count)
	for _, r := range cats.Categories {
		assert.Equal(t, catalog.AxisSeasonal, r.Axis)
	}

	w = do(router, http.MethodGet, "/api/v1/catalog/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &cats)
	assert.Greater(t, cats.Count, 4)

	w = do(router, http.MethodGet, "/api/v1/catalog/categories?axis=zodiac", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/api/v1/foods/ghee", "")
	require.Equal(t, http.StatusOK, w.Code)
	var ghee food.Item
	decode(t, w, &ghee)
	assert.Equal(t, "Ghee", ghee.Name)

	w = do(router, http.MethodGet, "/api/v1/foods/unobtainium", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	var notFound common.ErrorResponse
	decode(t, w, &notFound)
	assert.Equal(t, "FOOD_NOT_FOUND", notFound.Code)

	w = do(router, http.MethodGet, "/api/v1/foods?q=Fresh+Ginger+Root", "")
	require.Equal(t, http.StatusOK, w.Code)
	var match struct {
		Match string    `json:"match"`
		Food  food.Item `json:"food"`
	}
	decode(t, w, &match)
	assert.Equal(t, "partial", match.Match)
	assert.Equal(t, "ginger", match.Food.ID)

	w = do(router, http.MethodGet, "/api/v1/foods", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBodySizeLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Server.MaxBodyBytes = 64
	router := newRouter(t, cfg, newServices(t, nil))

	w := do(router, http.MethodPost, "/api/v1/recommendations", engineerProfile)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	// 未宣告長度的請求在讀取時才被截斷
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewBufferString(engineerProfile))
	req.ContentLength = -1
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), common.ErrCodeBodyTooLarge)
}

func TestRateLimitAppliesToAPIOnly(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Requests: 2, Window: time.Minute}
	router := newRouter(t, cfg, newServices(t, nil))

	for i := 0; i < 2; i++ {
		w := do(router, http.MethodGet, "/api/v1/foods/ghee", "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := do(router, http.MethodGet, "/api/v1/foods/ghee", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	w = do(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	router := newRouter(t, testConfig(), newServices(t, nil))

	w := do(router, http.MethodGet, "/api/v1/zodiac", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	var resp common.ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, common.ErrCodeNotFound, resp.Code)
	assert.Equal(t, "GET /api/v1/zodiac", resp.Details)
}

func TestCORSPreflight(t *testing.T) {
	router := newRouter(t, testConfig(), newServices(t, nil))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations", nil)
	req.Header.Set("Origin", "https://client.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSSameOriginPassesThrough(t *testing.T) {
	router := newRouter(t, testConfig(), newServices(t, nil))

	// httptest 的 Host 為 example.com，同源請求不經 CORS 處理
	req := httptest.NewRequest(http.MethodGet, "/api/v1/foods/ghee", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSConfig(t *testing.T) {
	all := corsConfig([]string{"*"})
	assert.True(t, all.AllowAllOrigins)
	assert.False(t, all.AllowCredentials)

	explicit := corsConfig([]string{"https://a.example"})
	assert.False(t, explicit.AllowAllOrigins)
	assert.Equal(t, []string{"https://a.example"}, explicit.AllowOrigins)
	assert.True(t, explicit.AllowCredentials)
}
