package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/stylist/internal/common"
	"github.com/Veraticus/stylist/internal/model"
	"github.com/Veraticus/stylist/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRecommender struct {
	err      error
	result   model.Recommendation
	shopID   string
	prefs    model.Preferences
	deadline bool
	mu       sync.Mutex
}

func (f *fakeRecommender) Recommend(ctx context.Context, shopID string, prefs model.Preferences) (model.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shopID = shopID
	f.prefs = prefs
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return model.Recommendation{}, f.err
	}
	out := f.result
	out.Preferences = prefs
	return out, nil
}

type fakeHTTPObserver struct {
	routes []string
	mu     sync.Mutex
}

func (o *fakeHTTPObserver) ObserveHTTP(method, route string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.routes = append(o.routes, fmt.Sprintf("%s %s %d", method, route, status))
}

func newTestRouter(t *testing.T, rec Recommender, opts ...func(*Config)) (*gin.Engine, *testutil.TestDB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cfg := Config{RequestTimeout: time.Second, AllowedOrigins: []string{"https://*.myshopify.com"}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return SetupRouter(cfg, NewHandler(rec, db.Storage, "test")), db
}

func do(router http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router, _ := newTestRouter(t, &fakeRecommender{})

	w := do(router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.Contains(t, w.Body.String(), `"version":"test"`)
}

func TestRecommend(t *testing.T) {
	advice := "Wear the linen."
	score := 0.91
	rec := &fakeRecommender{result: model.Recommendation{
		Recommendation: &advice,
		ColorPalette:   []string{"sand", "white", "navy"},
		Products: model.ScoredCandidates{
			{Score: &score, CatalogItem: model.CatalogItem{ID: "p1", Title: "Linen Shirt", Price: 39, InventoryCount: 2, Tags: []string{"summer"}}},
		},
	}}
	router, _ := newTestRouter(t, rec)

	w := do(router, http.MethodPost, "/api/recommendations", map[string]string{
		"shop_id":     "boutique",
		"budget_tier": "Under 50",
		"size":        "M",
		"style":       "casual",
		"occasion":    "brunch",
		"weather":     "warm",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Recommendation *string  `json:"recommendation"`
		Error          *string  `json:"error"`
		ColorPalette   []string `json:"color_palette"`
		Preferences    struct {
			BudgetTier string `json:"budget_tier"`
		} `json:"preferences"`
		Products []struct {
			ID              string   `json:"id"`
			SimilarityScore *float64 `json:"similarity_score"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	require.NotNil(t, body.Recommendation)
	assert.Equal(t, advice, *body.Recommendation)
	assert.Nil(t, body.Error)
	assert.Equal(t, "under_50", body.Preferences.BudgetTier)
	require.Len(t, body.Products, 1)
	assert.Equal(t, "p1", body.Products[0].ID)
	require.NotNil(t, body.Products[0].SimilarityScore)
	assert.InDelta(t, 0.91, *body.Products[0].SimilarityScore, 1e-9)

	assert.Equal(t, "boutique", rec.shopID)
	assert.Equal(t, model.BudgetUnderLow, rec.prefs.BudgetTier)
	assert.Equal(t, "brunch", rec.prefs.Occasion)
	assert.True(t, rec.deadline, "request timeout should reach the recommender")
}

func TestRecommend_BadRequests(t *testing.T) {
	router, _ := newTestRouter(t, &fakeRecommender{})

	tests := []struct {
		name string
		body any
	}{
		{name: "missing shop", body: map[string]string{"budget_tier": "any"}},
		{name: "missing budget", body: map[string]string{"shop_id": "s"}},
		{name: "unknown budget", body: map[string]string{"shop_id": "s", "budget_tier": "cheap-ish"}},
		{name: "not an object", body: []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/api/recommendations", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestRecommend_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "invalid preferences",
			err:        common.NewUserError("Please choose a budget.", common.ErrInvalidPreferences),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Please choose a budget.",
		},
		{
			name:       "catalog unavailable",
			err:        fmt.Errorf("failed to load catalog: %w", common.ErrCatalogUnavailable),
			wantStatus: http.StatusBadGateway,
			wantMsg:    "Bad Gateway",
		},
		{
			name:       "unknown shop",
			err:        fmt.Errorf("failed to load catalog: %w", fmt.Errorf("%w: \"evil.test\"", common.ErrUnknownShop)),
			wantStatus: http.StatusNotFound,
			wantMsg:    "Not Found",
		},
		{
			name:       "deadline",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantMsg:    "Gateway Timeout",
		},
		{
			name:       "unexpected",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t, &fakeRecommender{err: tt.err})
			w := do(router, http.MethodPost, "/api/recommendations", map[string]string{"shop_id": "s", "budget_tier": "any"})
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMsg)
		})
	}
}

func TestHistory(t *testing.T) {
	router, db := newTestRouter(t, &fakeRecommender{})
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Storage.SaveRecommendation(ctx, &model.RecommendationRecord{
			ID:          fmt.Sprintf("r%d", i),
			ShopID:      "boutique",
			Advice:      fmt.Sprintf("advice %d", i),
			Preferences: model.Preferences{BudgetTier: model.BudgetMidRange, Style: "boho"},
			ProductIDs:  []string{"p1"},
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}))
	}

	w := do(router, http.MethodGet, "/api/recommendations/history?shop_id=boutique&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Records []model.RecommendationRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Records, 2)
	assert.Equal(t, "r2", body.Records[0].ID)
	assert.Equal(t, "r1", body.Records[1].ID)
	assert.Equal(t, "boho", body.Records[0].Preferences.Style)

	w = do(router, http.MethodGet, "/api/recommendations/history?shop_id=other", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"records":[]}`, w.Body.String())
}

func TestHistory_BadQuery(t *testing.T) {
	router, _ := newTestRouter(t, &fakeRecommender{})

	for _, path := range []string{
		"/api/recommendations/history",
		"/api/recommendations/history?shop_id=s&limit=-1",
		"/api/recommendations/history?shop_id=s&limit=abc",
	} {
		w := do(router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestCORS(t *testing.T) {
	router, _ := newTestRouter(t, &fakeRecommender{})

	w := do(router, http.MethodOptions, "/api/recommendations", nil, "Origin", "https://boutique.myshopify.com")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://boutique.myshopify.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(router, http.MethodGet, "/healthz", nil, "Origin", "https://evil.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsMiddleware(t *testing.T) {
	observer := &fakeHTTPObserver{}
	router, _ := newTestRouter(t, &fakeRecommender{}, func(c *Config) {
		c.Metrics = observer
		c.MetricsHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("metrics"))
		})
	})

	do(router, http.MethodGet, "/healthz", nil)
	w := do(router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, "metrics", w.Body.String())
	do(router, http.MethodGet, "/nope", nil)

	assert.Equal(t, []string{
		"GET /healthz 200",
		"GET /metrics 200",
		"GET unmatched 404",
	}, observer.routes)
}
