// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/garderobe/internal/engine"
	"github.com/tomtom215/garderobe/internal/feedback"
	"github.com/tomtom215/garderobe/internal/models"
	"github.com/tomtom215/garderobe/internal/wardrobe"
)

// staticWeather serves a fixed mild snapshot.
type staticWeather struct{}

func (staticWeather) Snapshot(context.Context) models.WeatherSnapshot {
	return models.WeatherSnapshot{
		TemperatureC: 18,
		FeelsLikeC:   18,
		Condition:    models.ConditionClear,
	}
}

type testServer struct {
	router   http.Handler
	wardrobe *wardrobe.Store
	feedback *feedback.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ws, err := wardrobe.Open("", true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })

	fs, err := feedback.Open("", true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fs.Close() })

	eng, err := engine.New(nil, zerolog.Nop())
	require.NoError(t, err)

	h := NewHandler(eng, ws, fs, staticWeather{}, 5000, zerolog.Nop())
	return &testServer{
		router:   NewRouter(h, RouterConfig{}),
		wardrobe: ws,
		feedback: fs,
	}
}

// envelope mirrors models.APIResponse with a raw data payload.
type envelope struct {
	Status string           `json:"status"`
	Data   json.RawMessage  `json:"data"`
	Error  *models.APIError `json:"error"`
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func seedCasualWardrobe(t *testing.T, ts *testServer, userID string) {
	t.Helper()
	items := []models.GarmentItem{
		{ID: "g-top", Name: "white tee", Category: models.CategoryTop, Formality: 2, OccasionTags: []string{"casual"}},
		{ID: "g-bottom", Name: "jeans", Category: models.CategoryBottom, Formality: 2, OccasionTags: []string{"casual"}},
		{ID: "g-shoes", Name: "sneakers", Category: models.CategoryShoes, Formality: 1, OccasionTags: []string{"casual"}},
		{ID: "g-outer", Name: "denim jacket", Category: models.CategoryOuterwear, Formality: 2, OccasionTags: []string{"casual"}},
	}
	for i := range items {
		require.NoError(t, ts.wardrobe.Put(context.Background(), userID, &items[i]))
	}
}

// --- Test: health ---

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	rec, env := ts.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", env.Status)
}

// --- Test: recommend ---

func TestRecommendEndpoint(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	seedCasualWardrobe(t, ts, "u1")

	rec, env := ts.do(t, http.MethodPost, "/api/v1/outfits/recommend", map[string]interface{}{
		"user_id":  "u1",
		"occasion": "casual",
		"seed":     42,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "success", env.Status)

	var result engine.Result
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.NotEmpty(t, result.Outfit.Items)
	assert.NotEmpty(t, result.Outfit.Strategy)
	assert.Equal(t, int64(42), result.Metadata.Seed)
}

func TestRecommendValidation(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing user id", map[string]interface{}{"occasion": "casual"}},
		{"missing occasion", map[string]interface{}{"user_id": "u1"}},
		{"unknown occasion", map[string]interface{}{"user_id": "u1", "occasion": "gala"}},
		{"unknown season", map[string]interface{}{"user_id": "u1", "occasion": "casual", "season": "monsoon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := ts.do(t, http.MethodPost, "/api/v1/outfits/recommend", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		})
	}
}

func TestRecommendUnsatisfiable(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	rec, env := ts.do(t, http.MethodPost, "/api/v1/outfits/recommend", map[string]interface{}{
		"user_id":  "empty-closet",
		"occasion": "casual",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeUnsatisfiable, env.Error.Code)
	assert.NotEmpty(t, env.Error.Details["violations"])
}

func TestRecommendInvalidJSON(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/outfits/recommend", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- Test: wardrobe CRUD ---

func TestWardrobeCRUD(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	rec, env := ts.do(t, http.MethodPost, "/api/v1/wardrobe/items?user_id=u1", models.GarmentItem{
		Name:      "navy blazer",
		Category:  models.CategoryOuterwear,
		Formality: 4,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.GarmentItem
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	rec, env = ts.do(t, http.MethodGet, "/api/v1/wardrobe/items/"+created.ID+"?user_id=u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched models.GarmentItem
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, "navy blazer", fetched.Name)

	fetched.Name = "charcoal blazer"
	rec, env = ts.do(t, http.MethodPut, "/api/v1/wardrobe/items/"+created.ID+"?user_id=u1", fetched)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.GarmentItem
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "charcoal blazer", updated.Name)
	assert.Equal(t, created.ID, updated.ID)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/wardrobe/items?user_id=u1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(t, http.MethodDelete, "/api/v1/wardrobe/items/"+created.ID+"?user_id=u1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/wardrobe/items/"+created.ID+"?user_id=u1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWardrobeValidation(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	// Missing user_id.
	rec, _ := ts.do(t, http.MethodPost, "/api/v1/wardrobe/items", models.GarmentItem{
		Name: "tee", Category: models.CategoryTop,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown category.
	rec, env := ts.do(t, http.MethodPost, "/api/v1/wardrobe/items?user_id=u1", map[string]interface{}{
		"name":     "tee",
		"category": "hat",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeValidation, env.Error.Code)

	// Missing name.
	rec, _ = ts.do(t, http.MethodPost, "/api/v1/wardrobe/items?user_id=u1", map[string]interface{}{
		"category": "top",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMissingItem(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	rec, _ := ts.do(t, http.MethodPut, "/api/v1/wardrobe/items/no-such-id?user_id=u1", models.GarmentItem{
		Name: "tee", Category: models.CategoryTop,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// --- Test: feedback ---

func TestFeedbackRoundTrip(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	rec, _ := ts.do(t, http.MethodPost, "/api/v1/feedback", map[string]interface{}{
		"user_id":   "u1",
		"item_ids":  []string{"g-01", "g-02"},
		"type":      "worn",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := ts.do(t, http.MethodGet, "/api/v1/feedback?user_id=u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Interactions []models.Interaction `json:"interactions"`
		Count        int                  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, 1, payload.Count)
	require.Len(t, payload.Interactions, 1)
	assert.Equal(t, models.InteractionWorn, payload.Interactions[0].Type)
}

func TestFeedbackValidation(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing user id", map[string]interface{}{"item_ids": []string{"g-01"}, "type": "worn"}},
		{"empty item ids", map[string]interface{}{"user_id": "u1", "item_ids": []string{}, "type": "worn"}},
		{"unknown type", map[string]interface{}{"user_id": "u1", "item_ids": []string{"g-01"}, "type": "loved"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := ts.do(t, http.MethodPost, "/api/v1/feedback", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestFeedbackListRequiresUser(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	rec, _ := ts.do(t, http.MethodGet, "/api/v1/feedback", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
