package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gompa/internal/config"
	"gompa/internal/models/place_models"
	"gompa/pkg/utils"
)

func googleServer(t *testing.T, handlers map[string]func(http.ResponseWriter, *http.Request)) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	mux := http.NewServeMux()
	for path, h := range handlers {
		h := h
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))
			h(w, r)
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &hits
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newGoogle(url string) *GooglePlacesSource {
	return NewGooglePlacesSource(GooglePlacesConfig{APIKey: "test-key", BaseURL: url, Region: config.DefaultPipelineConfig().Region}, zap.NewNop())
}

func TestGooglePlacesSource_NearbyMergesTypes(t *testing.T) {
	srv, hits := googleServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/nearbysearch/json": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "27.338900,88.558300", r.URL.Query().Get("location"))
			assert.Equal(t, "15000", r.URL.Query().Get("radius"))
			stand := map[string]any{
				"place_id": "gTaxi", "name": "Rumtek Taxi Stand", "vicinity": "Rumtek",
				"geometry": map[string]any{"location": map[string]any{"lat": 27.339, "lng": 88.558}},
				"types":    []string{"taxi_stand"},
			}
			results := []any{stand}
			if r.URL.Query().Get("type") == "bus_station" {
				results = append(results, map[string]any{
					"place_id": "gBus", "name": "SNT Bus Stand", "rating": 3.9, "price_level": 7,
					"geometry": map[string]any{"location": map[string]any{"lat": 27.33, "lng": 88.61}},
					"types":    []string{"bus_station"},
				}, map[string]any{
					"place_id": "gFar", "name": "Delhi ISBT",
					"geometry": map[string]any{"location": map[string]any{"lat": 28.66, "lng": 77.23}},
				})
			}
			writeJSON(w, map[string]any{"status": "OK", "results": results})
		},
	})

	got, err := newGoogle(srv.URL).Nearby(context.Background(), NearbyQuery{Origin: rumtek, RadiusKm: 15, Category: place_models.CategoryTransit})

	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
	require.Len(t, got, 2)
	assert.Equal(t, "gTaxi", got[0].ID)
	assert.Equal(t, place_models.KindTaxi, got[0].Kind)
	assert.Equal(t, "Rumtek", got[0].Vicinity)
	assert.Equal(t, "gBus", got[1].ID)
	assert.Equal(t, place_models.KindBus, got[1].Kind)
	assert.Equal(t, 3.9, *got[1].Rating)
	assert.Nil(t, got[1].PriceLevel)
}

func TestGooglePlacesSource_StatusErrors(t *testing.T) {
	srv, _ := googleServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/nearbysearch/json": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"status": "REQUEST_DENIED", "error_message": "key invalid"})
		},
		"/textsearch/json": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"status": "ZERO_RESULTS", "results": []any{}})
		},
	})
	g := newGoogle(srv.URL)

	_, err := g.Nearby(context.Background(), NearbyQuery{Origin: rumtek, Category: place_models.CategoryDining})
	assert.ErrorIs(t, err, utils.ErrSourceStatus)
	assert.Contains(t, err.Error(), "key invalid")

	got, err := g.TextSearch(context.Background(), LookupQuery{Text: "Hill Cafe Rumtek"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGooglePlacesSource_DisabledWithoutKey(t *testing.T) {
	g := NewGooglePlacesSource(GooglePlacesConfig{}, zap.NewNop())

	assert.False(t, g.Enabled())
	_, err := g.Nearby(context.Background(), NearbyQuery{Origin: rumtek})
	assert.ErrorIs(t, err, utils.ErrSourceDisabled)
	_, err = g.Details(context.Background(), "g1")
	assert.ErrorIs(t, err, utils.ErrSourceDisabled)
	assert.False(t, NewEnricher(g, config.DefaultPipelineConfig(), nil, zap.NewNop()).Enabled())
}

func TestGooglePlacesSource_FindPlaceAndDetails(t *testing.T) {
	srv, _ := googleServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/findplacefromtext/json": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Hill Cafe Rumtek", r.URL.Query().Get("input"))
			assert.Equal(t, "circle:7000@27.338900,88.558300", r.URL.Query().Get("locationbias"))
			writeJSON(w, map[string]any{"status": "OK", "candidates": []any{map[string]any{
				"place_id": "g1", "name": "Hill Cafe", "formatted_address": "Rumtek Road, Rumtek, Sikkim 737135",
				"geometry": map[string]any{"location": map[string]any{"lat": 27.34, "lng": 88.559}},
			}}})
		},
		"/details/json": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "g1", r.URL.Query().Get("place_id"))
			writeJSON(w, map[string]any{"status": "OK", "result": map[string]any{
				"place_id": "g1", "name": "Hill Cafe", "formatted_address": "Rumtek Road, Rumtek, Sikkim 737135",
				"international_phone_number": "+91 3592 252 111",
				"photos": []any{map[string]any{"photo_reference": "ph1"}},
			}})
		},
	})
	g := newGoogle(srv.URL)

	found, err := g.FindPlace(context.Background(), LookupQuery{Text: "Hill Cafe Rumtek", Near: rumtek, RadiusKm: 7})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Rumtek Road, Rumtek, Sikkim 737135", found[0].Address)

	d, err := g.Details(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "+91 3592 252 111", d.Phone)
	assert.Equal(t, []string{"ph1"}, d.Photos)
}

func TestGooglePlacesSource_NearbyKeepsSucceededTypes(t *testing.T) {
	srv, hits := googleServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/nearbysearch/json": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("type") == "bus_station" {
				writeJSON(w, map[string]any{"status": "OVER_QUERY_LIMIT"})
				return
			}
			writeJSON(w, map[string]any{"status": "OK", "results": []any{map[string]any{
				"place_id": "gTaxi", "name": "Rumtek Taxi Stand",
				"geometry": map[string]any{"location": map[string]any{"lat": 27.339, "lng": 88.558}},
				"types":    []string{"taxi_stand"},
			}}})
		},
	})

	got, err := newGoogle(srv.URL).Nearby(context.Background(), NearbyQuery{Origin: rumtek, Category: place_models.CategoryTransit})

	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
	require.Len(t, got, 1)
	assert.Equal(t, "gTaxi", got[0].ID)
}
