package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gompa/internal/config"
	"gompa/internal/models/place_models"
)

const overpassFixture = `{
  "elements": [
    {"type": "node", "id": 101, "lat": 27.3395, "lon": 88.5590,
     "tags": {"amenity": "cafe", "name": "Hill Cafe", "phone": "+91 3592 252111", "addr:street": "Rumtek Road", "addr:city": "Rumtek", "cuisine": "tibetan"}},
    {"type": "way", "id": 202, "center": {"lat": 27.3401, "lon": 88.5601},
     "tags": {"amenity": "restaurant", "name:en": "Dragon Kitchen"}},
    {"type": "node", "id": 303, "lat": 27.3380, "lon": 88.5570,
     "tags": {"amenity": "restaurant"}},
    {"type": "node", "id": 404,
     "tags": {"amenity": "restaurant", "name": "No Coordinates"}},
    {"type": "node", "id": 505, "lat": 26.7271, "lon": 88.3953,
     "tags": {"amenity": "restaurant", "name": "Siliguri Dhaba"}}
  ]
}`

func TestOSMSource_Nearby(t *testing.T) {
	var gotQuery, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotQuery = r.PostForm.Get("data")
		gotAgent = r.UserAgent()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(overpassFixture))
	}))
	defer srv.Close()

	src := NewOSMSource(OverpassConfig{Endpoint: srv.URL, Region: config.DefaultPipelineConfig().Region}, zap.NewNop())
	got, err := src.Nearby(context.Background(), NearbyQuery{Origin: rumtek, RadiusKm: 2, Category: place_models.CategoryDining})

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "gompa/1.0", gotAgent)
	assert.Contains(t, gotQuery, "[out:json]")
	assert.Contains(t, gotQuery, "(around:2000,27.338900,88.558300)")
	assert.Contains(t, gotQuery, `node["amenity"~"^(restaurant|cafe|fast_food|food_court)$"]`)

	cafe := got[0]
	assert.Equal(t, "osm:node/101", cafe.ID)
	assert.Equal(t, "Hill Cafe", cafe.Name)
	assert.Equal(t, "+91 3592 252111", cafe.Phone)
	assert.Equal(t, "Rumtek Road, Rumtek", cafe.Address)
	assert.Equal(t, "Rumtek", cafe.Vicinity)
	assert.Equal(t, place_models.KindCafe, cafe.Kind)
	assert.Equal(t, place_models.SourceOSM, cafe.Source)

	assert.Equal(t, "osm:way/202", got[1].ID)
	assert.Equal(t, "Dragon Kitchen", got[1].Name)
	assert.Equal(t, 27.3401, got[1].Location.Lat)

	assert.Equal(t, place_models.UnnamedPlace, got[2].Name)
}

func TestOSMSource_ErrorsAreReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	src := NewOSMSource(OverpassConfig{Endpoint: srv.URL}, zap.NewNop())
	_, err := src.Nearby(context.Background(), NearbyQuery{Origin: rumtek, Category: place_models.CategoryTransit})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestBuildOverpassQuery_KeywordAndCategory(t *testing.T) {
	q := buildOverpassQuery(NearbyQuery{Origin: rumtek, Category: place_models.CategoryTransit, Keyword: `Lal "Bazaar"`})

	assert.True(t, strings.HasPrefix(q, "[out:json][timeout:25];("))
	assert.True(t, strings.HasSuffix(q, ");out center tags;"))
	assert.Contains(t, q, `way["amenity"="bus_station"]["name"~"Lal \"Bazaar\"",i](around:5000,`)
	assert.Equal(t, 4, strings.Count(q, "(around:"))
}
