package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gompa/internal/config"
	"gompa/internal/models/place_models"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestEstimatePrice_DeterministicAndBounded(t *testing.T) {
	cfg := config.DefaultPipelineConfig()
	pricing := cfg.Category(place_models.CategoryLodging).Pricing

	for _, id := range []string{"g1", "osm:node/42", "ChIJx", "osm:way/7"} {
		m := &place_models.MergedPlace{ID: id, Category: place_models.CategoryLodging, Kind: place_models.KindHomestay}
		key := contextKey(id, "rumtek")
		first := EstimatePrice(pricing, m, key)
		assert.Equal(t, first, EstimatePrice(pricing, m, key))
		assert.GreaterOrEqual(t, first, int(1500*0.88)-1)
		assert.LessOrEqual(t, first, int(1500*1.22)+1)
	}
}

func TestEstimatePrice_BaseSelection(t *testing.T) {
	p := config.PricingConfig{
		TierPrices:  []int{100, 200},
		KindBase:    map[string]int{"hotel": 1000},
		DefaultBase: 500,
		JitterMin:   1,
		JitterMax:   1,
		MinPrice:    150,
	}

	assert.Equal(t, 500, EstimatePrice(p, &place_models.MergedPlace{}, "k"))
	assert.Equal(t, 1000, EstimatePrice(p, &place_models.MergedPlace{Kind: "hotel"}, "k"))
	assert.Equal(t, 200, EstimatePrice(p, &place_models.MergedPlace{Kind: "hotel", PriceLevel: intPtr(1)}, "k"))
	assert.Equal(t, 150, EstimatePrice(p, &place_models.MergedPlace{PriceLevel: intPtr(0)}, "k"), "floored")
	assert.Equal(t, 500, EstimatePrice(p, &place_models.MergedPlace{PriceLevel: intPtr(9)}, "k"))

	p.PerKm = 15
	assert.Equal(t, 560, EstimatePrice(p, &place_models.MergedPlace{DistanceKm: 4}, "k"))
}

func TestDisplayRating(t *testing.T) {
	assert.Equal(t, 4.6, DisplayRating(&place_models.MergedPlace{Rating: floatPtr(4.56)}, 0))
	assert.Equal(t, 4.6, DisplayRating(&place_models.MergedPlace{Tags: map[string]string{"stars": "4"}}, 0))
	assert.Equal(t, 5.0, DisplayRating(&place_models.MergedPlace{Tags: map[string]string{"stars": "5S"}}, 0))
	assert.Equal(t, defaultDisplayRating, DisplayRating(&place_models.MergedPlace{}, 0))
	assert.Equal(t, 4.5, DisplayRating(&place_models.MergedPlace{}, 4.5))
	assert.Equal(t, 4.6, DisplayRating(&place_models.MergedPlace{Rating: floatPtr(4.56)}, 4.5))
}

func TestEstimatePrice_GoogleOnlyBand(t *testing.T) {
	p := config.PricingConfig{
		DefaultBase:         1000,
		JitterMin:           2,
		JitterMax:           2,
		GoogleOnlyJitterMin: 1,
		GoogleOnlyJitterMax: 1,
		MinPrice:            150,
	}

	googleOnly := &place_models.MergedPlace{Sources: []place_models.Source{place_models.SourceGoogle}}
	both := &place_models.MergedPlace{Sources: []place_models.Source{place_models.SourceGoogle, place_models.SourceOSM}}
	osmOnly := &place_models.MergedPlace{Sources: []place_models.Source{place_models.SourceOSM}}

	assert.Equal(t, 1000, EstimatePrice(p, googleOnly, "k"))
	assert.Equal(t, 2000, EstimatePrice(p, both, "k"))
	assert.Equal(t, 2000, EstimatePrice(p, osmOnly, "k"))

	p.GoogleOnlyJitterMin, p.GoogleOnlyJitterMax = 0, 0
	assert.Equal(t, 2000, EstimatePrice(p, googleOnly, "k"), "no band configured")
}

func TestPlaceSynthesizer_AttractionDefaultRating(t *testing.T) {
	s := NewPlaceSynthesizer(config.DefaultPipelineConfig())

	tour := &place_models.MergedPlace{ID: "osm:node/5", Category: place_models.CategoryAttraction}
	s.Apply(tour, LandmarkRef{ID: "rumtek"})
	assert.Equal(t, 4.5, tour.DisplayRating)

	dining := &place_models.MergedPlace{ID: "g2", Category: place_models.CategoryDining}
	s.Apply(dining, LandmarkRef{ID: "rumtek"})
	assert.Equal(t, defaultDisplayRating, dining.DisplayRating)
}

func TestPlaceSynthesizer_Apply(t *testing.T) {
	s := NewPlaceSynthesizer(config.DefaultPipelineConfig())
	m := &place_models.MergedPlace{
		ID:         "osm:node/1",
		Name:       "Mayfair Resort",
		Category:   place_models.CategoryLodging,
		Kind:       place_models.KindHotel,
		DistanceKm: 1.234,
		Locality:   "Ranka",
		Tags:       map[string]string{"stars": "5"},
		Amenities:  []string{"Spa", "Mountain View"},
	}

	s.Apply(m, LandmarkRef{ID: "rumtek", Name: "Rumtek Monastery"})

	assert.Contains(t, hotelLines, m.Description)
	assert.GreaterOrEqual(t, m.PriceEstimate, 500)
	assert.Equal(t, 5.0, m.DisplayRating)
	assert.Equal(t, "Luxury boutique resort 1.23 km from Rumtek Monastery · Ranka with Himalayan views.", m.Summary)

	dining := &place_models.MergedPlace{ID: "g1", Category: place_models.CategoryDining}
	s.Apply(dining, LandmarkRef{ID: "rumtek"})
	assert.Empty(t, dining.Summary)
	assert.Contains(t, diningLines, dining.Description)
}

func TestLodgingSummary_Homestay(t *testing.T) {
	m := &place_models.MergedPlace{
		Name:       "Lingdum Village Guest House",
		Kind:       place_models.KindHomestay,
		DistanceKm: 0.1,
		Rating:     floatPtr(4.8),
		Amenities:  []string{"WiFi", "Restaurant", "Parking"},
	}
	assert.Equal(t, "Top-rated comfortable guest house near Rumtek with Restaurant, WiFi.", LodgingSummary(m, "Rumtek"))
}
