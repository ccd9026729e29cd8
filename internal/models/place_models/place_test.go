package place_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory(" Dining ")
	assert.True(t, ok)
	assert.Equal(t, CategoryDining, c)

	c, ok = ParseCategory("taxi")
	assert.True(t, ok)
	assert.Equal(t, CategoryTransit, c)

	_, ok = ParseCategory("spaceport")
	assert.False(t, ok)
}

func TestHasName(t *testing.T) {
	assert.False(t, HasName(""))
	assert.False(t, HasName("  "))
	assert.False(t, HasName("unnamed"))
	assert.False(t, HasName("Unnamed"))
	assert.True(t, HasName("Hill Cafe"))
}

func TestBuildAddress(t *testing.T) {
	assert.Equal(t, "12 MG Marg, Arithang, Gangtok", BuildAddress(map[string]string{
		"addr:housenumber": "12",
		"addr:street":      "MG Marg",
		"addr:suburb":      "Arithang",
		"addr:city":        "Gangtok",
	}))
	assert.Equal(t, "Rumtek Road", BuildAddress(map[string]string{"addr:road": "Rumtek Road", "addr:housenumber": ""}))
	assert.Equal(t, "Full, Line", BuildAddress(map[string]string{"addr:full": "Full, Line", "addr:city": "x"}))
	assert.Equal(t, "", BuildAddress(nil))
}

func TestTagHelpers(t *testing.T) {
	tags := map[string]string{
		"cuisine":       "tibetan; nepali;indian",
		"wifi":          "yes",
		"view:mountain": "kanchenjunga",
		"stars":         "4S",
		"contact:phone": "+91 3592 000000",
		"addr:place":    "Rumtek",
	}
	assert.Equal(t, "tibetan & nepali", Cuisine(tags))
	assert.Equal(t, []string{"WiFi", "Restaurant", "Mountain View"}, Amenities(tags))
	stars, ok := Stars(tags)
	assert.True(t, ok)
	assert.Equal(t, 4.0, stars)
	assert.Equal(t, "+91 3592 000000", TagPhone(tags))
	assert.Equal(t, "Rumtek", Locality(tags))
}

func TestInferKind(t *testing.T) {
	assert.Equal(t, KindHomestay, InferKind(CategoryLodging, "Lingdum Homestay", nil, nil))
	assert.Equal(t, KindHomestay, InferKind(CategoryLodging, "X", map[string]string{"tourism": "guest_house"}, nil))
	assert.Equal(t, KindHotel, InferKind(CategoryLodging, "Hotel Tibet", map[string]string{"tourism": "hotel"}, nil))
	assert.Equal(t, KindBus, InferKind(CategoryTransit, "", map[string]string{"amenity": "bus_station"}, nil))
	assert.Equal(t, KindTaxi, InferKind(CategoryTransit, "Deorali Taxi Stand", nil, []string{"taxi_stand"}))
	assert.Equal(t, KindCafe, InferKind(CategoryDining, "Hill Cafe", nil, nil))
	assert.Equal(t, KindExperience, InferKind(CategoryAttraction, "Viewpoint", nil, nil))
}
