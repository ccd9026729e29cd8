package place_models

import (
	"strings"

	"gompa/pkg/geo"
)

type Source string

const (
	SourceOSM    Source = "osm"
	SourceGoogle Source = "google"
)

type Category string

const (
	CategoryLodging    Category = "lodging"
	CategoryDining     Category = "dining"
	CategoryAttraction Category = "attraction"
	CategoryTransit    Category = "transit"
)

var Categories = []Category{CategoryLodging, CategoryDining, CategoryAttraction, CategoryTransit}

func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryLodging, CategoryDining, CategoryAttraction, CategoryTransit:
		return c, true
	case "hotel", "homestay":
		return CategoryLodging, true
	case "restaurant", "food":
		return CategoryDining, true
	case "tours", "tour":
		return CategoryAttraction, true
	case "taxi", "bus", "transport":
		return CategoryTransit, true
	}
	return "", false
}

// UnnamedPlace is the placeholder the OSM adapter uses for nameless elements.
const UnnamedPlace = "Unnamed"

// PlaceCandidate is one point of interest as reported by a single source.
type PlaceCandidate struct {
	ID           string
	Name         string
	Location     geo.Point
	Phone        string
	Address      string
	Vicinity     string
	Rating       *float64
	RatingsTotal *int
	PriceLevel   *int
	Source       Source
	Category     Category
	// Kind narrows the category, e.g. "taxi" or "bus" for transit.
	Kind string
	Tags map[string]string
}

func (c PlaceCandidate) Coordinate() geo.Point { return c.Location }

// AddressText is the text used for regional sanity checks.
func (c PlaceCandidate) AddressText() string {
	return strings.TrimSpace(c.Address + " " + c.Vicinity)
}

// HasName is false for blank and placeholder names.
func HasName(name string) bool {
	n := strings.TrimSpace(name)
	return n != "" && !strings.EqualFold(n, UnnamedPlace)
}

// MergedPlace is a deduplicated place built from up to one candidate per source.
type MergedPlace struct {
	ID       string
	Name     string
	Category Category
	Kind     string
	Location geo.Point

	DistanceKm float64

	Phone    string
	Address  string
	Locality string
	Cuisine  string

	Rating       *float64
	RatingsTotal *int
	PriceLevel   *int
	Tags         map[string]string
	Amenities    []string
	Photos       []string

	// OSMID and PlaceID record the backing candidates.
	OSMID   string
	PlaceID string
	Sources []Source

	Enriching bool
	Resolved  bool

	Description   string
	Summary       string
	PriceEstimate int
	DisplayRating float64
}

func (m *MergedPlace) Coordinate() geo.Point { return m.Location }

func (m *MergedPlace) HasSource(s Source) bool {
	for _, x := range m.Sources {
		if x == s {
			return true
		}
	}
	return false
}

// Clone copies m deeply enough for readers outside the session lock.
func (m *MergedPlace) Clone() MergedPlace {
	c := *m
	if m.Tags != nil {
		c.Tags = make(map[string]string, len(m.Tags))
		for k, v := range m.Tags {
			c.Tags[k] = v
		}
	}
	c.Amenities = append([]string(nil), m.Amenities...)
	c.Photos = append([]string(nil), m.Photos...)
	c.Sources = append([]Source(nil), m.Sources...)
	return c
}

type EnrichmentField string

const (
	FieldPhone   EnrichmentField = "phone"
	FieldAddress EnrichmentField = "address"
)

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskResolved  TaskStatus = "resolved"
	TaskFailed    TaskStatus = "failed"
	TaskCancelled TaskStatus = "cancelled"
)

// EnrichmentTask is a pending lookup of missing fields for one merged place.
type EnrichmentTask struct {
	TargetID string
	Fields   []EnrichmentField
	Status   TaskStatus
}
