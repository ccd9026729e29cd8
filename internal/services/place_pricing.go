package services

import (
	"fmt"
	"math"
	"strings"

	"gompa/internal/config"
	"gompa/internal/models/place_models"
	"gompa/pkg/geo"
	"gompa/pkg/utils"
)

var (
	hotelLines = []string{
		"Provides modern comfort with panoramic mountain views.",
		"Offers an elegant stay close to city markets.",
		"Ensures a luxury stay overlooking snowy peaks.",
		"Serves as a comfortable base near monasteries.",
		"Delights guests with rooftop dining and scenic landscapes.",
		"A budget friendly stay surrounded by greenery.",
		"Combines premium amenities with traditional décor.",
		"A boutique option with peaceful ambiance.",
		"Offers a central location with easy transport access.",
		"Carries a spiritual vibe with proximity to monasteries.",
	}
	homestayLines = []string{
		"Gives cozy rooms with warm Sikkimese hospitality.",
		"Provides an authentic tribal experience with local cuisine.",
		"A family run stay with breathtaking views.",
		"Offers rustic charm with modern comforts.",
		"A calm retreat in a village setting.",
		"Serves organic food with traditional hospitality.",
		"Ideal choice for meditation and nature lovers.",
		"Lets guests experience old Sikkimese architecture and culture.",
		"Surrounded by forests and organic farms.",
		"Allows visitors to engage in farming and local traditions.",
	}
	diningLines = []string{
		"Authentic Tibetan cuisine in traditional setting.",
		"Cozy eatery serving local Sikkimese dishes.",
		"Family-run kitchen with homely flavors.",
		"Fresh organic produce with regional recipes.",
		"Street-style snacks and heartwarming meals.",
		"Scenic spot known for momos and thukpa.",
	}
	tourLines = []string{
		"Guided heritage walk with local stories.",
		"Photography-friendly viewpoints and scenic stops.",
		"Short trek with monastery insights.",
		"Cultural experience with crafts and cuisine.",
		"Nature trail with bird-watching highlights.",
	}
	transitLines = []string{
		"Local drivers who know the monastery roads.",
		"Shared and reserved rides to nearby villages.",
		"Convenient pickup point for day trips.",
		"Regular departures towards town and the highway.",
	}
)

const defaultDisplayRating = 4.3

// LandmarkRef identifies the landmark a list was built around.
type LandmarkRef struct {
	ID   string
	Name string
}

// PlaceSynthesizer attaches deterministic display prices, ratings and
// descriptions to merged places.
type PlaceSynthesizer struct {
	cfg config.PipelineConfig
}

func NewPlaceSynthesizer(cfg config.PipelineConfig) *PlaceSynthesizer {
	return &PlaceSynthesizer{cfg: cfg}
}

func contextKey(placeID, landmarkID string) string {
	return placeID + "-" + landmarkID
}

func (s *PlaceSynthesizer) Apply(m *place_models.MergedPlace, lm LandmarkRef) {
	key := contextKey(m.ID, lm.ID)
	m.Description = utils.StablePick(descriptionPool(m), key)
	m.PriceEstimate = EstimatePrice(s.cfg.Category(m.Category).Pricing, m, key)
	m.DisplayRating = DisplayRating(m, s.cfg.Category(m.Category).Pricing.DefaultRating)
	if m.Category == place_models.CategoryLodging {
		m.Summary = LodgingSummary(m, lm.Name)
	}
}

func (s *PlaceSynthesizer) ApplyAll(places []*place_models.MergedPlace, lm LandmarkRef) {
	for _, m := range places {
		s.Apply(m, lm)
	}
}

func descriptionPool(m *place_models.MergedPlace) []string {
	switch m.Category {
	case place_models.CategoryLodging:
		if m.Kind == place_models.KindHomestay {
			return homestayLines
		}
		return hotelLines
	case place_models.CategoryDining:
		return diningLines
	case place_models.CategoryTransit:
		return transitLines
	}
	return tourLines
}

// EstimatePrice is base × jitter, rounded and floored at the category minimum.
// The base comes from the price level, then the kind, then the default, plus
// a per-km component when configured. Places only Google reported use the
// Google-only jitter band when one is configured.
func EstimatePrice(p config.PricingConfig, m *place_models.MergedPlace, key string) int {
	base := float64(p.DefaultBase)
	if b, ok := p.KindBase[m.Kind]; ok {
		base = float64(b)
	}
	if m.PriceLevel != nil && *m.PriceLevel >= 0 && *m.PriceLevel < len(p.TierPrices) {
		base = float64(p.TierPrices[*m.PriceLevel])
	}
	base += p.PerKm * m.DistanceKm

	lo, hi := p.JitterMin, p.JitterMax
	if p.GoogleOnlyJitterMax > 0 && googleOnly(m) {
		lo, hi = p.GoogleOnlyJitterMin, p.GoogleOnlyJitterMax
	}
	price := int(math.Round(base * utils.StableJitter(key, lo, hi)))
	if price < p.MinPrice {
		price = p.MinPrice
	}
	return price
}

func googleOnly(m *place_models.MergedPlace) bool {
	return len(m.Sources) == 1 && m.Sources[0] == place_models.SourceGoogle
}

// DisplayRating is the source rating, else derived from OSM stars, else
// fallback (or 4.3 when fallback is unset).
func DisplayRating(m *place_models.MergedPlace, fallback float64) float64 {
	if m.Rating != nil && *m.Rating > 0 {
		return geo.RoundTo(*m.Rating, 1)
	}
	if stars, ok := place_models.Stars(m.Tags); ok {
		return geo.RoundTo(math.Min(5, 3+0.4*stars), 1)
	}
	if fallback > 0 {
		return fallback
	}
	return defaultDisplayRating
}

// LodgingSummary builds a one-line pitch, e.g.
// "Premium hotel 1.20 km from Rumtek Monastery · Rumtek with Himalayan views."
func LodgingSummary(m *place_models.MergedPlace, landmarkName string) string {
	nameL := strings.ToLower(m.Name)

	tone := "Comfortable"
	if stars, ok := place_models.Stars(m.Tags); ok {
		switch {
		case stars >= 5:
			tone = "Luxury"
		case stars >= 4:
			tone = "Premium"
		case stars <= 2:
			tone = "Cozy"
		}
	}
	if m.Rating != nil && *m.Rating >= 4.6 {
		tone = "Top-rated " + strings.ToLower(tone)
	}
	heritage := m.Tags["heritage"] == "yes" || containsAny(nameL, "heritage", "historic", "palace")
	if heritage {
		tone += " heritage"
	}
	if !heritage && (containsAny(nameL, "boutique", "resort") || m.Tags["resort"] == "yes") {
		tone += " boutique"
	}

	var kind string
	switch {
	case m.Kind == place_models.KindHomestay && strings.Contains(nameL, "guest house"):
		kind = "guest house"
	case m.Kind == place_models.KindHomestay:
		kind = "homestay"
	case strings.Contains(nameL, "resort"):
		kind = "resort"
	default:
		kind = "hotel"
	}

	if landmarkName == "" {
		landmarkName = "the monastery"
	}
	loc := "near " + landmarkName
	if m.DistanceKm > 0.2 {
		loc = fmt.Sprintf("%.2f km from %s", m.DistanceKm, landmarkName)
	}
	if m.Locality != "" && !strings.Contains(nameL, strings.ToLower(m.Locality)) {
		loc += " · " + m.Locality
	}

	var others []string
	scenic := false
	for _, a := range []string{"Mountain View", "Spa", "Restaurant", "WiFi"} {
		if !hasString(m.Amenities, a) {
			continue
		}
		if a == "Mountain View" {
			scenic = true
			continue
		}
		others = append(others, a)
	}
	clause := ""
	switch {
	case scenic:
		clause = " with Himalayan views"
	case len(others) > 0:
		if len(others) > 2 {
			others = others[:2]
		}
		clause = " with " + strings.Join(others, ", ")
	}
	return fmt.Sprintf("%s %s %s%s.", tone, kind, loc, clause)
}

func containsAny(s string, subs ...string) bool {
	for _, x := range subs {
		if strings.Contains(s, x) {
			return true
		}
	}
	return false
}

func hasString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
