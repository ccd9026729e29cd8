package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"gompa/internal/models/place_models"
	"gompa/pkg/geo"
)

const DefaultOverpassEndpoint = "https://overpass-api.de/api/interpreter"

type OverpassConfig struct {
	Endpoint  string
	UserAgent string
	Timeout   time.Duration
	Region    geo.BBox
}

// OSMSource queries OpenStreetMap through the Overpass API.
type OSMSource struct {
	HTTP      *http.Client
	Endpoint  string
	UserAgent string
	Region    geo.BBox
	logger    *zap.Logger
}

func NewOSMSource(cfg OverpassConfig, logger *zap.Logger) *OSMSource {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultOverpassEndpoint
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "gompa/1.0"
	}
	return &OSMSource{
		HTTP:      newHTTPClient(cfg.Timeout),
		Endpoint:  cfg.Endpoint,
		UserAgent: cfg.UserAgent,
		Region:    cfg.Region,
		logger:    logger.Named("osm"),
	}
}

func (s *OSMSource) Name() place_models.Source { return place_models.SourceOSM }

// overpassFilters are the tag selectors queried per category.
var overpassFilters = map[place_models.Category][]string{
	place_models.CategoryDining: {
		`["amenity"~"^(restaurant|cafe|fast_food|food_court)$"]`,
	},
	place_models.CategoryLodging: {
		`["tourism"~"^(hotel|hostel|motel|guest_house|apartment)$"]`,
		`["amenity"="homestay"]`,
	},
	place_models.CategoryAttraction: {
		`["tourism"~"^(attraction|viewpoint|museum|gallery)$"]`,
		`["historic"]`,
	},
	place_models.CategoryTransit: {
		`["amenity"="taxi"]`,
		`["amenity"="bus_station"]`,
	},
}

func buildOverpassQuery(q NearbyQuery) string {
	radiusM := int(q.RadiusKm * 1000)
	if radiusM <= 0 {
		radiusM = 5000
	}
	around := fmt.Sprintf("(around:%d,%.6f,%.6f)", radiusM, q.Origin.Lat, q.Origin.Lng)

	filters, ok := overpassFilters[q.Category]
	if !ok {
		filters = overpassFilters[place_models.CategoryDining]
	}

	var b strings.Builder
	b.WriteString("[out:json][timeout:25];(")
	for _, f := range filters {
		if q.Keyword != "" {
			f += fmt.Sprintf(`["name"~"%s",i]`, escapeOverpass(q.Keyword))
		}
		b.WriteString("node" + f + around + ";")
		b.WriteString("way" + f + around + ";")
	}
	b.WriteString(");out center tags;")
	return b.String()
}

func escapeOverpass(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return r.Replace(s)
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string   `json:"type"`
	ID     int64    `json:"id"`
	Lat    *float64 `json:"lat"`
	Lon    *float64 `json:"lon"`
	Center *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center"`
	Tags map[string]string `json:"tags"`
}

func (s *OSMSource) Nearby(ctx context.Context, q NearbyQuery) ([]place_models.PlaceCandidate, error) {
	form := url.Values{}
	form.Set("data", buildOverpassQuery(q))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", s.UserAgent)

	var payload overpassResponse
	if err := doJSON(s.HTTP, req, &payload, "overpass"); err != nil {
		return nil, err
	}

	out := make([]place_models.PlaceCandidate, 0, len(payload.Elements))
	dropped := 0
	for _, el := range payload.Elements {
		c, ok := s.parseElement(el, q.Category)
		if !ok {
			dropped++
			continue
		}
		out = append(out, c)
	}
	if dropped > 0 {
		s.logger.Debug("dropped overpass elements", zap.Int("dropped", dropped), zap.Int("kept", len(out)))
	}
	return out, nil
}

func (s *OSMSource) parseElement(el overpassElement, cat place_models.Category) (place_models.PlaceCandidate, bool) {
	var loc geo.Point
	switch {
	case el.Lat != nil && el.Lon != nil:
		loc = geo.Point{Lat: *el.Lat, Lng: *el.Lon}
	case el.Center != nil:
		loc = geo.Point{Lat: el.Center.Lat, Lng: el.Center.Lon}
	default:
		return place_models.PlaceCandidate{}, false
	}
	if el.Type == "" || el.ID == 0 {
		return place_models.PlaceCandidate{}, false
	}

	tags := el.Tags
	if tags == nil {
		tags = map[string]string{}
	}
	name := strings.TrimSpace(tags["name"])
	if name == "" {
		name = strings.TrimSpace(tags["name:en"])
	}
	if name == "" {
		name = place_models.UnnamedPlace
	}

	c := place_models.PlaceCandidate{
		ID:       fmt.Sprintf("osm:%s/%d", el.Type, el.ID),
		Name:     name,
		Location: loc,
		Phone:    place_models.TagPhone(tags),
		Address:  place_models.BuildAddress(tags),
		Vicinity: place_models.Locality(tags),
		Source:   place_models.SourceOSM,
		Category: cat,
		Kind:     place_models.InferKind(cat, name, tags, nil),
		Tags:     tags,
	}
	if !admitCandidate(c, s.Region) {
		return place_models.PlaceCandidate{}, false
	}
	return c, true
}
