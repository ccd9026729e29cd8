package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"gompa/internal/models/place_models"
	"gompa/pkg/geo"
	"gompa/pkg/utils"
)

const DefaultGooglePlacesURL = "https://maps.googleapis.com/maps/api/place"

type GooglePlacesConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Region  geo.BBox
}

// GooglePlacesSource is the commercial source. Without an API key every call
// returns ErrSourceDisabled.
type GooglePlacesSource struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
	Region  geo.BBox
	logger  *zap.Logger
}

func NewGooglePlacesSource(cfg GooglePlacesConfig, logger *zap.Logger) *GooglePlacesSource {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGooglePlacesURL
	}
	return &GooglePlacesSource{
		HTTP:    newHTTPClient(cfg.Timeout),
		APIKey:  cfg.APIKey,
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		Region:  cfg.Region,
		logger:  logger.Named("google"),
	}
}

func (s *GooglePlacesSource) Name() place_models.Source { return place_models.SourceGoogle }

func (s *GooglePlacesSource) Enabled() bool { return s.APIKey != "" }

var googleTypes = map[place_models.Category][]string{
	place_models.CategoryLodging:    {"lodging"},
	place_models.CategoryDining:     {"restaurant"},
	place_models.CategoryAttraction: {"tourist_attraction"},
	place_models.CategoryTransit:    {"taxi_stand", "bus_station"},
}

type googleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type googleGeometry struct {
	Location googleLocation `json:"location"`
}

type googlePlaceResult struct {
	PlaceID          string         `json:"place_id"`
	Name             string         `json:"name"`
	Geometry         googleGeometry `json:"geometry"`
	Vicinity         string         `json:"vicinity"`
	FormattedAddress string         `json:"formatted_address"`
	Rating           *float64       `json:"rating,omitempty"`
	UserRatingsTotal *int           `json:"user_ratings_total,omitempty"`
	PriceLevel       *int           `json:"price_level,omitempty"`
	Types            []string       `json:"types"`
}

type googleSearchResponse struct {
	Results      []googlePlaceResult `json:"results"`
	Candidates   []googlePlaceResult `json:"candidates"`
	Status       string              `json:"status"`
	ErrorMessage string              `json:"error_message"`
}

type googleDetailsResponse struct {
	Result struct {
		googlePlaceResult
		FormattedPhone     string `json:"formatted_phone_number"`
		InternationalPhone string `json:"international_phone_number"`
		Photos             []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"result"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

func checkGoogleStatus(status, msg string) error {
	switch status {
	case "OK", "ZERO_RESULTS":
		return nil
	}
	if msg != "" {
		return fmt.Errorf("%w: %s (%s)", utils.ErrSourceStatus, status, msg)
	}
	return fmt.Errorf("%w: %s", utils.ErrSourceStatus, status)
}

func (s *GooglePlacesSource) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	if !s.Enabled() {
		return utils.ErrSourceDisabled
	}
	q.Set("key", s.APIKey)
	u := s.BaseURL + "/" + endpoint + "/json?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return doJSON(s.HTTP, req, out, "google "+endpoint)
}

func formatLatLng(p geo.Point) string {
	return strconv.FormatFloat(p.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(p.Lng, 'f', 6, 64)
}

func radiusMeters(km float64) string {
	m := int(km * 1000)
	if m <= 0 {
		m = 5000
	}
	if m > 50000 {
		m = 50000
	}
	return strconv.Itoa(m)
}

func (s *GooglePlacesSource) Nearby(ctx context.Context, q NearbyQuery) ([]place_models.PlaceCandidate, error) {
	if !s.Enabled() {
		return nil, utils.ErrSourceDisabled
	}
	types, ok := googleTypes[q.Category]
	if !ok {
		types = googleTypes[place_models.CategoryDining]
	}

	seen := make(map[string]struct{})
	var out []place_models.PlaceCandidate
	var firstErr error
	failed := 0
	for _, t := range types {
		params := url.Values{}
		params.Set("location", formatLatLng(q.Origin))
		params.Set("radius", radiusMeters(q.RadiusKm))
		params.Set("type", t)
		if q.Keyword != "" {
			params.Set("keyword", q.Keyword)
		}

		var payload googleSearchResponse
		err := s.get(ctx, "nearbysearch", params, &payload)
		if err == nil {
			err = checkGoogleStatus(payload.Status, payload.ErrorMessage)
		}
		if err != nil {
			// A failed type leaves the others' results standing.
			failed++
			if firstErr == nil {
				firstErr = err
			}
			s.logger.Warn("nearby search type failed", zap.String("type", t), zap.Error(err))
			continue
		}
		for _, r := range payload.Results {
			if _, dup := seen[r.PlaceID]; dup {
				continue
			}
			if c, ok := s.toCandidate(r, q.Category); ok {
				seen[r.PlaceID] = struct{}{}
				out = append(out, c)
			}
		}
	}
	if failed == len(types) {
		return nil, firstErr
	}
	return out, nil
}

func (s *GooglePlacesSource) TextSearch(ctx context.Context, q LookupQuery) ([]place_models.PlaceCandidate, error) {
	params := url.Values{}
	params.Set("query", q.Text)
	if q.Near.Valid() {
		params.Set("location", formatLatLng(q.Near))
		params.Set("radius", radiusMeters(q.RadiusKm))
	}
	if types, ok := googleTypes[q.Category]; ok {
		params.Set("type", types[0])
	}

	var payload googleSearchResponse
	if err := s.get(ctx, "textsearch", params, &payload); err != nil {
		return nil, err
	}
	if err := checkGoogleStatus(payload.Status, payload.ErrorMessage); err != nil {
		return nil, err
	}
	return s.toCandidates(payload.Results, q.Category), nil
}

func (s *GooglePlacesSource) FindPlace(ctx context.Context, q LookupQuery) ([]place_models.PlaceCandidate, error) {
	params := url.Values{}
	params.Set("input", q.Text)
	params.Set("inputtype", "textquery")
	params.Set("fields", "place_id,name,geometry,formatted_address,rating,user_ratings_total,price_level,types")
	if q.Near.Valid() {
		params.Set("locationbias", "circle:"+radiusMeters(q.RadiusKm)+"@"+formatLatLng(q.Near))
	}

	var payload googleSearchResponse
	if err := s.get(ctx, "findplacefromtext", params, &payload); err != nil {
		return nil, err
	}
	if err := checkGoogleStatus(payload.Status, payload.ErrorMessage); err != nil {
		return nil, err
	}
	return s.toCandidates(payload.Candidates, q.Category), nil
}

func (s *GooglePlacesSource) Details(ctx context.Context, placeID string) (*PlaceDetails, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "place_id,name,geometry,formatted_address,formatted_phone_number,international_phone_number,photos")

	var payload googleDetailsResponse
	if err := s.get(ctx, "details", params, &payload); err != nil {
		return nil, err
	}
	if err := checkGoogleStatus(payload.Status, payload.ErrorMessage); err != nil {
		return nil, err
	}

	r := payload.Result
	phone := strings.TrimSpace(r.FormattedPhone)
	if phone == "" {
		phone = strings.TrimSpace(r.InternationalPhone)
	}
	d := &PlaceDetails{
		PlaceID:  r.PlaceID,
		Name:     r.Name,
		Location: geo.Point{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
		Phone:    phone,
		Address:  strings.TrimSpace(r.FormattedAddress),
	}
	if d.PlaceID == "" {
		d.PlaceID = placeID
	}
	for _, p := range r.Photos {
		if p.PhotoReference != "" {
			d.Photos = append(d.Photos, p.PhotoReference)
		}
	}
	return d, nil
}

func (s *GooglePlacesSource) toCandidates(rs []googlePlaceResult, cat place_models.Category) []place_models.PlaceCandidate {
	out := make([]place_models.PlaceCandidate, 0, len(rs))
	for _, r := range rs {
		if c, ok := s.toCandidate(r, cat); ok {
			out = append(out, c)
		}
	}
	return out
}

func (s *GooglePlacesSource) toCandidate(r googlePlaceResult, cat place_models.Category) (place_models.PlaceCandidate, bool) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = place_models.UnnamedPlace
	}
	c := place_models.PlaceCandidate{
		ID:           r.PlaceID,
		Name:         name,
		Location:     geo.Point{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
		Address:      strings.TrimSpace(r.FormattedAddress),
		Vicinity:     strings.TrimSpace(r.Vicinity),
		Rating:       r.Rating,
		RatingsTotal: r.UserRatingsTotal,
		Source:       place_models.SourceGoogle,
		Category:     cat,
		Kind:         place_models.InferKind(cat, name, nil, r.Types),
	}
	if r.PriceLevel != nil && *r.PriceLevel >= 0 && *r.PriceLevel <= 4 {
		c.PriceLevel = r.PriceLevel
	}
	if !admitCandidate(c, s.Region) {
		s.logger.Debug("dropped google result", zap.String("place_id", r.PlaceID))
		return place_models.PlaceCandidate{}, false
	}
	return c, true
}
