package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gompa/internal/models/place_models"
	"gompa/pkg/geo"
)

type NearbyQuery struct {
	Origin   geo.Point
	RadiusKm float64
	Category place_models.Category
	Keyword  string
}

// PlaceSource is one external place database.
type PlaceSource interface {
	Name() place_models.Source
	Nearby(ctx context.Context, q NearbyQuery) ([]place_models.PlaceCandidate, error)
}

type LookupQuery struct {
	Text     string
	Near     geo.Point
	RadiusKm float64
	Category place_models.Category
}

type PlaceDetails struct {
	PlaceID  string
	Name     string
	Location geo.Point
	Phone    string
	Address  string
	Photos   []string
}

// PlaceLookup is the text and details API of the commercial source.
type PlaceLookup interface {
	FindPlace(ctx context.Context, q LookupQuery) ([]place_models.PlaceCandidate, error)
	TextSearch(ctx context.Context, q LookupQuery) ([]place_models.PlaceCandidate, error)
	Details(ctx context.Context, placeID string) (*PlaceDetails, error)
}

// admitCandidate is the adapter boundary check every record passes.
func admitCandidate(c place_models.PlaceCandidate, region geo.BBox) bool {
	if c.ID == "" || !c.Location.Valid() {
		return false
	}
	return region.IsZero() || region.Contains(c.Location)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func doJSON(client *http.Client, req *http.Request, out any, label string) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s http error: %w", label, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s bad status: %s", label, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s decode: %w", label, err)
	}
	return nil
}
