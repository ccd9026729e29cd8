package geo

import (
	"errors"
	"strconv"
	"strings"
)

var ErrBadPoint = errors.New("expected lat,lng")

// ParsePoint reads "lat,lng" as used in query strings.
func ParsePoint(s string) (Point, error) {
	latS, lngS, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Point{}, ErrBadPoint
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latS), 64)
	if err != nil {
		return Point{}, ErrBadPoint
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngS), 64)
	if err != nil {
		return Point{}, ErrBadPoint
	}
	p := Point{Lat: lat, Lng: lng}
	if !p.Valid() {
		return Point{}, ErrBadPoint
	}
	return p, nil
}
