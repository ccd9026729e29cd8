package geo

import (
	"math"
	"sort"
)

// EarthRadiusKm is the mean earth radius used by HaversineKm.
const EarthRadiusKm = 6371.0

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Locatable is anything with a coordinate (places, stands, landmarks).
type Locatable interface {
	Coordinate() Point
}

func (p Point) Coordinate() Point { return p }

// Valid reports whether p is usable for distance math. The zero coordinate
// counts as missing: upstream payloads use it for "no location".
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	if p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
		return false
	}
	return !(p.Lat == 0 && p.Lng == 0)
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

// HaversineKm returns the great-circle distance between a and b in kilometres.
func HaversineKm(a, b Point) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	if h > 1 {
		h = 1
	}
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// WithinKm keeps the items whose coordinate lies at most radiusKm from origin.
// Items without a valid coordinate are dropped.
func WithinKm[T Locatable](origin Point, items []T, radiusKm float64) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		c := it.Coordinate()
		if !c.Valid() {
			continue
		}
		if HaversineKm(origin, c) <= radiusKm {
			out = append(out, it)
		}
	}
	return out
}

// SortByDistance returns a copy of items ordered by ascending distance from
// origin. Items without a valid coordinate are dropped; ties keep input order.
func SortByDistance[T Locatable](origin Point, items []T) []T {
	type ranked struct {
		item T
		d    float64
	}
	rs := make([]ranked, 0, len(items))
	for _, it := range items {
		c := it.Coordinate()
		if !c.Valid() {
			continue
		}
		rs = append(rs, ranked{item: it, d: HaversineKm(origin, c)})
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].d < rs[j].d })

	out := make([]T, len(rs))
	for i, r := range rs {
		out[i] = r.item
	}
	return out
}

// RoundTo rounds v to the given number of decimals.
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
