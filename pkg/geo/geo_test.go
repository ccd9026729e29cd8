package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	rumtek      = Point{Lat: 27.3389, Lng: 88.5583}
	pemayangtse = Point{Lat: 27.2951, Lng: 88.2158}
	enchey      = Point{Lat: 27.3333, Lng: 88.6167}
)

func TestHaversineKm_Symmetric(t *testing.T) {
	pairs := [][2]Point{
		{rumtek, pemayangtse},
		{rumtek, enchey},
		{{Lat: -33.86, Lng: 151.21}, {Lat: 51.5, Lng: -0.12}},
	}
	for _, p := range pairs {
		assert.InDelta(t, HaversineKm(p[0], p[1]), HaversineKm(p[1], p[0]), 1e-9)
	}
}

func TestHaversineKm_SelfIsZero(t *testing.T) {
	assert.Equal(t, 0.0, HaversineKm(rumtek, rumtek))
	assert.Equal(t, 0.0, HaversineKm(enchey, enchey))
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Rumtek to Pemayangtse is roughly 34 km as the crow flies.
	d := HaversineKm(rumtek, pemayangtse)
	assert.InDelta(t, 34.3, d, 0.5)

	// One degree of latitude on the mean sphere.
	assert.InDelta(t, 111.195, HaversineKm(Point{Lat: 10, Lng: 20}, Point{Lat: 11, Lng: 20}), 0.01)
}

func TestPoint_Valid(t *testing.T) {
	assert.True(t, rumtek.Valid())
	assert.False(t, Point{}.Valid())
	assert.False(t, Point{Lat: math.NaN(), Lng: 88}.Valid())
	assert.False(t, Point{Lat: 91, Lng: 88}.Valid())
	assert.False(t, Point{Lat: 27, Lng: 181}.Valid())
}

func TestWithinKm_MatchesDistancePredicate(t *testing.T) {
	points := []Point{
		rumtek,
		{Lat: 27.340, Lng: 88.559},
		enchey,
		pemayangtse,
		{}, // malformed
	}
	for _, r := range []float64{0, 0.5, 6, 10, 40} {
		got := WithinKm(rumtek, points, r)
		var want []Point
		for _, p := range points {
			if p.Valid() && HaversineKm(rumtek, p) <= r {
				want = append(want, p)
			}
		}
		assert.ElementsMatch(t, want, got, "radius %v", r)
	}
}

func TestSortByDistance(t *testing.T) {
	got := SortByDistance(rumtek, []Point{pemayangtse, {}, enchey, rumtek})
	require.Len(t, got, 3)
	assert.Equal(t, []Point{rumtek, enchey, pemayangtse}, got)
}

func TestBBox_UnionContains(t *testing.T) {
	east := BBox{South: 27.1, West: 88.45, North: 27.55, East: 88.95}
	west := BBox{South: 27.1, West: 88.0, North: 27.45, East: 88.35}
	u := Union(east, west)

	assert.Equal(t, BBox{South: 27.1, West: 88.0, North: 27.55, East: 88.95}, u)
	assert.True(t, u.Contains(rumtek))
	assert.True(t, u.Contains(pemayangtse))
	assert.False(t, u.Contains(Point{Lat: 26.7, Lng: 88.4}))
	assert.True(t, BBox{}.IsZero())
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.23, RoundTo(1.2345, 2))
	assert.Equal(t, 0.1, RoundTo(0.06, 1))
}

func TestParsePoint(t *testing.T) {
	p, err := ParsePoint(" 27.3389, 88.5583 ")
	require.NoError(t, err)
	assert.Equal(t, rumtek, p)

	for _, bad := range []string{"", "27.3", "a,b", "95,10", "0,0"} {
		_, err := ParsePoint(bad)
		assert.ErrorIs(t, err, ErrBadPoint, bad)
	}
}
