package services

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"gompa/internal/models/place_models"
	"gompa/pkg/geo"
	mem "gompa/pkg/memcache"
)

type MergeOptions struct {
	Origin           geo.Point
	RadiusKm         float64
	Limit            int
	MatchThresholdKm float64
	ExcludeUnnamed   bool
	Region           geo.BBox
	RegionHints      []string
	// Resolved maps secondary ids to commercial place ids learned by enrichment.
	Resolved mem.ResolvedPlaceStore
}

type MergeResult struct {
	Places []*place_models.MergedPlace
	// Duplicates is the number of secondary candidates folded into a primary.
	Duplicates int
	Filtered   int
}

// MergePlaces combines the commercial (primary) and open-data (secondary)
// candidate lists into one list with no duplicate physical places, sorted by
// distance from opts.Origin.
func MergePlaces(primary, secondary []place_models.PlaceCandidate, opts MergeOptions) MergeResult {
	var res MergeResult

	prim := make([]place_models.PlaceCandidate, 0, len(primary))
	seenPrim := make(map[string]struct{}, len(primary))
	for _, c := range primary {
		if _, dup := seenPrim[c.ID]; dup || !admitForMerge(c, opts) {
			res.Filtered++
			continue
		}
		seenPrim[c.ID] = struct{}{}
		prim = append(prim, c)
	}

	byID := make(map[string]int, len(prim))
	byKey := make(map[string]int, len(prim))
	for i, p := range prim {
		byID[p.ID] = i
		if k := nameAddressKey(p); k != "" {
			if _, ok := byKey[k]; !ok {
				byKey[k] = i
			}
		}
	}

	claimed := make([]bool, len(prim))
	matchOf := make([]*place_models.PlaceCandidate, len(prim))
	var standalone []place_models.PlaceCandidate
	seenSec := make(map[string]struct{}, len(secondary))

	for _, s := range secondary {
		if _, dup := seenSec[s.ID]; dup || !admitForMerge(s, opts) {
			res.Filtered++
			continue
		}
		seenSec[s.ID] = struct{}{}

		i := findPrimary(s, prim, claimed, byID, byKey, opts)
		if i < 0 {
			standalone = append(standalone, s)
			continue
		}
		claimed[i] = true
		sc := s
		matchOf[i] = &sc
		res.Duplicates++
	}

	places := make([]*place_models.MergedPlace, 0, len(prim)+len(standalone))
	for i, p := range prim {
		if matchOf[i] != nil {
			places = append(places, combineCandidates(p, *matchOf[i]))
		} else {
			places = append(places, fromCandidate(p))
		}
	}
	for _, s := range standalone {
		places = append(places, fromCandidate(s))
	}

	if opts.RadiusKm > 0 {
		places = geo.WithinKm(opts.Origin, places, opts.RadiusKm)
	}
	// Ids first so equal distances keep id order through the stable sort.
	sort.Slice(places, func(i, j int) bool { return places[i].ID < places[j].ID })
	kept := geo.SortByDistance(opts.Origin, places)
	for _, m := range kept {
		m.DistanceKm = geo.HaversineKm(opts.Origin, m.Location)
	}
	if opts.Limit > 0 && len(kept) > opts.Limit {
		kept = kept[:opts.Limit]
	}
	res.Places = kept
	return res
}

// admitForMerge applies the coordinate, region, address-hint and name filters.
func admitForMerge(c place_models.PlaceCandidate, opts MergeOptions) bool {
	if !c.Location.Valid() {
		return false
	}
	if !opts.Region.IsZero() && !opts.Region.Contains(c.Location) {
		return false
	}
	if opts.ExcludeUnnamed && !place_models.HasName(c.Name) {
		return false
	}
	return matchesRegionHints(c.AddressText(), opts.RegionHints)
}

// matchesRegionHints is true for an empty address: unknown addresses are kept.
func matchesRegionHints(address string, hints []string) bool {
	if len(hints) == 0 {
		return true
	}
	a := strings.ToLower(strings.TrimSpace(address))
	if a == "" {
		return true
	}
	for _, h := range hints {
		if h != "" && strings.Contains(a, strings.ToLower(h)) {
			return true
		}
	}
	return false
}

func findPrimary(s place_models.PlaceCandidate, prim []place_models.PlaceCandidate, claimed []bool,
	byID, byKey map[string]int, opts MergeOptions) int {
	// (a) identity, directly or through a previous resolution
	if i, ok := byID[s.ID]; ok && !claimed[i] {
		return i
	}
	if opts.Resolved != nil {
		if r, ok := opts.Resolved.Get(s.ID); ok && r.PlaceID != "" {
			if i, ok := byID[r.PlaceID]; ok && !claimed[i] {
				return i
			}
		}
	}

	// (b) nearest agreeing primary within the threshold
	best, bestD := -1, math.Inf(1)
	if opts.MatchThresholdKm > 0 && place_models.HasName(s.Name) {
		for i, p := range prim {
			if claimed[i] || !place_models.HasName(p.Name) {
				continue
			}
			d := geo.HaversineKm(s.Location, p.Location)
			if d <= opts.MatchThresholdKm && d < bestD && namesAgree(s.Name, p.Name) {
				best, bestD = i, d
			}
		}
	}
	if best >= 0 {
		return best
	}

	// (c) normalized name+address
	if k := nameAddressKey(s); k != "" {
		if i, ok := byKey[k]; ok && !claimed[i] {
			return i
		}
	}
	return -1
}

// normalizeText lower-cases and collapses whitespace and punctuation.
func normalizeText(s string) string {
	var b strings.Builder
	space := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}

func nameAddressKey(c place_models.PlaceCandidate) string {
	if !place_models.HasName(c.Name) {
		return ""
	}
	addr := c.Address
	if addr == "" {
		addr = c.Vicinity
	}
	return normalizeText(c.Name) + "|" + normalizeText(addr)
}

// genericNameWords name what a place is rather than which place it is.
var genericNameWords = map[string]struct{}{
	"the": {}, "and": {}, "of": {}, "n": {},
	"cafe": {}, "café": {}, "coffee": {}, "restaurant": {}, "dhaba": {}, "eatery": {}, "bakery": {}, "bar": {},
	"hotel": {}, "homestay": {}, "home": {}, "stay": {}, "guest": {}, "house": {}, "lodge": {}, "resort": {},
	"inn": {}, "hostel": {}, "cottage": {}, "retreat": {},
	"taxi": {}, "stand": {}, "bus": {}, "station": {}, "stop": {}, "terminus": {},
	"view": {}, "point": {}, "park": {},
}

func significantTokens(normalized string) []string {
	var out []string
	for _, t := range strings.Fields(normalized) {
		if _, generic := genericNameWords[t]; !generic {
			out = append(out, t)
		}
	}
	return out
}

// tokensMatch tolerates one edit between longer tokens (Pemayangtse/Pemayangste).
func tokensMatch(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) < 5 || len(b) < 5 {
		return false
	}
	return levenshtein.ComputeDistance(a, b) <= 1
}

// namesAgree holds for equal names, whole-word containment, or at least half
// of the shorter name's distinctive tokens shared. Kind words such as "cafe"
// or "taxi stand" never count as shared.
func namesAgree(a, b string) bool {
	na, nb := normalizeText(a), normalizeText(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	ta, tb := significantTokens(na), significantTokens(nb)
	if len(ta) == 0 || len(tb) == 0 {
		return false
	}
	if (len(na) >= 4 && strings.Contains(" "+nb+" ", " "+na+" ")) ||
		(len(nb) >= 4 && strings.Contains(" "+na+" ", " "+nb+" ")) {
		return true
	}
	used := make([]bool, len(tb))
	shared := 0
	for _, x := range ta {
		for j, y := range tb {
			if !used[j] && tokensMatch(x, y) {
				used[j] = true
				shared++
				break
			}
		}
	}
	shorter := min(len(ta), len(tb))
	return float64(shared)/float64(shorter) >= 0.5
}

func fromCandidate(c place_models.PlaceCandidate) *place_models.MergedPlace {
	m := &place_models.MergedPlace{
		ID:           c.ID,
		Name:         c.Name,
		Category:     c.Category,
		Kind:         c.Kind,
		Location:     c.Location,
		Phone:        c.Phone,
		Address:      c.Address,
		Rating:       c.Rating,
		RatingsTotal: c.RatingsTotal,
		PriceLevel:   c.PriceLevel,
		Tags:         c.Tags,
		Sources:      []place_models.Source{c.Source},
	}
	if m.Address == "" {
		m.Address = c.Vicinity
	}
	switch c.Source {
	case place_models.SourceOSM:
		m.OSMID = c.ID
	case place_models.SourceGoogle:
		m.PlaceID = c.ID
	}
	deriveTagFields(m, c.Vicinity)
	return m
}

// combineCandidates keeps p's identity, contact and rating data and s's tags.
func combineCandidates(p, s place_models.PlaceCandidate) *place_models.MergedPlace {
	m := fromCandidate(p)
	if !place_models.HasName(m.Name) && place_models.HasName(s.Name) {
		m.Name = s.Name
	}
	if m.Phone == "" {
		m.Phone = s.Phone
	}
	if p.Address == "" && s.Address != "" {
		m.Address = s.Address
	} else if m.Address == "" {
		m.Address = s.Vicinity
	}
	if s.Kind != "" {
		m.Kind = s.Kind
	}
	if m.Category == "" {
		m.Category = s.Category
	}
	if s.Tags != nil {
		m.Tags = s.Tags
	}
	if !m.HasSource(s.Source) {
		m.Sources = append(m.Sources, s.Source)
	}
	switch s.Source {
	case place_models.SourceOSM:
		m.OSMID = s.ID
	case place_models.SourceGoogle:
		m.PlaceID = s.ID
	}
	vicinity := p.Vicinity
	if vicinity == "" {
		vicinity = s.Vicinity
	}
	deriveTagFields(m, vicinity)
	return m
}

func deriveTagFields(m *place_models.MergedPlace, vicinity string) {
	m.Locality = place_models.Locality(m.Tags)
	if m.Locality == "" {
		m.Locality = vicinity
	}
	m.Cuisine = place_models.Cuisine(m.Tags)
	m.Amenities = place_models.Amenities(m.Tags)
}
