// pkg/memcache/resolved_places.go
package mem

import (
	"sync"
	"time"
)

// Resolution is what an enrichment lookup learned about one place.
type Resolution struct {
	PlaceID string
	Phone   string
	Address string
	// Photos are commercial photo references.
	Photos []string
}

type ResolvedPlaceStore interface {
	// Get returns the resolution recorded for id, if any.
	Get(id string) (Resolution, bool)

	// Put records r for id. Empty fields never overwrite known values.
	Put(id string, r Resolution)

	// ByPlaceID maps a commercial place id back to the id it was resolved for.
	ByPlaceID(placeID string) (string, bool)

	Len() int
}

type resolvedEntry struct {
	res       Resolution
	expiresAt time.Time
}

// ResolvedPlaces is the enrichment cache for one session. Entries never
// expire when ttl is zero.
type ResolvedPlaces struct {
	mu      sync.RWMutex
	ttl     time.Duration
	data    map[string]resolvedEntry
	byPlace map[string]string
}

func NewResolvedPlaces(ttl time.Duration) *ResolvedPlaces {
	return &ResolvedPlaces{
		ttl:     ttl,
		data:    make(map[string]resolvedEntry),
		byPlace: make(map[string]string),
	}
}

func (s *ResolvedPlaces) expired(e resolvedEntry) bool {
	return s.ttl > 0 && time.Now().After(e.expiresAt)
}

func (s *ResolvedPlaces) Get(id string) (Resolution, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[id]
	if !ok || s.expired(e) {
		return Resolution{}, false
	}
	return e.res, true
}

func (s *ResolvedPlaces) Put(id string, r Resolution) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.data[id].res
	if r.PlaceID != "" {
		cur.PlaceID = r.PlaceID
		s.byPlace[r.PlaceID] = id
	}
	if r.Phone != "" {
		cur.Phone = r.Phone
	}
	if r.Address != "" {
		cur.Address = r.Address
	}
	if len(r.Photos) > 0 {
		cur.Photos = append([]string(nil), r.Photos...)
	}
	s.data[id] = resolvedEntry{res: cur, expiresAt: time.Now().Add(s.ttl)}
}

func (s *ResolvedPlaces) ByPlaceID(placeID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byPlace[placeID]
	if !ok {
		return "", false
	}
	if e, ok := s.data[id]; !ok || s.expired(e) {
		return "", false
	}
	return id, true
}

func (s *ResolvedPlaces) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
