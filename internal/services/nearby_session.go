package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"gompa/internal/config"
	"gompa/internal/models/place_models"
	"gompa/pkg/geo"
	mem "gompa/pkg/memcache"
	"gompa/pkg/metrics"
	"gompa/pkg/utils"
)

const (
	EventPlaceUpdated  = "place.updated"
	EventSessionClosed = "session.closed"
)

type PlaceEvent struct {
	Type       string
	SessionID  string
	Generation uint64
	Place      *place_models.MergedPlace
}

type SessionSnapshot struct {
	ID         string
	ClientKey  string
	Landmark   LandmarkRef
	Origin     geo.Point
	Category   place_models.Category
	RadiusKm   float64
	Generation uint64
	Places     []place_models.MergedPlace
	Enriching  int
	Message    string
	CreatedAt  time.Time
}

// NearbySession holds one client's current nearby list and its enrichment
// state. places is guarded by mu.
type NearbySession struct {
	ID        string
	ClientKey string
	Landmark  LandmarkRef
	Origin    geo.Point
	Category  place_models.Category
	RadiusKm  float64
	Message   string
	CreatedAt time.Time
	Resolved  mem.ResolvedPlaceStore

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.RWMutex
	places     []*place_models.MergedPlace
	index      map[string]*place_models.MergedPlace
	tasks      map[string]*place_models.EnrichmentTask
	generation uint64
	closed     bool
	touchedAt  time.Time
	observers  map[int]chan PlaceEvent
	nextObs    int
}

func newNearbySession(clientKey string, places []*place_models.MergedPlace, resolved mem.ResolvedPlaceStore, now time.Time) *NearbySession {
	ctx, cancel := context.WithCancel(context.Background())
	s := &NearbySession{
		ID:        uuid.NewString(),
		ClientKey: clientKey,
		CreatedAt: now,
		Resolved:  resolved,
		ctx:       ctx,
		cancel:    cancel,
		places:    places,
		index:     make(map[string]*place_models.MergedPlace, len(places)),
		tasks:     make(map[string]*place_models.EnrichmentTask),
		touchedAt: now,
		observers: make(map[int]chan PlaceEvent),
	}
	for _, p := range places {
		s.index[p.ID] = p
	}
	return s
}

// Context is cancelled when the session is superseded or expires.
func (s *NearbySession) Context() context.Context { return s.ctx }

func (s *NearbySession) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

func (s *NearbySession) Snapshot() SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := SessionSnapshot{
		ID:         s.ID,
		ClientKey:  s.ClientKey,
		Landmark:   s.Landmark,
		Origin:     s.Origin,
		Category:   s.Category,
		RadiusKm:   s.RadiusKm,
		Generation: s.generation,
		Places:     make([]place_models.MergedPlace, 0, len(s.places)),
		Message:    s.Message,
		CreatedAt:  s.CreatedAt,
	}
	for _, p := range s.places {
		snap.Places = append(snap.Places, p.Clone())
		if p.Enriching {
			snap.Enriching++
		}
	}
	return snap
}

func (s *NearbySession) Place(id string) (place_models.MergedPlace, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.index[id]
	if !ok {
		return place_models.MergedPlace{}, false
	}
	return p.Clone(), true
}

// Tasks returns a copy of the enrichment tasks keyed by place id.
func (s *NearbySession) Tasks() map[string]place_models.EnrichmentTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]place_models.EnrichmentTask, len(s.tasks))
	for id, t := range s.tasks {
		out[id] = *t
	}
	return out
}

// claimTargets registers pending tasks for up to limit places lacking a phone
// or an address, skipping places already resolved or in flight.
func (s *NearbySession) claimTargets(limit int) []place_models.MergedPlace {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}

	var out []place_models.MergedPlace
	for _, p := range s.places {
		if len(out) >= limit {
			break
		}
		if _, seen := s.tasks[p.ID]; seen || p.Resolved {
			continue
		}
		fields := missingFields(p)
		if len(fields) == 0 {
			continue
		}
		s.tasks[p.ID] = &place_models.EnrichmentTask{TargetID: p.ID, Fields: fields, Status: place_models.TaskPending}
		p.Enriching = true
		out = append(out, p.Clone())
	}
	return out
}

func missingFields(p *place_models.MergedPlace) []place_models.EnrichmentField {
	var f []place_models.EnrichmentField
	if p.Phone == "" {
		f = append(f, place_models.FieldPhone)
	}
	if p.Address == "" {
		f = append(f, place_models.FieldAddress)
	}
	return f
}

// applyResolution patches empty fields of one place. It is a no-op returning
// false when the session moved past generation or was closed.
func (s *NearbySession) applyResolution(generation uint64, id string, r *mem.Resolution, status place_models.TaskStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.generation != generation {
		if t, ok := s.tasks[id]; ok && t.Status == place_models.TaskPending {
			t.Status = place_models.TaskCancelled
		}
		return false
	}
	p, ok := s.index[id]
	if !ok {
		return false
	}
	if t, ok := s.tasks[id]; ok {
		t.Status = status
	}
	p.Enriching = false
	if r != nil && status == place_models.TaskResolved {
		if p.Phone == "" {
			p.Phone = r.Phone
		}
		if p.Address == "" {
			p.Address = r.Address
		}
		if p.PlaceID == "" {
			p.PlaceID = r.PlaceID
		}
		if len(p.Photos) == 0 {
			p.Photos = append([]string(nil), r.Photos...)
		}
		p.Resolved = true
	}
	s.publishLocked(PlaceEvent{Type: EventPlaceUpdated, SessionID: s.ID, Generation: s.generation, Place: clonePtr(p)})
	return true
}

func clonePtr(p *place_models.MergedPlace) *place_models.MergedPlace {
	c := p.Clone()
	return &c
}

// Subscribe registers an observer. Updates are dropped for observers whose
// buffer is full. The returned func unsubscribes.
func (s *NearbySession) Subscribe(buffer int) (<-chan PlaceEvent, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan PlaceEvent, buffer)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := s.nextObs
	s.nextObs++
	s.observers[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.observers[id]; ok {
				delete(s.observers, id)
				close(c)
			}
		})
	}
}

func (s *NearbySession) publishLocked(ev PlaceEvent) {
	for _, ch := range s.observers {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (s *NearbySession) touch(now time.Time) {
	s.mu.Lock()
	s.touchedAt = now
	s.mu.Unlock()
}

func (s *NearbySession) idleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.touchedAt
}

// close cancels in-flight enrichment, bumps the generation and releases
// every observer.
func (s *NearbySession) close() {
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.generation++
	for _, t := range s.tasks {
		if t.Status == place_models.TaskPending {
			t.Status = place_models.TaskCancelled
		}
	}
	for id, ch := range s.observers {
		select {
		case ch <- PlaceEvent{Type: EventSessionClosed, SessionID: s.ID, Generation: s.generation}:
		default:
		}
		close(ch)
		delete(s.observers, id)
	}
}

// SessionStore keeps the live sessions, at most one per client key.
type SessionStore struct {
	mu       sync.Mutex
	byID     map[string]*NearbySession
	byClient map[string]string
	ttl      time.Duration
	max      int
	metrics  *metrics.Registry
	now      func() time.Time
}

func NewSessionStore(cfg config.SessionConfig, m *metrics.Registry) *SessionStore {
	return &SessionStore{
		byID:     make(map[string]*NearbySession),
		byClient: make(map[string]string),
		ttl:      cfg.TTL,
		max:      cfg.MaxSessions,
		metrics:  m,
		now:      time.Now,
	}
}

// Open registers sess, superseding any session of the same client.
func (st *SessionStore) Open(sess *NearbySession) {
	st.mu.Lock()
	var stale []*NearbySession
	if prev, ok := st.byClient[sess.ClientKey]; ok && sess.ClientKey != "" {
		if old, ok := st.byID[prev]; ok {
			stale = append(stale, old)
			delete(st.byID, prev)
		}
	}
	if st.max > 0 && len(st.byID) >= st.max {
		stale = append(stale, st.evictOldestLocked())
	}
	st.byID[sess.ID] = sess
	if sess.ClientKey != "" {
		st.byClient[sess.ClientKey] = sess.ID
	}
	st.gaugeLocked()
	st.mu.Unlock()

	for _, s := range stale {
		if s != nil {
			s.close()
		}
	}
}

func (st *SessionStore) evictOldestLocked() *NearbySession {
	var oldest *NearbySession
	for _, s := range st.byID {
		if oldest == nil || s.idleSince().Before(oldest.idleSince()) {
			oldest = s
		}
	}
	if oldest != nil {
		st.removeLocked(oldest)
	}
	return oldest
}

func (st *SessionStore) removeLocked(s *NearbySession) {
	delete(st.byID, s.ID)
	if st.byClient[s.ClientKey] == s.ID {
		delete(st.byClient, s.ClientKey)
	}
}

// ResolvedFor returns the resolved-place cache of the client's current
// session, or a fresh one.
func (st *SessionStore) ResolvedFor(clientKey string) mem.ResolvedPlaceStore {
	st.mu.Lock()
	defer st.mu.Unlock()
	if id, ok := st.byClient[clientKey]; ok {
		if s, ok := st.byID[id]; ok && s.Resolved != nil {
			return s.Resolved
		}
	}
	return mem.NewResolvedPlaces(0)
}

func (st *SessionStore) Get(id string) (*NearbySession, error) {
	st.mu.Lock()
	s, ok := st.byID[id]
	st.mu.Unlock()
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	s.touch(st.now())
	return s, nil
}

func (st *SessionStore) Close(id string) {
	st.mu.Lock()
	s, ok := st.byID[id]
	if ok {
		st.removeLocked(s)
		st.gaugeLocked()
	}
	st.mu.Unlock()
	if ok {
		s.close()
	}
}

// Sweep closes sessions idle for longer than the TTL and returns how many.
func (st *SessionStore) Sweep() int {
	if st.ttl <= 0 {
		return 0
	}
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	var expired []*NearbySession
	for _, s := range st.byID {
		if s.idleSince().Before(cutoff) {
			expired = append(expired, s)
		}
	}
	for _, s := range expired {
		st.removeLocked(s)
	}
	st.gaugeLocked()
	st.mu.Unlock()

	for _, s := range expired {
		s.close()
	}
	return len(expired)
}

// Run sweeps expired sessions every interval until ctx is done, then closes
// all remaining sessions.
func (st *SessionStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			st.Shutdown()
			return
		case <-t.C:
			st.Sweep()
		}
	}
}

// Shutdown closes every session, cancelling their enrichment.
func (st *SessionStore) Shutdown() {
	st.mu.Lock()
	all := make([]*NearbySession, 0, len(st.byID))
	for _, s := range st.byID {
		all = append(all, s)
	}
	st.byID = make(map[string]*NearbySession)
	st.byClient = make(map[string]string)
	st.gaugeLocked()
	st.mu.Unlock()

	for _, s := range all {
		s.close()
	}
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.byID)
}

func (st *SessionStore) gaugeLocked() {
	if st.metrics != nil {
		st.metrics.ActiveSessions.Set(float64(len(st.byID)))
	}
}
