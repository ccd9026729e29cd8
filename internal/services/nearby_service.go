package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gompa/internal/config"
	"gompa/internal/models/place_models"
	"gompa/internal/models/response_models"
	"gompa/pkg/geo"
	mem "gompa/pkg/memcache"
	"gompa/pkg/metrics"
	"gompa/pkg/utils"
)

const maxResultLimit = 100

type NearbyRequest struct {
	LandmarkID string
	Origin     *geo.Point
	Category   place_models.Category
	RadiusKm   float64
	Limit      int
	Keyword    string
	// ClientKey groups the loads of one client; a new load supersedes the last.
	ClientKey string
}

type SearchResult struct {
	Origin   geo.Point
	Landmark LandmarkRef
	Category place_models.Category
	RadiusKm float64
	Places   []*place_models.MergedPlace
}

type NearbyServiceInterface interface {
	Nearby(ctx context.Context, req NearbyRequest) (*response_models.NearbyResponse, error)
	Count(ctx context.Context, req NearbyRequest) (*response_models.NearbyCountResponse, error)
	Search(ctx context.Context, req NearbyRequest) (*SearchResult, error)
	Snapshot(sessionID string) (*response_models.NearbyResponse, error)
	Subscribe(sessionID string) (<-chan PlaceEvent, func(), error)
	Resolve(ctx context.Context, sessionID, placeID string) (*response_models.ContactResponse, error)
}

type NearbyService struct {
	primary   PlaceSource
	secondary PlaceSource
	landmarks LandmarkServiceInterface
	enricher  *Enricher
	sessions  *SessionStore
	synth     *PlaceSynthesizer
	cfg       config.PipelineConfig
	metrics   *metrics.Registry
	logger    *zap.Logger
}

// NewNearbyService wires the commercial (primary) and open-data (secondary)
// sources. Either may be nil.
func NewNearbyService(primary, secondary PlaceSource, landmarks LandmarkServiceInterface, enricher *Enricher,
	sessions *SessionStore, cfg config.PipelineConfig, m *metrics.Registry, logger *zap.Logger) NearbyServiceInterface {
	return &NearbyService{
		primary:   primary,
		secondary: secondary,
		landmarks: landmarks,
		enricher:  enricher,
		sessions:  sessions,
		synth:     NewPlaceSynthesizer(cfg),
		cfg:       cfg,
		metrics:   m,
		logger:    logger.Named("nearby"),
	}
}

func (s *NearbyService) Nearby(ctx context.Context, req NearbyRequest) (*response_models.NearbyResponse, error) {
	if req.ClientKey == "" {
		req.ClientKey = uuid.NewString()
	}
	resolved := s.sessions.ResolvedFor(req.ClientKey)

	res, err := s.search(ctx, req, resolved)
	if err != nil {
		return nil, err
	}

	sess := newNearbySession(req.ClientKey, res.Places, resolved, time.Now())
	sess.Landmark = res.Landmark
	sess.Origin = res.Origin
	sess.Category = res.Category
	sess.RadiusKm = res.RadiusKm
	if len(res.Places) == 0 {
		sess.Message = EmptyMessage(res.Category, res.RadiusKm)
	}
	s.sessions.Open(sess)

	started := 0
	if s.enricher != nil {
		started = s.enricher.Enrich(sess.Context(), sess, sess.Generation())
	}
	s.logger.Info("nearby loaded",
		zap.String("session", sess.ID),
		zap.String("landmark", res.Landmark.ID),
		zap.String("category", string(res.Category)),
		zap.Int("places", len(res.Places)),
		zap.Int("enriching", started))

	resp := ToNearbyResponse(sess.Snapshot())
	return &resp, nil
}

func (s *NearbyService) Search(ctx context.Context, req NearbyRequest) (*SearchResult, error) {
	return s.search(ctx, req, nil)
}

// Count runs the pipeline without the unnamed exclusion or a result limit,
// for one category or all of them.
func (s *NearbyService) Count(ctx context.Context, req NearbyRequest) (*response_models.NearbyCountResponse, error) {
	origin, _, err := s.resolveOrigin(ctx, req)
	if err != nil {
		return nil, err
	}
	radius, err := s.radius(req.RadiusKm)
	if err != nil {
		return nil, err
	}

	cats := place_models.Categories
	if req.Category != "" {
		cats = []place_models.Category{req.Category}
	}
	counts := make([]int, len(cats))

	g, gctx := errgroup.WithContext(ctx)
	for i, cat := range cats {
		i, cat := i, cat
		g.Go(func() error {
			q := NearbyQuery{Origin: origin, RadiusKm: radius, Category: cat, Keyword: req.Keyword}
			prim, sec := s.fetch(gctx, q)
			opts := s.mergeOptions(origin, cat, radius, 0, nil)
			opts.ExcludeUnnamed = false
			counts[i] = len(MergePlaces(prim, sec, opts).Places)
			return nil
		})
	}
	_ = g.Wait()

	resp := &response_models.NearbyCountResponse{
		Origin:   response_models.PointResponse{Lat: origin.Lat, Lng: origin.Lng},
		RadiusKm: radius,
		Counts:   make(map[string]int, len(cats)),
	}
	for i, cat := range cats {
		resp.Counts[string(cat)] = counts[i]
		resp.Total += counts[i]
	}
	return resp, nil
}

func (s *NearbyService) Snapshot(sessionID string) (*response_models.NearbyResponse, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	resp := ToNearbyResponse(sess.Snapshot())
	return &resp, nil
}

func (s *NearbyService) Subscribe(sessionID string) (<-chan PlaceEvent, func(), error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := sess.Subscribe(32)
	return ch, cancel, nil
}

func (s *NearbyService) Resolve(ctx context.Context, sessionID, placeID string) (*response_models.ContactResponse, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	var action ContactAction
	if s.enricher != nil {
		action, err = s.enricher.ResolveOne(ctx, sess, placeID)
	} else {
		p, ok := sess.Place(placeID)
		if !ok {
			return nil, utils.ErrPlaceNotFound
		}
		action = ContactFor(p)
	}
	if err != nil {
		return nil, err
	}
	return &response_models.ContactResponse{Kind: action.Kind, Href: action.Href, Phone: action.Phone}, nil
}

func (s *NearbyService) search(ctx context.Context, req NearbyRequest, resolved mem.ResolvedPlaceStore) (*SearchResult, error) {
	origin, lm, err := s.resolveOrigin(ctx, req)
	if err != nil {
		return nil, err
	}
	cat := req.Category
	if cat == "" {
		cat = place_models.CategoryDining
	}
	radius, err := s.radius(req.RadiusKm)
	if err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.ResultLimit
	}
	if limit > maxResultLimit {
		limit = maxResultLimit
	}

	prim, sec := s.fetch(ctx, NearbyQuery{Origin: origin, RadiusKm: radius, Category: cat, Keyword: req.Keyword})

	merged := MergePlaces(prim, sec, s.mergeOptions(origin, cat, radius, limit, resolved))
	if s.metrics != nil {
		s.metrics.MergeDuplicates.Add(float64(merged.Duplicates))
		s.metrics.MergedPlaces.Observe(float64(len(merged.Places)))
	}
	s.synth.ApplyAll(merged.Places, lm)

	return &SearchResult{Origin: origin, Landmark: lm, Category: cat, RadiusKm: radius, Places: merged.Places}, nil
}

func (s *NearbyService) mergeOptions(origin geo.Point, cat place_models.Category, radius float64, limit int,
	resolved mem.ResolvedPlaceStore) MergeOptions {
	cc := s.cfg.Category(cat)
	return MergeOptions{
		Origin:           origin,
		RadiusKm:         radius,
		Limit:            limit,
		MatchThresholdKm: cc.MatchThresholdKm,
		ExcludeUnnamed:   cc.ExcludeUnnamed,
		Region:           s.cfg.Region,
		RegionHints:      s.cfg.RegionHints,
		Resolved:         resolved,
	}
}

func (s *NearbyService) resolveOrigin(ctx context.Context, req NearbyRequest) (geo.Point, LandmarkRef, error) {
	if req.LandmarkID != "" {
		lm, err := s.landmarks.Get(ctx, req.LandmarkID)
		if err != nil {
			return geo.Point{}, LandmarkRef{}, err
		}
		return landmarkPoint(lm), LandmarkRef{ID: lm.ID, Name: lm.Name}, nil
	}
	if req.Origin == nil || !req.Origin.Valid() {
		return geo.Point{}, LandmarkRef{}, utils.ErrInvalidCoordinates
	}
	return *req.Origin, LandmarkRef{}, nil
}

func (s *NearbyService) radius(r float64) (float64, error) {
	if r == 0 {
		return s.cfg.DefaultRadiusKm, nil
	}
	if r < 0 || (s.cfg.MaxRadiusKm > 0 && r > s.cfg.MaxRadiusKm) {
		return 0, fmt.Errorf("%w: must be in (0, %g] km", utils.ErrInvalidRadius, s.cfg.MaxRadiusKm)
	}
	return r, nil
}

// fetch queries both sources concurrently. A failed source contributes an
// empty list.
func (s *NearbyService) fetch(ctx context.Context, q NearbyQuery) (primary, secondary []place_models.PlaceCandidate) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		primary = s.fetchSource(gctx, s.primary, q)
		return nil
	})
	g.Go(func() error {
		secondary = s.fetchSource(gctx, s.secondary, q)
		return nil
	})
	_ = g.Wait()
	return primary, secondary
}

func (s *NearbyService) fetchSource(ctx context.Context, src PlaceSource, q NearbyQuery) []place_models.PlaceCandidate {
	if src == nil {
		return nil
	}
	if s.cfg.SourceTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.SourceTimeout)
		defer cancel()
	}

	start := time.Now()
	out, err := src.Nearby(ctx, q)
	name := string(src.Name())

	outcome := "ok"
	switch {
	case errors.Is(err, utils.ErrSourceDisabled):
		outcome = "disabled"
		out = nil
	case err != nil:
		outcome = "error"
		out = nil
		s.logger.Warn("place source failed",
			zap.String("source", name),
			zap.String("category", string(q.Category)),
			zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.SourceRequests.WithLabelValues(name, outcome).Inc()
		s.metrics.SourceLatency.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
	return out
}

// EmptyMessage renders the explicit empty state, e.g. "No dining found within 5 km".
func EmptyMessage(cat place_models.Category, radiusKm float64) string {
	return fmt.Sprintf("No %s found within %s km", categoryNoun(cat), strconv.FormatFloat(radiusKm, 'f', -1, 64))
}

func categoryNoun(cat place_models.Category) string {
	switch cat {
	case place_models.CategoryAttraction:
		return "attractions"
	case place_models.CategoryTransit:
		return "transport"
	}
	return string(cat)
}
