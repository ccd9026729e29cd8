package services

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"gompa/internal/config"
	"gompa/internal/models/place_models"
	"gompa/pkg/geo"
	mem "gompa/pkg/memcache"
	"gompa/pkg/metrics"
	"gompa/pkg/utils"
)

const defaultTaskTimeout = 8 * time.Second

// Enricher backfills phone numbers and addresses for the top places of a
// session through the commercial lookup API.
type Enricher struct {
	lookup  PlaceLookup
	cfg     config.PipelineConfig
	metrics *metrics.Registry
	logger  *zap.Logger
	wg      sync.WaitGroup
}

func NewEnricher(lookup PlaceLookup, cfg config.PipelineConfig, m *metrics.Registry, logger *zap.Logger) *Enricher {
	return &Enricher{lookup: lookup, cfg: cfg, metrics: m, logger: logger.Named("enrichment")}
}

// Enabled is false when there is no lookup or its credentials are missing.
func (e *Enricher) Enabled() bool {
	if e.lookup == nil {
		return false
	}
	if en, ok := e.lookup.(interface{ Enabled() bool }); ok {
		return en.Enabled()
	}
	return true
}

// Enrich starts one task per target and returns the number started. Results
// are applied only while the session is still at generation.
func (e *Enricher) Enrich(ctx context.Context, sess *NearbySession, generation uint64) int {
	if !e.Enabled() {
		return 0
	}
	limit := e.cfg.Category(sess.Category).EnrichLimit
	if limit <= 0 {
		return 0
	}
	targets := sess.claimTargets(limit)
	for _, t := range targets {
		e.wg.Add(1)
		go func(target place_models.MergedPlace) {
			defer e.wg.Done()
			e.runTask(ctx, sess, generation, target)
		}(t)
	}
	return len(targets)
}

// Wait blocks until every started task has finished.
func (e *Enricher) Wait() { e.wg.Wait() }

func (e *Enricher) runTask(ctx context.Context, sess *NearbySession, generation uint64, target place_models.MergedPlace) {
	tctx, cancel := context.WithTimeout(ctx, e.taskTimeout())
	defer cancel()

	res, err := e.resolve(tctx, sess.Resolved, target)
	status := place_models.TaskResolved
	switch {
	case ctx.Err() != nil:
		status = place_models.TaskCancelled
	case err != nil:
		status = place_models.TaskFailed
		e.logger.Debug("enrichment failed", zap.String("place", target.ID), zap.Error(err))
	}

	if !sess.applyResolution(generation, target.ID, res, status) && status != place_models.TaskFailed {
		status = place_models.TaskCancelled
	}
	if e.metrics != nil {
		e.metrics.EnrichmentTasks.WithLabelValues(string(status)).Inc()
	}
}

func (e *Enricher) taskTimeout() time.Duration {
	if d := e.cfg.Enrichment.TaskTimeout; d > 0 {
		return d
	}
	return defaultTaskTimeout
}

// ResolveOne looks up contact data for one place synchronously and returns
// the resulting call action, falling back to a web search.
func (e *Enricher) ResolveOne(ctx context.Context, sess *NearbySession, placeID string) (ContactAction, error) {
	p, ok := sess.Place(placeID)
	if !ok {
		return ContactAction{}, utils.ErrPlaceNotFound
	}
	if p.Phone != "" || !e.Enabled() {
		return ContactFor(p), nil
	}

	tctx, cancel := context.WithTimeout(ctx, e.taskTimeout())
	defer cancel()

	generation := sess.Generation()
	res, err := e.resolve(tctx, sess.Resolved, p)
	if err != nil {
		e.logger.Debug("resolve failed", zap.String("place", placeID), zap.Error(err))
		return ContactFor(p), nil
	}
	sess.applyResolution(generation, placeID, res, place_models.TaskResolved)
	if p.Phone == "" {
		p.Phone = res.Phone
	}
	if p.Address == "" {
		p.Address = res.Address
	}
	return ContactFor(p), nil
}

// resolve consults the cache, then Details when the place id is known, then
// Find Place with a Text Search fallback.
func (e *Enricher) resolve(ctx context.Context, cache mem.ResolvedPlaceStore, target place_models.MergedPlace) (*mem.Resolution, error) {
	if cache != nil {
		if r, ok := cache.Get(target.ID); ok && (r.Phone != "" || r.Address != "") {
			return &r, nil
		}
	}

	placeID := target.PlaceID
	if placeID == "" {
		var err error
		placeID, err = e.findPlaceID(ctx, target)
		if err != nil {
			return nil, err
		}
		// A lookup that lands on a place already attributed to another
		// listing found a neighbour, not this place.
		if cache != nil {
			if owner, ok := cache.ByPlaceID(placeID); ok && owner != target.ID {
				return nil, utils.ErrPlaceNotFound
			}
		}
	}

	d, err := e.lookup.Details(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := mem.Resolution{PlaceID: placeID, Phone: d.Phone, Address: d.Address, Photos: d.Photos}
	if cache != nil {
		cache.Put(target.ID, r)
	}
	return &r, nil
}

func (e *Enricher) findPlaceID(ctx context.Context, target place_models.MergedPlace) (string, error) {
	q := LookupQuery{
		Text:     lookupText(target),
		Near:     target.Location,
		RadiusKm: e.cfg.Enrichment.LookupRadiusKm,
		Category: target.Category,
	}

	found, err := e.lookup.FindPlace(ctx, q)
	if err != nil || len(found) == 0 {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		found, err = e.lookup.TextSearch(ctx, q)
		if err != nil {
			return "", err
		}
	}

	best, ok := nearestWithin(target.Location, found, q.RadiusKm)
	if !ok {
		return "", utils.ErrPlaceNotFound
	}
	return best.ID, nil
}

// lookupText is the place name, or its kind label for unnamed places, plus a
// locality hint.
func lookupText(m place_models.MergedPlace) string {
	parts := make([]string, 0, 2)
	if place_models.HasName(m.Name) {
		parts = append(parts, m.Name)
	} else {
		parts = append(parts, place_models.KindLabel(m.Kind))
	}
	hint := m.Locality
	if hint == "" || strings.Contains(strings.ToLower(parts[0]), strings.ToLower(hint)) {
		hint = "Sikkim"
	}
	parts = append(parts, hint)
	return strings.Join(parts, " ")
}

func nearestWithin(origin geo.Point, cs []place_models.PlaceCandidate, radiusKm float64) (place_models.PlaceCandidate, bool) {
	best, bestD := -1, math.Inf(1)
	for i, c := range cs {
		if c.ID == "" {
			continue
		}
		d := geo.HaversineKm(origin, c.Location)
		if radiusKm > 0 && d > radiusKm {
			continue
		}
		if d < bestD {
			best, bestD = i, d
		}
	}
	if best < 0 {
		return place_models.PlaceCandidate{}, false
	}
	return cs[best], true
}
