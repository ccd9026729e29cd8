package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/goleak"

	"gompa/internal/models/place_models"
	"gompa/pkg/utils"
)

// verifyNoLeaks ignores idle keep-alive connections left by http clients.
func verifyNoLeaks(t *testing.T) {
	t.Helper()
	goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

type fakeSource struct {
	name  place_models.Source
	byCat map[place_models.Category][]place_models.PlaceCandidate
	err   error
	calls atomic.Int32
}

func (f *fakeSource) Name() place_models.Source { return f.name }

func (f *fakeSource) Nearby(ctx context.Context, q NearbyQuery) ([]place_models.PlaceCandidate, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.byCat[q.Category], nil
}

// fakeLookup answers Details from a table. When gate is set, Details blocks
// until the gate closes or the context ends.
type fakeLookup struct {
	mu      sync.Mutex
	details map[string]*PlaceDetails
	found   []place_models.PlaceCandidate
	gate    chan struct{}

	detailCalls atomic.Int32
	findCalls   atomic.Int32
	textCalls   atomic.Int32
}

func (f *fakeLookup) FindPlace(ctx context.Context, q LookupQuery) ([]place_models.PlaceCandidate, error) {
	f.findCalls.Add(1)
	return f.found, nil
}

func (f *fakeLookup) TextSearch(ctx context.Context, q LookupQuery) ([]place_models.PlaceCandidate, error) {
	f.textCalls.Add(1)
	return f.found, nil
}

func (f *fakeLookup) Details(ctx context.Context, placeID string) (*PlaceDetails, error) {
	f.detailCalls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.details[placeID]
	if !ok {
		return nil, utils.ErrPlaceNotFound
	}
	return d, nil
}
