package services

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gompa/internal/config"
	"gompa/internal/infra"
	"gompa/internal/models/place_models"
	"gompa/pkg/geo"
	"gompa/pkg/utils"
)

var gangtok = geo.Point{Lat: 27.3314, Lng: 88.6138}

func TestQuoteOptions(t *testing.T) {
	d, opts := QuoteOptions(rumtek, rumtek)
	assert.Zero(t, d)
	require.Len(t, opts, len(Vehicles))
	for i, o := range opts {
		assert.Equal(t, int(Vehicles[i].Base), o.PriceINR)
		assert.Equal(t, etaBufferMinutes, o.EtaMinutes)
	}

	d, opts = QuoteOptions(gangtok, rumtek)
	raw := geo.HaversineKm(gangtok, rumtek)
	assert.Equal(t, geo.RoundTo(raw, 2), d)
	sedan := opts[2]
	assert.Equal(t, "sedan", sedan.Vehicle)
	assert.Equal(t, int(math.Round(80+18*raw)), sedan.PriceINR)
	assert.Equal(t, int(math.Round(raw/45*60+5)), sedan.EtaMinutes)
	for i := 1; i < len(opts); i++ {
		assert.Greater(t, opts[i].PriceINR, opts[i-1].PriceINR)
	}
}

func TestRankByDetour(t *testing.T) {
	onTheWay := place_models.MergedPlace{ID: "s1", Location: geo.Point{Lat: 27.335, Lng: 88.586}}
	offRoute := place_models.MergedPlace{ID: "s2", Location: geo.Point{Lat: 27.30, Lng: 88.60}}
	atOrigin := place_models.MergedPlace{ID: "s3", Location: gangtok}
	noLocation := place_models.MergedPlace{ID: "s4"}

	ranked := RankByDetour(gangtok, rumtek, []place_models.MergedPlace{offRoute, onTheWay, atOrigin, noLocation}, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, "s3", ranked[0].Place.ID)
	assert.Zero(t, ranked[0].DetourKm)
	assert.Equal(t, "s1", ranked[1].Place.ID)
	assert.Less(t, ranked[1].DetourKm, 1.0)
}

func TestTransportService_QuoteAndRecommended(t *testing.T) {
	f := newNearbyFixture(t, config.DefaultPipelineConfig(), false)
	taxi := osmPlace("osm:node/1", "Lal Bazaar Taxi Stand", 27.3330, 88.6120)
	taxi.Category = place_models.CategoryTransit
	taxi.Kind = place_models.KindTaxi
	taxi.Phone = "+91 3592 200 100"
	bus := osmPlace("osm:node/2", "SNT Bus Stand", 27.3320, 88.6125)
	bus.Category = place_models.CategoryTransit
	bus.Kind = place_models.KindBus
	far := osmPlace("osm:node/3", "Ranipool Taxi Stand", 27.2920, 88.5880)
	far.Category = place_models.CategoryTransit
	far.Kind = place_models.KindTaxi
	f.secondary.byCat[place_models.CategoryTransit] = []place_models.PlaceCandidate{taxi, bus, far}

	svc := NewTransportService(NewStaticLandmarkService(nil), f.svc, zap.NewNop())
	_, err := svc.Quote(context.Background(), gangtok, "rumtek")
	assert.ErrorIs(t, err, utils.ErrLandmarkNotFound)

	landmarks := NewStaticLandmarkService(infra.DefaultLandmarks)
	svc = NewTransportService(landmarks, f.svc, zap.NewNop())

	quote, err := svc.Quote(context.Background(), gangtok, "rumtek")
	require.NoError(t, err)
	assert.Equal(t, "Rumtek Monastery", quote.Landmark.Name)
	assert.Len(t, quote.Options, 4)

	_, err = svc.Quote(context.Background(), geo.Point{}, "rumtek")
	assert.ErrorIs(t, err, utils.ErrInvalidCoordinates)

	stands, err := svc.Recommended(context.Background(), gangtok, "rumtek", 0)
	require.NoError(t, err)
	require.Len(t, stands, 2)
	assert.Equal(t, "osm:node/1", stands[0].ID)
	assert.Equal(t, ContactCall, stands[0].Contact.Kind)
	assert.Equal(t, "osm:node/3", stands[1].ID)
	assert.LessOrEqual(t, stands[0].DetourKm, stands[1].DetourKm)
	assert.Positive(t, stands[0].EstimatedFare)
}
