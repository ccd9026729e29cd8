package services

import (
	"context"
	"math"
	"sort"

	"go.uber.org/zap"

	"gompa/internal/models/place_models"
	"gompa/internal/models/response_models"
	"gompa/pkg/geo"
	"gompa/pkg/utils"
)

const (
	standSearchRadiusKm = 15
	recommendedStands   = 8
	etaBufferMinutes    = 5
)

type Vehicle struct {
	Key      string
	Label    string
	Base     float64
	PerKm    float64
	SpeedKmh float64
}

// Vehicles are the fallback tariffs used when no operator fare is known.
var Vehicles = []Vehicle{
	{Key: "bike", Label: "Bike", Base: 40, PerKm: 12, SpeedKmh: 35},
	{Key: "hatchback", Label: "Hatchback", Base: 60, PerKm: 15, SpeedKmh: 40},
	{Key: "sedan", Label: "Sedan", Base: 80, PerKm: 18, SpeedKmh: 45},
	{Key: "suv", Label: "SUV", Base: 100, PerKm: 22, SpeedKmh: 45},
}

// QuoteOptions prices every vehicle for the straight-line distance a→b.
func QuoteOptions(a, b geo.Point) (float64, []response_models.TransportOption) {
	d := geo.HaversineKm(a, b)
	out := make([]response_models.TransportOption, 0, len(Vehicles))
	for _, v := range Vehicles {
		out = append(out, response_models.TransportOption{
			Vehicle:    v.Key,
			Label:      v.Label,
			DistanceKm: geo.RoundTo(d, 2),
			EtaMinutes: int(math.Round(d/v.SpeedKmh*60 + etaBufferMinutes)),
			PriceINR:   int(math.Round(v.Base + v.PerKm*d)),
		})
	}
	return geo.RoundTo(d, 2), out
}

type DetourStand struct {
	Place    place_models.MergedPlace
	FromKm   float64
	ToKm     float64
	DetourKm float64
}

// RankByDetour orders stands by d(from,s)+d(s,to)-d(from,to), keeping top.
func RankByDetour(from, to geo.Point, stands []place_models.MergedPlace, top int) []DetourStand {
	direct := geo.HaversineKm(from, to)
	out := make([]DetourStand, 0, len(stands))
	for _, s := range stands {
		if !s.Location.Valid() {
			continue
		}
		fromKm := geo.HaversineKm(from, s.Location)
		toKm := geo.HaversineKm(s.Location, to)
		out = append(out, DetourStand{
			Place:    s,
			FromKm:   fromKm,
			ToKm:     toKm,
			DetourKm: geo.RoundTo(fromKm+toKm-direct, 1),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DetourKm != out[j].DetourKm {
			return out[i].DetourKm < out[j].DetourKm
		}
		return out[i].FromKm < out[j].FromKm
	})
	if top > 0 && len(out) > top {
		out = out[:top]
	}
	return out
}

type TransportServiceInterface interface {
	Quote(ctx context.Context, from geo.Point, landmarkID string) (*response_models.TransportQuoteResponse, error)
	Recommended(ctx context.Context, from geo.Point, landmarkID string, radiusKm float64) ([]response_models.TaxiStandResponse, error)
}

type TransportService struct {
	landmarks LandmarkServiceInterface
	nearby    NearbyServiceInterface
	logger    *zap.Logger
}

func NewTransportService(landmarks LandmarkServiceInterface, nearby NearbyServiceInterface, logger *zap.Logger) TransportServiceInterface {
	return &TransportService{landmarks: landmarks, nearby: nearby, logger: logger.Named("transport")}
}

func (s *TransportService) Quote(ctx context.Context, from geo.Point, landmarkID string) (*response_models.TransportQuoteResponse, error) {
	if !from.Valid() {
		return nil, utils.ErrInvalidCoordinates
	}
	lm, err := s.landmarks.Get(ctx, landmarkID)
	if err != nil {
		return nil, err
	}
	to := landmarkPoint(lm)
	d, options := QuoteOptions(from, to)
	return &response_models.TransportQuoteResponse{
		From:       response_models.PointResponse{Lat: from.Lat, Lng: from.Lng},
		To:         response_models.PointResponse{Lat: to.Lat, Lng: to.Lng},
		Landmark:   response_models.LandmarkRefResponse{ID: lm.ID, Name: lm.Name},
		DistanceKm: d,
		Options:    options,
	}, nil
}

// Recommended lists taxi stands around the traveller ranked by the detour
// they add on the way to the landmark.
func (s *TransportService) Recommended(ctx context.Context, from geo.Point, landmarkID string, radiusKm float64) ([]response_models.TaxiStandResponse, error) {
	if !from.Valid() {
		return nil, utils.ErrInvalidCoordinates
	}
	lm, err := s.landmarks.Get(ctx, landmarkID)
	if err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		radiusKm = standSearchRadiusKm
	}

	origin := from
	res, err := s.nearby.Search(ctx, NearbyRequest{
		Origin:   &origin,
		Category: place_models.CategoryTransit,
		RadiusKm: radiusKm,
		Limit:    maxResultLimit,
	})
	if err != nil {
		return nil, err
	}

	stands := make([]place_models.MergedPlace, 0, len(res.Places))
	for _, p := range res.Places {
		if p.Kind == place_models.KindTaxi {
			stands = append(stands, *p)
		}
	}
	ranked := RankByDetour(from, landmarkPoint(lm), stands, recommendedStands)
	s.logger.Debug("ranked taxi stands", zap.String("landmark", lm.ID), zap.Int("candidates", len(stands)))

	out := make([]response_models.TaxiStandResponse, 0, len(ranked))
	for _, r := range ranked {
		contact := ContactFor(r.Place)
		_, options := QuoteOptions(r.Place.Location, landmarkPoint(lm))
		out = append(out, response_models.TaxiStandResponse{
			ID:            r.Place.ID,
			Name:          r.Place.Name,
			Latitude:      r.Place.Location.Lat,
			Longitude:     r.Place.Location.Lng,
			FromOriginKm:  geo.RoundTo(r.FromKm, 2),
			ToLandmarkKm:  geo.RoundTo(r.ToKm, 2),
			DetourKm:      r.DetourKm,
			Contact:       response_models.ContactResponse{Kind: contact.Kind, Href: contact.Href, Phone: contact.Phone},
			EstimatedFare: options[1].PriceINR,
		})
	}
	return out, nil
}
