package services

import (
	"gompa/internal/models/place_models"
	"gompa/internal/models/response_models"
	"gompa/pkg/geo"
)

func ToPlaceResponse(m place_models.MergedPlace) response_models.PlaceResponse {
	contact := ContactFor(m)
	sources := make([]string, 0, len(m.Sources))
	for _, s := range m.Sources {
		sources = append(sources, string(s))
	}
	return response_models.PlaceResponse{
		ID:           m.ID,
		Name:         m.Name,
		Category:     string(m.Category),
		Kind:         m.Kind,
		KindLabel:    place_models.KindLabel(m.Kind),
		Latitude:     m.Location.Lat,
		Longitude:    m.Location.Lng,
		DistanceKm:   geo.RoundTo(m.DistanceKm, 2),
		Phone:        m.Phone,
		Address:      m.Address,
		Locality:     m.Locality,
		Cuisine:      m.Cuisine,
		Amenities:    m.Amenities,
		Photos:       m.Photos,
		Rating:       m.DisplayRating,
		RatingsTotal: m.RatingsTotal,
		PriceLevel:   m.PriceLevel,
		PriceINR:     m.PriceEstimate,
		Description:  m.Description,
		Summary:      m.Summary,
		OSMID:        m.OSMID,
		PlaceID:      m.PlaceID,
		Sources:      sources,
		Enriching:    m.Enriching,
		Resolved:     m.Resolved,
		Contact:      response_models.ContactResponse{Kind: contact.Kind, Href: contact.Href, Phone: contact.Phone},
		MapURL:       MapHref(m.Location),
	}
}

func ToNearbyResponse(snap SessionSnapshot) response_models.NearbyResponse {
	places := make([]response_models.PlaceResponse, 0, len(snap.Places))
	for _, p := range snap.Places {
		places = append(places, ToPlaceResponse(p))
	}
	return response_models.NearbyResponse{
		SessionID:  snap.ID,
		Generation: snap.Generation,
		Landmark:   response_models.LandmarkRefResponse{ID: snap.Landmark.ID, Name: snap.Landmark.Name},
		Origin:     response_models.PointResponse{Lat: snap.Origin.Lat, Lng: snap.Origin.Lng},
		Category:   string(snap.Category),
		RadiusKm:   snap.RadiusKm,
		Count:      len(places),
		Enriching:  snap.Enriching,
		Message:    snap.Message,
		Places:     places,
	}
}

func ToPlaceEventResponse(ev PlaceEvent) response_models.PlaceEventResponse {
	out := response_models.PlaceEventResponse{
		Type:       ev.Type,
		SessionID:  ev.SessionID,
		Generation: ev.Generation,
	}
	if ev.Place != nil {
		p := ToPlaceResponse(*ev.Place)
		out.Place = &p
	}
	return out
}
