package response_models

type ContactResponse struct {
	Kind  string `json:"kind"` // call | search
	Href  string `json:"href"`
	Phone string `json:"phone,omitempty"`
}

type PlaceResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Kind         string   `json:"kind"`
	KindLabel    string   `json:"kind_label"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	DistanceKm   float64  `json:"distance_km"`
	Phone        string   `json:"phone,omitempty"`
	Address      string   `json:"address,omitempty"`
	Locality     string   `json:"locality,omitempty"`
	Cuisine      string   `json:"cuisine,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
	Photos       []string `json:"photos,omitempty"`
	Rating       float64  `json:"rating"`
	RatingsTotal *int     `json:"ratings_total,omitempty"`
	PriceLevel   *int     `json:"price_level,omitempty"`
	PriceINR     int      `json:"price_inr"`
	Description  string   `json:"description"`
	Summary      string   `json:"summary,omitempty"`

	OSMID   string   `json:"osm_id,omitempty"`
	PlaceID string   `json:"place_id,omitempty"`
	Sources []string `json:"sources"`

	Enriching bool            `json:"enriching"`
	Resolved  bool            `json:"resolved"`
	Contact   ContactResponse `json:"contact"`
	MapURL    string          `json:"map_url"`
}

type LandmarkRefResponse struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type PointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type NearbyResponse struct {
	SessionID  string              `json:"session_id"`
	Generation uint64              `json:"generation"`
	Landmark   LandmarkRefResponse `json:"landmark"`
	Origin     PointResponse       `json:"origin"`
	Category   string              `json:"category"`
	RadiusKm   float64             `json:"radius_km"`
	Count      int                 `json:"count"`
	Enriching  int                 `json:"enriching"`
	Message    string              `json:"message,omitempty"`
	Places     []PlaceResponse     `json:"places"`
}

type NearbyCountResponse struct {
	Origin   PointResponse  `json:"origin"`
	RadiusKm float64        `json:"radius_km"`
	Counts   map[string]int `json:"counts"`
	Total    int            `json:"total"`
}

type PlaceEventResponse struct {
	Type       string         `json:"type"`
	SessionID  string         `json:"session_id"`
	Generation uint64         `json:"generation"`
	Place      *PlaceResponse `json:"place,omitempty"`
}
