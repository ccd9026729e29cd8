package response_models

type TransportOption struct {
	Vehicle    string  `json:"vehicle"`
	Label      string  `json:"label"`
	DistanceKm float64 `json:"distance_km"`
	EtaMinutes int     `json:"eta_minutes"`
	PriceINR   int     `json:"price_inr"`
}

type TransportQuoteResponse struct {
	From       PointResponse       `json:"from"`
	To         PointResponse       `json:"to"`
	Landmark   LandmarkRefResponse `json:"landmark"`
	DistanceKm float64             `json:"distance_km"`
	Options    []TransportOption   `json:"options"`
}

type TaxiStandResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Latitude      float64         `json:"latitude"`
	Longitude     float64         `json:"longitude"`
	FromOriginKm  float64         `json:"from_origin_km"`
	ToLandmarkKm  float64         `json:"to_landmark_km"`
	DetourKm      float64         `json:"detour_km"`
	Contact       ContactResponse `json:"contact"`
	EstimatedFare int             `json:"estimated_fare"`
}
