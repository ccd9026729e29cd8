package request_models

type NearbyQuery struct {
	LandmarkID string   `form:"landmarkId"`
	Lat        *float64 `form:"lat"`
	Lng        *float64 `form:"lng"`
	Category   string   `form:"category"`
	RadiusKm   float64  `form:"radiusKm"`
	Limit      int      `form:"limit"`
	Keyword    string   `form:"keyword"`
}

type TransportQuery struct {
	From       string  `form:"from" binding:"required"` // "lat,lng"
	LandmarkID string  `form:"landmarkId" binding:"required"`
	RadiusKm   float64 `form:"radiusKm"`
}
