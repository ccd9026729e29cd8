package response_models

type LandmarkResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Location  string  `json:"location"`
	District  string  `json:"district"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Category  string   `json:"category"`
	Aliases   []string `json:"aliases,omitempty"`
}
