package request_models

type BookingRequest struct {
	Type       string `json:"type" binding:"required,oneof=hotel dining tours transport"`
	LandmarkID string `json:"landmark_id"`
	ItemID     string `json:"item_id"`
	ItemName   string `json:"item_name" binding:"required"`

	// hotel
	PerNight         int64  `json:"per_night"`
	CheckIn          string `json:"check_in"`  // YYYY-MM-DD
	CheckOut         string `json:"check_out"` // YYYY-MM-DD
	FreeCancellation bool   `json:"free_cancellation"`

	// dining / tours
	PerPerson int64  `json:"per_person"`
	Guests    int    `json:"guests"`
	Date      string `json:"date"`

	// transport
	Fare    int64  `json:"fare"`
	Vehicle string `json:"vehicle"`
	Pickup  string `json:"pickup"`

	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	Notes        string `json:"notes"`
}
