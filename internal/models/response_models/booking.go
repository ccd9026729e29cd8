package response_models

type BillLine struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

type BillResponse struct {
	Type     string     `json:"type"`
	Nights   int        `json:"nights,omitempty"`
	Guests   int        `json:"guests,omitempty"`
	Subtotal int64      `json:"subtotal"`
	GSTRate  float64    `json:"gst_rate"`
	GST      int64      `json:"gst"`
	AddOns   int64      `json:"add_ons"`
	Total    int64      `json:"total"`
	Currency string     `json:"currency"`
	Lines    []BillLine `json:"lines"`
}

type PaymentOrderResponse struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	KeyID    string `json:"key_id,omitempty"`
}

type BookingResponse struct {
	ID         string                `json:"id"`
	Type       string                `json:"type"`
	LandmarkID string                `json:"landmark_id,omitempty"`
	Status     string                `json:"status"`
	Bill       BillResponse          `json:"bill"`
	Item       map[string]any        `json:"item,omitempty"`
	Payment    *PaymentOrderResponse `json:"payment,omitempty"`
	CreatedAt  string                `json:"created_at"`
}
