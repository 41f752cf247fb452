package order

// LineItem is a snapshot of a cart line taken at checkout time. Later
// catalog or price changes never reach back into a placed order.
type LineItem struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	ProductID string  `json:"productId"`
}

// Order is immutable from the client's perspective once created; only the
// fulfillment fields (Status, Progress, TrackingNumber, DeliveryDate) change
// afterwards, written by an out-of-band fulfillment process.
type Order struct {
	ID                string     `json:"id"`
	UserID            int        `json:"userId"`
	Items             []LineItem `json:"items"`
	Subtotal          float64    `json:"subtotal"`
	ShippingFee       float64    `json:"shippingFee"`
	Total             float64    `json:"total"`
	Status            string     `json:"status"`
	Progress          int        `json:"progress"`
	CreatedAt         string     `json:"createdAt"`
	EstimatedDelivery string     `json:"estimatedDelivery"`
	DeliveryDate      *string    `json:"deliveryDate"`
	TrackingNumber    string     `json:"trackingNumber"`
}

// Delivery stage labels rendered from Progress.
const (
	StagePreparation = "Préparation"
	StageShipped     = "Expédié"
	StageDelivered   = "Livré"
)

// Stage maps the 0..3 progress counter onto the three display stages. It is
// a display helper only; Status stays the authoritative state. Nothing keeps
// Progress and Status consistent when the fulfillment writer updates them.
func Stage(progress int) string {
	switch {
	case progress >= 3:
		return StageDelivered
	case progress >= 2:
		return StageShipped
	default:
		return StagePreparation
	}
}
