package product

// Product is a catalog entry. The catalog is read-only for the app; content
// is managed out of band.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
}
