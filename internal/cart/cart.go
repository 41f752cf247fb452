package cart

// CartItem is one editable line of a user's cart. Its ID equals the
// referenced product's ID, so a product can appear at most once.
type CartItem struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	ProductID string  `json:"productId"`
}

// Product is the reference passed when adding to the cart.
type Product struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}
