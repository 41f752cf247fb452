package wishlist

// WishlistItem is a saved product. Its ID equals the product's ID and it is
// independent of the cart and of any order.
type WishlistItem struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Price   float64  `json:"price"`
	Images  []string `json:"images"`
	AddedAt string   `json:"addedAt"`
}
