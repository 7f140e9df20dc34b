package domain

// Product is a catalog entry with its purchasable variants.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Variants    []Variant `json:"variants"`
}

// Variant is a concrete (colour, size) instance of a product with its own
// price and live stock count. A cart line always references a variant, never
// a bare product.
type Variant struct {
	ID     string `json:"id"`
	Colour string `json:"colour"`
	Size   string `json:"size"`
	Price  int64  `json:"price"`
	Stock  int    `json:"stock"`
}
