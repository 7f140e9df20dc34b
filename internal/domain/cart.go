package domain

// MaxLineQuantity is the client-side ceiling for a single cart line. The true
// ceiling is server stock; this only guards the quantity stepper.
const MaxLineQuantity = 20

// CartLine is one server-owned line of the cart. Quantity is never written
// below 1 and only ever holds server-confirmed values.
type CartLine struct {
	ID        string          `json:"id"`
	VariantID string          `json:"variantId"`
	Quantity  int             `json:"quantity"`
	Snapshot  VariantSnapshot `json:"snapshot"`
}

// VariantSnapshot is the denormalized variant view as last fetched. Price and
// stock truth remain on the server; this exists so lines render without a
// second product lookup.
type VariantSnapshot struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Colour      string `json:"colour"`
	Size        string `json:"size"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// LineTotal is price times confirmed quantity for one line.
func (l CartLine) LineTotal() int64 {
	return l.Snapshot.Price * int64(l.Quantity)
}
