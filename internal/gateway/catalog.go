package gateway

import (
	"context"
	"net/http"

	"storefront-engine/internal/domain"
)

type productBody struct {
	Product domain.Product `json:"product"`
}

// Product fetches a product with its variant list and live stock counts.
func (c *Client) Product(ctx context.Context, productID string) (domain.Product, error) {
	var body productBody
	if err := c.do(ctx, http.MethodGet, "/products/"+productID, nil, nil, &body); err != nil {
		return domain.Product{}, err
	}
	return body.Product, nil
}
