package gateway

import (
	"context"
	"net/http"
	"net/url"

	"storefront-engine/internal/domain"
)

type cartBody struct {
	Lines []domain.CartLine `json:"lineItems"`
}

type addLineBody struct {
	Line    domain.CartLine `json:"line"`
	GuestID string          `json:"guestId,omitempty"`
}

type removeLineBody struct {
	RemovedID string `json:"removedId"`
}

type quantityBody struct {
	LineID   string `json:"lineId"`
	Quantity int    `json:"quantity"`
}

// FetchCart returns the authoritative line collection for the session.
func (c *Client) FetchCart(ctx context.Context, guestID string) ([]domain.CartLine, error) {
	query := url.Values{}
	if guestID != "" {
		query.Set("guestId", guestID)
	}
	var body cartBody
	if err := c.do(ctx, http.MethodGet, "/cart", query, nil, &body); err != nil {
		return nil, err
	}
	return body.Lines, nil
}

// AddToCart creates a line for the variant. The returned guest identifier is
// non-empty only when the platform issued one for a fresh session.
func (c *Client) AddToCart(ctx context.Context, guestID, variantID string, quantity int) (domain.CartLine, string, error) {
	req := struct {
		GuestID   string `json:"guestId,omitempty"`
		VariantID string `json:"variantId"`
		Quantity  int    `json:"quantity"`
	}{GuestID: guestID, VariantID: variantID, Quantity: quantity}

	var body addLineBody
	if err := c.do(ctx, http.MethodPost, "/cart/items", nil, req, &body); err != nil {
		return domain.CartLine{}, "", err
	}
	return body.Line, body.GuestID, nil
}

// RemoveLine deletes a cart line and returns the removed id.
func (c *Client) RemoveLine(ctx context.Context, guestID, lineID string) (string, error) {
	query := url.Values{}
	if guestID != "" {
		query.Set("guestId", guestID)
	}
	var body removeLineBody
	if err := c.do(ctx, http.MethodDelete, "/cart/items/"+lineID, query, nil, &body); err != nil {
		return "", err
	}
	return body.RemovedID, nil
}

// UpdateQuantity sets a line's quantity and returns the server-confirmed pair.
func (c *Client) UpdateQuantity(ctx context.Context, guestID, lineID string, quantity int) (string, int, error) {
	query := url.Values{}
	if guestID != "" {
		query.Set("guestId", guestID)
	}
	req := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}

	var body quantityBody
	if err := c.do(ctx, http.MethodPatch, "/cart/items/"+lineID, query, req, &body); err != nil {
		return "", 0, err
	}
	return body.LineID, body.Quantity, nil
}
