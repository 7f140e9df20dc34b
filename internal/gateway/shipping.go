package gateway

import (
	"context"
	"net/http"

	"storefront-engine/internal/domain"
)

type cityListBody struct {
	Cities []domain.City `json:"cities"`
}

type districtListBody struct {
	Districts []domain.District `json:"districts"`
}

type wardListBody struct {
	Wards []domain.Ward `json:"wards"`
}

// Cities returns the top-level geography list.
func (c *Client) Cities(ctx context.Context) ([]domain.City, error) {
	var body cityListBody
	if err := c.do(ctx, http.MethodGet, "/geography/cities", nil, nil, &body); err != nil {
		return nil, err
	}
	return body.Cities, nil
}

// Districts returns the districts of one city.
func (c *Client) Districts(ctx context.Context, cityCode string) ([]domain.District, error) {
	var body districtListBody
	if err := c.do(ctx, http.MethodGet, "/geography/cities/"+cityCode+"/districts", nil, nil, &body); err != nil {
		return nil, err
	}
	return body.Districts, nil
}

// Wards returns the wards of one district.
func (c *Client) Wards(ctx context.Context, districtCode string) ([]domain.Ward, error) {
	var body wardListBody
	if err := c.do(ctx, http.MethodGet, "/geography/districts/"+districtCode+"/wards", nil, nil, &body); err != nil {
		return nil, err
	}
	return body.Wards, nil
}

// ShippingFee computes a quote for a fully resolved address and parcel.
func (c *Client) ShippingFee(ctx context.Context, req domain.FeeRequest) (domain.ShippingQuote, error) {
	var quote domain.ShippingQuote
	if err := c.do(ctx, http.MethodPost, "/shipping/fee", nil, req, &quote); err != nil {
		return domain.ShippingQuote{}, err
	}
	return quote, nil
}
