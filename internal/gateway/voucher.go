package gateway

import (
	"context"
	"net/http"
	"time"

	"storefront-engine/internal/domain"
)

// VoucherInput is the admin mutation payload for create and update.
type VoucherInput struct {
	Mode        domain.DiscountMode `json:"mode"`
	Value       int64               `json:"value"`
	MaxDiscount int64               `json:"maxDiscount,omitempty"`
	MinOrder    int64               `json:"minOrder"`
	UsageLimit  int                 `json:"usageLimit"`
	StartsAt    time.Time           `json:"startsAt"`
	EndsAt      time.Time           `json:"endsAt"`
}

type voucherListBody struct {
	Vouchers []domain.Voucher `json:"vouchers"`
}

type voucherBody struct {
	Voucher domain.Voucher `json:"voucher"`
}

// ListVouchers returns the admin voucher catalog.
func (c *Client) ListVouchers(ctx context.Context) ([]domain.Voucher, error) {
	var body voucherListBody
	if err := c.do(ctx, http.MethodGet, "/admin/vouchers", nil, nil, &body); err != nil {
		return nil, err
	}
	return body.Vouchers, nil
}

// CreateVoucher creates a voucher; the server assigns the code.
func (c *Client) CreateVoucher(ctx context.Context, in VoucherInput) (domain.Voucher, error) {
	var body voucherBody
	if err := c.do(ctx, http.MethodPost, "/admin/vouchers", nil, in, &body); err != nil {
		return domain.Voucher{}, err
	}
	return body.Voucher, nil
}

// UpdateVoucher replaces the voucher identified by code.
func (c *Client) UpdateVoucher(ctx context.Context, code string, in VoucherInput) (domain.Voucher, error) {
	var body voucherBody
	if err := c.do(ctx, http.MethodPut, "/admin/vouchers/"+code, nil, in, &body); err != nil {
		return domain.Voucher{}, err
	}
	return body.Voucher, nil
}

// DeleteVoucher removes the voucher identified by code.
func (c *Client) DeleteVoucher(ctx context.Context, code string) error {
	return c.do(ctx, http.MethodDelete, "/admin/vouchers/"+code, nil, nil, nil)
}

// ApplyVoucher resolves a code against an order total. The response is the
// resolved discount, not the voucher entity.
func (c *Client) ApplyVoucher(ctx context.Context, code string, orderTotal int64) (domain.AppliedDiscount, error) {
	req := struct {
		Code       string `json:"code"`
		OrderTotal int64  `json:"orderTotal"`
	}{Code: code, OrderTotal: orderTotal}

	var applied domain.AppliedDiscount
	if err := c.do(ctx, http.MethodPost, "/vouchers/apply", nil, req, &applied); err != nil {
		return domain.AppliedDiscount{}, err
	}
	return applied, nil
}
