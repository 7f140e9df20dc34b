package domain

import "time"

// DiscountMode selects how a voucher's value is interpreted.
type DiscountMode string

const (
	DiscountPercentage DiscountMode = "percentage"
	DiscountFixed      DiscountMode = "fixed"
)

// VoucherState is derived from the validity window, never stored.
type VoucherState string

const (
	VoucherPending VoucherState = "pending"
	VoucherActive  VoucherState = "active"
	VoucherExpired VoucherState = "expired"
)

// Voucher is a server-owned discount rule. The code is server-assigned; the
// client never invents one.
type Voucher struct {
	Code        string       `json:"code"`
	Mode        DiscountMode `json:"mode"`
	Value       int64        `json:"value"`
	MaxDiscount int64        `json:"maxDiscount,omitempty"`
	MinOrder    int64        `json:"minOrder"`
	UsageLimit  int          `json:"usageLimit"`
	UsedCount   int          `json:"usedCount"`
	StartsAt    time.Time    `json:"startsAt"`
	EndsAt      time.Time    `json:"endsAt"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// State derives pending/active/expired from the validity window. Both window
// bounds are inclusive.
func (v Voucher) State(now time.Time) VoucherState {
	switch {
	case now.Before(v.StartsAt):
		return VoucherPending
	case now.After(v.EndsAt):
		return VoucherExpired
	default:
		return VoucherActive
	}
}

// Exhausted reports whether the usage limit has been reached. A zero limit
// means unlimited.
func (v Voucher) Exhausted() bool {
	return v.UsageLimit > 0 && v.UsedCount >= v.UsageLimit
}

// Discount resolves the voucher against an order total: minimum-order check,
// then value by mode, then the percentage cap. The server remains
// authoritative on apply; this mirrors the rule for display and pre-checks.
func (v Voucher) Discount(orderTotal int64) (int64, *RemoteError) {
	if orderTotal < v.MinOrder {
		return 0, FieldError("orderTotal", "order total is below the voucher minimum")
	}
	var discount int64
	switch v.Mode {
	case DiscountPercentage:
		discount = orderTotal * v.Value / 100
		if v.MaxDiscount > 0 && discount > v.MaxDiscount {
			discount = v.MaxDiscount
		}
	case DiscountFixed:
		discount = v.Value
	default:
		return 0, GeneralError("unknown discount mode")
	}
	if discount > orderTotal {
		discount = orderTotal
	}
	return discount, nil
}

// AppliedDiscount is the resolved result of a voucher apply call. It carries
// the discount amount, not the voucher entity.
type AppliedDiscount struct {
	Code     string `json:"code"`
	Discount int64  `json:"discount"`
}
