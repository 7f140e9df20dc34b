package httpserver

import (
	"errors"
	"reflect"
	"strings"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"

	"storefront-engine/internal/domain"
	"storefront-engine/internal/gateway"
)

// voucherForm is the admin create/edit payload. It is validated locally
// before the remote call so form mistakes come back as the same field-keyed
// 422 the platform would produce.
type voucherForm struct {
	Mode        string    `json:"mode" validate:"required,oneof=percentage fixed"`
	Value       int64     `json:"value" validate:"required,gt=0"`
	MaxDiscount int64     `json:"maxDiscount" validate:"gte=0"`
	MinOrder    int64     `json:"minOrder" validate:"gte=0"`
	UsageLimit  int       `json:"usageLimit" validate:"gte=0"`
	StartsAt    time.Time `json:"startsAt" validate:"required"`
	EndsAt      time.Time `json:"endsAt" validate:"required"`
}

func (f voucherForm) input() gateway.VoucherInput {
	return gateway.VoucherInput{
		Mode:        domain.DiscountMode(f.Mode),
		Value:       f.Value,
		MaxDiscount: f.MaxDiscount,
		MinOrder:    f.MinOrder,
		UsageLimit:  f.UsageLimit,
		StartsAt:    f.StartsAt,
		EndsAt:      f.EndsAt,
	}
}

// newValidator configures the validator with the voucher struct-level rules:
// the max-discount cap is only meaningful under percentage mode, a percentage
// value stays within 100, and the validity window must not be inverted.
func newValidator() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(voucherStructValidation, voucherForm{})
	return v
}

func voucherStructValidation(sl validatorv10.StructLevel) {
	form := sl.Current().Interface().(voucherForm)
	if form.Mode == string(domain.DiscountFixed) && form.MaxDiscount > 0 {
		sl.ReportError(form.MaxDiscount, "maxDiscount", "MaxDiscount", "percentage_only", "")
	}
	if form.Mode == string(domain.DiscountPercentage) && form.Value > 100 {
		sl.ReportError(form.Value, "value", "Value", "max_percent", "")
	}
	if !form.StartsAt.IsZero() && !form.EndsAt.IsZero() && form.EndsAt.Before(form.StartsAt) {
		sl.ReportError(form.EndsAt, "endsAt", "EndsAt", "window_order", "")
	}
}

// fieldErrors flattens validator output into the same field-keyed map shape
// remote 422 responses use.
func fieldErrors(err error) map[string][]string {
	out := make(map[string][]string)
	var verrs validatorv10.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = append(out[fe.Field()], messageFor(fe))
		}
		return out
	}
	out["body"] = []string{err.Error()}
	return out
}

func messageFor(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "percentage_only":
		return "only applies to percentage vouchers"
	case "max_percent":
		return "percentage value cannot exceed 100"
	case "window_order":
		return "must not be before the start of the validity window"
	default:
		return "is invalid"
	}
}
