package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-engine/internal/domain"
)

type voucherView struct {
	domain.Voucher
	State domain.VoucherState `json:"state"`
}

func voucherViews(vouchers []domain.Voucher, now time.Time) []voucherView {
	out := make([]voucherView, 0, len(vouchers))
	for _, v := range vouchers {
		out = append(out, voucherView{Voucher: v, State: v.State(now)})
	}
	return out
}

func (h *handlers) listVouchers(c *gin.Context) {
	if err := h.deps.Voucher.ListAll(c.Request.Context()); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vouchers": voucherViews(h.deps.Voucher.Catalog(), time.Now())})
}

// createVoucher validates the form locally, then creates remotely. Both
// failure sources produce the same field-keyed 422 shape, so the admin form
// has one rendering path. Error channels are cleared up front so a previous
// operation's field errors cannot leak into this form instance.
func (h *handlers) createVoucher(c *gin.Context) {
	h.deps.Voucher.ClearErrors()

	var form voucherForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}
	if err := h.validate.Struct(form); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}

	created, err := h.deps.Voucher.Create(c.Request.Context(), form.input())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"voucher": voucherView{Voucher: created, State: created.State(time.Now())}})
}

func (h *handlers) updateVoucher(c *gin.Context) {
	h.deps.Voucher.ClearErrors()

	var form voucherForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}
	if err := h.validate.Struct(form); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}

	updated, err := h.deps.Voucher.Update(c.Request.Context(), c.Param("code"), form.input())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"voucher": voucherView{Voucher: updated, State: updated.State(time.Now())}})
}

func (h *handlers) deleteVoucher(c *gin.Context) {
	h.deps.Voucher.ClearErrors()

	if err := h.deps.Voucher.Delete(c.Request.Context(), c.Param("code")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("code")})
}
