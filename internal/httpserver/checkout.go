package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-engine/internal/checkout"
)

type applyVoucherRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *handlers) getCheckout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"selectedIds": h.deps.Checkout.Selected(),
		"total":       h.deps.Checkout.ComputeTotal(),
		"applied":     h.deps.Voucher.Applied(),
		"quote":       h.deps.Shipping.Quote(),
	})
}

func (h *handlers) toggleLine(c *gin.Context) {
	h.deps.Checkout.Toggle(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"selectedIds": h.deps.Checkout.Selected(),
		"total":       h.deps.Checkout.ComputeTotal(),
	})
}

func (h *handlers) toggleAll(c *gin.Context) {
	h.deps.Checkout.ToggleAll()
	c.JSON(http.StatusOK, gin.H{
		"selectedIds": h.deps.Checkout.Selected(),
		"total":       h.deps.Checkout.ComputeTotal(),
	})
}

// applyVoucher resolves a code against the selected lines' total. The
// platform owns the rules; rejections land on the store's channels and render
// through the shared error path.
func (h *handlers) applyVoucher(c *gin.Context) {
	var req applyVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}
	applied, err := h.deps.Voucher.Apply(c.Request.Context(), req.Code, h.deps.Checkout.ComputeTotal())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": applied})
}

// proceed packages the selection for order creation. An empty selection is a
// disabled action, not a store failure.
func (h *handlers) proceed(c *gin.Context) {
	order, err := h.deps.Checkout.Proceed()
	if err != nil {
		if errors.Is(err, checkout.ErrEmptySelection) {
			c.JSON(http.StatusConflict, gin.H{"message": "no cart lines selected"})
			return
		}
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}
