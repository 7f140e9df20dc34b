package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-engine/internal/catalog"
)

// productAvailability drives the colour/size pickers on a product page. The
// picker normalizes the requested state: a colour with no matching size
// reports incomplete, and the quantity is clamped to the variant's stepper
// range.
func (h *handlers) productAvailability(c *gin.Context) {
	product, err := h.deps.Gateway.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}

	picker := catalog.NewPicker(product.Variants)
	colour := c.Query("colour")
	if colour != "" {
		picker.SelectColour(colour)
	}
	if size := c.Query("size"); size != "" {
		picker.SelectSize(size)
	}
	if q := c.Query("quantity"); q != "" {
		if quantity, err := strconv.Atoi(q); err == nil {
			picker.SetQuantity(quantity)
		}
	}

	res := picker.Resolve()
	c.JSON(http.StatusOK, gin.H{
		"productId":  product.ID,
		"colours":    picker.Colours(),
		"sizes":      picker.SizesFor(colour),
		"resolution": res,
		"quantity":   picker.Quantity(),
	})
}
