package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"storefront-engine/internal/catalog"
)

type handlers struct {
	deps     Deps
	validate *validatorv10.Validate
	logger   *log.Logger
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Colour    string `json:"colour" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *handlers) cartView() gin.H {
	return gin.H{
		"lineItems":   h.deps.Cart.Lines(),
		"selectedIds": h.deps.Checkout.Selected(),
		"total":       h.deps.Checkout.ComputeTotal(),
	}
}

// getCart reconciles against the platform and returns the collection. Safe to
// call after any mutation; lines dropped server-side disappear here and fall
// out of the selection.
func (h *handlers) getCart(c *gin.Context) {
	if err := h.deps.Cart.Fetch(c.Request.Context()); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartView())
}

// addCartItem resolves the (colour, size) pair to a variant and adds it. The
// resolver gates the attempt: an incomplete selection or a matched variant
// with zero stock never reaches the platform.
func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}

	product, err := h.deps.Gateway.Product(c.Request.Context(), req.ProductID)
	if err != nil {
		renderError(c, err)
		return
	}

	picker := catalog.NewPicker(product.Variants)
	picker.SelectColour(req.Colour)
	picker.SelectSize(req.Size)
	res := picker.Resolve()
	if res.State == catalog.ResolutionIncomplete {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": map[string][]string{
			"size": {"no variant matches the selected colour and size"},
		}})
		return
	}

	if err := h.deps.Cart.AddLine(c.Request.Context(), *res.Variant, req.Quantity); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.cartView())
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}
	if err := h.deps.Cart.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartView())
}

func (h *handlers) removeCartItem(c *gin.Context) {
	if err := h.deps.Cart.RemoveLine(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartView())
}

// resetSession drops the guest identifier, the hook for the guest-to-customer
// upgrade flow.
func (h *handlers) resetSession(c *gin.Context) {
	if err := h.deps.Session.Reset(c.Request.Context()); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
