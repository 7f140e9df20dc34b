package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-engine/internal/domain"
)

type selectCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

type feeRequest struct {
	Parcel         domain.Parcel `json:"parcel" binding:"required"`
	CashOnDelivery bool          `json:"cashOnDelivery"`
}

func (h *handlers) shippingView() gin.H {
	city, district, ward := h.deps.Shipping.Selection()
	status, feeErr := h.deps.Shipping.FeeStatus()
	view := gin.H{
		"selection": gin.H{"city": city, "district": district, "ward": ward},
		"districts": h.deps.Shipping.Districts(),
		"wards":     h.deps.Shipping.Wards(),
		"quote":     h.deps.Shipping.Quote(),
		"feeStatus": status,
	}
	if feeErr != nil {
		view["feeError"] = feeErr.Message
	}
	return view
}

func (h *handlers) getShipping(c *gin.Context) {
	c.JSON(http.StatusOK, h.shippingView())
}

func (h *handlers) listCities(c *gin.Context) {
	if err := h.deps.Shipping.LoadCities(c.Request.Context()); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": h.deps.Shipping.Cities()})
}

// selectCity swaps the city. Districts, wards and any quote are already gone
// by the time the new district list arrives.
func (h *handlers) selectCity(c *gin.Context) {
	var req selectCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}
	if err := h.deps.Shipping.SelectCity(c.Request.Context(), req.Code); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.shippingView())
}

func (h *handlers) selectDistrict(c *gin.Context) {
	var req selectCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}
	if err := h.deps.Shipping.SelectDistrict(c.Request.Context(), req.Code); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.shippingView())
}

func (h *handlers) selectWard(c *gin.Context) {
	var req selectCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}
	h.deps.Shipping.SelectWard(req.Code)
	c.JSON(http.StatusOK, h.shippingView())
}

// calculateFee quotes shipping for the selected address against the current
// checkout total.
func (h *handlers) calculateFee(c *gin.Context) {
	var req feeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors(err)})
		return
	}
	quote, err := h.deps.Shipping.CalculateFee(c.Request.Context(), req.Parcel, req.CashOnDelivery, h.deps.Checkout.ComputeTotal())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}
