// Package checkout derives the user-selected subset of cart lines and its
// monetary total, and packages the handoff to order creation. It is the only
// consumer that reads across the cart, voucher and shipping stores; each
// store is snapshotted under its own lock, never two at once.
package checkout

import (
	"errors"
	"sync"

	"storefront-engine/internal/domain"
)

// ErrEmptySelection marks a proceed attempt with nothing selected. The action
// is surfaced as disabled, not as a failure channel.
var ErrEmptySelection = errors.New("selection is empty")

type cartReader interface {
	Lines() []domain.CartLine
}

type voucherReader interface {
	Applied() *domain.AppliedDiscount
}

type shippingReader interface {
	Quote() *domain.ShippingQuote
}

// Controller owns the transient, client-only selection set.
type Controller struct {
	mu       sync.Mutex
	cart     cartReader
	voucher  voucherReader
	shipping shippingReader
	selected map[string]struct{}
	hadLines bool
}

func New(cart cartReader, voucher voucherReader, shipping shippingReader) *Controller {
	return &Controller{
		cart:     cart,
		voucher:  voucher,
		shipping: shipping,
		selected: make(map[string]struct{}),
	}
}

// Reconcile applies the default selection policy after a cart change: a
// collection going from empty to non-empty selects everything; otherwise the
// existing selection survives minus any id no longer present.
func (c *Controller) Reconcile(lines []domain.CartLine) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hadLines && len(lines) > 0 {
		c.selected = make(map[string]struct{}, len(lines))
		for _, l := range lines {
			c.selected[l.ID] = struct{}{}
		}
	} else {
		present := make(map[string]struct{}, len(lines))
		for _, l := range lines {
			present[l.ID] = struct{}{}
		}
		for id := range c.selected {
			if _, ok := present[id]; !ok {
				delete(c.selected, id)
			}
		}
	}
	c.hadLines = len(lines) > 0
}

// Toggle flips one line in or out of the selection. Ids not in the current
// collection are ignored.
func (c *Controller) Toggle(lineID string) {
	lines := c.cart.Lines()
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.selected[lineID]; ok {
		delete(c.selected, lineID)
		return
	}
	for _, l := range lines {
		if l.ID == lineID {
			c.selected[lineID] = struct{}{}
			return
		}
	}
}

// ToggleAll selects every line unless all are already selected, in which case
// it clears the selection entirely.
func (c *Controller) ToggleAll() {
	lines := c.cart.Lines()
	c.mu.Lock()
	defer c.mu.Unlock()

	all := len(lines) > 0
	for _, l := range lines {
		if _, ok := c.selected[l.ID]; !ok {
			all = false
			break
		}
	}
	if all {
		c.selected = make(map[string]struct{})
		return
	}
	c.selected = make(map[string]struct{}, len(lines))
	for _, l := range lines {
		c.selected[l.ID] = struct{}{}
	}
}

// Selected returns the ids currently selected.
func (c *Controller) Selected() []string {
	lines := c.cart.Lines()
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]string, 0, len(c.selected))
	for _, l := range lines {
		if _, ok := c.selected[l.ID]; ok {
			ids = append(ids, l.ID)
		}
	}
	return ids
}

// ComputeTotal sums price times quantity over exactly the selected lines.
// Zero for an empty selection; lines outside the selection never contribute.
func (c *Controller) ComputeTotal() int64 {
	lines := c.cart.Lines()
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalOf(c.selected, lines)
}

// Order is the handoff payload for order creation.
type Order struct {
	Lines    []domain.CartLine       `json:"lines"`
	Subtotal int64                   `json:"subtotal"`
	Discount *domain.AppliedDiscount `json:"discount,omitempty"`
	Shipping *domain.ShippingQuote   `json:"shipping,omitempty"`
	Payable  int64                   `json:"payable"`
}

// Proceed snapshots the three stores and packages the selected lines for the
// order-creation flow. Refuses on an empty selection.
func (c *Controller) Proceed() (Order, error) {
	lines := c.cart.Lines()

	c.mu.Lock()
	chosen := make([]domain.CartLine, 0, len(c.selected))
	for _, l := range lines {
		if _, ok := c.selected[l.ID]; ok {
			chosen = append(chosen, l)
		}
	}
	c.mu.Unlock()

	if len(chosen) == 0 {
		return Order{}, ErrEmptySelection
	}

	var subtotal int64
	for _, l := range chosen {
		subtotal += l.LineTotal()
	}

	discount := c.voucher.Applied()
	quote := c.shipping.Quote()

	payable := subtotal
	if discount != nil {
		payable -= discount.Discount
		if payable < 0 {
			payable = 0
		}
	}
	if quote != nil {
		payable += quote.Fee
	}

	return Order{
		Lines:    chosen,
		Subtotal: subtotal,
		Discount: discount,
		Shipping: quote,
		Payable:  payable,
	}, nil
}

func totalOf(selected map[string]struct{}, lines []domain.CartLine) int64 {
	var total int64
	for _, l := range lines {
		if _, ok := selected[l.ID]; ok {
			total += l.LineTotal()
		}
	}
	return total
}
