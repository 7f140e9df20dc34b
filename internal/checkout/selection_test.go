package checkout

import (
	"errors"
	"testing"

	"storefront-engine/internal/domain"
)

type stubCart struct {
	lines []domain.CartLine
}

func (c *stubCart) Lines() []domain.CartLine { return c.lines }

type stubVoucher struct {
	applied *domain.AppliedDiscount
}

func (v *stubVoucher) Applied() *domain.AppliedDiscount { return v.applied }

type stubShipping struct {
	quote *domain.ShippingQuote
}

func (s *stubShipping) Quote() *domain.ShippingQuote { return s.quote }

func line(id string, qty int, price int64) domain.CartLine {
	return domain.CartLine{
		ID:       id,
		Quantity: qty,
		Snapshot: domain.VariantSnapshot{Price: price},
	}
}

func controller(lines ...domain.CartLine) (*Controller, *stubCart, *stubVoucher, *stubShipping) {
	cart := &stubCart{lines: lines}
	voucher := &stubVoucher{}
	shipping := &stubShipping{}
	return New(cart, voucher, shipping), cart, voucher, shipping
}

func TestReconcileSelectsAllOnFirstLines(t *testing.T) {
	c, cart, _, _ := controller()
	cart.lines = []domain.CartLine{line("a", 1, 100), line("b", 2, 200)}

	c.Reconcile(cart.lines)
	if got := c.Selected(); len(got) != 2 {
		t.Fatalf("empty to non-empty must select everything, got %v", got)
	}
}

func TestReconcilePreservesSelectionMinusRemoved(t *testing.T) {
	c, cart, _, _ := controller(line("a", 1, 100), line("b", 1, 100), line("c", 1, 100))
	c.Reconcile(cart.lines)
	c.Toggle("b")

	cart.lines = []domain.CartLine{line("a", 1, 100), line("c", 1, 100)}
	c.Reconcile(cart.lines)

	got := c.Selected()
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("removed ids must drop, survivors stay, got %v", got)
	}
}

func TestReconcileDoesNotReselectAfterManualClear(t *testing.T) {
	c, cart, _, _ := controller(line("a", 1, 100))
	c.Reconcile(cart.lines)
	c.Toggle("a")

	cart.lines = append(cart.lines, line("b", 1, 100))
	c.Reconcile(cart.lines)

	if got := c.Selected(); len(got) != 0 {
		t.Fatalf("a non-empty to non-empty change must not select anything, got %v", got)
	}
}

func TestToggleUnknownIDIsIgnored(t *testing.T) {
	c, cart, _, _ := controller(line("a", 1, 100))
	c.Reconcile(cart.lines)

	c.Toggle("ghost")
	if got := c.Selected(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("unexpected selection: %v", got)
	}
}

func TestToggleAllIsBinary(t *testing.T) {
	lines := []domain.CartLine{
		line("a", 1, 100), line("b", 1, 100), line("c", 1, 100),
		line("d", 1, 100), line("e", 1, 100),
	}
	c, cart, _, _ := controller(lines...)
	c.Reconcile(cart.lines)
	c.Toggle("a")
	c.Toggle("b")
	c.Toggle("c")

	// Two of five selected: toggle-all completes the selection.
	c.ToggleAll()
	if got := c.Selected(); len(got) != 5 {
		t.Fatalf("partial selection must go to all, got %v", got)
	}

	// All selected: toggle-all clears.
	c.ToggleAll()
	if got := c.Selected(); len(got) != 0 {
		t.Fatalf("full selection must go to none, got %v", got)
	}
}

func TestComputeTotalEmptySelectionIsZero(t *testing.T) {
	c, _, _, _ := controller(line("a", 3, 50000))
	if got := c.ComputeTotal(); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestComputeTotalSumsOnlySelectedLines(t *testing.T) {
	c, cart, _, _ := controller(line("a", 2, 100000), line("b", 1, 30000), line("c", 3, 10000))
	c.Reconcile(cart.lines)
	c.Toggle("b")

	// a: 2*100000, c: 3*10000. b is deselected and must not contribute.
	if got := c.ComputeTotal(); got != 230000 {
		t.Fatalf("expected 230000, got %d", got)
	}
}

func TestProceedRefusesEmptySelection(t *testing.T) {
	c, _, _, _ := controller(line("a", 1, 100))
	if _, err := c.Proceed(); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
}

func TestProceedPackagesSnapshots(t *testing.T) {
	c, cart, voucher, shipping := controller(line("a", 2, 100000), line("b", 1, 50000))
	c.Reconcile(cart.lines)
	voucher.applied = &domain.AppliedDiscount{Code: "SALE10", Discount: 25000}
	shipping.quote = &domain.ShippingQuote{Fee: 30000}

	order, err := c.Proceed()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order.Lines) != 2 || order.Subtotal != 250000 {
		t.Fatalf("unexpected order: %+v", order)
	}
	if order.Payable != 255000 {
		t.Fatalf("payable must be subtotal minus discount plus fee, got %d", order.Payable)
	}
}

func TestProceedFloorsPayableAtZero(t *testing.T) {
	c, cart, voucher, _ := controller(line("a", 1, 10000))
	c.Reconcile(cart.lines)
	voucher.applied = &domain.AppliedDiscount{Code: "BIG", Discount: 99999}

	order, err := c.Proceed()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Payable != 0 {
		t.Fatalf("discount beyond subtotal must floor at zero, got %d", order.Payable)
	}
}
