package catalog

import (
	"testing"

	"storefront-engine/internal/domain"
)

var testVariants = []domain.Variant{
	{ID: "v1", Colour: "black", Size: "M", Price: 250000, Stock: 3},
	{ID: "v2", Colour: "black", Size: "L", Price: 250000, Stock: 0},
	{ID: "v3", Colour: "white", Size: "M", Price: 260000, Stock: 50},
}

func TestResolveIncompleteUntilBothChosen(t *testing.T) {
	p := NewPicker(testVariants)
	if res := p.Resolve(); res.State != ResolutionIncomplete {
		t.Fatalf("unexpected state: %s", res.State)
	}
	p.SelectColour("black")
	if res := p.Resolve(); res.State != ResolutionIncomplete {
		t.Fatalf("colour alone must stay incomplete, got %s", res.State)
	}
	p.SelectSize("M")
	res := p.Resolve()
	if res.State != ResolutionPurchasable || res.Variant.ID != "v1" {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestResolveOutOfStockVariant(t *testing.T) {
	p := NewPicker(testVariants)
	p.SelectColour("black")
	p.SelectSize("L")
	if res := p.Resolve(); res.State != ResolutionOutOfStock {
		t.Fatalf("unexpected state: %s", res.State)
	}
}

func TestResolveUnmatchedPairStaysIncomplete(t *testing.T) {
	p := NewPicker(testVariants)
	p.SelectColour("white")
	p.SelectSize("XL")
	if res := p.Resolve(); res.State != ResolutionIncomplete {
		t.Fatalf("unexpected state: %s", res.State)
	}
}

func TestColourChangeResetsSizeAndQuantity(t *testing.T) {
	p := NewPicker(testVariants)
	p.SelectColour("black")
	p.SelectSize("M")
	p.Increment()
	p.Increment()

	p.SelectColour("white")
	if p.Quantity() != 1 {
		t.Fatalf("quantity must reset on colour change, got %d", p.Quantity())
	}
	if res := p.Resolve(); res.State != ResolutionIncomplete {
		t.Fatalf("size must reset on colour change, got %s", res.State)
	}
}

func TestReselectingSameColourKeepsState(t *testing.T) {
	p := NewPicker(testVariants)
	p.SelectColour("black")
	p.SelectSize("M")
	p.Increment()

	p.SelectColour("black")
	if p.Quantity() != 2 {
		t.Fatalf("same colour must not reset, got %d", p.Quantity())
	}
}

func TestIncrementCappedByStock(t *testing.T) {
	p := NewPicker(testVariants)
	p.SelectColour("black")
	p.SelectSize("M")

	// Stock is 3; the third increment must refuse.
	if !p.Increment() || !p.Increment() {
		t.Fatal("increments within stock must succeed")
	}
	if p.Increment() {
		t.Fatal("increment past stock must refuse")
	}
	if p.Quantity() != 3 {
		t.Fatalf("unexpected quantity: %d", p.Quantity())
	}
}

func TestIncrementCappedByHardCeiling(t *testing.T) {
	p := NewPicker(testVariants)
	p.SelectColour("white")
	p.SelectSize("M")

	for i := 0; i < 40; i++ {
		p.Increment()
	}
	if p.Quantity() != domain.MaxLineQuantity {
		t.Fatalf("plentiful stock still caps at %d, got %d", domain.MaxLineQuantity, p.Quantity())
	}
}

func TestDecrementFloorsAtOne(t *testing.T) {
	p := NewPicker(testVariants)
	if p.Decrement() {
		t.Fatal("decrement at 1 must refuse")
	}
	if p.Quantity() != 1 {
		t.Fatalf("unexpected quantity: %d", p.Quantity())
	}
}

func TestSetQuantityClamps(t *testing.T) {
	p := NewPicker(testVariants)
	p.SelectColour("black")
	p.SelectSize("M")

	p.SetQuantity(99)
	if p.Quantity() != 3 {
		t.Fatalf("entered quantity must clamp to stock, got %d", p.Quantity())
	}
	p.SetQuantity(-4)
	if p.Quantity() != 1 {
		t.Fatalf("entered quantity must clamp up to 1, got %d", p.Quantity())
	}
}

func TestColoursAndSizesListings(t *testing.T) {
	p := NewPicker(testVariants)
	colours := p.Colours()
	if len(colours) != 2 || colours[0] != "black" || colours[1] != "white" {
		t.Fatalf("unexpected colours: %v", colours)
	}
	sizes := p.SizesFor("black")
	if len(sizes) != 2 || sizes[0] != "M" || sizes[1] != "L" {
		t.Fatalf("unexpected sizes: %v", sizes)
	}
}
