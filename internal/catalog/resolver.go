// Package catalog resolves a product's colour/size selection to a concrete
// purchasable variant and gates the quantity stepper. The checks here are
// advisory UX guards; the platform re-checks stock on add.
package catalog

import (
	"storefront-engine/internal/domain"
)

// ResolutionState classifies the outcome of a resolve.
type ResolutionState string

const (
	// ResolutionIncomplete means colour or size has not been chosen yet.
	ResolutionIncomplete ResolutionState = "incomplete"
	// ResolutionPurchasable means a variant matched and has stock.
	ResolutionPurchasable ResolutionState = "purchasable"
	// ResolutionOutOfStock means a variant matched but its stock is zero.
	ResolutionOutOfStock ResolutionState = "outOfStock"
)

// Resolution is the result of resolving a (colour, size) pair.
type Resolution struct {
	State       ResolutionState `json:"state"`
	Variant     *domain.Variant `json:"variant,omitempty"`
	MaxQuantity int             `json:"maxQuantity"`
}

// Picker drives one product-detail selection: colour, size, quantity. It
// belongs to a single UI session and is not safe for concurrent use.
type Picker struct {
	variants []domain.Variant
	colour   string
	size     string
	quantity int
}

func NewPicker(variants []domain.Variant) *Picker {
	return &Picker{variants: variants, quantity: 1}
}

// SelectColour records the colour and resets size and quantity: a size valid
// for one colour may not exist for another, and a quantity legal for the old
// variant may exceed the new one's stock.
func (p *Picker) SelectColour(colour string) {
	if colour == p.colour {
		return
	}
	p.colour = colour
	p.size = ""
	p.quantity = 1
}

// SelectSize records the size and resets quantity across the variant switch.
func (p *Picker) SelectSize(size string) {
	if size == p.size {
		return
	}
	p.size = size
	p.quantity = 1
}

// Quantity returns the requested quantity.
func (p *Picker) Quantity() int {
	return p.quantity
}

// Increment raises the quantity unless it has reached the resolved variant's
// stock or the hard ceiling, whichever is lower. Returns whether it moved.
func (p *Picker) Increment() bool {
	if p.quantity >= p.maxQuantity() {
		return false
	}
	p.quantity++
	return true
}

// Decrement lowers the quantity, never below 1.
func (p *Picker) Decrement() bool {
	if p.quantity <= 1 {
		return false
	}
	p.quantity--
	return true
}

// SetQuantity clamps a directly entered quantity into [1, max].
func (p *Picker) SetQuantity(quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	if max := p.maxQuantity(); quantity > max {
		quantity = max
	}
	p.quantity = quantity
}

// Resolve returns the current selection outcome: incomplete until both colour
// and size are chosen, then purchasable or out-of-stock for the matched
// variant. A (colour, size) pair with no variant stays incomplete.
func (p *Picker) Resolve() Resolution {
	if p.colour == "" || p.size == "" {
		return Resolution{State: ResolutionIncomplete, MaxQuantity: domain.MaxLineQuantity}
	}
	for i := range p.variants {
		v := p.variants[i]
		if v.Colour == p.colour && v.Size == p.size {
			if v.Stock <= 0 {
				return Resolution{State: ResolutionOutOfStock, Variant: &v}
			}
			return Resolution{State: ResolutionPurchasable, Variant: &v, MaxQuantity: maxFor(v)}
		}
	}
	return Resolution{State: ResolutionIncomplete, MaxQuantity: domain.MaxLineQuantity}
}

// Colours lists the distinct colours in variant order.
func (p *Picker) Colours() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, v := range p.variants {
		if _, ok := seen[v.Colour]; ok {
			continue
		}
		seen[v.Colour] = struct{}{}
		out = append(out, v.Colour)
	}
	return out
}

// SizesFor lists the sizes available for one colour.
func (p *Picker) SizesFor(colour string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, v := range p.variants {
		if v.Colour != colour {
			continue
		}
		if _, ok := seen[v.Size]; ok {
			continue
		}
		seen[v.Size] = struct{}{}
		out = append(out, v.Size)
	}
	return out
}

func (p *Picker) maxQuantity() int {
	res := p.Resolve()
	if res.State == ResolutionPurchasable {
		return res.MaxQuantity
	}
	if res.State == ResolutionOutOfStock {
		return 1
	}
	return domain.MaxLineQuantity
}

func maxFor(v domain.Variant) int {
	if v.Stock < domain.MaxLineQuantity {
		return v.Stock
	}
	return domain.MaxLineQuantity
}
