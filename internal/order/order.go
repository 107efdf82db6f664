package order

import (
	"github.com/google/uuid"

	"github.com/bluecup/backend-pos/internal/catalog"
	"github.com/bluecup/backend-pos/internal/pricing"
)

// Totals is the computed pricing breakdown of an order.
type Totals struct {
	Subtotal pricing.Money `json:"subtotal"`
	Tax      pricing.Money `json:"tax"`
	Total    pricing.Money `json:"total"`
}

// Snapshot is the read-only view handed to the receipt renderer when a
// transaction completes.
type Snapshot struct {
	Items  []LineItem `json:"items"`
	Totals Totals     `json:"totals"`
}

// Order is the in-progress transaction: an insertion-ordered sequence of
// line items plus the pricing policy used to derive totals. Totals are
// recomputed eagerly on every mutation; item counts per order are small.
//
// Order performs no locking. Mutating calls against one Order must be
// serialized by the caller.
type Order struct {
	policy pricing.Policy
	items  []*lineItem
	totals Totals
}

// New creates an empty order priced under the given policy.
func New(policy pricing.Policy) *Order {
	return &Order{policy: policy}
}

// AddItem validates and appends a new line item, returning its stable ref.
// On failure the order is left unchanged.
func (o *Order) AddItem(product catalog.Product, quantity int, selection Selection) (ItemRef, error) {
	if selection.ProductID() != product.ID {
		return "", ErrInvalidOption
	}
	ref := uuid.NewString()
	item, err := newLineItem(ref, product, quantity, selection)
	if err != nil {
		return "", err
	}
	o.items = append(o.items, item)
	o.recompute()
	return ref, nil
}

// UpdateQuantity replaces the quantity of the referenced item.
func (o *Order) UpdateQuantity(ref ItemRef, quantity int) error {
	item, _, err := o.find(ref)
	if err != nil {
		return err
	}
	if err := item.setQuantity(quantity); err != nil {
		return err
	}
	o.recompute()
	return nil
}

// UpdateSelection replaces the customization selection of the referenced
// item. The selection must have been built for the item's product.
func (o *Order) UpdateSelection(ref ItemRef, selection Selection) error {
	item, _, err := o.find(ref)
	if err != nil {
		return err
	}
	if err := item.setSelection(selection); err != nil {
		return err
	}
	o.recompute()
	return nil
}

// UpdateItem replaces the quantity and selection of the referenced item as
// one mutation. Both parts are validated before either is applied; on
// failure the item and totals are unchanged.
func (o *Order) UpdateItem(ref ItemRef, quantity int, selection Selection) error {
	item, _, err := o.find(ref)
	if err != nil {
		return err
	}
	if err := item.update(quantity, selection); err != nil {
		return err
	}
	o.recompute()
	return nil
}

// RemoveItem deletes the referenced item, preserving the relative order of
// the remaining items.
func (o *Order) RemoveItem(ref ItemRef) error {
	_, idx, err := o.find(ref)
	if err != nil {
		return err
	}
	o.items = append(o.items[:idx], o.items[idx+1:]...)
	o.recompute()
	return nil
}

// Item returns the current view of the referenced line item.
func (o *Order) Item(ref ItemRef) (LineItem, error) {
	item, _, err := o.find(ref)
	if err != nil {
		return LineItem{}, err
	}
	return item.view(), nil
}

// Items returns the current line items in insertion order. The result is a
// copy; callers may request it repeatedly without side effects.
func (o *Order) Items() []LineItem {
	out := make([]LineItem, len(o.items))
	for i, item := range o.items {
		out[i] = item.view()
	}
	return out
}

// Totals returns the current subtotal, tax, and total. An empty order
// yields all-zero totals.
func (o *Order) Totals() Totals {
	return o.totals
}

// Len reports the number of line items.
func (o *Order) Len() int { return len(o.items) }

// Clear removes all line items and resets totals to zero.
func (o *Order) Clear() {
	o.items = nil
	o.recompute()
}

// Snapshot captures the order's items and totals as an immutable view for
// receipt rendering.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{Items: o.Items(), Totals: o.totals}
}

func (o *Order) find(ref ItemRef) (*lineItem, int, error) {
	for i, item := range o.items {
		if item.ref == ref {
			return item, i, nil
		}
	}
	return nil, 0, ErrItemNotFound
}

func (o *Order) recompute() {
	var subtotal pricing.Money
	for _, item := range o.items {
		subtotal += item.extendedPrice()
	}
	tax := o.policy.RoundTax(subtotal)
	o.totals = Totals{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}
