package order

import (
	"github.com/bluecup/backend-pos/internal/catalog"
	"github.com/bluecup/backend-pos/internal/pricing"
)

// ItemRef is the stable handle returned by AddItem and used for later
// updates. It stays valid when other items are removed.
type ItemRef = string

// LineItem is a read-only view of one order row.
type LineItem struct {
	Ref           ItemRef          `json:"ref"`
	ProductID     string           `json:"productId"`
	ProductName   string           `json:"productName"`
	Quantity      int              `json:"quantity"`
	Options       []catalog.Option `json:"options"`
	UnitPrice     pricing.Money    `json:"unitPrice"`
	ExtendedPrice pricing.Money    `json:"extendedPrice"`
}

// lineItem is the mutable engine-side row. The extended price is never
// stored: it is always derived as unit price × quantity.
type lineItem struct {
	ref       ItemRef
	product   catalog.Product
	quantity  int
	selection Selection
	unitPrice pricing.Money
}

func newLineItem(ref ItemRef, product catalog.Product, quantity int, selection Selection) (*lineItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	unit := product.BasePrice + selection.PriceDelta()
	if unit < 0 {
		return nil, ErrInvalidPricing
	}
	return &lineItem{
		ref:       ref,
		product:   product,
		quantity:  quantity,
		selection: selection,
		unitPrice: unit,
	}, nil
}

// update validates both fields before applying either, so a rejected
// update leaves the item exactly as it was.
func (li *lineItem) update(quantity int, selection Selection) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if selection.ProductID() != li.product.ID {
		return ErrInvalidOption
	}
	unit := li.product.BasePrice + selection.PriceDelta()
	if unit < 0 {
		return ErrInvalidPricing
	}
	li.quantity = quantity
	li.selection = selection
	li.unitPrice = unit
	return nil
}

func (li *lineItem) setQuantity(quantity int) error {
	return li.update(quantity, li.selection)
}

func (li *lineItem) setSelection(selection Selection) error {
	return li.update(li.quantity, selection)
}

func (li *lineItem) extendedPrice() pricing.Money {
	return li.unitPrice * pricing.Money(li.quantity)
}

func (li *lineItem) view() LineItem {
	return LineItem{
		Ref:           li.ref,
		ProductID:     li.product.ID,
		ProductName:   li.product.Name,
		Quantity:      li.quantity,
		Options:       li.selection.Options(),
		UnitPrice:     li.unitPrice,
		ExtendedPrice: li.extendedPrice(),
	}
}
