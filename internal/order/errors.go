package order

import "errors"

var (
	// ErrItemNotFound is returned when the referenced line item is not part
	// of the order (e.g. it was already removed).
	ErrItemNotFound = errors.New("order: line item not found")
	// ErrInvalidOption indicates a selection references an option the
	// product does not offer.
	ErrInvalidOption = errors.New("order: option not offered by product")
	// ErrDuplicateOption indicates a selection repeats an option id.
	ErrDuplicateOption = errors.New("order: duplicate option in selection")
	// ErrInvalidQuantity is returned for quantities below one.
	ErrInvalidQuantity = errors.New("order: quantity must be at least 1")
	// ErrInvalidPricing is returned when option deltas would drive a unit
	// price below zero. A well-formed catalog never produces this.
	ErrInvalidPricing = errors.New("order: unit price must not be negative")
)
