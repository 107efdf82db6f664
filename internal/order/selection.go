package order

import (
	"fmt"
	"sort"

	"github.com/bluecup/backend-pos/internal/catalog"
	"github.com/bluecup/backend-pos/internal/pricing"
)

// Selection is the set of customization options chosen for one line item.
// It is immutable once built and always valid for its product.
type Selection struct {
	productID string
	ids       []string
	options   []catalog.Option
	delta     pricing.Money
}

// NewSelection validates the chosen option ids against the product and
// returns the resulting selection. An empty id list is a valid selection
// with a zero price delta.
func NewSelection(product catalog.Product, optionIDs ...string) (Selection, error) {
	seen := make(map[string]struct{}, len(optionIDs))
	ids := make([]string, 0, len(optionIDs))
	options := make([]catalog.Option, 0, len(optionIDs))
	var delta pricing.Money
	for _, id := range optionIDs {
		if _, dup := seen[id]; dup {
			return Selection{}, fmt.Errorf("%w: %s", ErrDuplicateOption, id)
		}
		seen[id] = struct{}{}
		opt, err := product.Option(id)
		if err != nil {
			return Selection{}, fmt.Errorf("%w: %s", ErrInvalidOption, id)
		}
		ids = append(ids, id)
		options = append(options, opt)
		delta += opt.PriceDelta
	}
	sort.Strings(ids)
	sort.Slice(options, func(i, j int) bool { return options[i].ID < options[j].ID })
	return Selection{productID: product.ID, ids: ids, options: options, delta: delta}, nil
}

// ProductID returns the id of the product the selection was built for.
func (s Selection) ProductID() string { return s.productID }

// PriceDelta returns the sum of the selected options' deltas.
func (s Selection) PriceDelta() pricing.Money { return s.delta }

// OptionIDs returns the selected option ids in sorted order.
func (s Selection) OptionIDs() []string {
	return append([]string(nil), s.ids...)
}

// Options returns the selected options sorted by id.
func (s Selection) Options() []catalog.Option {
	return append([]catalog.Option(nil), s.options...)
}

// Equal reports whether two selections chose the same option set,
// regardless of the order the options were picked in.
func (s Selection) Equal(other Selection) bool {
	if s.productID != other.productID || len(s.ids) != len(other.ids) {
		return false
	}
	for i := range s.ids {
		if s.ids[i] != other.ids[i] {
			return false
		}
	}
	return true
}
