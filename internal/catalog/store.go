package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bluecup/backend-pos/internal/pricing"
)

// ErrProductNotFound indicates the requested product is not in the catalog.
var ErrProductNotFound = errors.New("catalog: product not found")

// ErrOptionNotFound indicates the product does not offer the requested option.
var ErrOptionNotFound = errors.New("catalog: option not found")

// Option is a customization a product offers. The delta may be negative
// (e.g. "no whip"), zero, or positive.
type Option struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	PriceDelta pricing.Money `json:"priceDelta"`
}

// Product describes a purchasable drink with its available customizations.
type Product struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	BasePrice pricing.Money `json:"basePrice"`
	Options   []Option      `json:"options"`
}

// Option returns the product's option with the given id.
func (p Product) Option(optionID string) (Option, error) {
	for _, opt := range p.Options {
		if opt.ID == optionID {
			return opt, nil
		}
	}
	return Option{}, fmt.Errorf("%w: %s/%s", ErrOptionNotFound, p.ID, optionID)
}

// Store is the read-only product catalog. It is populated once at process
// start and may be shared across concurrent readers afterwards.
type Store struct {
	products []Product
	byID     map[string]Product
}

// NewStore validates and indexes the provided products.
func NewStore(products []Product) (*Store, error) {
	if len(products) == 0 {
		return nil, errors.New("catalog: at least one product is required")
	}
	byID := make(map[string]Product, len(products))
	ordered := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("catalog: product %q has no id", p.Name)
		}
		if _, exists := byID[p.ID]; exists {
			return nil, fmt.Errorf("catalog: duplicate product id %q", p.ID)
		}
		if p.BasePrice < 0 {
			return nil, fmt.Errorf("catalog: product %q has negative base price", p.ID)
		}
		optionIDs := make(map[string]struct{}, len(p.Options))
		for _, opt := range p.Options {
			if strings.TrimSpace(opt.ID) == "" {
				return nil, fmt.Errorf("catalog: product %q has an option with no id", p.ID)
			}
			if _, exists := optionIDs[opt.ID]; exists {
				return nil, fmt.Errorf("catalog: product %q has duplicate option id %q", p.ID, opt.ID)
			}
			optionIDs[opt.ID] = struct{}{}
		}
		p.Options = append([]Option(nil), p.Options...)
		byID[p.ID] = p
		ordered = append(ordered, p)
	}
	return &Store{products: ordered, byID: byID}, nil
}

// Load reads a JSON product list from the given path and builds a Store.
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	return NewStore(products)
}

// Products returns the catalog in its stable display order.
func (s *Store) Products() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	for i := range out {
		out[i].Options = append([]Option(nil), out[i].Options...)
	}
	return out
}

// FindProduct returns the product with the given id.
func (s *Store) FindProduct(id string) (Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	p.Options = append([]Option(nil), p.Options...)
	return p, nil
}

// FindOption returns the option offered by the given product.
func (s *Store) FindOption(productID, optionID string) (Option, error) {
	p, ok := s.byID[productID]
	if !ok {
		return Option{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	return p.Option(optionID)
}

// Len reports the number of products in the catalog.
func (s *Store) Len() int { return len(s.products) }
