// Package customer holds the store's customer directory shown on the
// register's customer list screen.
package customer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ErrCustomerNotFound indicates the requested customer does not exist.
var ErrCustomerNotFound = errors.New("customer: not found")

// Customer is one directory entry.
type Customer struct {
	ID        string `json:"id"`
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DisplayName renders the entry the way the customer list shows it.
func (c Customer) DisplayName() string {
	return fmt.Sprintf("%s %s (%s)", c.FirstName, c.LastName, c.Phone)
}

// Directory is the read-only customer list, loaded once at startup.
type Directory struct {
	customers []Customer
	byID      map[string]Customer
}

// NewDirectory validates and indexes the provided customers.
func NewDirectory(customers []Customer) (*Directory, error) {
	byID := make(map[string]Customer, len(customers))
	ordered := make([]Customer, 0, len(customers))
	for _, c := range customers {
		if strings.TrimSpace(c.ID) == "" {
			return nil, fmt.Errorf("customer: entry %q %q has no id", c.FirstName, c.LastName)
		}
		if _, exists := byID[c.ID]; exists {
			return nil, fmt.Errorf("customer: duplicate id %q", c.ID)
		}
		byID[c.ID] = c
		ordered = append(ordered, c)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].LastName != ordered[j].LastName {
			return ordered[i].LastName < ordered[j].LastName
		}
		return ordered[i].FirstName < ordered[j].FirstName
	})
	return &Directory{customers: ordered, byID: byID}, nil
}

// Load reads a JSON customer list from the given path.
func Load(path string) (*Directory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("customer: read %s: %w", path, err)
	}
	var customers []Customer
	if err := json.Unmarshal(raw, &customers); err != nil {
		return nil, fmt.Errorf("customer: parse %s: %w", path, err)
	}
	return NewDirectory(customers)
}

// List returns all customers sorted by last then first name.
func (d *Directory) List() []Customer {
	out := make([]Customer, len(d.customers))
	copy(out, d.customers)
	return out
}

// Find returns the customer with the given id.
func (d *Directory) Find(id string) (Customer, error) {
	c, ok := d.byID[id]
	if !ok {
		return Customer{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}
	return c, nil
}

// Len reports the number of directory entries.
func (d *Directory) Len() int { return len(d.customers) }

// DefaultCustomers returns the starter directory used when no customer file
// is configured.
func DefaultCustomers() []Customer {
	return []Customer{
		{ID: "c-1001", Phone: "555-0101", FirstName: "Maya", LastName: "Brooks"},
		{ID: "c-1002", Phone: "555-0102", FirstName: "Daniel", LastName: "Ortiz"},
		{ID: "c-1003", Phone: "555-0103", FirstName: "Priya", LastName: "Raman"},
		{ID: "c-1004", Phone: "555-0104", FirstName: "Tom", LastName: "Abbott"},
		{ID: "c-1005", Phone: "555-0105", FirstName: "Lena", LastName: "Fischer"},
	}
}
