// Package session owns register sessions: one open order per cashier
// transaction, created when a customer is picked on the customer list and
// closed by checkout or cancellation. The order engine itself performs no
// locking, so each session serializes its own mutations.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bluecup/backend-pos/internal/catalog"
	"github.com/bluecup/backend-pos/internal/customer"
	"github.com/bluecup/backend-pos/internal/order"
	"github.com/bluecup/backend-pos/internal/pricing"
	"github.com/bluecup/backend-pos/internal/receipt"
)

var (
	// ErrSessionNotFound indicates the session id is unknown or already closed.
	ErrSessionNotFound = errors.New("session: not found")
	// ErrEmptyOrder is returned when checkout is attempted with no items.
	ErrEmptyOrder = errors.New("session: cannot check out an empty order")
)

// View is the session state returned to the register UI after every call.
type View struct {
	ID         string           `json:"id"`
	CustomerID string           `json:"customerId"`
	Items      []order.LineItem `json:"items"`
	Totals     order.Totals     `json:"totals"`
}

// Session binds one customer transaction to one open order.
type Session struct {
	id         string
	customerID string

	mu    sync.Mutex
	order *order.Order
}

// Manager creates and tracks register sessions. It is safe for concurrent
// use; per-order mutation is serialized by the owning session's lock.
type Manager struct {
	catalog    *catalog.Store
	directory  *customer.Directory
	policy     pricing.Policy
	receiptCfg receipt.Config
	now        func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// ManagerConfig groups Manager dependencies.
type ManagerConfig struct {
	Catalog   *catalog.Store
	Directory *customer.Directory
	Policy    pricing.Policy
	Receipt   receipt.Config
	Now       func() time.Time
}

// NewManager constructs a Manager.
func NewManager(cfg ManagerConfig) (*Manager, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("session: catalog is required")
	}
	if cfg.Directory == nil {
		return nil, errors.New("session: customer directory is required")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		catalog:    cfg.Catalog,
		directory:  cfg.Directory,
		policy:     cfg.Policy,
		receiptCfg: cfg.Receipt,
		now:        now,
		sessions:   make(map[string]*Session),
	}, nil
}

// Open starts a new session for the given customer.
func (m *Manager) Open(customerID string) (View, error) {
	if _, err := m.directory.Find(customerID); err != nil {
		return View{}, err
	}
	s := &Session{
		id:         uuid.NewString(),
		customerID: customerID,
		order:      order.New(m.policy),
	}
	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	return s.view(), nil
}

// Get returns the current view of an open session.
func (m *Manager) Get(id string) (View, error) {
	s, err := m.lookup(id)
	if err != nil {
		return View{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(), nil
}

// AddItem resolves the product and options against the catalog and appends
// a line item to the session's order.
func (m *Manager) AddItem(id, productID string, quantity int, optionIDs []string) (View, order.ItemRef, error) {
	s, err := m.lookup(id)
	if err != nil {
		return View{}, "", err
	}
	product, err := m.catalog.FindProduct(productID)
	if err != nil {
		return View{}, "", err
	}
	selection, err := order.NewSelection(product, optionIDs...)
	if err != nil {
		return View{}, "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, err := s.order.AddItem(product, quantity, selection)
	if err != nil {
		return View{}, "", err
	}
	return s.view(), ref, nil
}

// UpdateItem applies quantity and option changes to a line item as one
// mutation. Both parts are validated before either is applied, so a failed
// update leaves the item exactly as it was. A nil field keeps the item's
// current value.
func (m *Manager) UpdateItem(id string, ref order.ItemRef, quantity *int, optionIDs *[]string) (View, error) {
	s, err := m.lookup(id)
	if err != nil {
		return View{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	item, err := s.order.Item(ref)
	if err != nil {
		return View{}, err
	}
	q := item.Quantity
	if quantity != nil {
		q = *quantity
	}
	ids := make([]string, 0, len(item.Options))
	for _, opt := range item.Options {
		ids = append(ids, opt.ID)
	}
	if optionIDs != nil {
		ids = *optionIDs
	}
	product, err := m.catalog.FindProduct(item.ProductID)
	if err != nil {
		return View{}, fmt.Errorf("session: product vanished from catalog: %w", err)
	}
	selection, err := order.NewSelection(product, ids...)
	if err != nil {
		return View{}, err
	}
	if err := s.order.UpdateItem(ref, q, selection); err != nil {
		return View{}, err
	}
	return s.view(), nil
}

// UpdateQuantity changes the quantity of an existing line item.
func (m *Manager) UpdateQuantity(id string, ref order.ItemRef, quantity int) (View, error) {
	return m.UpdateItem(id, ref, &quantity, nil)
}

// UpdateOptions replaces the customization selection of an existing line item.
func (m *Manager) UpdateOptions(id string, ref order.ItemRef, optionIDs []string) (View, error) {
	return m.UpdateItem(id, ref, nil, &optionIDs)
}

// RemoveItem deletes a line item from the session's order.
func (m *Manager) RemoveItem(id string, ref order.ItemRef) (View, error) {
	s, err := m.lookup(id)
	if err != nil {
		return View{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.order.RemoveItem(ref); err != nil {
		return View{}, err
	}
	return s.view(), nil
}

// Cancel clears the order and discards the session.
func (m *Manager) Cancel(id string) error {
	s, err := m.lookup(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.order.Clear()
	s.mu.Unlock()
	m.drop(id)
	return nil
}

// Checkout finalizes the order: it snapshots items and totals, renders the
// receipt, and closes the session. The snapshot is taken before the session
// is discarded, so the receipt reflects the exact state paid for.
func (m *Manager) Checkout(id string) (receipt.Receipt, order.Snapshot, error) {
	s, err := m.lookup(id)
	if err != nil {
		return receipt.Receipt{}, order.Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.order.Len() == 0 {
		return receipt.Receipt{}, order.Snapshot{}, ErrEmptyOrder
	}
	snapshot := s.order.Snapshot()
	rendered := receipt.Render(snapshot, m.receiptCfg, m.now())
	s.order.Clear()
	m.drop(id)
	return rendered, snapshot, nil
}

// Len reports the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) lookup(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

func (m *Manager) drop(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (s *Session) view() View {
	return View{
		ID:         s.id,
		CustomerID: s.customerID,
		Items:      s.order.Items(),
		Totals:     s.order.Totals(),
	}
}
