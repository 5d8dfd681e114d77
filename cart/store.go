package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Product is the catalog entry a cart line is created from.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Image    string          `json:"image"`
}

// Item is one line of the cart. There is at most one item per product id.
type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

// LineTotal is price times quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// MaxQuantity caps the quantity of a single line.
const MaxQuantity = 999

func clampQuantity(q int) int {
	return min(max(q, 1), MaxQuantity)
}

// Snapshot is the serialisable state of a Store.
type Snapshot struct {
	Items          []Item `json:"items"`
	IsCartOpen     bool   `json:"is_cart_open"`
	IsCheckoutOpen bool   `json:"is_checkout_open"`
}

// Store holds the items of one shopper's cart together with the drawer and
// checkout visibility flags. Totals are derived from the items on every read.
type Store struct {
	mu             sync.RWMutex
	items          []Item
	isCartOpen     bool
	isCheckoutOpen bool

	listenerMu sync.Mutex
	listeners  map[int]Listener
	nextID     int
}

// NewStore returns an empty, closed cart.
func NewStore() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

// Subscribe registers a listener that is called after every mutation. The
// returned function removes it again.
func (s *Store) Subscribe(l Listener) func() {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.listenerMu.Lock()
		delete(s.listeners, id)
		s.listenerMu.Unlock()
	}
}

func (s *Store) emit(e Event) {
	s.listenerMu.Lock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.listenerMu.Unlock()

	for _, l := range ls {
		l(e)
	}
}

// AddItem adds quantity units of p. An existing line for the same id has its
// quantity increased instead. Quantities below one are treated as one, and a
// line never grows past MaxQuantity.
func (s *Store) AddItem(p Product, quantity int) {
	quantity = clampQuantity(quantity)

	s.mu.Lock()
	var newQty int
	if idx := s.indexOf(p.ID); idx >= 0 {
		// both operands are at most MaxQuantity, so the sum cannot overflow
		s.items[idx].Quantity = clampQuantity(s.items[idx].Quantity + quantity)
		newQty = s.items[idx].Quantity
	} else {
		s.items = append(s.items, Item{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Category: p.Category,
			Image:    p.Image,
			Quantity: quantity,
		})
		newQty = quantity
	}
	s.mu.Unlock()

	s.emit(Event{Kind: EventItemAdded, ItemID: p.ID, Quantity: newQty})
}

// RemoveItem deletes the line for id. Unknown ids are ignored.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.mu.Unlock()

	s.emit(Event{Kind: EventItemRemoved, ItemID: id})
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line; anything above MaxQuantity is capped.
func (s *Store) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(id)
		return
	}
	quantity = clampQuantity(quantity)

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.items[idx].Quantity = quantity
	s.mu.Unlock()

	s.emit(Event{Kind: EventQuantityUpdated, ItemID: id, Quantity: quantity})
}

// ClearCart removes every item. Visibility flags are left alone.
func (s *Store) ClearCart() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.emit(Event{Kind: EventCleared})
}

func (s *Store) OpenCart() {
	s.setFlags(func() { s.isCartOpen = true }, EventCartOpened)
}

func (s *Store) CloseCart() {
	s.setFlags(func() { s.isCartOpen = false }, EventCartClosed)
}

// OpenCheckout shows the checkout modal and closes the drawer.
func (s *Store) OpenCheckout() {
	s.setFlags(func() {
		s.isCheckoutOpen = true
		s.isCartOpen = false
	}, EventCheckoutOpened)
}

func (s *Store) CloseCheckout() {
	s.setFlags(func() { s.isCheckoutOpen = false }, EventCheckoutClosed)
}

func (s *Store) setFlags(apply func(), kind EventKind) {
	s.mu.Lock()
	apply()
	s.mu.Unlock()

	s.emit(Event{Kind: kind})
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Item returns the line for id, if present.
func (s *Store) Item(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexOf(id); idx >= 0 {
		return s.items[idx], true
	}
	return Item{}, false
}

// TotalItems is the sum of all quantities.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// Subtotal is the sum of price times quantity over all lines.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := decimal.Zero
	for _, it := range s.items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items) == 0
}

func (s *Store) IsCartOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isCartOpen
}

func (s *Store) IsCheckoutOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isCheckoutOpen
}

// Snapshot copies the current state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Items:          s.Items(),
		IsCartOpen:     s.IsCartOpen(),
		IsCheckoutOpen: s.IsCheckoutOpen(),
	}
}

// Restore replaces the state with snap without notifying listeners. Lines
// with no quantity are dropped and repeated ids are merged into the first
// line for that id, so a stored cart always satisfies the AddItem invariants.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]Item, 0, len(snap.Items))
	for _, it := range snap.Items {
		if it.Quantity <= 0 {
			continue
		}
		if idx := s.indexOf(it.ID); idx >= 0 {
			s.items[idx].Quantity = clampQuantity(s.items[idx].Quantity + clampQuantity(it.Quantity))
			continue
		}
		it.Quantity = clampQuantity(it.Quantity)
		s.items = append(s.items, it)
	}
	s.isCartOpen = snap.IsCartOpen
	s.isCheckoutOpen = snap.IsCheckoutOpen
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
