package cart

// EventKind names the mutation that produced an Event.
type EventKind string

const (
	EventItemAdded       EventKind = "item_added"
	EventItemRemoved     EventKind = "item_removed"
	EventQuantityUpdated EventKind = "quantity_updated"
	EventCleared         EventKind = "cleared"
	EventCartOpened      EventKind = "cart_opened"
	EventCartClosed      EventKind = "cart_closed"
	EventCheckoutOpened  EventKind = "checkout_opened"
	EventCheckoutClosed  EventKind = "checkout_closed"
)

// Event describes a change that has already been applied to the Store.
// Quantity is the resulting quantity of ItemID, where relevant.
type Event struct {
	Kind     EventKind
	ItemID   string
	Quantity int
}

// Listener receives store events. Listeners run synchronously on the goroutine
// that performed the mutation, after the store lock has been released.
type Listener func(Event)
