// internal/event/event.go
package event

// Event is the closed set of simulation notifications. Each kind is its own
// struct; subscribers type-switch over the set exhaustively instead of
// matching string names against free-form payloads.
type Event interface {
	isEvent()
}

// Listener receives every dispatched event.
type Listener interface {
	OnEvent(e Event)
}

// Dispatcher fans events out to subscribers, synchronously and in
// subscription order.
type Dispatcher struct {
	listeners []Listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers a listener for all events.
func (d *Dispatcher) Subscribe(l Listener) {
	d.listeners = append(d.listeners, l)
}

// Unsubscribe removes a previously registered listener.
func (d *Dispatcher) Unsubscribe(l Listener) {
	for i, existing := range d.listeners {
		if existing == l {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Dispatch delivers e to every subscriber.
func (d *Dispatcher) Dispatch(e Event) {
	for _, l := range d.listeners {
		l.OnEvent(e)
	}
}
