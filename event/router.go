package event

// Handler processes specific event types within a context T
type Handler[T any] interface {
	// HandleEvent processes a single event
	// Called synchronously during the drain phase
	HandleEvent(ctx T, event GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

// HandlerFunc adapts a function to Handler for a fixed set of types
type HandlerFunc[T any] struct {
	Types []EventType
	Fn    func(ctx T, event GameEvent)
}

func (h HandlerFunc[T]) HandleEvent(ctx T, event GameEvent) { h.Fn(ctx, event) }
func (h HandlerFunc[T]) EventTypes() []EventType         { return h.Types }

// Router dispatches bus events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//   - Events without a handler are dropped
type Router[T any] struct {
	handlers map[EventType][]Handler[T]
	bus      *Bus
}

// NewRouter creates a router attached to the given bus
func NewRouter[T any](bus *Bus) *Router[T] {
	return &Router[T]{
		handlers: make(map[EventType][]Handler[T]),
		bus:      bus,
	}
}

// Register adds a handler for its declared event types
func (r *Router[T]) Register(handler Handler[T]) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll drains the bus in FIFO order, including events pushed by handlers,
// for at most maxRounds passes; returns the number of events dispatched
func (r *Router[T]) DispatchAll(ctx T, maxRounds int) int {
	n := 0
	for round := 0; round < maxRounds; round++ {
		events := r.bus.Consume()
		if len(events) == 0 {
			break
		}
		for _, ev := range events {
			for _, h := range r.handlers[ev.Type] {
				h.HandleEvent(ctx, ev)
			}
		}
		n += len(events)
	}
	return n
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router[T]) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
