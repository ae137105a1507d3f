package ws

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/taskboard/taskboard-api/internal/events"
)

// Common errors returned by the Dispatcher
var (
	ErrDispatcherClosed = errors.New("dispatcher is closed")
	ErrQueueFull        = errors.New("event queue is full")
)

// Broadcaster receives the serialized events the dispatcher drains.
type Broadcaster interface {
	Broadcast(payload []byte)
}

// Dispatcher is the bounded handoff between the lifecycle service and
// the connection registry. The service enqueues an event after its store
// write commits; a single worker goroutine performs the fan-out, so
// delivery order per connection matches enqueue order and a slow
// subscriber never blocks a mutation. A full queue drops the event with
// a warning, matching the best-effort notification contract.
type Dispatcher struct {
	queue    chan *events.Event
	registry Broadcaster
	logger   *slog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with the given queue capacity.
func NewDispatcher(registry Broadcaster, queueSize int, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		queue:    make(chan *events.Event, queueSize),
		registry: registry,
		logger:   logger.With(slog.String("component", "event_dispatcher")),
	}
}

// Start launches the delivery worker.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.run()
}

// Stop closes the queue, drains the remaining events, and waits for the
// worker to exit.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

// Publish enqueues an event for fan-out. It never blocks: a full queue
// drops the event and returns ErrQueueFull, which callers log rather
// than surface.
func (d *Dispatcher) Publish(event *events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrDispatcherClosed
	}

	select {
	case d.queue <- event:
		return nil
	default:
		d.logger.Warn("event queue full, dropping event",
			"event_id", event.ID,
			"event_type", event.Type,
			"queue_cap", cap(d.queue))
		return ErrQueueFull
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for event := range d.queue {
		d.registry.Broadcast(event.Payload)
		d.logger.Debug("event delivered",
			"event_id", event.ID,
			"event_type", event.Type)
	}
}
