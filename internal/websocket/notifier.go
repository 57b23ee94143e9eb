package websocket

import (
	"context"
	"log/slog"
	"sync"
)

// Notifier pushes domain events to user rooms. Implementations never block the caller
// and never report delivery failures.
type Notifier interface {
	Emit(event EventType, payload interface{}, userIDs ...string)
	Broadcast(event EventType, payload interface{})
}

// Dispatcher hands a delivery to connections, locally or through a relay.
type Dispatcher interface {
	Dispatch(ctx context.Context, d Delivery) error
}

type NoopNotifier struct{}

func (NoopNotifier) Emit(EventType, interface{}, ...string) {}

func (NoopNotifier) Broadcast(EventType, interface{}) {}

// LiveNotifier queues deliveries and dispatches them from a single goroutine.
// A full queue drops the delivery.
type LiveNotifier struct {
	dispatcher Dispatcher
	queue      chan Delivery
	done       chan struct{}
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

func NewLiveNotifier(dispatcher Dispatcher, queueSize int) *LiveNotifier {
	if queueSize <= 0 {
		queueSize = 1
	}

	n := &LiveNotifier{
		dispatcher: dispatcher,
		queue:      make(chan Delivery, queueSize),
		done:       make(chan struct{}),
	}

	n.wg.Add(1)
	go n.run()

	return n
}

func (n *LiveNotifier) Emit(event EventType, payload interface{}, userIDs ...string) {
	targets := dedupe(userIDs)
	if len(targets) == 0 {
		return
	}
	n.enqueue(Delivery{Event: NewEvent(event, payload), Targets: targets})
}

func (n *LiveNotifier) Broadcast(event EventType, payload interface{}) {
	n.enqueue(Delivery{Event: NewEvent(event, payload), Broadcast: true})
}

func (n *LiveNotifier) enqueue(d Delivery) {
	select {
	case <-n.done:
		return
	default:
	}

	select {
	case n.queue <- d:
	default:
		slog.Warn("Notification queue full, dropping event", "event", d.Event.Type, "targets", len(d.Targets))
	}
}

func (n *LiveNotifier) run() {
	defer n.wg.Done()

	for {
		select {
		case <-n.done:
			n.drain()
			return
		case d := <-n.queue:
			n.dispatch(d)
		}
	}
}

func (n *LiveNotifier) drain() {
	for {
		select {
		case d := <-n.queue:
			n.dispatch(d)
		default:
			return
		}
	}
}

func (n *LiveNotifier) dispatch(d Delivery) {
	if err := n.dispatcher.Dispatch(context.Background(), d); err != nil {
		slog.Warn("Failed to dispatch event", "error", err, "event", d.Event.Type)
	}
}

// Stop flushes queued deliveries and stops the dispatcher goroutine.
func (n *LiveNotifier) Stop() {
	n.stopOnce.Do(func() {
		close(n.done)
	})
	n.wg.Wait()
}

// MultiNotifier fans every call out to each wrapped notifier.
type MultiNotifier []Notifier

func (m MultiNotifier) Emit(event EventType, payload interface{}, userIDs ...string) {
	for _, n := range m {
		if n != nil {
			n.Emit(event, payload, userIDs...)
		}
	}
}

func (m MultiNotifier) Broadcast(event EventType, payload interface{}) {
	for _, n := range m {
		if n != nil {
			n.Broadcast(event, payload)
		}
	}
}

// OrNoop returns n, or a NoopNotifier when n is nil.
func OrNoop(n Notifier) Notifier {
	if n == nil {
		return NoopNotifier{}
	}
	return n
}
