package server

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
)

// Handler is the state transition function run by the coordinator.
type Handler interface {
	Handle(ev Event) []Outbound
}

var ErrCoordinatorStopped = errors.New("coordinator stopped")

// query runs fn inside the coordinator loop.
type query struct {
	fn   func()
	done chan struct{}
}

func (query) event() {}

// Coordinator is the single worker that owns all room state. Every event is
// handled to completion before the next one starts.
type Coordinator struct {
	events    chan Event
	transport Transport
	done      chan struct{}
}

func NewCoordinator(transport Transport, buffer int) *Coordinator {
	return &Coordinator{
		events:    make(chan Event, buffer),
		transport: transport,
		done:      make(chan struct{}),
	}
}

// Post enqueues ev. It returns false once the coordinator has stopped.
func (c *Coordinator) Post(ev Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.events <- ev:
		return true
	case <-c.done:
		return false
	}
}

// Do runs fn on the coordinator goroutine and waits for it to finish.
func (c *Coordinator) Do(ctx context.Context, fn func()) error {
	q := query{fn: fn, done: make(chan struct{})}

	select {
	case c.events <- q:
	case <-c.done:
		return ErrCoordinatorStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-q.done:
		return nil
	case <-c.done:
		return ErrCoordinatorStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes events until ctx is cancelled.
func (c *Coordinator) Run(ctx context.Context, h Handler) {
	defer close(c.done)
	log.Info().Msg("Coordinator started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Coordinator stopped")
			return
		case ev := <-c.events:
			if q, ok := ev.(query); ok {
				q.fn()
				close(q.done)
				continue
			}
			c.deliver(h.Handle(ev))
		}
	}
}

// Done is closed when Run returns.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

func (c *Coordinator) deliver(out []Outbound) {
	for _, o := range out {
		data, err := json.Marshal(o.Message)
		if err != nil {
			log.Error().Err(err).Str("type", o.Message.Type).Msg("Failed to marshal message")
			continue
		}
		for _, connID := range o.To {
			c.transport.Send(connID, data)
		}
	}
}
