// Package actor runs a hfsm.Machine on its own goroutine. Every dispatch goes
// through one buffered queue, so the machine is only ever touched by the loop.
package actor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/comalice/hfsm"
)

var (
	// ErrQueueFull is returned by Post when the queue has no room.
	ErrQueueFull = errors.New("event queue full (backpressure)")
	// ErrStopped is returned once the actor's loop has exited.
	ErrStopped = errors.New("actor stopped")
	// ErrPanicked wraps the value recovered from a panicking dispatch.
	ErrPanicked = errors.New("dispatch panicked")
)

// DefaultQueueSize is used when Config.QueueSize is not positive.
const DefaultQueueSize = 1000

// Config configures an Actor.
type Config struct {
	QueueSize int
	Logger    *slog.Logger
}

type result[S comparable] struct {
	state S
	err   error
}

type request[S, K comparable] struct {
	evt   hfsm.Event[K]
	reply chan result[S]
}

// Actor owns a Machine and dispatches queued events in order.
type Actor[S, K comparable] struct {
	m      *hfsm.Machine[S, K]
	events chan request[S, K]
	logger *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
	done    chan struct{}

	stateMu sync.RWMutex
	current S
}

// New wraps m. The caller must not use m directly afterwards.
func New[S, K comparable](m *hfsm.Machine[S, K], cfg Config) *Actor[S, K] {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Actor[S, K]{
		m:       m,
		events:  make(chan request[S, K], cfg.QueueSize),
		logger:  cfg.Logger.With("machine", m.Name()),
		done:    make(chan struct{}),
		current: m.Current(),
	}
}

// Start launches the event loop. It runs until Stop is called or ctx is
// cancelled. Calling Start on a running actor is a no-op.
func (a *Actor[S, K]) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return ErrStopped
	}
	if a.cancel != nil {
		return nil
	}

	ctx, a.cancel = context.WithCancel(ctx)
	go a.loop(ctx)
	a.logger.Debug("actor started")
	return nil
}

// Stop terminates the loop and waits for it to exit. Queued events that were
// not dispatched yet are dropped.
func (a *Actor[S, K]) Stop() error {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		<-a.done
		return nil
	}
	a.stopped = true
	cancel := a.cancel
	a.mu.Unlock()

	if cancel == nil {
		close(a.done)
		return nil
	}
	cancel()
	<-a.done
	a.logger.Debug("actor stopped")
	return nil
}

// Post queues evt without waiting for it to be dispatched.
func (a *Actor[S, K]) Post(evt hfsm.Event[K]) error {
	select {
	case <-a.done:
		return ErrStopped
	default:
	}
	select {
	case a.events <- request[S, K]{evt: evt}:
		return nil
	default:
		a.logger.Warn("event queue full, dropping event", "event", evt.Kind())
		return ErrQueueFull
	}
}

// Send queues evt and waits until it has been dispatched, returning the
// resulting state.
func (a *Actor[S, K]) Send(ctx context.Context, evt hfsm.Event[K]) (S, error) {
	var zero S
	r := request[S, K]{evt: evt, reply: make(chan result[S], 1)}

	if err := a.enqueue(ctx, r); err != nil {
		return zero, err
	}

	select {
	case res := <-r.reply:
		return res.state, res.err
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-a.done:
		select {
		case res := <-r.reply:
			return res.state, res.err
		default:
			return zero, ErrStopped
		}
	}
}

// enqueue waits for room in the queue.
func (a *Actor[S, K]) enqueue(ctx context.Context, r request[S, K]) error {
	select {
	case <-a.done:
		return ErrStopped
	default:
	}
	select {
	case a.events <- r:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-a.done:
		return ErrStopped
	}
}

// Current returns the state after the last completed dispatch.
func (a *Actor[S, K]) Current() S {
	a.stateMu.RLock()
	defer a.stateMu.RUnlock()
	return a.current
}

// Done is closed once the loop has exited.
func (a *Actor[S, K]) Done() <-chan struct{} {
	return a.done
}

func (a *Actor[S, K]) loop(ctx context.Context) {
	defer close(a.done)
	for {
		select {
		case <-ctx.Done():
			return
		case r := <-a.events:
			a.handle(r)
		}
	}
}

func (a *Actor[S, K]) handle(r request[S, K]) {
	res := a.dispatch(r.evt)

	a.stateMu.Lock()
	a.current = a.m.Current()
	a.stateMu.Unlock()

	if r.reply != nil {
		r.reply <- res
	}
}

// dispatch runs one event, turning a panicking hook into an error so the
// loop keeps serving.
func (a *Actor[S, K]) dispatch(evt hfsm.Event[K]) (res result[S]) {
	defer func() {
		if p := recover(); p != nil {
			a.logger.Error("dispatch panicked", "event", evt.Kind(), "panic", p)
			res = result[S]{state: a.m.Current(), err: fmt.Errorf("%w: %v", ErrPanicked, p)}
		}
	}()
	return result[S]{state: a.m.Dispatch(evt)}
}
