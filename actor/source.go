package actor

import (
	"context"

	"github.com/comalice/hfsm"
)

// EventSource supplies events from outside the program, such as a button
// driver or a message subscription.
type EventSource[K comparable] interface {
	Events() <-chan hfsm.Event[K]
}

// ChannelSource is an EventSource backed by a Go channel.
type ChannelSource[K comparable] chan hfsm.Event[K]

func (s ChannelSource[K]) Events() <-chan hfsm.Event[K] {
	return s
}

// Feed queues every event from src, in order, until the source channel is
// closed. Unlike Post it waits for room in the queue. It returns nil once the
// source is drained, ctx.Err() on cancellation and ErrStopped when the actor
// stops first.
func (a *Actor[S, K]) Feed(ctx context.Context, src EventSource[K]) error {
	events := src.Events()
	for {
		select {
		case evt, ok := <-events:
			if !ok {
				return nil
			}
			if err := a.enqueue(ctx, request[S, K]{evt: evt}); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		case <-a.done:
			return ErrStopped
		}
	}
}
