package production

import "context"

// ChannelPublisher forwards entries to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	ch chan<- Entry
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- Entry) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

// Publish sends e if the channel has room. It reports whether e was delivered.
func (p *ChannelPublisher) Publish(ctx context.Context, e Entry) (bool, error) {
	select {
	case p.ch <- e:
		return true, nil
	case <-ctx.Done():
		return false, ctx.Err()
	default:
		return false, nil
	}
}

// Observe publishes e, dropping it when the channel is full.
func (p *ChannelPublisher) Observe(e Entry) {
	p.Publish(context.Background(), e)
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
