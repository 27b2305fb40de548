package hfsm

import (
	"log/slog"
	"time"

	"github.com/comalice/hfsm/internal/production"
)

// Option configures a Machine.
type Option func(*config)

type config struct {
	name      string
	logger    *slog.Logger
	observers []Observer
	journals  []production.Journal
	clock     func() time.Time
}

func newConfig(opts []Option) config {
	c := config{
		name:  "machine",
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// WithLogger sets the logger used for dispatch diagnostics. Defaults to
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithName names the machine in logs, steps, journals and descriptions.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithObserver registers an observer notified after every dispatch.
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.observers = append(c.observers, o)
	}
}

// WithJournal appends every dispatch to j. Append failures are logged and do
// not affect the dispatch.
func WithJournal(j Journal) Option {
	return func(c *config) {
		c.journals = append(c.journals, j)
	}
}

// WithClock sets the time source for step timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.clock = now
	}
}
