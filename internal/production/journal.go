package production

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrJournalClosed is returned by journals after Close.
var ErrJournalClosed = errors.New("journal closed")

// Entry records one dispatch. Unmatched dispatches are recorded with
// Matched false and From equal to To.
type Entry struct {
	Machine string    `json:"machine" yaml:"machine"`
	Seq     uint64    `json:"seq" yaml:"seq"`
	Event   string    `json:"event" yaml:"event"`
	From    string    `json:"from" yaml:"from"`
	To      string    `json:"to" yaml:"to"`
	Exits   []string  `json:"exits,omitempty" yaml:"exits,omitempty"`
	Entries []string  `json:"entries,omitempty" yaml:"entries,omitempty"`
	Matched bool      `json:"matched" yaml:"matched"`
	At      time.Time `json:"at" yaml:"at"`
}

// Journal is an append-only audit trail of dispatches, keyed by machine name.
// It is never read back into a machine.
type Journal interface {
	// Append stores e after every entry previously appended for e.Machine.
	Append(ctx context.Context, e Entry) error

	// Entries returns the entries of machine in append order. An unknown
	// machine has no entries.
	Entries(ctx context.Context, machine string) ([]Entry, error)

	Close() error
}

// MemoryJournal keeps entries in process memory.
type MemoryJournal struct {
	mu      sync.RWMutex
	entries map[string][]Entry
	closed  bool
}

var _ Journal = (*MemoryJournal)(nil)

func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{entries: make(map[string][]Entry)}
}

func (j *MemoryJournal) Append(_ context.Context, e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrJournalClosed
	}
	j.entries[e.Machine] = append(j.entries[e.Machine], e)
	return nil
}

func (j *MemoryJournal) Entries(_ context.Context, machine string) ([]Entry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return nil, ErrJournalClosed
	}
	return append([]Entry(nil), j.entries[machine]...), nil
}

func (j *MemoryJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.closed = true
	return nil
}
