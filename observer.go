package hfsm

import (
	"context"
	"log/slog"

	"github.com/comalice/hfsm/internal/production"
)

// Step records one dispatch. Keys are rendered with fmt.Sprint.
type Step = production.Entry

// Observer is notified after every dispatch, matched or not, once the state
// has been written. Observers run on the dispatching goroutine and must not
// call Dispatch on the machine.
type Observer interface {
	Observe(Step)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Step)

func (f ObserverFunc) Observe(s Step) {
	f(s)
}

// Journal is an append-only audit trail of steps.
type Journal = production.Journal

// NewMemoryJournal returns a Journal kept in process memory.
func NewMemoryJournal() *production.MemoryJournal {
	return production.NewMemoryJournal()
}

// NewYAMLJournal returns a Journal writing one multi-document YAML file per
// machine under dir.
func NewYAMLJournal(dir string) (*production.YAMLJournal, error) {
	return production.NewYAMLJournal(dir)
}

// OpenSQLiteJournal returns a Journal stored in the SQLite database at dsn.
func OpenSQLiteJournal(dsn string) (*production.SQLiteJournal, error) {
	return production.OpenSQLiteJournal(dsn)
}

// NewChannelPublisher returns an Observer forwarding steps to ch. Steps are
// dropped while ch is full.
func NewChannelPublisher(ch chan<- Step) *production.ChannelPublisher {
	return production.NewChannelPublisher(ch)
}

type journalObserver struct {
	journal Journal
	logger  *slog.Logger
}

func (o journalObserver) Observe(s Step) {
	if err := o.journal.Append(context.Background(), s); err != nil {
		o.logger.Warn("journal append failed", "machine", s.Machine, "seq", s.Seq, "error", err)
	}
}
