package hfsm

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/comalice/hfsm/internal/core"
	"github.com/comalice/hfsm/internal/production"
)

// Machine is a compiled hierarchical state machine. Its current state is the
// only thing that changes after New returns.
type Machine[S, K comparable] struct {
	name      string
	program   *core.Program[S, K]
	ctx       *core.MachineContext[S, K]
	logger    *slog.Logger
	observers []Observer
	clock     func() time.Time
	seq       uint64
}

// New declares the machine with build, compiles it and enters initial by
// running the entry hooks of initial and its ancestors, outermost first.
//
// It fails with a *DuplicateStateError when a key is declared twice, an
// *UnknownTargetError when an edge targets an undeclared state and an
// *UnknownStateError when initial is undeclared. No hook runs on failure.
func New[S, K comparable](initial S, build func(*Builder[S, K]), opts ...Option) (*Machine[S, K], error) {
	cfg := newConfig(opts)

	b := newBuilder[S, K]()
	if build != nil {
		build(b)
	}

	p, err := core.Compile(b.tree, initial)
	if err != nil {
		return nil, fmt.Errorf("compile machine: %w", err)
	}

	m := &Machine[S, K]{
		name:      cfg.name,
		program:   p,
		ctx:       core.NewMachineContext(p.Initial, p.Transitions, cfg.logger.With("machine", cfg.name)),
		logger:    cfg.logger,
		observers: slices.Clone(cfg.observers),
		clock:     cfg.clock,
	}
	for _, j := range cfg.journals {
		m.observers = append(m.observers, journalObserver{journal: j, logger: cfg.logger})
	}

	transitions := 0
	for _, list := range p.Transitions {
		transitions += len(list)
	}
	m.logger.Debug("machine compiled", "machine", m.name, "states", b.tree.Len(), "transitions", transitions, "initial", initial)

	for _, h := range p.InitialEntry {
		h()
	}
	return m, nil
}

// Name returns the machine name set with WithName.
func (m *Machine[S, K]) Name() string {
	return m.name
}

// Current returns the current state.
func (m *Machine[S, K]) Current() S {
	return m.ctx.Current()
}

// Dispatch runs at most one transition for evt and returns the resulting
// state. The first edge of the current state whose kind matches and whose
// guard accepts wins; its action runs, then the exit hooks innermost first,
// then the entry hooks outermost first. Without a match nothing runs and the
// current state is returned.
//
// Dispatch panics with ErrReentrantDispatch when called from a hook of the
// same machine.
func (m *Machine[S, K]) Dispatch(evt Event[K]) S {
	from := m.ctx.Current()
	to, t := m.ctx.Dispatch(evt)
	m.seq++
	if len(m.observers) == 0 {
		return to
	}

	step := Step{
		Machine: m.name,
		Seq:     m.seq,
		Event:   fmt.Sprint(evt.Kind()),
		From:    fmt.Sprint(from),
		To:      fmt.Sprint(to),
		Matched: t != nil,
		At:      m.clock(),
	}
	if t != nil {
		step.Exits = production.Strings(t.Exits)
		step.Entries = production.Strings(t.Entries)
	}
	for _, o := range m.observers {
		o.Observe(step)
	}
	return to
}

// IsIn reports whether key is the current state or one of its ancestors.
func (m *Machine[S, K]) IsIn(key S) bool {
	return slices.Contains(m.program.Ancestors(m.ctx.Current()), key)
}

// Can reports whether Dispatch(evt) would take a transition. Guards are
// evaluated, hooks are not run.
func (m *Machine[S, K]) Can(evt Event[K]) bool {
	return m.ctx.Select(evt) != nil
}

// TransitionInfo is the compiled form of one edge.
type TransitionInfo[S, K comparable] struct {
	Event   K
	Target  S
	Guarded bool
	// Exits lists the states left, innermost first.
	Exits []S
	// Entries lists the states entered, outermost first.
	Entries []S
}

// Transitions returns the compiled edges of state in declaration order. It
// returns nil for an undeclared state.
func (m *Machine[S, K]) Transitions(state S) []TransitionInfo[S, K] {
	list := m.program.Transitions[state]
	if len(list) == 0 {
		return nil
	}
	out := make([]TransitionInfo[S, K], len(list))
	for i, t := range list {
		out[i] = TransitionInfo[S, K]{
			Event:   t.Event,
			Target:  t.Target,
			Guarded: t.Guard != nil,
			Exits:   slices.Clone(t.Exits),
			Entries: slices.Clone(t.Entries),
		}
	}
	return out
}

// Has reports whether key is a declared state.
func (m *Machine[S, K]) Has(key S) bool {
	return m.program.Has(key)
}

// Describe returns a serializable view of the machine and its current state.
func (m *Machine[S, K]) Describe() Description {
	return production.Describe(m.name, m.program, m.ctx.Current())
}

// String renders the declared states and their edges.
func (m *Machine[S, K]) String() string {
	return production.Text(m.Describe())
}
