package hfsm

import "sync"

// Synchronized guards a Machine with a mutex so several goroutines can
// dispatch. Each dispatch, including its hooks and observers, runs under the
// lock; hooks must not use the wrapper either.
type Synchronized[S, K comparable] struct {
	mu sync.Mutex
	m  *Machine[S, K]
}

// Synchronize wraps m. m must not be used directly afterwards.
func Synchronize[S, K comparable](m *Machine[S, K]) *Synchronized[S, K] {
	return &Synchronized[S, K]{m: m}
}

func (s *Synchronized[S, K]) Dispatch(evt Event[K]) S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Dispatch(evt)
}

func (s *Synchronized[S, K]) Current() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Current()
}

func (s *Synchronized[S, K]) IsIn(key S) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.IsIn(key)
}

func (s *Synchronized[S, K]) Can(evt Event[K]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Can(evt)
}

func (s *Synchronized[S, K]) Describe() Description {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Describe()
}
