// Package testutil provides helpers shared by the test suites of every package.
package testutil

import "sync"

// Recorder collects hook invocations in call order.
type Recorder struct {
	mu    sync.Mutex
	calls []string
}

// Hook returns a procedure that records label each time it runs.
func (r *Recorder) Hook(label string) func() {
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, label)
	}
}

// Calls returns a copy of the labels recorded so far.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Take returns the recorded labels and clears the recorder.
func (r *Recorder) Take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	calls := r.calls
	r.calls = nil
	return calls
}
