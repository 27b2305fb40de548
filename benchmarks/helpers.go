// Package benchmarks provides generated machines shared by the benchmark suites.
package benchmarks

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/comalice/hfsm"
	"gopkg.in/yaml.v3"
)

// Builder is the builder shape every generator produces.
type Builder = hfsm.Builder[string, string]

// Tick is the only event kind the generated machines react to.
const Tick = "tick"

// TickEvent is a reusable Tick event.
var TickEvent hfsm.Event[string] = hfsm.Tag(Tick)

// GenFlat declares n top-level states cycling s0 -> s1 -> ... -> s0 on Tick.
func GenFlat(n int) func(*Builder) {
	if n < 1 {
		n = 1
	}
	return func(b *Builder) {
		for i := 0; i < n; i++ {
			b.State(fmt.Sprintf("s%d", i)).Edge(Tick, fmt.Sprintf("s%d", (i+1)%n))
		}
	}
}

// GenDeep declares two chains of nested composites, a0..a{depth-1} and
// b0..b{depth-1}, whose innermost leaves flip to each other on Tick. Every
// transition leaves and enters depth+1 states.
func GenDeep(depth int) func(*Builder) {
	if depth < 1 {
		depth = 1
	}
	chain := func(b *Builder, prefix, target string) {
		s := b.State(prefix + "0")
		for i := 1; i < depth; i++ {
			s = s.State(fmt.Sprintf("%s%d", prefix, i))
		}
		s.State(prefix + "leaf").Edge(Tick, target)
	}
	return func(b *Builder) {
		chain(b, "a", "bleaf")
		chain(b, "b", "aleaf")
	}
}

// GenWide declares a main state with n guarded Tick edges of which only the
// last accepts, so every dispatch evaluates n guards.
func GenWide(n int) func(*Builder) {
	if n < 1 {
		n = 1
	}
	return func(b *Builder) {
		main := b.State("main")
		for i := 0; i < n; i++ {
			last := i == n-1
			target := fmt.Sprintf("target%d", i)
			main.Edge(Tick, target, hfsm.When(hfsm.Guard[string](func(hfsm.Event[string]) bool { return last })))
			b.State(target).Edge(Tick, "main")
		}
	}
}

// MustNew builds a machine from a generator with logging disabled.
func MustNew(initial string, build func(*Builder), opts ...hfsm.Option) *hfsm.Machine[string, string] {
	opts = append([]hfsm.Option{hfsm.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	m, err := hfsm.New(initial, build, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// GenDescriptionYAML returns the YAML description of a generated machine
// after one Tick.
func GenDescriptionYAML(numStates int, hierarchical bool) []byte {
	var m *hfsm.Machine[string, string]
	if hierarchical {
		m = MustNew("aleaf", GenDeep(5))
	} else {
		m = MustNew("s0", GenFlat(numStates))
	}
	m.Dispatch(TickEvent)
	data, err := yaml.Marshal(m.Describe())
	if err != nil {
		panic(err)
	}
	return data
}
