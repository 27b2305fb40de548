package production

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/comalice/hfsm/internal/core"
	"github.com/comalice/hfsm/internal/primitives"
)

// Description is a serializable view of a compiled machine. Keys are rendered
// with fmt.Sprint.
type Description struct {
	Machine string      `json:"machine" yaml:"machine"`
	Version string      `json:"version" yaml:"version"`
	Initial string      `json:"initial" yaml:"initial"`
	Current string      `json:"current,omitempty" yaml:"current,omitempty"`
	States  []StateInfo `json:"states" yaml:"states"`
}

// StateInfo describes one declared state. States appear in declaration order,
// parents before their children.
type StateInfo struct {
	Key      string     `json:"key" yaml:"key"`
	Parent   string     `json:"parent,omitempty" yaml:"parent,omitempty"`
	Depth    int        `json:"depth" yaml:"depth"`
	Children []string   `json:"children,omitempty" yaml:"children,omitempty"`
	Edges    []EdgeInfo `json:"edges,omitempty" yaml:"edges,omitempty"`
}

// EdgeInfo describes one compiled transition.
type EdgeInfo struct {
	Event   string   `json:"event" yaml:"event"`
	Target  string   `json:"target" yaml:"target"`
	Guarded bool     `json:"guarded,omitempty" yaml:"guarded,omitempty"`
	Exits   []string `json:"exits,omitempty" yaml:"exits,omitempty"`
	Entries []string `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// Describe renders p. current is recorded as the active state.
func Describe[S, K comparable](name string, p *core.Program[S, K], current S) Description {
	tree := p.Tree()
	d := Description{
		Machine: name,
		Initial: fmt.Sprint(p.Initial),
		Current: fmt.Sprint(current),
	}
	tree.Walk(func(h primitives.Handle, n *primitives.Node[S, K]) {
		info := StateInfo{
			Key:   fmt.Sprint(n.Key),
			Depth: len(p.Ancestors(n.Key)) - 1,
		}
		if n.Parent != primitives.RootHandle {
			info.Parent = fmt.Sprint(tree.Node(n.Parent).Key)
		}
		for _, c := range n.Children {
			info.Children = append(info.Children, fmt.Sprint(tree.Node(c).Key))
		}
		for _, t := range p.Transitions[n.Key] {
			info.Edges = append(info.Edges, EdgeInfo{
				Event:   fmt.Sprint(t.Event),
				Target:  fmt.Sprint(t.Target),
				Guarded: t.Guard != nil,
				Exits:   Strings(t.Exits),
				Entries: Strings(t.Entries),
			})
		}
		d.States = append(d.States, info)
	})
	d.Version = Fingerprint(d)
	return d
}

// Fingerprint returns a short hash of the machine structure. The machine name
// and current state do not contribute, so every instance built from the same
// declarations shares one fingerprint.
func Fingerprint(d Description) string {
	d.Machine, d.Version, d.Current = "", "", ""
	data, err := json.Marshal(d)
	if err != nil {
		return "invalid"
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:8])
}

// Strings renders keys with fmt.Sprint. It returns nil for an empty slice.
func Strings[S any](keys []S) []string {
	if len(keys) == 0 {
		return nil
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = fmt.Sprint(k)
	}
	return out
}
