// Package production provides the adapters around a compiled machine:
// diagnostic exports, the transition journal and event publishing.
package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Text renders d as an indented listing of states and their outgoing edges.
//
//	StateMachine
//	  NotLoaned
//	    --> Locked : PressRental
//	  OnLoan
//	    Locked
//	      --> Unlocked : PressUnlock
func Text(d Description) string {
	var b strings.Builder
	b.WriteString("StateMachine\n")
	for _, s := range d.States {
		indent := strings.Repeat("  ", s.Depth+1)
		b.WriteString(indent + s.Key + "\n")
		for _, e := range s.Edges {
			fmt.Fprintf(&b, "%s  --> %s : %s\n", indent, e.Target, e.Event)
		}
	}
	return b.String()
}

// ExportDOT generates Graphviz DOT source. Composite states become clusters and
// the current state, if any, is highlighted.
func ExportDOT(d Description) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph StateMachine {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	byKey := make(map[string]StateInfo, len(d.States))
	for _, s := range d.States {
		byKey[s.Key] = s
	}
	active := activeStates(d, byKey)
	for _, s := range d.States {
		if s.Parent == "" {
			renderState(&buf, s, byKey, active, "  ")
		}
	}

	for _, s := range d.States {
		for _, e := range s.Edges {
			label := e.Event
			if e.Guarded {
				label += " [guarded]"
			}
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", s.Key, e.Target, label)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes d as indented JSON.
func ExportJSON(d Description) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// ExportYAML serializes d as YAML.
func ExportYAML(d Description) ([]byte, error) {
	return yaml.Marshal(d)
}

// activeStates returns the current state and all of its ancestors.
func activeStates(d Description, byKey map[string]StateInfo) map[string]bool {
	active := make(map[string]bool)
	for key := d.Current; key != ""; key = byKey[key].Parent {
		if _, ok := byKey[key]; !ok {
			break
		}
		active[key] = true
	}
	return active
}

func renderState(buf *bytes.Buffer, s StateInfo, byKey map[string]StateInfo, active map[string]bool, indent string) {
	if len(s.Children) == 0 {
		style := ""
		if active[s.Key] {
			style = ` style="rounded,filled" fillcolor=lightgreen`
		}
		fmt.Fprintf(buf, "%s%q [label=%q%s];\n", indent, s.Key, s.Key, style)
		return
	}

	fmt.Fprintf(buf, "%ssubgraph %q {\n", indent, "cluster_"+s.Key)
	fmt.Fprintf(buf, "%s  label=%q;\n", indent, s.Key)
	if active[s.Key] {
		fmt.Fprintf(buf, "%s  style=filled; fillcolor=orange;\n", indent)
	}
	fmt.Fprintf(buf, "%s  %q [label=%q shape=ellipse];\n", indent, s.Key, s.Key)
	for _, c := range s.Children {
		renderState(buf, byKey[c], byKey, active, indent+"  ")
	}
	fmt.Fprintf(buf, "%s}\n", indent)
}
