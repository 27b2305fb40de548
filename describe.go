package hfsm

import "github.com/comalice/hfsm/internal/production"

type (
	// Description is a serializable view of a machine.
	Description = production.Description
	StateInfo   = production.StateInfo
	EdgeInfo    = production.EdgeInfo
)

// Text renders d as an indented listing of states and their edges.
func Text(d Description) string {
	return production.Text(d)
}

// ExportDOT renders d as Graphviz DOT source.
func ExportDOT(d Description) string {
	return production.ExportDOT(d)
}

// ExportJSON serializes d as indented JSON.
func ExportJSON(d Description) ([]byte, error) {
	return production.ExportJSON(d)
}

// ExportYAML serializes d as YAML.
func ExportYAML(d Description) ([]byte, error) {
	return production.ExportYAML(d)
}
