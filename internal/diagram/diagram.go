// Package diagram models small directed graphs and renders them as Graphviz
// DOT, optionally shelling out to the dot binary for image output.
package diagram

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Node is a single box in the diagram.
type Node struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// Edge is a directed, optionally labeled transition between two nodes.
type Edge struct {
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Label string `yaml:"label,omitempty"`
}

// Graph is a named directed graph.
type Graph struct {
	Name  string `yaml:"name"`
	Nodes []Node `yaml:"nodes"`
	Edges []Edge `yaml:"edges"`
}

// DefaultBase is the base filename used when no output is specified.
const DefaultBase = "workflow"

// DefaultPipeline returns the built-in documentation pipeline diagram:
// four stages connected by three labeled transitions.
func DefaultPipeline() *Graph {
	return &Graph{
		Name: "docs_pipeline",
		Nodes: []Node{
			{ID: "ingest", Label: "Ingest Sources"},
			{ID: "parse", Label: "Parse & Introspect"},
			{ID: "generate", Label: "Generate Docs"},
			{ID: "publish", Label: "Publish"},
		},
		Edges: []Edge{
			{From: "ingest", To: "parse", Label: "source files"},
			{From: "parse", To: "generate", Label: "doc model"},
			{From: "generate", To: "publish", Label: "artifacts"},
		},
	}
}

// Load reads a graph definition from a YAML file and validates it.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read graph file: %w", err)
	}
	var g Graph
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse graph file: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// Validate checks that node IDs are unique and non-empty and that every edge
// references declared nodes.
func (g *Graph) Validate() error {
	if len(g.Nodes) == 0 {
		return fmt.Errorf("graph has no nodes")
	}

	seen := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node with empty id")
		}
		if seen[n.ID] {
			return fmt.Errorf("duplicate node id: %s", n.ID)
		}
		seen[n.ID] = true
	}

	for _, e := range g.Edges {
		if !seen[e.From] {
			return fmt.Errorf("edge references unknown node: %s", e.From)
		}
		if !seen[e.To] {
			return fmt.Errorf("edge references unknown node: %s", e.To)
		}
	}
	return nil
}

// WriteDOT serializes the graph in Graphviz DOT syntax. Output is
// deterministic: nodes and edges appear in declaration order, attribute keys
// are sorted.
func (g *Graph) WriteDOT(w io.Writer) error {
	name := g.Name
	if name == "" {
		name = "G"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %s {\n", quote(name))
	sb.WriteString("\trankdir=LR;\n")
	sb.WriteString("\tnode [shape=box];\n")

	for _, n := range g.Nodes {
		attrs := map[string]string{}
		if n.Label != "" {
			attrs["label"] = n.Label
		}
		fmt.Fprintf(&sb, "\t%s%s;\n", quote(n.ID), attrString(attrs))
	}
	for _, e := range g.Edges {
		attrs := map[string]string{}
		if e.Label != "" {
			attrs["label"] = e.Label
		}
		fmt.Fprintf(&sb, "\t%s -> %s%s;\n", quote(e.From), quote(e.To), attrString(attrs))
	}
	sb.WriteString("}\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func attrString(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%s", k, quote(attrs[k]))
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
