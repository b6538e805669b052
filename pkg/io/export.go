package io

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rohan-flutterint/graphviz/pkg/agraph"
)

// WriteJSON encodes the root graph of g as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(g *agraph.Graph, w io.Writer) error {
	g = g.Root()
	x := &exporter{nodes: make(map[*agraph.Node]bool), edges: make(map[*agraph.Edge]bool)}
	out := graph{
		Directed: g.IsDirected(),
		Strict:   g.IsStrict(),
		scope:    x.scope(g),
	}
	if !anonymous(g) {
		out.Name = g.Name()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *agraph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

type exporter struct {
	nodes map[*agraph.Node]bool
	edges map[*agraph.Edge]bool
}

func (x *exporter) scope(g *agraph.Graph) scope {
	var s scope

	var d defaults
	empty := true
	for _, k := range agraph.Kinds {
		local := g.Dict(k).Local()
		if len(local) == 0 {
			continue
		}
		m := make(map[string]value, len(local))
		for _, sym := range local {
			m[sym.Name] = value(sym.DefaultValue())
		}
		*d.of(k) = m
		empty = false
	}
	if !empty {
		s.Defaults = &d
	}
	s.Attrs = nondefault(g, g.Dict(agraph.KindGraph))

	for _, sub := range g.Subgraphs() {
		js := subgraph{scope: x.scope(sub)}
		if !anonymous(sub) {
			js.Name = sub.Name()
		}
		s.Subgraphs = append(s.Subgraphs, js)
	}

	nd, ed := g.Dict(agraph.KindNode), g.Dict(agraph.KindEdge)
	for _, n := range g.Nodes() {
		jn := node{ID: n.Name()}
		if !x.nodes[n] {
			x.nodes[n] = true
			jn.Attrs = nondefault(n, nd)
		}
		s.Nodes = append(s.Nodes, jn)
	}
	for _, e := range g.Edges() {
		if x.edges[e] || childHolds(g, e) {
			continue
		}
		x.edges[e] = true
		s.Edges = append(s.Edges, edge{
			From:  e.Tail().Name(),
			To:    e.Head().Name(),
			Key:   e.Name(),
			Attrs: nondefault(e, ed),
		})
	}
	return s
}

func nondefault(o agraph.Object, d *agraph.Dict) map[string]value {
	var m map[string]value
	for _, sym := range d.All() {
		v := o.Value(sym)
		if v == sym.DefaultValue() {
			continue
		}
		if m == nil {
			m = make(map[string]value)
		}
		m[sym.Name] = value(v)
	}
	return m
}

func childHolds(g *agraph.Graph, e *agraph.Edge) bool {
	for _, s := range g.Subgraphs() {
		if s.HasEdge(e) {
			return true
		}
	}
	return false
}

func anonymous(g *agraph.Graph) bool {
	return strings.HasPrefix(g.Name(), agraph.AnonymousPrefix)
}
