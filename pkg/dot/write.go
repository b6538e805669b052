package dot

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rohan-flutterint/graphviz/pkg/agraph"
)

// Marshal renders g back to DOT source. Each scope restates the defaults it
// declares; nodes and edges carry the values that differ from the defaults
// of the scope they are written in. Parsing the result yields an equivalent
// graph.
func Marshal(g *agraph.Graph) []byte {
	var buf bytes.Buffer
	w := &writer{
		buf:   &buf,
		nodes: make(map[*agraph.Node]bool),
		edges: make(map[*agraph.Edge]bool),
	}
	w.graph(g.Root())
	return buf.Bytes()
}

// Write renders g to w. See [Marshal].
func Write(w io.Writer, g *agraph.Graph) error {
	_, err := w.Write(Marshal(g))
	return err
}

type writer struct {
	buf   *bytes.Buffer
	depth int
	nodes map[*agraph.Node]bool
	edges map[*agraph.Edge]bool
}

func (w *writer) line(format string, args ...any) {
	w.buf.WriteString(strings.Repeat("  ", w.depth))
	fmt.Fprintf(w.buf, format, args...)
	w.buf.WriteByte('\n')
}

func (w *writer) graph(g *agraph.Graph) {
	kw, op := "graph", "--"
	if g.IsDirected() {
		kw, op = "digraph", "->"
	}
	if g.IsStrict() {
		kw = "strict " + kw
	}
	w.line("%s %s {", kw, quote(g.Name(), false))
	w.depth++
	w.scope(g, op)
	w.depth--
	w.line("}")
}

func (w *writer) scope(g *agraph.Graph, op string) {
	for _, k := range agraph.Kinds {
		if attrs := defaults(g.Dict(k)); attrs != "" {
			w.line("%s [%s];", k, attrs)
		}
	}
	for _, s := range g.Subgraphs() {
		name := ""
		if !strings.HasPrefix(s.Name(), agraph.AnonymousPrefix) {
			name = quote(s.Name(), false) + " "
		}
		w.line("subgraph %s{", name)
		w.depth++
		w.scope(s, op)
		w.depth--
		w.line("}")
	}

	nodes, edges := g.Dict(agraph.KindNode), g.Dict(agraph.KindEdge)
	for _, n := range g.Nodes() {
		if !w.nodes[n] {
			w.nodes[n] = true
			w.line("%s%s;", quote(n.Name(), false), list(values(n, nodes, "")))
		}
	}
	for _, e := range g.Edges() {
		if w.edges[e] || !owned(g, e) {
			continue
		}
		w.edges[e] = true
		w.line("%s %s %s%s;", quote(e.Tail().Name(), false), op, quote(e.Head().Name(), false),
			list(values(e, edges, e.Name())))
	}
}

func owned(g *agraph.Graph, e *agraph.Edge) bool {
	for _, s := range g.Subgraphs() {
		if s.HasEdge(e) {
			return false
		}
	}
	return true
}

func defaults(d *agraph.Dict) string {
	var parts []string
	for _, sym := range d.Local() {
		if sym.Default == "" && (d.Parent() == nil || d.Parent().Lookup(sym.Name) == nil) {
			continue
		}
		parts = append(parts, sym.Name+"="+quote(sym.Default, sym.HTML))
	}
	return strings.Join(parts, ", ")
}

func values(o agraph.Object, d *agraph.Dict, key string) []string {
	var parts []string
	if key != "" {
		parts = append(parts, AttrKey+"="+quote(key, false))
	}
	for _, sym := range d.All() {
		v := o.Value(sym)
		if v == sym.DefaultValue() {
			continue
		}
		parts = append(parts, sym.Name+"="+quote(v.Str, v.HTML))
	}
	return parts
}

func list(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

func quote(s string, html bool) string {
	if html {
		return "<" + s + ">"
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
