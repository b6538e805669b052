package gxl

import (
	xw "github.com/shabbyrobe/xmlwriter"

	"github.com/rohan-flutterint/graphviz/pkg/agraph"
)

func (st *state) writeDocument(root *agraph.Graph) {
	st.out.startDoc()
	st.out.start("gxl", attr("xmlns:xlink", xlinkNS))
	st.writeGraph(root)
	st.out.end()
}

// writeGraph writes g and, recursively, everything it owns. A subgraph is
// wrapped in a node element.
func (st *state) writeGraph(g *agraph.Graph) {
	wrapped := !g.IsRoot()
	if wrapped {
		st.out.start("node", attr("id", st.ids.subgraphNodeID(g.Name())))
	}
	st.writeHeader(g)
	st.writeBody(g)
	st.out.end()
	if wrapped {
		st.out.end()
	}
}

func (st *state) writeHeader(g *agraph.Graph) {
	id := st.ids.mustGraph(g)
	mode := "undirected"
	if g.IsDirected() {
		mode = "directed"
	}
	attrs := []xw.Attr{attr("id", id), attr("edgeids", "true"), attr("edgemode", mode)}
	if v := g.Get(AttrRole); v != "" {
		attrs = append(attrs, attr("role", v))
	}
	if v := g.Get(AttrHypergraph); v != "" {
		attrs = append(attrs, attr("hypergraph", v))
	}
	st.out.start("graph", attrs...)

	if g.Name() != id {
		st.writeString("name", "", g.Name())
	}
	if g.IsStrict() {
		st.writeString("strict", "", "true")
	}
	for _, k := range agraph.Kinds {
		st.writeDict(g.Dict(k))
	}
	st.writeType(g)
	st.stats.Graphs++
}

// writeBody writes child subgraphs, then the nodes not yet written anywhere
// and the edges this scope owns.
func (st *state) writeBody(g *agraph.Graph) {
	for _, s := range g.Subgraphs() {
		st.writeGraph(s)
	}
	nodes, edges := g.Dict(agraph.KindNode), g.Dict(agraph.KindEdge)
	for _, n := range g.Nodes() {
		if !st.nodeWritten[n] {
			st.nodeWritten[n] = true
			st.writeNode(n, nodes)
		}
		for _, e := range g.Out(n) {
			if st.edgeWritten[e] || !owns(g, e) {
				continue
			}
			st.edgeWritten[e] = true
			st.writeEdge(e, edges)
		}
	}
}

func (st *state) writeNode(n *agraph.Node, d *agraph.Dict) {
	id := st.ids.mustNode(n.Name())
	st.out.start("node", attr("id", id))
	st.writeType(n)
	if n.Name() != id {
		st.writeString("name", "", n.Name())
	}
	if !st.attrsWritten[n] {
		st.writeNondefault(n, d)
	}
	st.out.end()
	st.stats.Nodes++
}

func (st *state) writeEdge(e *agraph.Edge, d *agraph.Dict) {
	tail := st.ids.mustNode(e.Tail().Name())
	head := st.ids.mustNode(e.Head().Name())

	attrs := []xw.Attr{attr("from", tail), attr("to", head)}
	explicit, hasID := st.edgeIDs[e]
	if hasID {
		attrs = append(attrs, attr("id", explicit))
	}
	if v := e.Get(AttrFromOrder); v != "" {
		attrs = append(attrs, attr("fromorder", v))
	}
	if v := e.Get(AttrToOrder); v != "" {
		attrs = append(attrs, attr("toorder", v))
	}
	if st.directed {
		attrs = append(attrs, attr("isdirected", "true"))
	} else {
		attrs = append(attrs, attr("isdirected", "false"))
	}
	if !hasID {
		attrs = append(attrs, attr("id", st.ids.edgeID(tail, head)))
	}
	st.out.start("edge", attrs...)

	st.writeType(e)
	st.writePort(e, AttrTailPort)
	st.writePort(e, AttrHeadPort)
	if !st.attrsWritten[e] {
		st.writeNondefault(e, d)
	} else {
		st.writeKey(e)
	}
	st.out.end()
	st.stats.Edges++
}

// writeType writes the external type reference of o, if any.
func (st *state) writeType(o agraph.Object) {
	if v := o.Get(AttrType); v != "" {
		st.out.empty("type", attr("xlink:href", v))
	}
}

func (st *state) writePort(e *agraph.Edge, name string) {
	if v := e.Get(name); v != "" {
		st.writeString(name, "", v)
	}
}

// writeKey restates a named edge's key.
func (st *state) writeKey(e *agraph.Edge) {
	if k := e.Name(); k != "" {
		st.writeString("key", "", k)
	}
}
