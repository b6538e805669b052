package gxl

import "github.com/rohan-flutterint/graphviz/pkg/agraph"

// discover walks the hierarchy in emission order and assigns identifiers to
// every graph and node, and reserves explicit edge identifiers. It writes
// nothing.
func (st *state) discover(g *agraph.Graph) {
	st.discoverGraph(g)
	st.discoverBody(g)
}

func (st *state) discoverGraph(g *agraph.Graph) {
	if _, ok := st.ids.mapGraph(g); ok {
		return
	}
	st.ids.graphs[g] = st.ids.reserve(candidate(g), graphPrefix)
}

func (st *state) discoverBody(g *agraph.Graph) {
	for _, s := range g.Subgraphs() {
		st.discoverGraph(s)
		st.discoverBody(s)
	}
	for _, n := range g.Nodes() {
		if _, ok := st.ids.mapNode(n.Name()); !ok {
			st.ids.nodes[n.Name()] = st.ids.reserve(candidate(n), nodePrefix)
		}
		for _, e := range g.Out(n) {
			if st.edgeSeen[e] || !owns(g, e) {
				continue
			}
			st.edgeSeen[e] = true
			if id := e.Get(AttrID); id != "" && st.ids.recordEdgeID(id) {
				st.edgeIDs[e] = id
			}
		}
	}
}

// candidate is the preferred identifier of a graph or node: its explicit
// _gxl_id, or its name.
func candidate(o agraph.Object) string {
	if id := o.Get(AttrID); id != "" {
		return id
	}
	return o.Name()
}
