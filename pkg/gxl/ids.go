package gxl

import (
	"fmt"
	"strconv"

	"github.com/rohan-flutterint/graphviz/pkg/agraph"
)

// allocator hands out document-unique identifiers. It lives for one
// conversion.
type allocator struct {
	used   map[string]bool
	next   map[string]int // synthesis counter per prefix
	graphs map[*agraph.Graph]string
	nodes  map[string]string
}

func newAllocator() *allocator {
	return &allocator{
		used:   make(map[string]bool),
		next:   make(map[string]int),
		graphs: make(map[*agraph.Graph]string),
		nodes:  make(map[string]string),
	}
}

// reserve returns candidate when it is legal and unused, otherwise a fresh
// prefix-numbered identifier. The result is reserved either way.
func (a *allocator) reserve(candidate, prefix string) string {
	if LegalName(candidate) && !a.used[candidate] {
		a.used[candidate] = true
		return candidate
	}
	return a.synthesize(prefix)
}

func (a *allocator) synthesize(prefix string) string {
	for {
		id := prefix + strconv.Itoa(a.next[prefix])
		a.next[prefix]++
		if !a.used[id] {
			a.used[id] = true
			return id
		}
	}
}

// mapGraph and mapNode look up the identifier assigned to a graph or node.
// Graph names are not unique across scopes, so graphs are keyed by identity.
func (a *allocator) mapGraph(g *agraph.Graph) (string, bool) {
	id, ok := a.graphs[g]
	return id, ok
}

func (a *allocator) mapNode(name string) (string, bool) {
	id, ok := a.nodes[name]
	return id, ok
}

func (a *allocator) mustGraph(g *agraph.Graph) string {
	id, ok := a.graphs[g]
	if !ok {
		panic(fmt.Sprintf("gxl: graph %q was not discovered", g.Name()))
	}
	return id
}

func (a *allocator) mustNode(name string) string {
	id, ok := a.nodes[name]
	if !ok {
		panic(fmt.Sprintf("gxl: node %q was not discovered", name))
	}
	return id
}

// recordEdgeID reserves an explicit edge identifier. It reports false when
// the identifier is illegal or already taken; the edge then gets a
// synthesized identifier instead.
func (a *allocator) recordEdgeID(id string) bool {
	if !LegalName(id) || a.used[id] {
		return false
	}
	a.used[id] = true
	return true
}

// edgeID synthesizes "tail--head", disambiguated with ":n" on collision.
func (a *allocator) edgeID(tail, head string) string {
	base := tail + edgeOp + head
	id := base
	for n := 1; a.used[id]; n++ {
		id = base + ":" + strconv.Itoa(n)
	}
	a.used[id] = true
	return id
}

// subgraphNodeID allocates the identifier of the node element that wraps a
// subgraph.
func (a *allocator) subgraphNodeID(name string) string {
	return a.reserve(nodePrefix+name, nodePrefix)
}
