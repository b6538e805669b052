package agraph

import (
	"slices"
	"strconv"
)

// Desc describes the kind of a root graph.
type Desc struct {
	Directed bool
	Strict   bool
}

// Common graph descriptions.
var (
	Directed         = Desc{Directed: true}
	StrictDirected   = Desc{Directed: true, Strict: true}
	Undirected       = Desc{}
	StrictUndirected = Desc{Strict: true}
)

// AnonymousPrefix starts the generated name of an anonymous subgraph.
const AnonymousPrefix = "%"

// Graph is a root graph or one of its subgraphs.
type Graph struct {
	name   string
	desc   Desc
	root   *Graph
	parent *Graph
	rec    record
	dicts  [len(Kinds)]*Dict

	subgs   []*Graph
	subgIdx map[string]*Graph

	nodes   []*Node
	nodeSet map[*Node]struct{}
	out     map[*Node][]*Edge
	edgeSet map[*Edge]struct{}

	shared *shared // root only
}

type shared struct {
	nodes    map[string]*Node
	allNodes []*Node
	allEdges []*Edge
	graphs   []*Graph
	slots    [len(Kinds)][]*Symbol
	nextNode int
	nextEdge int
	nextAnon int
}

// New creates an empty root graph.
func New(name string, desc Desc) *Graph {
	g := newGraph(name, nil)
	g.desc = desc
	g.root = g
	g.shared = &shared{nodes: make(map[string]*Node)}
	if name == "" {
		g.name = g.shared.anonName()
	}
	g.shared.graphs = append(g.shared.graphs, g)
	return g
}

func newGraph(name string, parent *Graph) *Graph {
	g := &Graph{
		name:    name,
		parent:  parent,
		subgIdx: make(map[string]*Graph),
		nodeSet: make(map[*Node]struct{}),
		out:     make(map[*Node][]*Edge),
		edgeSet: make(map[*Edge]struct{}),
	}
	for _, k := range Kinds {
		var pd *Dict
		if parent != nil {
			pd = parent.dicts[k]
		}
		g.dicts[k] = newDict(k, pd)
	}
	return g
}

func (s *shared) anonName() string {
	s.nextAnon++
	return AnonymousPrefix + strconv.Itoa(s.nextAnon)
}

// Kind returns KindGraph.
func (g *Graph) Kind() Kind { return KindGraph }

// Name returns the graph name. Anonymous graphs get a generated name that
// starts with AnonymousPrefix.
func (g *Graph) Name() string { return g.name }

// Root returns the root graph.
func (g *Graph) Root() *Graph { return g.root }

// Parent returns the enclosing graph, or nil for the root.
func (g *Graph) Parent() *Graph { return g.parent }

// IsRoot reports whether g is the root graph.
func (g *Graph) IsRoot() bool { return g.parent == nil }

// IsDirected reports whether the root graph is directed.
func (g *Graph) IsDirected() bool { return g.root.desc.Directed }

// IsStrict reports whether the root graph is strict.
func (g *Graph) IsStrict() bool { return g.root.desc.Strict }

// Dict returns the attribute dictionary of kind k in this scope.
func (g *Graph) Dict(k Kind) *Dict { return g.dicts[k] }

func (g *Graph) Get(name string) string     { return getAttr(g, name) }
func (g *Graph) Value(sym *Symbol) Value    { return g.rec.get(sym.ID) }
func (g *Graph) Set(name, value string)     { setAttr(g, name, Value{Str: value}) }
func (g *Graph) SetHTML(name, value string) { setAttr(g, name, Value{Str: value, HTML: true}) }
func (g *Graph) record() *record            { return &g.rec }

// Declare declares attribute name for objects of kind k in this scope with
// the given default, and returns the scope's symbol.
//
// At the root the default is set or replaced. In a subgraph the symbol is
// created at the root first (with an empty default) when unknown, and then
// overridden locally. Declaring a graph attribute also assigns the value to
// the declaring graph itself.
func (g *Graph) Declare(k Kind, name, def string) *Symbol {
	return g.declare(k, name, Value{Str: def})
}

// DeclareHTML is like Declare with an HTML-like string default.
func (g *Graph) DeclareHTML(k Kind, name, def string) *Symbol {
	return g.declare(k, name, Value{Str: def, HTML: true})
}

func (g *Graph) declare(k Kind, name string, def Value) *Symbol {
	root := g.root
	rs := root.dicts[k].LookupLocal(name)
	if rs == nil {
		rs = &Symbol{Name: name, ID: len(root.shared.slots[k]), Kind: k}
		if g == root {
			rs.Default, rs.HTML = def.Str, def.HTML
		}
		root.dicts[k].syms[name] = rs
		root.shared.slots[k] = append(root.shared.slots[k], rs)
		root.shared.backfill(k, rs)
	}

	sym := rs
	if g == root {
		rs.Default, rs.HTML = def.Str, def.HTML
	} else {
		sym = g.dicts[k].LookupLocal(name)
		if sym == nil {
			sym = &Symbol{Name: name, ID: rs.ID, Kind: k}
			g.dicts[k].syms[name] = sym
		}
		sym.Default, sym.HTML = def.Str, def.HTML
	}

	if k == KindGraph {
		g.rec.put(sym.ID, def)
	}
	return sym
}

// backfill gives every existing object of kind k the root default of sym.
func (s *shared) backfill(k Kind, sym *Symbol) {
	v := sym.DefaultValue()
	switch k {
	case KindGraph:
		for _, g := range s.graphs {
			g.rec.put(sym.ID, v)
		}
	case KindNode:
		for _, n := range s.allNodes {
			n.rec.put(sym.ID, v)
		}
	case KindEdge:
		for _, e := range s.allEdges {
			e.rec.put(sym.ID, v)
		}
	}
}

// initRecord builds the value record of a new object of kind k created in
// scope g, using the defaults visible from g.
func (g *Graph) initRecord(k Kind) record {
	slots := g.root.shared.slots[k]
	rec := record{vals: make([]Value, len(slots))}
	for i, rs := range slots {
		if sym := g.dicts[k].Lookup(rs.Name); sym != nil {
			rec.vals[i] = sym.DefaultValue()
		}
	}
	return rec
}

// Subgraph returns the child subgraph with the given name, creating it when
// missing. An empty name creates a new anonymous subgraph.
func (g *Graph) Subgraph(name string) *Graph {
	if name != "" {
		if s, ok := g.subgIdx[name]; ok {
			return s
		}
	} else {
		name = g.root.shared.anonName()
	}
	s := newGraph(name, g)
	s.root = g.root
	s.rec = g.initRecord(KindGraph)
	g.subgs = append(g.subgs, s)
	g.subgIdx[name] = s
	g.root.shared.graphs = append(g.root.shared.graphs, s)
	return s
}

// Subgraphs returns the child subgraphs in creation order. The slice must
// not be modified.
func (g *Graph) Subgraphs() []*Graph { return g.subgs }

// FindSubgraph returns the direct child subgraph with the given name.
func (g *Graph) FindSubgraph(name string) *Graph { return g.subgIdx[name] }

// Node returns the node with the given name, creating it in this scope when
// it does not exist yet. An existing node is added to this scope and its
// ancestors.
func (g *Graph) Node(name string) *Node {
	sh := g.root.shared
	n, ok := sh.nodes[name]
	if !ok {
		sh.nextNode++
		n = &Node{name: name, seq: sh.nextNode, root: g.root, rec: g.initRecord(KindNode)}
		sh.nodes[name] = n
		sh.allNodes = append(sh.allNodes, n)
	}
	g.addNode(n)
	return n
}

// FindNode returns the named node of the root graph, or nil.
func (g *Graph) FindNode(name string) *Node { return g.root.shared.nodes[name] }

func (g *Graph) addNode(n *Node) {
	for x := g; x != nil; x = x.parent {
		if _, ok := x.nodeSet[n]; ok {
			continue
		}
		x.nodeSet[n] = struct{}{}
		i, _ := slices.BinarySearchFunc(x.nodes, n.seq, func(m *Node, seq int) int { return m.seq - seq })
		x.nodes = slices.Insert(x.nodes, i, n)
	}
}

// Nodes returns the member nodes ordered by creation sequence. The slice
// must not be modified.
func (g *Graph) Nodes() []*Node { return g.nodes }

// HasNode reports whether n is a member of this scope.
func (g *Graph) HasNode(n *Node) bool {
	_, ok := g.nodeSet[n]
	return ok
}

// NodeCount returns the number of member nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Edge returns an edge from tail to head, creating it in this scope when
// needed. An existing edge with the same endpoints and key is reused; strict
// graphs reuse any edge between the endpoints (in either orientation when
// undirected). Both endpoints become members of this scope.
func (g *Graph) Edge(tail, head *Node, key string) *Edge {
	g.addNode(tail)
	g.addNode(head)

	e := g.root.findEdge(tail, head, key)
	if e == nil {
		sh := g.root.shared
		sh.nextEdge++
		e = &Edge{key: key, seq: sh.nextEdge, tail: tail, head: head, rec: g.initRecord(KindEdge)}
		sh.allEdges = append(sh.allEdges, e)
	}
	g.addEdge(e)
	return e
}

func (g *Graph) findEdge(tail, head *Node, key string) *Edge {
	strict := g.desc.Strict
	match := func(e *Edge) bool {
		if strict {
			return true
		}
		return key != "" && e.key == key
	}
	for _, e := range g.out[tail] {
		if e.head == head && match(e) {
			return e
		}
	}
	if !g.desc.Directed && tail != head {
		for _, e := range g.out[head] {
			if e.head == tail && match(e) {
				return e
			}
		}
	}
	return nil
}

func (g *Graph) addEdge(e *Edge) {
	for x := g; x != nil; x = x.parent {
		if _, ok := x.edgeSet[e]; ok {
			continue
		}
		x.edgeSet[e] = struct{}{}
		out := x.out[e.tail]
		i, _ := slices.BinarySearchFunc(out, e.seq, func(f *Edge, seq int) int { return f.seq - seq })
		x.out[e.tail] = slices.Insert(out, i, e)
	}
}

// Out returns the out-edges of n that are members of this scope, ordered by
// creation sequence. The slice must not be modified.
func (g *Graph) Out(n *Node) []*Edge { return g.out[n] }

// HasEdge reports whether e is a member of this scope.
func (g *Graph) HasEdge(e *Edge) bool {
	_, ok := g.edgeSet[e]
	return ok
}

// Edges returns the member edges grouped by tail in node order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, 0, len(g.edgeSet))
	for _, n := range g.nodes {
		out = append(out, g.out[n]...)
	}
	return out
}

// EdgeCount returns the number of member edges.
func (g *Graph) EdgeCount() int { return len(g.edgeSet) }
