package agraph

import "fmt"

// Object is any attributed element of a graph: a Graph, Node or Edge.
type Object interface {
	Kind() Kind
	Name() string
	Root() *Graph

	// Get returns the string value of the named attribute, or "" when the
	// attribute is not declared.
	Get(name string) string
	// Value returns the value stored in sym's slot.
	Value(sym *Symbol) Value
	// Set assigns a plain string value, declaring the attribute at the
	// root with an empty default when needed.
	Set(name, value string)
	// SetHTML assigns an HTML-like string value.
	SetHTML(name, value string)

	record() *record
}

type record struct {
	vals []Value
}

func (r *record) get(id int) Value {
	if id < 0 || id >= len(r.vals) {
		panic(fmt.Sprintf("agraph: attribute slot %d has no value", id))
	}
	return r.vals[id]
}

func (r *record) put(id int, v Value) {
	for len(r.vals) <= id {
		r.vals = append(r.vals, Value{})
	}
	r.vals[id] = v
}

func getAttr(o Object, name string) string {
	sym := o.Root().dicts[o.Kind()].LookupLocal(name)
	if sym == nil {
		return ""
	}
	return o.record().get(sym.ID).Str
}

func setAttr(o Object, name string, v Value) {
	root := o.Root()
	sym := root.dicts[o.Kind()].LookupLocal(name)
	if sym == nil {
		sym = root.declare(o.Kind(), name, Value{})
	}
	o.record().put(sym.ID, v)
}

// Node is a vertex of the root graph.
type Node struct {
	name string
	seq  int
	root *Graph
	rec  record
}

// Kind returns KindNode.
func (n *Node) Kind() Kind { return KindNode }

// Name returns the node name, unique within the root graph.
func (n *Node) Name() string { return n.name }

// Seq returns the creation sequence number of the node.
func (n *Node) Seq() int { return n.seq }

// Root returns the owning root graph.
func (n *Node) Root() *Graph { return n.root }

func (n *Node) Get(name string) string     { return getAttr(n, name) }
func (n *Node) Value(sym *Symbol) Value    { return n.rec.get(sym.ID) }
func (n *Node) Set(name, value string)     { setAttr(n, name, Value{Str: value}) }
func (n *Node) SetHTML(name, value string) { setAttr(n, name, Value{Str: value, HTML: true}) }
func (n *Node) record() *record            { return &n.rec }

// Edge connects a tail node to a head node. Its name is the edge key and may
// be empty.
type Edge struct {
	key  string
	seq  int
	tail *Node
	head *Node
	rec  record
}

// Kind returns KindEdge.
func (e *Edge) Kind() Kind { return KindEdge }

// Name returns the edge key.
func (e *Edge) Name() string { return e.key }

// Seq returns the creation sequence number of the edge.
func (e *Edge) Seq() int { return e.seq }

// Tail returns the source node.
func (e *Edge) Tail() *Node { return e.tail }

// Head returns the target node.
func (e *Edge) Head() *Node { return e.head }

// Root returns the owning root graph.
func (e *Edge) Root() *Graph { return e.tail.root }

func (e *Edge) Get(name string) string     { return getAttr(e, name) }
func (e *Edge) Value(sym *Symbol) Value    { return e.rec.get(sym.ID) }
func (e *Edge) Set(name, value string)     { setAttr(e, name, Value{Str: value}) }
func (e *Edge) SetHTML(name, value string) { setAttr(e, name, Value{Str: value, HTML: true}) }
func (e *Edge) record() *record            { return &e.rec }

var (
	_ Object = (*Graph)(nil)
	_ Object = (*Node)(nil)
	_ Object = (*Edge)(nil)
)
