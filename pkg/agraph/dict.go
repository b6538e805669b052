package agraph

import (
	"slices"
	"strings"
)

// Kind identifies the object class a symbol or dictionary applies to.
type Kind uint8

const (
	KindGraph Kind = iota
	KindNode
	KindEdge
)

var kindNames = [...]string{
	KindGraph: "graph",
	KindNode:  "node",
	KindEdge:  "edge",
}

// String returns "graph", "node" or "edge".
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds lists every object kind in declaration order.
var Kinds = [...]Kind{KindGraph, KindNode, KindEdge}

// Value is a single attribute value. HTML marks an HTML-like string
// (written as <...> in DOT).
type Value struct {
	Str  string
	HTML bool
}

// Symbol is an attribute declaration in one dictionary scope.
type Symbol struct {
	Name    string
	Default string
	HTML    bool // Default is an HTML-like string
	ID      int  // slot index, shared by every scope of the root graph
	Kind    Kind
}

// DefaultValue returns the symbol default as a Value.
func (s *Symbol) DefaultValue() Value {
	return Value{Str: s.Default, HTML: s.HTML}
}

// Dict is the attribute dictionary of one kind in one graph scope.
type Dict struct {
	kind   Kind
	parent *Dict
	syms   map[string]*Symbol
}

func newDict(kind Kind, parent *Dict) *Dict {
	return &Dict{kind: kind, parent: parent, syms: make(map[string]*Symbol)}
}

// Kind returns the object kind of the dictionary.
func (d *Dict) Kind() Kind { return d.kind }

// Parent returns the enclosing scope's dictionary, or nil at the root.
func (d *Dict) Parent() *Dict { return d.parent }

// LookupLocal returns the symbol declared in this scope only.
func (d *Dict) LookupLocal(name string) *Symbol {
	return d.syms[name]
}

// Lookup resolves name through this scope and then its ancestors.
func (d *Dict) Lookup(name string) *Symbol {
	for x := d; x != nil; x = x.parent {
		if s, ok := x.syms[name]; ok {
			return s
		}
	}
	return nil
}

// Local returns the symbols declared in this scope, sorted by name.
func (d *Dict) Local() []*Symbol {
	out := make([]*Symbol, 0, len(d.syms))
	for _, s := range d.syms {
		out = append(out, s)
	}
	sortSymbols(out)
	return out
}

// All returns every symbol visible from this scope, sorted by name. A local
// declaration shadows the same name in an ancestor.
func (d *Dict) All() []*Symbol {
	seen := make(map[string]bool)
	var out []*Symbol
	for x := d; x != nil; x = x.parent {
		for name, s := range x.syms {
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, s)
		}
	}
	sortSymbols(out)
	return out
}

// Len returns the number of locally declared symbols.
func (d *Dict) Len() int { return len(d.syms) }

func sortSymbols(syms []*Symbol) {
	slices.SortFunc(syms, func(a, b *Symbol) int {
		return strings.Compare(a.Name, b.Name)
	})
}
