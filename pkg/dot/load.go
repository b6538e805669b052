package dot

import (
	"bytes"
	"io"
	"os"
	"strings"

	dotparser "gonum.org/v1/gonum/graph/formats/dot"
	"gonum.org/v1/gonum/graph/formats/dot/ast"

	"github.com/rohan-flutterint/graphviz/pkg/agraph"
	"github.com/rohan-flutterint/graphviz/pkg/errors"
)

// Port attributes set from edge endpoints.
const (
	AttrTailPort = "tailport"
	AttrHeadPort = "headport"
	AttrKey      = "key"
)

// Parse reads DOT source and returns its first graph.
func Parse(r io.Reader) (*agraph.Graph, error) {
	gs, err := ParseAll(r)
	if err != nil {
		return nil, err
	}
	return gs[0], nil
}

// ParseAll reads DOT source and returns every graph it contains, in order.
// Input without any graph is an error.
func ParseAll(r io.Reader) ([]*agraph.Graph, error) {
	f, err := dotparser.Parse(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDOT, err, "parse DOT")
	}
	if len(f.Graphs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDOT, "no graph in input")
	}
	out := make([]*agraph.Graph, 0, len(f.Graphs))
	for _, src := range f.Graphs {
		out = append(out, build(src))
	}
	return out, nil
}

// ParseBytes parses the first graph of a DOT document held in memory.
func ParseBytes(b []byte) (*agraph.Graph, error) {
	return Parse(bytes.NewReader(b))
}

// ParseString parses the first graph of a DOT document.
func ParseString(s string) (*agraph.Graph, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile parses the first graph of the DOT file at path.
func ParseFile(path string) (*agraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Parse(f)
}

func build(src *ast.Graph) *agraph.Graph {
	name, _ := unquote(src.ID)
	g := agraph.New(name, agraph.Desc{Directed: src.Directed, Strict: src.Strict})
	body(g, src.Stmts)
	return g
}

func body(g *agraph.Graph, stmts []ast.Stmt) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.NodeStmt:
			n := g.Node(text(s.Node.ID))
			setAttrs(n, s.Attrs)
		case *ast.EdgeStmt:
			edges(g, s)
		case *ast.AttrStmt:
			declare(g, kindOf(s.Kind), s.Attrs)
		case *ast.Attr:
			declare(g, agraph.KindGraph, []*ast.Attr{s})
		case *ast.Subgraph:
			subgraph(g, s)
		}
	}
}

func subgraph(g *agraph.Graph, s *ast.Subgraph) *agraph.Graph {
	sub := g.Subgraph(text(s.ID))
	body(sub, s.Stmts)
	return sub
}

type endpoint struct {
	node *agraph.Node
	port string
}

// vertex resolves one side of an edge. A subgraph stands for all its nodes.
func vertex(g *agraph.Graph, v ast.Vertex) []endpoint {
	switch v := v.(type) {
	case *ast.Node:
		return []endpoint{{node: g.Node(text(v.ID)), port: port(v.Port)}}
	case *ast.Subgraph:
		sub := subgraph(g, v)
		eps := make([]endpoint, 0, sub.NodeCount())
		for _, n := range sub.Nodes() {
			eps = append(eps, endpoint{node: n})
		}
		return eps
	}
	return nil
}

func edges(g *agraph.Graph, s *ast.EdgeStmt) {
	var key string
	attrs := make([]*ast.Attr, 0, len(s.Attrs))
	for _, a := range s.Attrs {
		if text(a.Key) == AttrKey {
			key = text(a.Val)
			continue
		}
		attrs = append(attrs, a)
	}

	tails := vertex(g, s.From)
	for to := s.To; to != nil; to = to.To {
		heads := vertex(g, to.Vertex)
		for _, t := range tails {
			for _, h := range heads {
				e := g.Edge(t.node, h.node, key)
				tp, hp := t.port, h.port
				if e.Tail() != t.node {
					// merged with the reverse edge of an undirected graph
					tp, hp = hp, tp
				}
				if tp != "" {
					e.Set(AttrTailPort, tp)
				}
				if hp != "" {
					e.Set(AttrHeadPort, hp)
				}
				setAttrs(e, attrs)
			}
		}
		tails = heads
	}
}

func port(p *ast.Port) string {
	if p == nil {
		return ""
	}
	id := text(p.ID)
	if p.CompassPoint == ast.CompassPointNone {
		return id
	}
	cp := strings.TrimPrefix(p.CompassPoint.String(), ":")
	if id == "" {
		return cp
	}
	return id + ":" + cp
}

func kindOf(k ast.Kind) agraph.Kind {
	switch k {
	case ast.NodeKind:
		return agraph.KindNode
	case ast.EdgeKind:
		return agraph.KindEdge
	default:
		return agraph.KindGraph
	}
}

func declare(g *agraph.Graph, k agraph.Kind, attrs []*ast.Attr) {
	for _, a := range attrs {
		v, html := unquote(a.Val)
		if html {
			g.DeclareHTML(k, text(a.Key), v)
		} else {
			g.Declare(k, text(a.Key), v)
		}
	}
}

func setAttrs(o agraph.Object, attrs []*ast.Attr) {
	for _, a := range attrs {
		v, html := unquote(a.Val)
		if html {
			o.SetHTML(text(a.Key), v)
		} else {
			o.Set(text(a.Key), v)
		}
	}
}

func text(id string) string {
	s, _ := unquote(id)
	return s
}

// unquote returns the value of a DOT identifier and whether it was an
// HTML-like string. Inside double quotes only \" is an escape and a
// backslash-newline is a line continuation; other backslashes are kept for
// Graphviz escString handling.
func unquote(id string) (string, bool) {
	n := len(id)
	switch {
	case n >= 2 && id[0] == '<' && id[n-1] == '>':
		return id[1 : n-1], true
	case n >= 2 && id[0] == '"' && id[n-1] == '"':
		id = id[1 : n-1]
	default:
		return id, false
	}
	if !strings.Contains(id, `\`) {
		return id, false
	}
	var b strings.Builder
	b.Grow(len(id))
	for i := 0; i < len(id); i++ {
		c := id[i]
		if c == '\\' && i+1 < len(id) {
			switch id[i+1] {
			case '"':
				b.WriteByte('"')
				i++
				continue
			case '\n':
				i++
				continue
			case '\r':
				i++
				if i+1 < len(id) && id[i+1] == '\n' {
					i++
				}
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String(), false
}
