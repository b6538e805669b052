package gxl

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rohan-flutterint/graphviz/pkg/agraph"
	"github.com/rohan-flutterint/graphviz/pkg/errors"
)

// Encoding is the character encoding declared by the output document.
type Encoding string

// Supported output encodings.
const (
	UTF8   Encoding = "UTF-8"
	Latin1 Encoding = "ISO-8859-1"
)

// ParseEncoding maps a user supplied encoding label to an Encoding.
// The empty string selects UTF8.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "iso-8859-1", "latin1", "latin-1":
		return Latin1, nil
	}
	return "", errors.New(errors.ErrCodeInvalidEncoding, "unsupported encoding %q (use utf-8 or iso-8859-1)", s)
}

// Options configures GXL output.
type Options struct {
	// Encoding selects the declared document encoding. Zero means UTF8.
	// Characters that Latin1 cannot represent are written as numeric
	// character references, so no data is lost.
	Encoding Encoding

	// Indent pretty-prints the element tree.
	Indent bool
}

// Stats counts the elements written by one conversion.
type Stats struct {
	Graphs int
	Nodes  int
	Edges  int
}

// Write converts the root graph of g to a GXL document on w.
//
// Write runs two passes: discovery assigns every graph and node its
// identifier, emission then writes the element tree. The graph is not
// modified; all bookkeeping lives in per-call state. Concurrent calls on
// different graphs are independent.
func Write(w io.Writer, g *agraph.Graph, opts Options) (Stats, error) {
	if g == nil {
		return Stats{}, errors.New(errors.ErrCodeInvalidInput, "nil graph")
	}
	root := g.Root()
	st := newState(root, newSink(w, opts))
	st.discover(root)
	st.writeDocument(root)
	if err := st.out.close(); err != nil {
		return st.stats, errors.Wrap(errors.ErrCodeWriteFailed, err, "write gxl document")
	}
	return st.stats, nil
}

// Marshal returns the GXL document for g.
func Marshal(g *agraph.Graph, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Write(&buf, g, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the GXL document for g to path.
func WriteFile(g *agraph.Graph, path string, opts Options) (Stats, error) {
	f, err := os.Create(path)
	if err != nil {
		return Stats{}, fmt.Errorf("create %s: %w", path, err)
	}
	stats, err := Write(f, g, opts)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close %s: %w", path, cerr)
	}
	return stats, err
}

// state is shared by the discovery and emission passes of one conversion.
type state struct {
	root     *agraph.Graph
	directed bool
	ids      *allocator
	out      *sink
	stats    Stats

	classes      map[*agraph.Symbol]symClass
	edgeSeen     map[*agraph.Edge]bool // discovery
	edgeIDs      map[*agraph.Edge]string
	nodeWritten  map[*agraph.Node]bool
	edgeWritten  map[*agraph.Edge]bool
	attrsWritten map[agraph.Object]bool
}

func newState(root *agraph.Graph, out *sink) *state {
	return &state{
		root:         root,
		directed:     root.IsDirected(),
		ids:          newAllocator(),
		out:          out,
		classes:      make(map[*agraph.Symbol]symClass),
		edgeSeen:     make(map[*agraph.Edge]bool),
		edgeIDs:      make(map[*agraph.Edge]string),
		nodeWritten:  make(map[*agraph.Node]bool),
		edgeWritten:  make(map[*agraph.Edge]bool),
		attrsWritten: make(map[agraph.Object]bool),
	}
}

// class returns the cached rendering variant of sym.
func (st *state) class(sym *agraph.Symbol) symClass {
	c, ok := st.classes[sym]
	if !ok {
		c = classify(sym)
		st.classes[sym] = c
	}
	return c
}

// owns reports whether scope g is responsible for edge e: no child subgraph
// of g contains it.
func owns(g *agraph.Graph, e *agraph.Edge) bool {
	for _, s := range g.Subgraphs() {
		if s.HasEdge(e) {
			return false
		}
	}
	return true
}
