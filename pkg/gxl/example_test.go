package gxl_test

import (
	"fmt"
	"io"

	"github.com/rohan-flutterint/graphviz/pkg/agraph"
	"github.com/rohan-flutterint/graphviz/pkg/gxl"
)

func ExampleWrite() {
	// Build a small dependency graph with one cluster
	g := agraph.New("deps", agraph.Directed)
	g.Declare(agraph.KindNode, "shape", "box")
	core := g.Subgraph("cluster_core")
	core.Edge(core.Node("parser"), core.Node("lexer"), "")
	g.Edge(g.Node("cli"), g.Node("parser"), "")

	stats, err := gxl.Write(io.Discard, g, gxl.Options{Indent: true})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("graphs=%d nodes=%d edges=%d\n", stats.Graphs, stats.Nodes, stats.Edges)
	// Output:
	// graphs=2 nodes=3 edges=2
}

func ExampleLegalName() {
	fmt.Println(gxl.LegalName("node:1"), gxl.LegalName("1node"))
	// Output:
	// true false
}
