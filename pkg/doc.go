// Package pkg provides the libraries behind gv2gxl, a converter from
// Graphviz attributed graphs to GXL (Graph eXchange Language) documents.
//
// # Overview
//
// The pkg directory is organized into four areas:
//
//  1. Model - [agraph], the attributed hierarchical graph
//  2. Formats - [dot] and [io] read graphs, [gxl] writes them
//  3. Orchestration - [pipeline] (load → convert with caching) and [server]
//  4. Support - [cache], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow through gv2gxl:
//
//	DOT source / JSON model
//	         ↓
//	    [dot] or [io] package (parse into the graph model)
//	         ↓
//	    [agraph] package (graphs, subgraphs, attribute dictionaries)
//	         ↓
//	    [gxl] package (discovery pass, then emission pass)
//	         ↓
//	    GXL document (UTF-8 or ISO-8859-1)
//
// # Quick Start
//
//	import (
//	    "os"
//	    "github.com/rohan-flutterint/graphviz/pkg/dot"
//	    "github.com/rohan-flutterint/graphviz/pkg/gxl"
//	)
//
//	g, err := dot.ParseFile("graph.gv")
//	if err != nil {
//	    return err
//	}
//	_, err = gxl.Write(os.Stdout, g, gxl.Options{Indent: true})
//
// # Main Packages
//
// [agraph] - Graphs, subgraphs, nodes and edges with per-kind attribute
// dictionaries. Subgraph scopes inherit and override defaults.
//
// [dot] - DOT reader built on the gonum DOT parser, a DOT writer, and
// Graphviz validation and SVG preview through go-graphviz.
//
// [io] - JSON form of the graph model for import and export.
//
// [gxl] - The GXL writer: identifier allocation, subgraph nesting, attribute
// rendering and output encodings.
//
// [pipeline] - Load → convert with result caching, used by the CLI and the
// HTTP service so that both behave the same way.
//
// [server] - HTTP service exposing conversions.
//
// [cache] - Cache interface with file, Redis and null implementations.
//
// # Testing
//
// Run tests:
//
//	go test ./...                        # All tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include Redis integration tests
//
// [agraph]: https://pkg.go.dev/github.com/rohan-flutterint/graphviz/pkg/agraph
// [dot]: https://pkg.go.dev/github.com/rohan-flutterint/graphviz/pkg/dot
// [io]: https://pkg.go.dev/github.com/rohan-flutterint/graphviz/pkg/io
// [gxl]: https://pkg.go.dev/github.com/rohan-flutterint/graphviz/pkg/gxl
// [pipeline]: https://pkg.go.dev/github.com/rohan-flutterint/graphviz/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/rohan-flutterint/graphviz/pkg/server
// [cache]: https://pkg.go.dev/github.com/rohan-flutterint/graphviz/pkg/cache
// [errors]: https://pkg.go.dev/github.com/rohan-flutterint/graphviz/pkg/errors
// [observability]: https://pkg.go.dev/github.com/rohan-flutterint/graphviz/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/rohan-flutterint/graphviz/pkg/buildinfo
package pkg
