// Package io provides JSON import and export for attributed graphs.
//
// # Overview
//
// The JSON form carries the full [agraph] model: graph kind, nested
// subgraphs, per-scope attribute defaults and per-object values. It is meant
// for tools that produce graphs without writing DOT, and for inspecting what
// the DOT loader built (the dump command).
//
// # JSON Format
//
//	{
//	  "name": "G",
//	  "directed": true,
//	  "defaults": {
//	    "graph": {"rankdir": "LR"},
//	    "node":  {"shape": "box"}
//	  },
//	  "subgraphs": [
//	    {
//	      "name": "cluster_core",
//	      "defaults": {"node": {"shape": "ellipse"}},
//	      "nodes": [{"id": "parser"}, {"id": "lexer"}],
//	      "edges": [{"from": "parser", "to": "lexer"}]
//	    }
//	  ],
//	  "nodes": [{"id": "cli", "attrs": {"label": {"html": "<b>cli</b>"}}}],
//	  "edges": [{"from": "cli", "to": "parser", "key": "k1"}]
//	}
//
// Attribute values are JSON strings; HTML-like strings are written as
// {"html": "..."}. A scope lists its subgraphs, the nodes it holds and the
// edges no child subgraph holds. A node's attrs appear in the first scope
// that lists it. Anonymous subgraphs omit "name".
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, or [ReadJSON] to read
// from any io.Reader. Within a scope, subgraphs are built first, then nodes,
// then edges, so that creation order matches the export order. Edges create
// missing endpoints, as in DOT.
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, or [WriteJSON] to write to any
// io.Writer. Import followed by export reproduces the document.
package io
