// Package gxl writes attributed graphs as GXL documents.
//
// A conversion produces one <gxl> root holding the top-level <graph>.
// Subgraphs become <node> elements wrapping a nested <graph>; nodes and
// edges are written once, in the most deeply nested scope that owns them.
//
// # Identifiers
//
// Every graph, node and edge gets a document-unique identifier that is a
// legal XML name (see [LegalName]). The preferred identifier is the object's
// _gxl_id attribute, then its name; when that is illegal or taken a fresh
// G_<n> (graphs) or N_<n> (nodes) is synthesized and the original name is
// restated as a "name" attribute. Edges without _gxl_id are named
// "tail--head", with ":<n>" appended on collision.
//
// # Attributes
//
// Each scope declares the attribute defaults it introduces. An object
// carries only the values that differ from the defaults of the scope it is
// written in. Reserved names control rendering:
//
//	_gxl_role, _gxl_hypergraph   graph element attributes
//	_gxl_id                      explicit identifier
//	_gxl_fromorder, _gxl_toorder edge ordering hints
//	_gxl_type                    <type xlink:href="..."/> reference
//	_gxl_composite_<name>        structured value of attribute <name>
//
// A value that starts with _gxl_locator_ is written as a <locator> whose
// href is the rest of the value.
//
// # Usage
//
//	g, err := dot.ParseFile("in.gv")
//	if err != nil { ... }
//	stats, err := gxl.Write(os.Stdout, g, gxl.Options{Indent: true})
package gxl
