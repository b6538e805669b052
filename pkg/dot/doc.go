// Package dot loads Graphviz DOT documents into the attributed graph model
// and renders graphs back to DOT.
//
// Loading follows Graphviz semantics for the constructs the GXL converter
// depends on:
//
//   - nodes are created implicitly by edge statements
//   - graph, node and edge attribute statements set the defaults of the
//     enclosing scope; "a=b" in a body is a graph attribute statement
//   - edge chains (a -> b -> c) and subgraph endpoints (a -> {b c}) expand
//     to one edge per tail/head pair
//   - the "key" edge attribute names the edge; strict graphs merge
//     parallel edges
//   - ports (a:p -> b:q:n) are stored in the tailport and headport
//     attributes
//   - quoted strings are unescaped; <...> strings are flagged HTML-like
//
// Parsing is done by gonum's DOT grammar. [Validate] and [RenderSVG]
// additionally run the source through Graphviz itself.
package dot
