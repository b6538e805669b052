// Package agraph is an in-memory attributed graph with nested subgraphs.
//
// The model mirrors the classic Graphviz object graph: a root [Graph] owns
// every [Node] and [Edge]; subgraphs are views that list a subset of them.
// Creating a node or edge inside a subgraph makes it a member of that
// subgraph and of every ancestor.
//
// # Attributes
//
// Each graph scope holds one [Dict] per object [Kind]. A subgraph's dict
// chains to its parent's dict: [Dict.Lookup] consults the local symbols first
// and falls back to the parent on a miss. Every [Symbol] has a slot ID that is
// stable across all scopes, so an object's value record is a flat slice
// indexed by slot.
//
//	g := agraph.New("G", agraph.Directed)
//	g.Declare(agraph.KindNode, "color", "black")
//	s := g.Subgraph("cluster_a")
//	s.Declare(agraph.KindNode, "color", "red") // overrides within cluster_a
//	n := s.Node("a")                           // n.Get("color") == "red"
//	g.Edge(n, g.Node("b"), "")
//
// New objects take their initial values from the defaults visible in the
// scope that creates them. Declaring a new symbol back-fills its default into
// every existing object of that kind.
//
// # Concurrency
//
// A Graph is not safe for concurrent mutation. Concurrent reads of a graph
// that is no longer being modified are safe.
package agraph
