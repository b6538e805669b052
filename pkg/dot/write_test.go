package dot

import (
	"slices"
	"strings"
	"testing"

	"github.com/rohan-flutterint/graphviz/pkg/agraph"
)

func TestMarshal(t *testing.T) {
	g := mustParse(t, `strict digraph "G" {
		node [shape=box]
		subgraph cluster_a { a -> b [key=k, color=red] }
		c [label=<<i>c</i>>]
	}`)

	out := string(Marshal(g))
	for _, want := range []string{
		`strict digraph "G" {`,
		`node [shape="box"];`,
		`subgraph "cluster_a" {`,
		`"a" -> "b" [key="k", color="red"];`,
		`"c" [label=<<i>c</i>>];`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Marshal() missing %s\n%s", want, out)
		}
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	src := `digraph G {
		rankdir=LR
		edge [color=blue]
		a -> b -> c
		subgraph cluster_x { node [shape=ellipse]; d; c -> d [label="say \"x\""] }
		{ e f }
	}`
	g1 := mustParse(t, src)
	g2, err := ParseBytes(Marshal(g1))
	if err != nil {
		t.Fatalf("reparse: %v\n%s", err, Marshal(g1))
	}

	// Nodes are written in the first scope that holds them, so creation
	// order may change.
	got, want := nodeNames(g2.Nodes()), nodeNames(g1.Nodes())
	slices.Sort(got)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("nodes = %v, want %v", got, want)
	}
	if g2.EdgeCount() != g1.EdgeCount() {
		t.Errorf("EdgeCount() = %d, want %d", g2.EdgeCount(), g1.EdgeCount())
	}
	if g2.Get("rankdir") != "LR" {
		t.Errorf("rankdir lost")
	}
	if got := g2.FindNode("d").Get("shape"); got != "ellipse" {
		t.Errorf("d shape = %q, want ellipse", got)
	}
	for _, e := range g2.Edges() {
		if e.Get("color") != "blue" {
			t.Errorf("edge %s->%s color = %q", e.Tail().Name(), e.Head().Name(), e.Get("color"))
		}
		if e.Tail().Name() == "c" && e.Get("label") != `say "x"` {
			t.Errorf("c->d label = %q", e.Get("label"))
		}
	}
	if len(g2.Subgraphs()) != len(g1.Subgraphs()) {
		t.Errorf("subgraphs = %d, want %d", len(g2.Subgraphs()), len(g1.Subgraphs()))
	}
}

func TestMarshal_Undirected(t *testing.T) {
	g := agraph.New("U", agraph.Undirected)
	g.Edge(g.Node("a"), g.Node("b"), "")
	out := string(Marshal(g))
	if !strings.HasPrefix(out, `graph "U" {`) || !strings.Contains(out, `"a" -- "b";`) {
		t.Errorf("Marshal() =\n%s", out)
	}
}
