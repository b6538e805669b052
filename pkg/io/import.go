package io

import (
	"io"
	"maps"
	"os"
	"slices"

	"github.com/rohan-flutterint/graphviz/pkg/agraph"
	"github.com/rohan-flutterint/graphviz/pkg/errors"
)

// ReadJSON decodes a JSON graph from r.
//
// Each node must have an "id" and each edge a "from" and "to". Edges that
// name unknown nodes create them. Defaults are declared before the values
// of a scope are applied, in name order.
//
// Errors carry the code [errors.ErrCodeInvalidJSON]. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (*agraph.Graph, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidJSON, err, "decode")
	}

	desc := agraph.Desc{Directed: data.Directed, Strict: data.Strict}
	g := agraph.New(data.Name, desc)
	if err := build(g, &data.scope); err != nil {
		return nil, err
	}
	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
func ImportJSON(path string) (*agraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

func build(g *agraph.Graph, s *scope) error {
	if s.Defaults != nil {
		for _, k := range agraph.Kinds {
			m := *s.Defaults.of(k)
			for _, name := range slices.Sorted(maps.Keys(m)) {
				if v := m[name]; v.HTML {
					g.DeclareHTML(k, name, v.Str)
				} else {
					g.Declare(k, name, v.Str)
				}
			}
		}
	}
	apply(g, s.Attrs)

	for i := range s.Subgraphs {
		js := &s.Subgraphs[i]
		if err := build(g.Subgraph(js.Name), &js.scope); err != nil {
			return err
		}
	}
	for _, n := range s.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidJSON, "node without id in graph %s", g.Name())
		}
		apply(g.Node(n.ID), n.Attrs)
	}
	for _, e := range s.Edges {
		if e.From == "" || e.To == "" {
			return errors.New(errors.ErrCodeInvalidJSON, "edge %q->%q in graph %s needs both endpoints", e.From, e.To, g.Name())
		}
		apply(g.Edge(g.Node(e.From), g.Node(e.To), e.Key), e.Attrs)
	}
	return nil
}

func apply(o agraph.Object, attrs map[string]value) {
	for _, name := range slices.Sorted(maps.Keys(attrs)) {
		if v := attrs[name]; v.HTML {
			o.SetHTML(name, v.Str)
		} else {
			o.Set(name, v.Str)
		}
	}
}
