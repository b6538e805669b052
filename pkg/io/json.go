package io

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/rohan-flutterint/graphviz/pkg/agraph"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type graph struct {
	Name     string `json:"name,omitempty"`
	Directed bool   `json:"directed"`
	Strict   bool   `json:"strict,omitempty"`
	scope
}

type scope struct {
	Defaults  *defaults        `json:"defaults,omitempty"`
	Attrs     map[string]value `json:"attrs,omitempty"`
	Subgraphs []subgraph       `json:"subgraphs,omitempty"`
	Nodes     []node           `json:"nodes,omitempty"`
	Edges     []edge           `json:"edges,omitempty"`
}

type subgraph struct {
	Name string `json:"name,omitempty"`
	scope
}

type defaults struct {
	Graph map[string]value `json:"graph,omitempty"`
	Node  map[string]value `json:"node,omitempty"`
	Edge  map[string]value `json:"edge,omitempty"`
}

func (d *defaults) of(k agraph.Kind) *map[string]value {
	switch k {
	case agraph.KindNode:
		return &d.Node
	case agraph.KindEdge:
		return &d.Edge
	default:
		return &d.Graph
	}
}

type node struct {
	ID    string           `json:"id"`
	Attrs map[string]value `json:"attrs,omitempty"`
}

type edge struct {
	From  string           `json:"from"`
	To    string           `json:"to"`
	Key   string           `json:"key,omitempty"`
	Attrs map[string]value `json:"attrs,omitempty"`
}

// value is a plain string or {"html": "..."}.
type value agraph.Value

type htmlValue struct {
	HTML string `json:"html"`
}

func (v value) MarshalJSON() ([]byte, error) {
	if v.HTML {
		return json.Marshal(htmlValue{HTML: v.Str})
	}
	return json.Marshal(v.Str)
}

func (v *value) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '{' {
		var h htmlValue
		if err := json.Unmarshal(b, &h); err != nil {
			return err
		}
		*v = value{Str: h.HTML, HTML: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*v = value{Str: s}
	return nil
}
