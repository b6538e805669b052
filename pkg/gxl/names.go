package gxl

import (
	"strings"

	"github.com/rohan-flutterint/graphviz/pkg/agraph"
)

// Reserved attribute names that control GXL rendering. Any attribute whose
// name starts with ReservedPrefix is consumed by the converter and never
// written as ordinary data.
const (
	ReservedPrefix  = "_gxl_"
	AttrRole        = "_gxl_role"
	AttrHypergraph  = "_gxl_hypergraph"
	AttrID          = "_gxl_id"
	AttrFromOrder   = "_gxl_fromorder"
	AttrToOrder     = "_gxl_toorder"
	AttrType        = "_gxl_type"
	CompositePrefix = "_gxl_composite_"
	LocatorPrefix   = "_gxl_locator_"
)

// Edge port attributes, written as separate string attributes on edges.
const (
	AttrTailPort = "tailport"
	AttrHeadPort = "headport"
)

const (
	graphPrefix = "G_"
	nodePrefix  = "N_"
	edgeOp      = "--" // '>' is not a legal name character
)

// LegalName reports whether id is a legal GXL identifier:
//
//	ID       := (letter | '_' | ':') NameChar*
//	NameChar := letter | digit | '.' | ':' | '-' | '_'
//
// Letters and digits are ASCII only.
func LegalName(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case isLetter(c), c == '_', c == ':':
		case i > 0 && (isDigit(c) || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }

// symClass is the rendering variant of a symbol, fixed when first seen.
type symClass uint8

const (
	symPlain     symClass = iota
	symReserved           // _gxl_ grammar, never rendered as data
	symComposite          // rendered under the stripped name as structured content
	symPort               // edge tailport/headport, written separately
)

func classify(sym *agraph.Symbol) symClass {
	switch {
	case strings.HasPrefix(sym.Name, CompositePrefix):
		return symComposite
	case strings.HasPrefix(sym.Name, ReservedPrefix):
		return symReserved
	case sym.Kind == agraph.KindEdge && (sym.Name == AttrTailPort || sym.Name == AttrHeadPort):
		return symPort
	default:
		return symPlain
	}
}

// displayName returns the name a symbol is rendered under.
func displayName(sym *agraph.Symbol, c symClass) string {
	if c == symComposite {
		return sym.Name[len(CompositePrefix):]
	}
	return sym.Name
}

// locator returns the resource reference carried by a locator value.
func locator(v string) (string, bool) {
	return strings.CutPrefix(v, LocatorPrefix)
}
