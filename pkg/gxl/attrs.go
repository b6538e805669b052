package gxl

import (
	"strings"

	"github.com/antchfx/xmlquery"
	xw "github.com/shabbyrobe/xmlwriter"

	"github.com/rohan-flutterint/graphviz/pkg/agraph"
)

const htmlKind = "HTML-like string"

// writeDict declares the symbols of one scope. Only local symbols are
// considered; an empty default is skipped unless it overrides a non-empty
// default visible from the parent scope.
func (st *state) writeDict(d *agraph.Dict) {
	kind := d.Kind().String()
	for _, sym := range d.Local() {
		c := st.class(sym)
		if c == symReserved {
			continue
		}
		if sym.Default == "" && !parentNonEmpty(d, sym.Name) {
			continue
		}
		if c == symComposite {
			st.writeComposite(displayName(sym, c), kind, sym.Default)
			continue
		}
		if href, ok := locator(sym.Default); ok {
			st.writeLocator(sym.Name, href)
			continue
		}
		name := sym.Name
		if d.Kind() != agraph.KindGraph {
			name = kind + ":" + name
		}
		st.writeString(name, kind, sym.Default)
	}
}

func parentNonEmpty(d *agraph.Dict, name string) bool {
	p := d.Parent()
	if p == nil {
		return false
	}
	ps := p.Lookup(name)
	return ps != nil && ps.Default != ""
}

// writeNondefault writes the attribute values of o that differ from the
// defaults of d. Edges restate their key first. It runs at most once per
// object and conversion.
func (st *state) writeNondefault(o agraph.Object, d *agraph.Dict) {
	if st.attrsWritten[o] {
		return
	}
	st.attrsWritten[o] = true

	if e, ok := o.(*agraph.Edge); ok {
		st.writeKey(e)
	}
	for _, sym := range d.All() {
		c := st.class(sym)
		if c == symReserved || c == symPort {
			continue
		}
		v := o.Value(sym)
		if v == sym.DefaultValue() || v.Str == "" {
			continue
		}
		switch {
		case c == symComposite:
			st.writeComposite(displayName(sym, c), "", v.Str)
		default:
			if href, ok := locator(v.Str); ok {
				st.writeLocator(sym.Name, href)
				continue
			}
			kind := ""
			if v.HTML {
				kind = htmlKind
			}
			st.writeString(sym.Name, kind, v.Str)
		}
	}
}

// attrElem starts an attr element with an optional kind.
func (st *state) attrElem(name, kind string) {
	attrs := []xw.Attr{attr("name", name)}
	if kind != "" {
		attrs = append(attrs, attr("kind", kind))
	}
	st.out.start("attr", attrs...)
}

func (st *state) writeString(name, kind, value string) {
	st.attrElem(name, kind)
	st.out.start("string")
	st.out.text(value)
	st.out.end()
	st.out.end()
}

func (st *state) writeLocator(name, href string) {
	st.attrElem(name, "")
	st.out.empty("locator", attr("xlink:href", href))
	st.out.end()
}

// writeComposite writes structured attribute content. Content that nests
// as element content is re-serialized; anything else is escaped as text.
func (st *state) writeComposite(name, kind, value string) {
	st.attrElem(name, kind)
	if frag, ok := fragment(value); ok {
		st.out.raw(frag)
	} else {
		st.out.text(value)
	}
	st.out.end()
}

const fragmentWrapper = "_"

// fragment parses v as the content of a single wrapper element and returns
// it re-serialized. ok is false when v does not parse, closes the wrapper
// itself, or carries a declaration, processing instruction or directive.
func fragment(v string) (string, bool) {
	if strings.Contains(v, "<?") {
		return "", false
	}
	doc, err := xmlquery.Parse(strings.NewReader("<" + fragmentWrapper + ">" + v + "</" + fragmentWrapper + ">"))
	if err != nil {
		return "", false
	}

	var root *xmlquery.Node
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		switch {
		case n.Type == xmlquery.DeclarationNode && n == doc.FirstChild && n.Data == "xml" && n.FirstChild == nil:
			// added by the parser for the missing <?xml?>
		case n.Type == xmlquery.ElementNode && root == nil && n.Prefix == "" && n.Data == fragmentWrapper:
			root = n
		default:
			return "", false
		}
	}
	if root == nil || !elementContent(root) {
		return "", false
	}
	return root.OutputXMLWithOptions(xmlquery.WithPreserveSpace(), xmlquery.WithEmptyTagSupport()), true
}

func elementContent(n *xmlquery.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.DeclarationNode, xmlquery.NotationNode, xmlquery.DocumentNode:
			return false
		case xmlquery.ElementNode:
			if !elementContent(c) {
				return false
			}
		}
	}
	return true
}
