package gxl

import (
	"io"

	xw "github.com/shabbyrobe/xmlwriter"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const xlinkNS = "http://www.w3.org/1999/xlink"

// sink is the escaping output writer. The first write error sticks and is
// reported by close; later writes are no-ops on the error path.
type sink struct {
	w   *xw.Writer
	err error
}

func newSink(w io.Writer, opts Options) *sink {
	var xopts []xw.Option
	if opts.Indent {
		xopts = append(xopts, xw.WithIndent())
	}
	if opts.Encoding == Latin1 {
		// Characters outside Latin-1 become numeric character references.
		enc := encoding.HTMLEscapeUnsupported(charmap.ISO8859_1.NewEncoder())
		return &sink{w: xw.OpenEncoding(w, string(Latin1), enc, xopts...)}
	}
	return &sink{w: xw.Open(w, xopts...)}
}

func (s *sink) do(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}

func (s *sink) startDoc() {
	s.do(s.w.Start(xw.Doc{}))
}

func (s *sink) start(name string, attrs ...xw.Attr) {
	s.do(s.w.Start(xw.Elem{Name: name, Attrs: attrs}))
}

// empty writes an element without content.
func (s *sink) empty(name string, attrs ...xw.Attr) {
	s.do(s.w.Write(xw.Elem{Name: name, Attrs: attrs}))
}

func (s *sink) end() {
	s.do(s.w.EndElem())
}

func (s *sink) text(v string) {
	s.do(s.w.Write(xw.Text(v)))
}

// raw writes unescaped content inside the current element.
func (s *sink) raw(v string) {
	s.do(s.w.Next())
	s.do(s.w.Write(xw.Raw(v)))
}

func (s *sink) close() error {
	s.do(s.w.EndAllFlush())
	return s.err
}

func attr(name, value string) xw.Attr {
	return xw.Attr{Name: name, Value: value}
}
