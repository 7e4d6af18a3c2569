package components

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Attr is a single HTML attribute. A Bool attribute is written without a value.
type Attr struct {
	Name  string
	Value string
	Bool  bool
}

// Attrs builds attributes from name/value pairs.
func Attrs(pairs ...string) []Attr {
	out := make([]Attr, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Attr{Name: pairs[i], Value: pairs[i+1]})
	}
	return out
}

// Flag is a boolean attribute such as required or disabled.
func Flag(name string) Attr { return Attr{Name: name, Bool: true} }

var urlAttrs = map[string]bool{"href": true, "src": true, "action": true, "formaction": true}

// HTML writes markup, escaping text and attribute values. The first write
// error sticks and is returned by the component.
type HTML struct {
	ctx context.Context
	w   io.Writer
	err error
}

// Func turns a function writing through HTML into a templ component.
func Func(fn func(h *HTML)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &HTML{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

func (h *HTML) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *HTML) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

func (h *HTML) Open(tag string, attrs ...Attr) {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(tag)
	for _, a := range attrs {
		if a.Name == "" {
			continue
		}
		b.WriteString(" ")
		b.WriteString(a.Name)
		if a.Bool {
			continue
		}
		value := a.Value
		if urlAttrs[a.Name] {
			value = string(templ.URL(value))
		}
		b.WriteString(`="`)
		b.WriteString(templ.EscapeString(value))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	h.Raw(b.String())
}

func (h *HTML) Close(tag string) {
	h.Raw("</" + tag + ">")
}

// El writes tag with attrs around whatever body writes.
func (h *HTML) El(tag string, attrs []Attr, body func()) {
	h.Open(tag, attrs...)
	if body != nil {
		body()
	}
	h.Close(tag)
}

// TextEl writes tag with attrs around escaped text.
func (h *HTML) TextEl(tag string, attrs []Attr, text string) {
	h.Open(tag, attrs...)
	h.Text(text)
	h.Close(tag)
}

// Void writes an element without a closing tag.
func (h *HTML) Void(tag string, attrs ...Attr) {
	h.Open(tag, attrs...)
}

// Component renders a nested component in place.
func (h *HTML) Component(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// Context returns the render context.
func (h *HTML) Context() context.Context { return h.ctx }

// Render writes c to a string. Tests use it to inspect markup.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	err := c.Render(ctx, &sb)
	return sb.String(), err
}
