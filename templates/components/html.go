package components

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Writer collects the first write error so components can be written as a
// flat sequence of calls
type Writer struct {
	ctx context.Context
	out io.Writer
	err error
}

// Render runs fn as a component
func Render(fn func(w *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &Writer{ctx: ctx, out: out}
		fn(w)
		return w.err
	})
}

// Ctx returns the render context
func (w *Writer) Ctx() context.Context { return w.ctx }

// Raw writes trusted markup
func (w *Writer) Raw(parts ...string) {
	for _, s := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.out, s)
	}
}

// Text writes escaped text
func (w *Writer) Text(s string) { w.Raw(templ.EscapeString(s)) }

// Textf writes escaped formatted text
func (w *Writer) Textf(format string, args ...interface{}) { w.Text(fmt.Sprintf(format, args...)) }

// Attr writes name="value" with the value escaped
func (w *Writer) Attr(name, value string) {
	w.Raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// Component renders a child component
func (w *Writer) Component(c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(w.ctx, w.out)
}

// Text renders escaped text
func Text(s string) templ.Component {
	return Render(func(w *Writer) { w.Text(s) })
}

// Link renders an anchor
func Link(href, label string) templ.Component {
	return Render(func(w *Writer) {
		w.Raw(`<a class="text-blue-700 hover:underline"`)
		w.Attr("href", href)
		w.Raw(">")
		w.Text(label)
		w.Raw("</a>")
	})
}

// Badge renders a small colored label. color is a tailwind palette name.
func Badge(label, color string) templ.Component {
	return Render(func(w *Writer) {
		w.Raw(`<span`)
		w.Attr("class", "inline-block rounded px-2 py-0.5 text-xs font-medium bg-"+color+"-100 text-"+color+"-800")
		w.Raw(">")
		w.Text(label)
		w.Raw("</span>")
	})
}

func classes(names ...string) string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}
