package pages

import (
	"lexium/templates/components"

	"github.com/a-h/templ"
)

// PDFBody is the printable content of an export: heading, filter line, table
func PDFBody(title, meta string, body templ.Component) templ.Component {
	return components.Render(func(w *components.Writer) {
		w.Raw("<h1>")
		w.Text(title)
		w.Raw("</h1>")
		if meta != "" {
			w.Raw(`<div class="meta">`)
			w.Text(meta)
			w.Raw("</div>")
		}
		w.Component(body)
	})
}
