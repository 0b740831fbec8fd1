package components

import (
	"strconv"

	"github.com/a-h/templ"
)

// Table is a plain data table. Cells are components so rows can mix text,
// links and buttons.
type Table struct {
	ID      string
	Headers []string
	Rows    [][]templ.Component
	Footer  []templ.Component
	Empty   string
	// Right lists the column indexes holding numbers
	Right []int
}

func (t Table) right(col int) bool {
	for _, r := range t.Right {
		if r == col {
			return true
		}
	}
	return false
}

func (t Table) cellClass(col int) string {
	if t.right(col) {
		return "px-3 py-2 text-right tabular-nums"
	}
	return "px-3 py-2"
}

// DataTable renders t
func DataTable(t Table) templ.Component {
	return Render(func(w *Writer) {
		w.Raw(`<div class="overflow-x-auto rounded bg-white shadow"`)
		if t.ID != "" {
			w.Attr("id", t.ID)
		}
		w.Raw(`><table class="min-w-full text-sm"><thead class="bg-gray-100 text-left"><tr>`)
		for i, h := range t.Headers {
			w.Raw("<th")
			w.Attr("class", t.cellClass(i)+" font-semibold")
			w.Raw(">")
			w.Text(h)
			w.Raw("</th>")
		}
		w.Raw("</tr></thead><tbody>")
		if len(t.Rows) == 0 {
			w.Raw(`<tr><td class="px-3 py-4 text-center text-gray-500"`)
			w.Attr("colspan", strconv.Itoa(len(t.Headers)))
			w.Raw(">")
			w.Text(t.Empty)
			w.Raw("</td></tr>")
		}
		for _, row := range t.Rows {
			w.Raw(`<tr class="border-t border-gray-100">`)
			for i, cell := range row {
				w.Raw("<td")
				w.Attr("class", t.cellClass(i))
				w.Raw(">")
				w.Component(cell)
				w.Raw("</td>")
			}
			w.Raw("</tr>")
		}
		w.Raw("</tbody>")
		if len(t.Footer) > 0 && len(t.Rows) > 0 {
			w.Raw(`<tfoot class="border-t-2 border-gray-300 font-semibold"><tr>`)
			for i, cell := range t.Footer {
				w.Raw("<td")
				w.Attr("class", t.cellClass(i))
				w.Raw(">")
				w.Component(cell)
				w.Raw("</td>")
			}
			w.Raw("</tr></tfoot>")
		}
		w.Raw("</table></div>")
	})
}

// Actions groups row action components
func Actions(items ...templ.Component) templ.Component {
	return Render(func(w *Writer) {
		w.Raw(`<span class="flex gap-3">`)
		for _, item := range items {
			w.Component(item)
		}
		w.Raw("</span>")
	})
}
