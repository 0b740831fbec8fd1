package components

import (
	"lexium/services/i18n"

	"github.com/a-h/templ"
)

// Field types beyond the plain <input> types
const (
	FieldSelect   = "select"
	FieldTextarea = "textarea"
	FieldCheckbox = "checkbox"
)

// Option is a <select> choice
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Field describes one form control
type Field struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Error       string
	Placeholder string
	Step        string
	Required    bool
	Checked     bool
	Options     []Option
	// Group tags the field for the client-type switch of the client form
	Group string
}

const inputClass = "mt-1 block w-full rounded border border-gray-300 px-2 py-1.5 text-sm"

// Input renders a labelled control with its validation error
func Input(f Field) templ.Component {
	return Render(func(w *Writer) {
		w.Raw("<div")
		w.Attr("class", classes("mb-3", groupClass(f.Group)))
		if f.Group != "" {
			w.Attr("data-group", f.Group)
		}
		w.Raw(">")

		if f.Type == FieldCheckbox {
			w.Raw(`<label class="inline-flex items-center gap-2 text-sm"><input type="checkbox" value="1"`)
			w.Attr("name", f.Name)
			if f.Checked {
				w.Raw(" checked")
			}
			w.Raw(">")
			w.Text(f.Label)
			w.Raw("</label>")
		} else {
			w.Raw(`<label class="block text-sm font-medium text-gray-700"`)
			w.Attr("for", f.Name)
			w.Raw(">")
			w.Text(f.Label)
			if f.Required {
				w.Raw(` <span class="text-red-600">*</span>`)
			}
			w.Raw("</label>")
			writeControl(w, f)
		}

		if f.Error != "" {
			w.Raw(`<p class="mt-1 text-xs text-red-600">`)
			w.Text(f.Error)
			w.Raw("</p>")
		}
		w.Raw("</div>")
	})
}

func groupClass(group string) string {
	if group == "" {
		return ""
	}
	return "client-group"
}

func writeControl(w *Writer, f Field) {
	switch f.Type {
	case FieldSelect:
		w.Raw("<select")
		w.Attr("id", f.Name)
		w.Attr("name", f.Name)
		w.Attr("class", inputClass)
		if f.Required {
			w.Raw(" required")
		}
		w.Raw(">")
		for _, o := range f.Options {
			w.Raw("<option")
			w.Attr("value", o.Value)
			if o.Selected {
				w.Raw(" selected")
			}
			w.Raw(">")
			w.Text(o.Label)
			w.Raw("</option>")
		}
		w.Raw("</select>")
	case FieldTextarea:
		w.Raw("<textarea rows=\"3\"")
		w.Attr("id", f.Name)
		w.Attr("name", f.Name)
		w.Attr("class", inputClass)
		w.Raw(">")
		w.Text(f.Value)
		w.Raw("</textarea>")
	default:
		typ := f.Type
		if typ == "" {
			typ = "text"
		}
		w.Raw("<input")
		w.Attr("type", typ)
		w.Attr("id", f.Name)
		w.Attr("name", f.Name)
		w.Attr("value", f.Value)
		w.Attr("class", inputClass)
		if f.Placeholder != "" {
			w.Attr("placeholder", f.Placeholder)
		}
		if f.Step != "" {
			w.Attr("step", f.Step)
		}
		if f.Required {
			w.Raw(" required")
		}
		w.Raw(">")
	}
}

// CSRFField renders the hidden token input
func CSRFField(token string) templ.Component {
	return Render(func(w *Writer) {
		w.Raw(`<input type="hidden" name="_csrf"`)
		w.Attr("value", token)
		w.Raw(">")
	})
}

// Form renders a POST form. formError is shown above the fields.
func Form(action, csrfToken, submitLabel, formError string, fields ...Field) templ.Component {
	return Render(func(w *Writer) {
		w.Raw(`<form method="post" class="max-w-xl rounded bg-white p-4 shadow"`)
		w.Attr("action", action)
		w.Raw(">")
		w.Component(CSRFField(csrfToken))
		if formError != "" {
			w.Component(FlashBanner("error", formError))
		}
		for _, f := range fields {
			w.Component(Input(f))
		}
		w.Raw(`<div class="flex gap-3"><button type="submit" class="rounded bg-blue-600 px-4 py-2 text-sm text-white hover:bg-blue-700">`)
		w.Text(submitLabel)
		w.Raw(`</button><a href="javascript:history.back()" class="px-4 py-2 text-sm text-gray-600">`)
		w.Text(i18n.T(w.Ctx(), "actions.cancel"))
		w.Raw("</a></div></form>")
	})
}

// DeleteButton renders an inline POST form asking for confirmation
func DeleteButton(action, csrfToken string) templ.Component {
	return Render(func(w *Writer) {
		w.Raw(`<form method="post" class="inline"`)
		w.Attr("action", action)
		w.Attr("onsubmit", "return confirm("+JSON(i18n.T(w.Ctx(), "actions.confirm_delete"))+")")
		w.Raw(">")
		w.Component(CSRFField(csrfToken))
		w.Raw(`<button type="submit" class="text-red-600 hover:underline text-sm">`)
		w.Text(i18n.T(w.Ctx(), "actions.delete"))
		w.Raw("</button></form>")
	})
}

// PostButton renders an inline POST form with one button
func PostButton(action, csrfToken, label string) templ.Component {
	return Render(func(w *Writer) {
		w.Raw(`<form method="post" class="inline"`)
		w.Attr("action", action)
		w.Raw(">")
		w.Component(CSRFField(csrfToken))
		w.Raw(`<button type="submit" class="text-blue-700 hover:underline text-sm">`)
		w.Text(label)
		w.Raw("</button></form>")
	})
}

// FilterForm renders a GET form that swaps #results through htmx and still
// works as a plain form
func FilterForm(action string, fields ...Field) templ.Component {
	return Render(func(w *Writer) {
		w.Raw(`<form method="get" class="flex flex-wrap items-end gap-3" hx-target="#results" hx-select="#results" hx-swap="outerHTML" hx-push-url="true" hx-trigger="input changed delay:300ms from:input[type=search], change"`)
		w.Attr("action", action)
		w.Attr("hx-get", action)
		w.Raw(">")
		for _, f := range fields {
			w.Component(Input(f))
		}
		w.Raw(`<div class="mb-3"><button type="submit" class="rounded border border-gray-300 bg-white px-3 py-1.5 text-sm">`)
		w.Text(i18n.T(w.Ctx(), "actions.filter"))
		w.Raw("</button></div></form>")
	})
}

// ClientTypeSwitch shows only the fields of the selected client type
func ClientTypeSwitch() templ.Component {
	return templ.Raw(`<script>
document.addEventListener("DOMContentLoaded", function () {
  var select = document.getElementById("client_type");
  if (!select) return;
  function sync() {
    document.querySelectorAll("[data-group]").forEach(function (el) {
      el.style.display = el.dataset.group === select.value ? "" : "none";
    });
  }
  select.addEventListener("change", sync);
  sync();
});
</script>`)
}
