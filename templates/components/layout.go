package components

import (
	"strings"

	"lexium/services/i18n"

	"github.com/a-h/templ"
)

// Page carries the per-request data every full page needs
type Page struct {
	Title        string
	Path         string
	CSRFToken    string
	FlashKind    string
	FlashMessage string
}

type navItem struct {
	href string
	key  string
}

var navItems = []navItem{
	{"/", "nav.home"},
	{"/clients", "nav.clients"},
	{"/cases", "nav.cases"},
	{"/case-work", "nav.case_work"},
	{"/calendar", "nav.calendar"},
	{"/reports", "nav.reports"},
	{"/outsource-companies", "nav.outsource_companies"},
	{"/users", "nav.users"},
	{"/case-types", "nav.case_types"},
}

func isActive(path, href string) bool {
	if href == "/" {
		return path == "/"
	}
	return path == href || strings.HasPrefix(path, href+"/")
}

// Layout wraps body in the application shell
func Layout(page Page, body templ.Component) templ.Component {
	return Render(func(w *Writer) {
		lang := i18n.GetLocale(w.Ctx())
		t := func(key string) string { return i18n.T(w.Ctx(), key) }

		w.Raw("<!DOCTYPE html>\n<html")
		w.Attr("lang", lang)
		w.Raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.Raw("<title>")
		w.Text(page.Title)
		w.Raw(" | Lexium</title>")
		w.Raw(`<script src="https://cdn.tailwindcss.com"></script>`)
		w.Raw(`<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>`)
		w.Raw(`</head><body class="bg-gray-50 text-gray-900"`)
		w.Attr("hx-headers", JSON(map[string]string{"X-CSRF-Token": page.CSRFToken}))
		w.Raw(">")

		w.Raw(`<nav class="bg-slate-800 text-white"><div class="mx-auto max-w-7xl px-4 flex items-center gap-4 h-14">`)
		w.Raw(`<a href="/" class="font-semibold text-lg mr-4">Lexium</a>`)
		for _, item := range navItems {
			w.Raw("<a")
			w.Attr("href", item.href)
			active := ""
			if isActive(page.Path, item.href) {
				active = "underline"
			}
			w.Attr("class", classes("text-sm hover:text-slate-300", active))
			w.Raw(">")
			w.Text(t(item.key))
			w.Raw("</a>")
		}
		w.Raw(`<span class="ml-auto flex gap-2 text-xs">`)
		for _, l := range i18n.Languages() {
			w.Raw("<a")
			w.Attr("href", page.Path+"?lang="+l)
			if l == lang {
				w.Attr("class", "font-bold")
			}
			w.Raw(">")
			w.Text(strings.ToUpper(l))
			w.Raw("</a>")
		}
		w.Raw("</span></div></nav>")

		w.Raw(`<main class="mx-auto max-w-7xl px-4 py-6">`)
		if page.FlashMessage != "" {
			w.Component(FlashBanner(page.FlashKind, page.FlashMessage))
		}
		w.Raw(`<h1 class="text-2xl font-semibold mb-4">`)
		w.Text(page.Title)
		w.Raw("</h1>")
		w.Component(body)
		w.Raw("</main></body></html>")
	})
}

// FlashBanner renders a one-shot message
func FlashBanner(kind, message string) templ.Component {
	return Render(func(w *Writer) {
		color := "green"
		if kind == "error" {
			color = "red"
		}
		w.Raw(`<div role="alert"`)
		w.Attr("class", "mb-4 rounded border-l-4 p-3 border-"+color+"-400 bg-"+color+"-50 text-"+color+"-800")
		w.Raw(">")
		w.Text(message)
		w.Raw("</div>")
	})
}

// Toolbar renders a row of actions above a table
func Toolbar(items ...templ.Component) templ.Component {
	return Render(func(w *Writer) {
		w.Raw(`<div class="mb-4 flex flex-wrap items-end gap-3">`)
		for _, item := range items {
			w.Component(item)
		}
		w.Raw("</div>")
	})
}

// ButtonLink renders a link styled as a button
func ButtonLink(href, label string) templ.Component {
	return Render(func(w *Writer) {
		w.Raw(`<a class="rounded bg-blue-600 px-3 py-2 text-sm text-white hover:bg-blue-700"`)
		w.Attr("href", href)
		w.Raw(">")
		w.Text(label)
		w.Raw("</a>")
	})
}

// Section renders a titled block
func Section(title string, body templ.Component) templ.Component {
	return Render(func(w *Writer) {
		w.Raw(`<section class="mb-8"><h2 class="text-lg font-semibold mb-2">`)
		w.Text(title)
		w.Raw("</h2>")
		w.Component(body)
		w.Raw("</section>")
	})
}

// Paragraph renders escaped text in a muted paragraph
func Paragraph(text string) templ.Component {
	return Render(func(w *Writer) {
		w.Raw(`<p class="text-sm text-gray-600 mb-2">`)
		w.Text(text)
		w.Raw("</p>")
	})
}
