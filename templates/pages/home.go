package pages

import (
	"strconv"

	"lexium/models"
	"lexium/templates/components"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
)

// HomeStats holds the figures of the start page
type HomeStats struct {
	Clients       int64
	ActiveCases   int64
	Users         int64
	UnbilledTotal decimal.Decimal
	RecentWork    []models.CaseWork
}

// Home renders the start page
func Home(page components.Page, stats HomeStats) templ.Component {
	return components.Layout(page, components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		cards := []struct {
			key, value, href string
		}{
			{"home.clients", strconv.FormatInt(stats.Clients, 10), "/clients"},
			{"home.active_cases", strconv.FormatInt(stats.ActiveCases, 10), "/cases?active_only=1"},
			{"home.users", strconv.FormatInt(stats.Users, 10), "/users"},
			{"home.unbilled_total", money(stats.UnbilledTotal), "/reports?active_only=1"},
		}
		w.Raw(`<div class="mb-8 grid grid-cols-2 gap-4 md:grid-cols-4">`)
		for _, card := range cards {
			w.Raw(`<a class="rounded bg-white p-4 shadow hover:shadow-md"`)
			w.Attr("href", card.href)
			w.Raw(`><div class="text-sm text-gray-500">`)
			w.Text(tr(ctx, card.key))
			w.Raw(`</div><div class="text-2xl font-semibold">`)
			w.Text(card.value)
			w.Raw("</div></a>")
		}
		w.Raw("</div>")

		w.Component(components.Section(tr(ctx, "home.recent_work"), CaseWorkTable(stats.RecentWork, page.CSRFToken, false)))
	}))
}

// ErrorPage renders an error with a link home
func ErrorPage(page components.Page, message string) templ.Component {
	return components.Layout(page, components.Render(func(w *components.Writer) {
		w.Component(components.Paragraph(message))
		w.Component(components.Link("/", tr(w.Ctx(), "nav.home")))
	}))
}
