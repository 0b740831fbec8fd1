package pages

import (
	"strconv"

	"lexium/services"
	"lexium/templates/components"

	"github.com/a-h/templ"
)

var weekdayKeys = []string{
	"calendar.weekdays.mon", "calendar.weekdays.tue", "calendar.weekdays.wed", "calendar.weekdays.thu",
	"calendar.weekdays.fri", "calendar.weekdays.sat", "calendar.weekdays.sun",
}

// Calendar renders a month of work entries, one cell per day
func Calendar(page components.Page, month services.CalendarMonth) templ.Component {
	return components.Layout(page, components.Render(func(w *components.Writer) {
		ctx := w.Ctx()

		w.Raw(`<div class="mb-4 flex items-center gap-4">`)
		w.Component(components.Link("/calendar?month="+month.Prev().Format(services.MonthLayout), "« "+tr(ctx, "calendar.previous")))
		w.Raw(`<span class="text-lg font-semibold">`)
		w.Textf("%d. %s", month.Month.Year(), tr(ctx, "calendar.months."+strconv.Itoa(int(month.Month.Month()))))
		w.Raw("</span>")
		w.Component(components.Link("/calendar?month="+month.Next().Format(services.MonthLayout), tr(ctx, "calendar.next")+" »"))
		w.Raw(`<span class="ml-auto text-sm text-gray-600">`)
		w.Text(tr(ctx, "calendar.month_total") + ": " + hours(services.SecondsToHours(month.TotalSeconds)))
		w.Raw("</span></div>")

		w.Raw(`<div class="grid grid-cols-7 gap-px rounded bg-gray-200 text-sm shadow">`)
		for _, key := range weekdayKeys {
			w.Raw(`<div class="bg-gray-100 px-2 py-1 font-semibold">`)
			w.Text(tr(ctx, key))
			w.Raw("</div>")
		}
		for _, week := range month.Weeks {
			for _, day := range week {
				if !day.InMonth {
					w.Raw(`<div class="min-h-24 bg-gray-50"></div>`)
					continue
				}
				cls := "min-h-24 bg-white p-1"
				if day.IsToday {
					cls = "min-h-24 bg-blue-50 p-1 ring-2 ring-blue-400"
				}
				w.Raw("<div")
				w.Attr("class", cls)
				w.Attr("data-date", day.DateString)
				w.Raw(`><div class="flex justify-between text-xs text-gray-500"><a`)
				w.Attr("href", "/case-work?from="+day.DateString+"&to="+day.DateString)
				w.Raw(">")
				w.Text(strconv.Itoa(day.Day))
				w.Raw("</a>")
				if day.TotalSeconds > 0 {
					w.Raw("<span>")
					w.Text(hours(services.SecondsToHours(day.TotalSeconds)) + " h")
					w.Raw("</span>")
				}
				w.Raw("</div>")
				for _, cw := range day.Works {
					w.Raw(`<a class="mt-1 block truncate rounded bg-slate-100 px-1 text-xs hover:bg-slate-200"`)
					w.Attr("href", idPath("/case-work", cw.ID, "/edit"))
					w.Attr("title", cw.Description)
					w.Raw(">")
					w.Text(cw.StartTime.Short() + " " + cw.Case.Number + " " + cw.User.Username)
					w.Raw("</a>")
				}
				w.Raw("</div>")
			}
		}
		w.Raw("</div>")
	}))
}
