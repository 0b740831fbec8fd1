package pages

import (
	"strconv"

	"lexium/services"
	"lexium/templates/components"

	"github.com/a-h/templ"
)

func reportQuery(activeOnly bool) string {
	if activeOnly {
		return "?active_only=1"
	}
	return ""
}

// Reports renders the three aggregate reports
func Reports(page components.Page, reports *services.Reports) templ.Component {
	return components.Layout(page, components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		q := reportQuery(reports.Filter.ActiveOnly)

		w.Component(components.Toolbar(
			components.FilterForm("/reports", components.Field{
				Name: "active_only", Type: components.FieldCheckbox,
				Label: tr(ctx, "reports.active_only"), Checked: reports.Filter.ActiveOnly,
			}),
			components.ButtonLink("/reports/export.xlsx"+q, tr(ctx, "actions.export_xlsx")),
		))

		w.Raw(`<div id="results">`)
		for _, name := range services.ReportNames {
			w.Component(components.Section(tr(ctx, "reports.titles."+string(name)), components.Render(func(w *components.Writer) {
				w.Raw(`<div class="mb-2 text-right">`)
				w.Component(components.Link("/reports/"+string(name)+"/pdf"+q, tr(ctx, "actions.export_pdf")))
				w.Raw("</div>")
				w.Component(ReportTable(name, reports))
			})))
		}
		w.Raw("</div>")
	}))
}

// ReportTable renders one report; the same table is used for the PDF export
func ReportTable(name services.ReportName, reports *services.Reports) templ.Component {
	switch name {
	case services.ReportHoursPerCase:
		return hoursPerCaseTable(reports.HoursPerCase)
	case services.ReportHoursPerUser:
		return hoursPerUserTable(reports.HoursPerUser)
	case services.ReportUnbilledPerCase:
		return unbilledTable(reports.UnbilledPerCase)
	}
	return templ.NopComponent
}

func hoursPerCaseTable(rows []services.CaseHoursRow) templ.Component {
	return components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		table := components.Table{
			Headers: []string{
				tr(ctx, "reports.columns.number"),
				tr(ctx, "reports.columns.case"),
				tr(ctx, "reports.columns.client"),
				tr(ctx, "reports.columns.total_hours"),
			},
			Right: []int{3},
			Empty: tr(ctx, "reports.empty"),
		}
		var total int64
		for _, r := range rows {
			total += r.TotalSeconds
			table.Rows = append(table.Rows, []templ.Component{
				text(r.Number), text(r.Name), text(r.ClientName), text(hours(r.TotalHours)),
			})
		}
		table.Footer = []templ.Component{
			text(tr(ctx, "reports.total")), text(""), text(""), text(hours(services.SecondsToHours(total))),
		}
		w.Component(components.DataTable(table))
	})
}

func hoursPerUserTable(rows []services.UserHoursRow) templ.Component {
	return components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		table := components.Table{
			Headers: []string{
				tr(ctx, "reports.columns.username"),
				tr(ctx, "reports.columns.name"),
				tr(ctx, "reports.columns.total_seconds"),
				tr(ctx, "reports.columns.total_hours"),
			},
			Right: []int{2, 3},
			Empty: tr(ctx, "reports.empty"),
		}
		for _, r := range rows {
			table.Rows = append(table.Rows, []templ.Component{
				text(r.Username), text(r.FullName()),
				text(strconv.FormatInt(r.TotalSeconds, 10)), text(hours(r.TotalHours())),
			})
		}
		w.Component(components.DataTable(table))
	})
}

func unbilledTable(rows []services.UnbilledRow) templ.Component {
	return components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		table := components.Table{
			Headers: []string{
				tr(ctx, "reports.columns.number"),
				tr(ctx, "reports.columns.case"),
				tr(ctx, "reports.columns.client"),
				tr(ctx, "reports.columns.billing_type"),
				tr(ctx, "reports.columns.rate"),
				tr(ctx, "reports.columns.unbilled_hours"),
				tr(ctx, "reports.columns.estimated_amount"),
			},
			Right: []int{4, 5, 6},
			Empty: tr(ctx, "reports.empty"),
		}
		for _, r := range rows {
			table.Rows = append(table.Rows, []templ.Component{
				text(r.Number), text(r.Name), text(r.ClientName),
				text(tr(ctx, "billing_type."+string(r.BillingType))),
				text(money(r.RateAmount)), text(hours(r.UnbilledHours)), text(money(r.EstimatedAmount)),
			})
		}
		table.Footer = []templ.Component{
			text(tr(ctx, "reports.total")), text(""), text(""), text(""), text(""), text(""),
			text(money(services.TotalUnbilled(rows))),
		}
		w.Component(components.DataTable(table))
	})
}
