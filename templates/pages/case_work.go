package pages

import (
	"net/url"

	"lexium/models"
	"lexium/services"
	"lexium/templates/components"

	"github.com/a-h/templ"
)

// CaseWorkListFilter is the current filter of the work entry list, as submitted
type CaseWorkListFilter struct {
	Keyword string
	CaseID  uint
	UserID  uint
	From    string
	To      string
	Billed  string // "", "yes" or "no"
}

// Query encodes the filter for links such as the PDF export
func (f CaseWorkListFilter) Query() string {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("q", f.Keyword)
	set("case_id", idString(f.CaseID))
	set("user_id", idString(f.UserID))
	set("from", f.From)
	set("to", f.To)
	set("billed", f.Billed)
	return v.Encode()
}

// CaseWorkOptions are the choices of the case and user selects
type CaseWorkOptions struct {
	Cases []models.Case
	Users []models.User
}

func caseOptions(cases []models.Case, selected string, first components.Option) []components.Option {
	opts := []components.Option{first}
	for _, c := range cases {
		id := idString(c.ID)
		opts = append(opts, components.Option{Value: id, Label: c.Number + " - " + c.Name, Selected: id == selected})
	}
	return opts
}

func userOptions(users []models.User, selected string, first components.Option) []components.Option {
	opts := []components.Option{first}
	for _, u := range users {
		id := idString(u.ID)
		opts = append(opts, components.Option{Value: id, Label: u.FullName() + " (" + u.Username + ")", Selected: id == selected})
	}
	return opts
}

// CaseWorkList renders the work entries with their filters
func CaseWorkList(page components.Page, works []models.CaseWork, opts CaseWorkOptions, filter CaseWorkListFilter) templ.Component {
	return components.Layout(page, components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		all := components.Option{Value: "", Label: tr(ctx, "common.all")}

		billed := components.Field{Name: "billed", Label: tr(ctx, "case_work.fields.billed"), Type: components.FieldSelect}
		for _, o := range []struct{ value, key string }{{"", "common.all"}, {"yes", "common.yes"}, {"no", "common.no"}} {
			billed.Options = append(billed.Options, components.Option{Value: o.value, Label: tr(ctx, o.key), Selected: o.value == filter.Billed})
		}

		pdfLink := "/case-work/pdf"
		if q := filter.Query(); q != "" {
			pdfLink += "?" + q
		}

		w.Component(components.Toolbar(
			components.FilterForm("/case-work",
				components.Field{Name: "q", Type: "search", Value: filter.Keyword, Label: tr(ctx, "actions.search")},
				components.Field{Name: "case_id", Label: tr(ctx, "case_work.fields.case"), Type: components.FieldSelect,
					Options: caseOptions(opts.Cases, idString(filter.CaseID), all)},
				components.Field{Name: "user_id", Label: tr(ctx, "case_work.fields.user"), Type: components.FieldSelect,
					Options: userOptions(opts.Users, idString(filter.UserID), all)},
				components.Field{Name: "from", Type: "date", Value: filter.From, Label: tr(ctx, "common.from")},
				components.Field{Name: "to", Type: "date", Value: filter.To, Label: tr(ctx, "common.to")},
				billed,
			),
			components.ButtonLink("/case-work/new", tr(ctx, "case_work.new")),
			components.Link(pdfLink, tr(ctx, "actions.export_pdf")),
		))
		w.Component(CaseWorkTable(works, page.CSRFToken, true))
	}))
}

// CaseWorkTable lists work entries with a total. Actions are left out of the
// PDF rendition.
func CaseWorkTable(works []models.CaseWork, csrfToken string, withActions bool) templ.Component {
	return components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		table := components.Table{
			ID: "results",
			Headers: []string{
				tr(ctx, "case_work.fields.date"),
				tr(ctx, "case_work.fields.time"),
				tr(ctx, "case_work.fields.hours"),
				tr(ctx, "case_work.fields.user"),
				tr(ctx, "case_work.fields.case"),
				tr(ctx, "case_work.fields.client"),
				tr(ctx, "case_work.fields.description"),
				tr(ctx, "case_work.fields.billed"),
			},
			Right: []int{2},
			Empty: tr(ctx, "case_work.empty"),
		}
		if withActions {
			table.Headers = append(table.Headers, "")
		}

		var total int64
		for _, cw := range works {
			total += cw.DurationSeconds
			billed := components.Badge(tr(ctx, "case_work.unbilled"), "yellow")
			if cw.Billed {
				billed = components.Badge(tr(ctx, "case_work.billed"), "green")
			}
			row := []templ.Component{
				text(cw.Date.Format(services.DateLayout)),
				text(cw.StartTime.Short() + " - " + cw.EndTime.Short()),
				text(hours(services.SecondsToHours(cw.DurationSeconds))),
				text(cw.User.FullName()),
				text(cw.Case.Number + " " + cw.Case.Name),
				text(cw.Case.Client.Name),
				text(cw.Description),
				billed,
			}
			if withActions {
				row = append(row, components.Actions(
					components.Link(idPath("/case-work", cw.ID, "/edit"), tr(ctx, "actions.edit")),
					components.DeleteButton(idPath("/case-work", cw.ID, "/delete"), csrfToken),
				))
			}
			table.Rows = append(table.Rows, row)
		}
		table.Footer = []templ.Component{
			text(tr(ctx, "reports.total")), text(""), text(hours(services.SecondsToHours(total))),
		}
		w.Component(components.DataTable(table))
	})
}

// CaseWorkForm renders the create and edit form of a work entry
func CaseWorkForm(page components.Page, form *FormState, opts CaseWorkOptions) templ.Component {
	return components.Layout(page, components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		choose := components.Option{Value: "", Label: tr(ctx, "common.choose")}

		user := field(form, "user_id", tr(ctx, "case_work.fields.user"))
		user.Type = components.FieldSelect
		user.Required = true
		user.Options = userOptions(opts.Users, form.Get("user_id"), choose)

		kase := field(form, "case_id", tr(ctx, "case_work.fields.case"))
		kase.Type = components.FieldSelect
		kase.Required = true
		kase.Options = caseOptions(opts.Cases, form.Get("case_id"), choose)

		date := field(form, "date", tr(ctx, "case_work.fields.date"))
		date.Type = "date"
		date.Required = true
		start := field(form, "start_time", tr(ctx, "case_work.fields.start_time"))
		start.Type = "time"
		start.Required = true
		end := field(form, "end_time", tr(ctx, "case_work.fields.end_time"))
		end.Type = "time"
		end.Required = true

		description := field(form, "description", tr(ctx, "case_work.fields.description"))
		description.Type = components.FieldTextarea

		billed := field(form, "billed", tr(ctx, "case_work.fields.billed"))
		billed.Type = components.FieldCheckbox
		billed.Checked = form.Checked("billed")

		w.Component(components.Form(form.Action, page.CSRFToken, tr(ctx, "actions.save"), form.Error,
			user, kase, date, start, end, description, billed))
	}))
}
