package pages

import (
	"lexium/models"
	"lexium/templates/components"

	"github.com/a-h/templ"
)

// CaseListFilter is the current filter of the case list
type CaseListFilter struct {
	Keyword    string
	ClientID   uint
	ActiveOnly bool
}

// Cases renders the case list
func Cases(page components.Page, cases []models.Case, clients []models.Client, filter CaseListFilter) templ.Component {
	return components.Layout(page, components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		clientField := components.Field{Name: "client_id", Label: tr(ctx, "cases.fields.client"), Type: components.FieldSelect}
		clientField.Options = append(clientField.Options, components.Option{Value: "", Label: tr(ctx, "common.all")})
		for _, c := range clients {
			clientField.Options = append(clientField.Options, components.Option{
				Value: idString(c.ID), Label: c.Name, Selected: c.ID == filter.ClientID,
			})
		}

		w.Component(components.Toolbar(
			components.FilterForm("/cases",
				components.Field{
					Name: "q", Type: "search", Value: filter.Keyword, Label: tr(ctx, "actions.search"),
					Placeholder: tr(ctx, "cases.search_placeholder"),
				},
				clientField,
				components.Field{Name: "active_only", Type: components.FieldCheckbox, Label: tr(ctx, "reports.active_only"), Checked: filter.ActiveOnly},
			),
			components.ButtonLink("/cases/new", tr(ctx, "cases.new")),
		))
		w.Component(CasesTable(cases, page.CSRFToken))
	}))
}

// CasesTable is the swappable result table of the case list
func CasesTable(cases []models.Case, csrfToken string) templ.Component {
	return components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		table := components.Table{
			ID: "results",
			Headers: []string{
				tr(ctx, "cases.fields.number"),
				tr(ctx, "cases.fields.name"),
				tr(ctx, "cases.fields.client"),
				tr(ctx, "cases.fields.case_type"),
				tr(ctx, "cases.fields.billing_type"),
				tr(ctx, "cases.fields.rate_amount"),
				tr(ctx, "cases.fields.outsource_company"),
				tr(ctx, "cases.fields.is_active"),
				"",
			},
			Right: []int{5},
			Empty: tr(ctx, "cases.empty"),
		}
		for _, c := range cases {
			caseType := ""
			if c.CaseType != nil {
				caseType = c.CaseType.Name
			}
			company := ""
			if c.IsOutsourced && c.OutsourceCompany != nil {
				company = c.OutsourceCompany.Name
			}
			active := components.Badge(tr(ctx, "cases.inactive"), "gray")
			if c.IsActive {
				active = components.Badge(tr(ctx, "cases.active"), "green")
			}
			table.Rows = append(table.Rows, []templ.Component{
				text(c.Number),
				text(c.Name),
				text(c.Client.Name),
				text(caseType),
				text(tr(ctx, "billing_type."+string(c.BillingType))),
				text(money(c.RateAmount)),
				text(company),
				active,
				components.Actions(
					components.Link("/case-work?case_id="+idString(c.ID), tr(ctx, "nav.case_work")),
					components.Link(idPath("/cases", c.ID, "/edit"), tr(ctx, "actions.edit")),
					components.PostButton(idPath("/cases", c.ID, "/billed"), csrfToken, tr(ctx, "cases.mark_billed")),
					components.DeleteButton(idPath("/cases", c.ID, "/delete"), csrfToken),
				),
			})
		}
		w.Component(components.DataTable(table))
	})
}

// CaseFormOptions are the choices of the case form selects
type CaseFormOptions struct {
	Clients   []models.Client
	Companies []models.OutsourceCompany
	CaseTypes []models.CaseType
}

// CaseForm renders the create and edit form of a case
func CaseForm(page components.Page, form *FormState, opts CaseFormOptions) templ.Component {
	return components.Layout(page, components.Render(func(w *components.Writer) {
		ctx := w.Ctx()

		if number := form.Get("number"); number != "" {
			w.Component(components.Paragraph(tr(ctx, "cases.fields.number") + ": " + number))
		}

		name := field(form, "name", tr(ctx, "cases.fields.name"))
		name.Required = true
		description := field(form, "description", tr(ctx, "cases.fields.description"))
		description.Type = components.FieldTextarea

		client := field(form, "client_id", tr(ctx, "cases.fields.client"))
		client.Type = components.FieldSelect
		client.Required = true
		client.Options = []components.Option{{Value: "", Label: tr(ctx, "common.choose")}}
		for _, c := range opts.Clients {
			id := idString(c.ID)
			client.Options = append(client.Options, components.Option{Value: id, Label: c.ClientCode + " - " + c.Name, Selected: id == form.Get("client_id")})
		}

		caseType := field(form, "case_type_id", tr(ctx, "cases.fields.case_type"))
		caseType.Type = components.FieldSelect
		caseType.Options = []components.Option{{Value: "", Label: tr(ctx, "common.none")}}
		for _, t := range opts.CaseTypes {
			id := idString(t.ID)
			caseType.Options = append(caseType.Options, components.Option{Value: id, Label: t.Name, Selected: id == form.Get("case_type_id")})
		}

		billing := field(form, "billing_type", tr(ctx, "cases.fields.billing_type"))
		billing.Type = components.FieldSelect
		billing.Required = true
		for _, b := range []models.BillingType{models.BillingTypeHourly, models.BillingTypeFixed} {
			billing.Options = append(billing.Options, components.Option{
				Value: string(b), Label: tr(ctx, "billing_type."+string(b)), Selected: string(b) == form.Get("billing_type"),
			})
		}

		rate := field(form, "rate_amount", tr(ctx, "cases.fields.rate_amount"))
		rate.Type = "number"
		rate.Step = "0.01"
		rate.Required = true

		outsourced := field(form, "is_outsourced", tr(ctx, "cases.fields.is_outsourced"))
		outsourced.Type = components.FieldCheckbox
		outsourced.Checked = form.Checked("is_outsourced")

		company := field(form, "outsource_company_id", tr(ctx, "cases.fields.outsource_company"))
		company.Type = components.FieldSelect
		company.Options = []components.Option{{Value: "", Label: tr(ctx, "common.none")}}
		for _, c := range opts.Companies {
			id := idString(c.ID)
			company.Options = append(company.Options, components.Option{Value: id, Label: c.ShortName + " - " + c.Name, Selected: id == form.Get("outsource_company_id")})
		}

		active := field(form, "is_active", tr(ctx, "cases.fields.is_active"))
		active.Type = components.FieldCheckbox
		active.Checked = form.Checked("is_active")

		w.Component(components.Form(form.Action, page.CSRFToken, tr(ctx, "actions.save"), form.Error,
			name, description, client, caseType, billing, rate, outsourced, company, active))
	}))
}
