package pages

import (
	"lexium/models"
	"lexium/templates/components"

	"github.com/a-h/templ"
)

// Users renders the user list
func Users(page components.Page, users []models.User, keyword string) templ.Component {
	return components.Layout(page, components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		w.Component(components.Toolbar(
			components.FilterForm("/users", components.Field{Name: "q", Type: "search", Value: keyword, Label: tr(ctx, "actions.search")}),
			components.ButtonLink("/users/new", tr(ctx, "users.new")),
		))
		w.Component(UsersTable(users, page.CSRFToken))
	}))
}

// UsersTable is the swappable result table of the user list
func UsersTable(users []models.User, csrfToken string) templ.Component {
	return components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		table := components.Table{
			ID:      "results",
			Headers: []string{tr(ctx, "users.fields.username"), tr(ctx, "users.fields.name"), ""},
			Empty:   tr(ctx, "users.empty"),
		}
		for _, u := range users {
			table.Rows = append(table.Rows, []templ.Component{
				text(u.Username),
				text(u.FullName()),
				components.Actions(
					components.Link("/case-work?user_id="+idString(u.ID), tr(ctx, "nav.case_work")),
					components.Link(idPath("/users", u.ID, "/edit"), tr(ctx, "actions.edit")),
					components.DeleteButton(idPath("/users", u.ID, "/delete"), csrfToken),
				),
			})
		}
		w.Component(components.DataTable(table))
	})
}

// UserForm renders the create and edit form of a user
func UserForm(page components.Page, form *FormState) templ.Component {
	return components.Layout(page, components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		username := field(form, "username", tr(ctx, "users.fields.username"))
		username.Required = true
		last := field(form, "last_name", tr(ctx, "users.fields.last_name"))
		last.Required = true
		first := field(form, "first_name", tr(ctx, "users.fields.first_name"))
		first.Required = true
		w.Component(components.Form(form.Action, page.CSRFToken, tr(ctx, "actions.save"), form.Error, username, last, first))
	}))
}

// OutsourceCompanies renders the outsource company list
func OutsourceCompanies(page components.Page, companies []models.OutsourceCompany, keyword string) templ.Component {
	return components.Layout(page, components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		w.Component(components.Toolbar(
			components.FilterForm("/outsource-companies", components.Field{Name: "q", Type: "search", Value: keyword, Label: tr(ctx, "actions.search")}),
			components.ButtonLink("/outsource-companies/new", tr(ctx, "outsource_companies.new")),
		))
		w.Component(OutsourceCompaniesTable(companies, page.CSRFToken))
	}))
}

// OutsourceCompaniesTable is the swappable result table of the company list
func OutsourceCompaniesTable(companies []models.OutsourceCompany, csrfToken string) templ.Component {
	return components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		table := components.Table{
			ID: "results",
			Headers: []string{
				tr(ctx, "outsource_companies.fields.short_name"),
				tr(ctx, "outsource_companies.fields.name"),
				tr(ctx, "outsource_companies.fields.tax_number"),
				"",
			},
			Empty: tr(ctx, "outsource_companies.empty"),
		}
		for _, c := range companies {
			tax := ""
			if c.TaxNumber != nil {
				tax = *c.TaxNumber
			}
			table.Rows = append(table.Rows, []templ.Component{
				text(c.ShortName),
				text(c.Name),
				text(tax),
				components.Actions(
					components.Link(idPath("/outsource-companies", c.ID, "/edit"), tr(ctx, "actions.edit")),
					components.DeleteButton(idPath("/outsource-companies", c.ID, "/delete"), csrfToken),
				),
			})
		}
		w.Component(components.DataTable(table))
	})
}

// OutsourceCompanyForm renders the create and edit form of an outsource company
func OutsourceCompanyForm(page components.Page, form *FormState) templ.Component {
	return components.Layout(page, components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		name := field(form, "name", tr(ctx, "outsource_companies.fields.name"))
		name.Required = true
		short := field(form, "short_name", tr(ctx, "outsource_companies.fields.short_name"))
		short.Required = true
		tax := field(form, "tax_number", tr(ctx, "outsource_companies.fields.tax_number"))
		tax.Placeholder = tr(ctx, "common.tax_number_hint")
		w.Component(components.Form(form.Action, page.CSRFToken, tr(ctx, "actions.save"), form.Error, name, short, tax))
	}))
}

// CaseTypes renders the case type list with activation toggles
func CaseTypes(page components.Page, types []models.CaseType) templ.Component {
	return components.Layout(page, components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		table := components.Table{
			ID:      "results",
			Headers: []string{tr(ctx, "case_types.fields.name"), tr(ctx, "case_types.fields.is_active"), ""},
			Empty:   tr(ctx, "case_types.empty"),
		}
		for _, t := range types {
			status := components.Badge(tr(ctx, "cases.inactive"), "gray")
			label := tr(ctx, "case_types.activate")
			if t.IsActive {
				status = components.Badge(tr(ctx, "cases.active"), "green")
				label = tr(ctx, "case_types.deactivate")
			}
			table.Rows = append(table.Rows, []templ.Component{
				text(t.Name),
				status,
				components.PostButton(idPath("/case-types", t.ID, "/toggle"), page.CSRFToken, label),
			})
		}
		w.Component(components.DataTable(table))
	}))
}
