package pages

import (
	"lexium/models"
	"lexium/templates/components"

	"github.com/a-h/templ"
)

// Clients renders the client list with its search box
func Clients(page components.Page, clients []models.Client, keyword string) templ.Component {
	return components.Layout(page, components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		w.Component(components.Toolbar(
			components.FilterForm("/clients", components.Field{
				Name: "q", Type: "search", Value: keyword, Label: tr(ctx, "actions.search"),
				Placeholder: tr(ctx, "clients.search_placeholder"),
			}),
			components.ButtonLink("/clients/new", tr(ctx, "clients.new")),
		))
		w.Component(ClientsTable(clients, page.CSRFToken))
	}))
}

// ClientsTable is the swappable result table of the client list
func ClientsTable(clients []models.Client, csrfToken string) templ.Component {
	return components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		table := components.Table{
			ID: "results",
			Headers: []string{
				tr(ctx, "clients.fields.client_code"),
				tr(ctx, "clients.fields.name"),
				tr(ctx, "clients.fields.client_type"),
				tr(ctx, "clients.fields.tax_number"),
				tr(ctx, "clients.fields.address"),
				"",
			},
			Empty: tr(ctx, "clients.empty"),
		}
		for _, c := range clients {
			tax := ""
			if c.TaxNumber != nil {
				tax = *c.TaxNumber
			}
			address := ""
			switch {
			case c.Person != nil:
				address = c.Person.Address
			case c.Company != nil:
				address = c.Company.Headquarters
			}
			table.Rows = append(table.Rows, []templ.Component{
				text(c.ClientCode),
				text(c.Name),
				text(tr(ctx, "client_type."+string(c.ClientType))),
				text(tax),
				text(address),
				components.Actions(
					components.Link("/cases?client_id="+idString(c.ID), tr(ctx, "nav.cases")),
					components.Link(idPath("/clients", c.ID, "/edit"), tr(ctx, "actions.edit")),
					components.DeleteButton(idPath("/clients", c.ID, "/delete"), csrfToken),
				),
			})
		}
		w.Component(components.DataTable(table))
	})
}

// ClientForm renders the create and edit form of a client
func ClientForm(page components.Page, form *FormState) templ.Component {
	return components.Layout(page, components.Render(func(w *components.Writer) {
		ctx := w.Ctx()
		clientType := form.Get("client_type")
		if clientType == "" {
			clientType = string(models.ClientTypePerson)
		}

		typeField := field(form, "client_type", tr(ctx, "clients.fields.client_type"))
		typeField.Type = components.FieldSelect
		typeField.Required = true
		for _, t := range []models.ClientType{models.ClientTypePerson, models.ClientTypeCompany} {
			typeField.Options = append(typeField.Options, components.Option{
				Value: string(t), Label: tr(ctx, "client_type."+string(t)), Selected: string(t) == clientType,
			})
		}

		code := field(form, "client_code", tr(ctx, "clients.fields.client_code"))
		code.Required = true
		name := field(form, "name", tr(ctx, "clients.fields.name"))
		name.Required = true
		tax := field(form, "tax_number", tr(ctx, "clients.fields.tax_number"))
		tax.Placeholder = tr(ctx, "common.tax_number_hint")

		birth := field(form, "birth_date", tr(ctx, "clients.fields.birth_date"))
		birth.Type = "date"
		birth.Group = string(models.ClientTypePerson)
		address := field(form, "address", tr(ctx, "clients.fields.address"))
		address.Group = string(models.ClientTypePerson)
		hq := field(form, "headquarters", tr(ctx, "clients.fields.headquarters"))
		hq.Group = string(models.ClientTypeCompany)

		w.Component(components.Form(form.Action, page.CSRFToken, tr(ctx, "actions.save"), form.Error,
			typeField, code, name, tax, birth, address, hq))
		w.Component(components.ClientTypeSwitch())
	}))
}
