package handlers

import (
	"net/http"
	"strings"
	"time"

	"lexium/middleware"
	"lexium/models"
	"lexium/services"
	"lexium/templates/pages"

	"github.com/labstack/echo/v4"
)

// parseDateField parses an optional date and reports errors against field
func parseDateField(field, value string) (*time.Time, error) {
	d, err := services.ParseOptionalDate(value)
	if err != nil {
		return nil, &services.ValidationError{Field: field, Message: "invalid date format: expected YYYY-MM-DD"}
	}
	return d, nil
}

var clientFormFields = []string{"client_type", "client_code", "name", "tax_number", "birth_date", "address", "headquarters"}

func clientFormFromModel(action string, c *models.Client) *pages.FormState {
	form := pages.NewFormState(action)
	form.IsEdit = true
	form.Set("client_type", string(c.ClientType))
	form.Set("client_code", c.ClientCode)
	form.Set("name", c.Name)
	if c.TaxNumber != nil {
		form.Set("tax_number", *c.TaxNumber)
	}
	if c.Person != nil {
		if c.Person.BirthDate != nil {
			form.Set("birth_date", c.Person.BirthDate.Format(services.DateLayout))
		}
		form.Set("address", c.Person.Address)
	}
	if c.Company != nil {
		form.Set("headquarters", c.Company.Headquarters)
	}
	return form
}

func clientInputFromForm(form *pages.FormState) (services.ClientInput, error) {
	birth, err := parseDateField("birth_date", form.Get("birth_date"))
	if err != nil {
		return services.ClientInput{}, err
	}
	in := services.ClientInput{
		ClientType:   models.ClientType(strings.ToUpper(form.Get("client_type"))),
		ClientCode:   form.Get("client_code"),
		Name:         form.Get("name"),
		TaxNumber:    services.NormalizeTaxNumber(form.Get("tax_number")),
		BirthDate:    birth,
		Address:      form.Get("address"),
		Headquarters: form.Get("headquarters"),
	}
	return in, nil
}

// readForm copies the named fields of the posted form
func readForm(c echo.Context, action string, fields []string) *pages.FormState {
	form := pages.NewFormState(action)
	for _, name := range fields {
		form.Set(name, strings.TrimSpace(c.FormValue(name)))
	}
	return form
}

// ClientsPage lists clients, filtered by ?q=
func (h *Handler) ClientsPage(c echo.Context) error {
	keyword := strings.TrimSpace(c.QueryParam("q"))
	clients, err := services.ListClients(h.db(c), keyword)
	if err != nil {
		return httpError(c, err)
	}
	if isHTMX(c) {
		return render(c, http.StatusOK, pages.ClientsTable(clients, middleware.GetCSRFToken(c)))
	}
	return render(c, http.StatusOK, pages.Clients(h.page(c, "clients.title"), clients, keyword))
}

// NewClientPage shows the empty client form
func (h *Handler) NewClientPage(c echo.Context) error {
	form := pages.NewFormState("/clients")
	form.Set("client_type", string(models.ClientTypePerson))
	return render(c, http.StatusOK, pages.ClientForm(h.page(c, "clients.new"), form))
}

// CreateClient stores a new client
func (h *Handler) CreateClient(c echo.Context) error {
	form := readForm(c, "/clients", clientFormFields)
	in, err := clientInputFromForm(form)
	if err == nil {
		var client *models.Client
		client, err = services.CreateClient(h.db(c), in)
		if err == nil {
			return h.redirect(c, "/clients", middleware.FlashSuccess, t(c, "flash.client_saved", map[string]interface{}{"name": client.Name}))
		}
	}
	if formError(form, err) {
		return render(c, http.StatusUnprocessableEntity, pages.ClientForm(h.page(c, "clients.new"), form))
	}
	return httpError(c, err)
}

// EditClientPage shows the form of an existing client
func (h *Handler) EditClientPage(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	client, err := services.GetClient(h.db(c), id)
	if err != nil {
		return httpError(c, err)
	}
	form := clientFormFromModel("/clients/"+idValue(id), client)
	return render(c, http.StatusOK, pages.ClientForm(h.page(c, "clients.edit"), form))
}

// UpdateClient saves an existing client
func (h *Handler) UpdateClient(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	form := readForm(c, "/clients/"+idValue(id), clientFormFields)
	form.IsEdit = true
	in, err := clientInputFromForm(form)
	if err == nil {
		var client *models.Client
		client, err = services.UpdateClient(h.db(c), id, in)
		if err == nil {
			return h.redirect(c, "/clients", middleware.FlashSuccess, t(c, "flash.client_saved", map[string]interface{}{"name": client.Name}))
		}
	}
	if formError(form, err) {
		return render(c, http.StatusUnprocessableEntity, pages.ClientForm(h.page(c, "clients.edit"), form))
	}
	return httpError(c, err)
}

// DeleteClient removes a client. Clients with cases are kept and the
// user is told why.
func (h *Handler) DeleteClient(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := services.DeleteClient(h.db(c), id); err != nil {
		if isConflict(err) {
			return h.redirect(c, "/clients", middleware.FlashError, t(c, "flash.client_has_cases"))
		}
		return httpError(c, err)
	}
	return h.redirect(c, "/clients", middleware.FlashSuccess, t(c, "flash.deleted"))
}
