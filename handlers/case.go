package handlers

import (
	"net/http"
	"strings"

	"lexium/middleware"
	"lexium/models"
	"lexium/services"
	"lexium/templates/pages"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

var caseFormFields = []string{
	"name", "description", "client_id", "case_type_id", "billing_type", "rate_amount",
	"is_outsourced", "outsource_company_id", "is_active",
}

func caseFormFromModel(action string, c *models.Case) *pages.FormState {
	form := pages.NewFormState(action)
	form.IsEdit = true
	form.Set("number", c.Number)
	form.Set("name", c.Name)
	form.Set("description", c.Description)
	form.Set("client_id", idValue(c.ClientID))
	form.Set("case_type_id", optionalIDValue(c.CaseTypeID))
	form.Set("billing_type", string(c.BillingType))
	form.Set("rate_amount", c.RateAmount.StringFixed(2))
	form.Set("is_outsourced", boolValue(c.IsOutsourced))
	form.Set("outsource_company_id", optionalIDValue(c.OutsourceCompanyID))
	form.Set("is_active", boolValue(c.IsActive))
	return form
}

func optionalID(field, value string) (*uint, error) {
	id, err := parseOptionalID(field, value)
	if err != nil || id == 0 {
		return nil, err
	}
	return &id, nil
}

func caseInputFromForm(form *pages.FormState) (services.CaseInput, error) {
	clientID, err := parseOptionalID("client_id", form.Get("client_id"))
	if err != nil {
		return services.CaseInput{}, err
	}
	caseTypeID, err := optionalID("case_type_id", form.Get("case_type_id"))
	if err != nil {
		return services.CaseInput{}, err
	}
	companyID, err := optionalID("outsource_company_id", form.Get("outsource_company_id"))
	if err != nil {
		return services.CaseInput{}, err
	}

	rate := decimal.Zero
	if raw := strings.ReplaceAll(form.Get("rate_amount"), ",", "."); raw != "" {
		rate, err = decimal.NewFromString(raw)
		if err != nil {
			return services.CaseInput{}, &services.ValidationError{Field: "rate_amount", Message: "must be a number"}
		}
	}

	return services.CaseInput{
		Name:               form.Get("name"),
		Description:        form.Get("description"),
		ClientID:           clientID,
		BillingType:        models.BillingType(strings.ToUpper(form.Get("billing_type"))),
		RateAmount:         rate,
		IsOutsourced:       form.Checked("is_outsourced"),
		OutsourceCompanyID: companyID,
		CaseTypeID:         caseTypeID,
		IsActive:           form.Checked("is_active"),
	}, nil
}

func (h *Handler) caseFormOptions(c echo.Context) (pages.CaseFormOptions, error) {
	var opts pages.CaseFormOptions
	var err error
	if opts.Clients, err = services.ListClients(h.db(c), ""); err != nil {
		return opts, err
	}
	if opts.Companies, err = services.ListOutsourceCompanies(h.db(c), ""); err != nil {
		return opts, err
	}
	if opts.CaseTypes, err = services.ListCaseTypes(h.db(c), true); err != nil {
		return opts, err
	}
	return opts, nil
}

func (h *Handler) renderCaseForm(c echo.Context, status int, titleKey string, form *pages.FormState) error {
	opts, err := h.caseFormOptions(c)
	if err != nil {
		return httpError(c, err)
	}
	return render(c, status, pages.CaseForm(h.page(c, titleKey), form, opts))
}

// CasesPage lists cases with keyword, client and active filters
func (h *Handler) CasesPage(c echo.Context) error {
	clientID, _ := parseOptionalID("client_id", c.QueryParam("client_id"))
	filter := pages.CaseListFilter{
		Keyword:    strings.TrimSpace(c.QueryParam("q")),
		ClientID:   clientID,
		ActiveOnly: checkbox(c.QueryParam("active_only")),
	}
	cases, err := services.ListCases(h.db(c), services.CaseFilters{
		Keyword:    filter.Keyword,
		ClientID:   filter.ClientID,
		ActiveOnly: filter.ActiveOnly,
	})
	if err != nil {
		return httpError(c, err)
	}
	if isHTMX(c) {
		return render(c, http.StatusOK, pages.CasesTable(cases, middleware.GetCSRFToken(c)))
	}
	clients, err := services.ListClients(h.db(c), "")
	if err != nil {
		return httpError(c, err)
	}
	return render(c, http.StatusOK, pages.Cases(h.page(c, "cases.title"), cases, clients, filter))
}

// NewCasePage shows the empty case form
func (h *Handler) NewCasePage(c echo.Context) error {
	form := pages.NewFormState("/cases")
	form.Set("billing_type", string(models.BillingTypeHourly))
	form.Set("is_active", "1")
	form.Set("client_id", c.QueryParam("client_id"))
	return h.renderCaseForm(c, http.StatusOK, "cases.new", form)
}

// CreateCase stores and numbers a new case
func (h *Handler) CreateCase(c echo.Context) error {
	form := readForm(c, "/cases", caseFormFields)
	in, err := caseInputFromForm(form)
	if err == nil {
		var created *models.Case
		created, err = services.CreateCase(h.db(c), in)
		if err == nil {
			return h.redirect(c, "/cases", middleware.FlashSuccess, t(c, "flash.case_created", map[string]interface{}{"number": created.Number}))
		}
	}
	if formError(form, err) {
		return h.renderCaseForm(c, http.StatusUnprocessableEntity, "cases.new", form)
	}
	return httpError(c, err)
}

// EditCasePage shows the form of an existing case
func (h *Handler) EditCasePage(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	existing, err := services.GetCase(h.db(c), id)
	if err != nil {
		return httpError(c, err)
	}
	return h.renderCaseForm(c, http.StatusOK, "cases.edit", caseFormFromModel("/cases/"+idValue(id), existing))
}

// UpdateCase saves an existing case
func (h *Handler) UpdateCase(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	form := readForm(c, "/cases/"+idValue(id), caseFormFields)
	form.IsEdit = true
	in, err := caseInputFromForm(form)
	if err == nil {
		var updated *models.Case
		updated, err = services.UpdateCase(h.db(c), id, in)
		if err == nil {
			return h.redirect(c, "/cases", middleware.FlashSuccess, t(c, "flash.case_saved", map[string]interface{}{"number": updated.Number}))
		}
	}
	if formError(form, err) {
		return h.renderCaseForm(c, http.StatusUnprocessableEntity, "cases.edit", form)
	}
	return httpError(c, err)
}

// DeleteCase removes a case and its work entries
func (h *Handler) DeleteCase(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := services.DeleteCase(h.db(c), id); err != nil {
		return httpError(c, err)
	}
	return h.redirect(c, "/cases", middleware.FlashSuccess, t(c, "flash.deleted"))
}

// MarkCaseBilled marks all unbilled work of a case as billed
func (h *Handler) MarkCaseBilled(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	n, err := services.SetCaseWorkBilled(h.db(c), id, true)
	if err != nil {
		return httpError(c, err)
	}
	return h.redirect(c, "/cases", middleware.FlashSuccess, t(c, "flash.marked_billed", map[string]interface{}{"count": n}))
}
