package handlers

import (
	"net/http"
	"strings"

	"lexium/middleware"
	"lexium/models"
	"lexium/services"
	"lexium/templates/pages"

	"github.com/labstack/echo/v4"
)

var userFormFields = []string{"username", "first_name", "last_name"}

func userInputFromForm(form *pages.FormState) services.UserInput {
	return services.UserInput{
		Username:  form.Get("username"),
		FirstName: form.Get("first_name"),
		LastName:  form.Get("last_name"),
	}
}

// UsersPage lists users, filtered by ?q=
func (h *Handler) UsersPage(c echo.Context) error {
	keyword := strings.TrimSpace(c.QueryParam("q"))
	users, err := services.ListUsers(h.db(c), keyword)
	if err != nil {
		return httpError(c, err)
	}
	if isHTMX(c) {
		return render(c, http.StatusOK, pages.UsersTable(users, middleware.GetCSRFToken(c)))
	}
	return render(c, http.StatusOK, pages.Users(h.page(c, "users.title"), users, keyword))
}

// NewUserPage shows the empty user form
func (h *Handler) NewUserPage(c echo.Context) error {
	return render(c, http.StatusOK, pages.UserForm(h.page(c, "users.new"), pages.NewFormState("/users")))
}

// CreateUser stores a new user
func (h *Handler) CreateUser(c echo.Context) error {
	form := readForm(c, "/users", userFormFields)
	user, err := services.CreateUser(h.db(c), userInputFromForm(form))
	if err == nil {
		return h.redirect(c, "/users", middleware.FlashSuccess, t(c, "flash.user_saved", map[string]interface{}{"name": user.FullName()}))
	}
	if formError(form, err) {
		return render(c, http.StatusUnprocessableEntity, pages.UserForm(h.page(c, "users.new"), form))
	}
	return httpError(c, err)
}

// EditUserPage shows the form of an existing user
func (h *Handler) EditUserPage(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user, err := services.GetUser(h.db(c), id)
	if err != nil {
		return httpError(c, err)
	}
	form := pages.NewFormState("/users/" + idValue(id))
	form.IsEdit = true
	form.Set("username", user.Username)
	form.Set("first_name", user.FirstName)
	form.Set("last_name", user.LastName)
	return render(c, http.StatusOK, pages.UserForm(h.page(c, "users.edit"), form))
}

// UpdateUser saves an existing user
func (h *Handler) UpdateUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	form := readForm(c, "/users/"+idValue(id), userFormFields)
	form.IsEdit = true
	user, err := services.UpdateUser(h.db(c), id, userInputFromForm(form))
	if err == nil {
		return h.redirect(c, "/users", middleware.FlashSuccess, t(c, "flash.user_saved", map[string]interface{}{"name": user.FullName()}))
	}
	if formError(form, err) {
		return render(c, http.StatusUnprocessableEntity, pages.UserForm(h.page(c, "users.edit"), form))
	}
	return httpError(c, err)
}

// DeleteUser removes a user who has not recorded any work
func (h *Handler) DeleteUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := services.DeleteUser(h.db(c), id); err != nil {
		if isConflict(err) {
			return h.redirect(c, "/users", middleware.FlashError, t(c, "flash.user_has_work"))
		}
		return httpError(c, err)
	}
	return h.redirect(c, "/users", middleware.FlashSuccess, t(c, "flash.deleted"))
}

var companyFormFields = []string{"name", "short_name", "tax_number"}

func companyInputFromForm(form *pages.FormState) services.OutsourceCompanyInput {
	return services.OutsourceCompanyInput{
		Name:      form.Get("name"),
		ShortName: form.Get("short_name"),
		TaxNumber: services.NormalizeTaxNumber(form.Get("tax_number")),
	}
}

func companyFormFromModel(action string, company *models.OutsourceCompany) *pages.FormState {
	form := pages.NewFormState(action)
	form.IsEdit = true
	form.Set("name", company.Name)
	form.Set("short_name", company.ShortName)
	if company.TaxNumber != nil {
		form.Set("tax_number", *company.TaxNumber)
	}
	return form
}

// OutsourceCompaniesPage lists outsource companies, filtered by ?q=
func (h *Handler) OutsourceCompaniesPage(c echo.Context) error {
	keyword := strings.TrimSpace(c.QueryParam("q"))
	companies, err := services.ListOutsourceCompanies(h.db(c), keyword)
	if err != nil {
		return httpError(c, err)
	}
	if isHTMX(c) {
		return render(c, http.StatusOK, pages.OutsourceCompaniesTable(companies, middleware.GetCSRFToken(c)))
	}
	return render(c, http.StatusOK, pages.OutsourceCompanies(h.page(c, "outsource_companies.title"), companies, keyword))
}

// NewOutsourceCompanyPage shows the empty company form
func (h *Handler) NewOutsourceCompanyPage(c echo.Context) error {
	form := pages.NewFormState("/outsource-companies")
	return render(c, http.StatusOK, pages.OutsourceCompanyForm(h.page(c, "outsource_companies.new"), form))
}

// CreateOutsourceCompany stores a new outsource company
func (h *Handler) CreateOutsourceCompany(c echo.Context) error {
	form := readForm(c, "/outsource-companies", companyFormFields)
	company, err := services.CreateOutsourceCompany(h.db(c), companyInputFromForm(form))
	if err == nil {
		return h.redirect(c, "/outsource-companies", middleware.FlashSuccess,
			t(c, "flash.company_saved", map[string]interface{}{"name": company.Name}))
	}
	if formError(form, err) {
		return render(c, http.StatusUnprocessableEntity, pages.OutsourceCompanyForm(h.page(c, "outsource_companies.new"), form))
	}
	return httpError(c, err)
}

// EditOutsourceCompanyPage shows the form of an existing company
func (h *Handler) EditOutsourceCompanyPage(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	company, err := services.GetOutsourceCompany(h.db(c), id)
	if err != nil {
		return httpError(c, err)
	}
	form := companyFormFromModel("/outsource-companies/"+idValue(id), company)
	return render(c, http.StatusOK, pages.OutsourceCompanyForm(h.page(c, "outsource_companies.edit"), form))
}

// UpdateOutsourceCompany saves an existing company. Renaming the short name
// does not renumber existing cases.
func (h *Handler) UpdateOutsourceCompany(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	form := readForm(c, "/outsource-companies/"+idValue(id), companyFormFields)
	form.IsEdit = true
	company, err := services.UpdateOutsourceCompany(h.db(c), id, companyInputFromForm(form))
	if err == nil {
		return h.redirect(c, "/outsource-companies", middleware.FlashSuccess,
			t(c, "flash.company_saved", map[string]interface{}{"name": company.Name}))
	}
	if formError(form, err) {
		return render(c, http.StatusUnprocessableEntity, pages.OutsourceCompanyForm(h.page(c, "outsource_companies.edit"), form))
	}
	return httpError(c, err)
}

// DeleteOutsourceCompany removes a company no case refers to
func (h *Handler) DeleteOutsourceCompany(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := services.DeleteOutsourceCompany(h.db(c), id); err != nil {
		if isConflict(err) {
			return h.redirect(c, "/outsource-companies", middleware.FlashError, t(c, "flash.company_has_cases"))
		}
		return httpError(c, err)
	}
	return h.redirect(c, "/outsource-companies", middleware.FlashSuccess, t(c, "flash.deleted"))
}

// CaseTypesPage lists all case types
func (h *Handler) CaseTypesPage(c echo.Context) error {
	types, err := services.ListCaseTypes(h.db(c), false)
	if err != nil {
		return httpError(c, err)
	}
	return render(c, http.StatusOK, pages.CaseTypes(h.page(c, "case_types.title"), types))
}

// ToggleCaseType flips the active flag of a case type
func (h *Handler) ToggleCaseType(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	current, err := services.GetCaseType(h.db(c), id)
	if err != nil {
		return httpError(c, err)
	}
	if _, err := services.SetCaseTypeActive(h.db(c), id, !current.IsActive); err != nil {
		return httpError(c, err)
	}
	return h.redirect(c, "/case-types", middleware.FlashSuccess, t(c, "flash.case_type_saved", map[string]interface{}{"name": current.Name}))
}
