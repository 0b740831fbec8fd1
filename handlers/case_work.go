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

var caseWorkFormFields = []string{"user_id", "case_id", "date", "start_time", "end_time", "description", "billed"}

func caseWorkFormFromModel(action string, w *models.CaseWork) *pages.FormState {
	form := pages.NewFormState(action)
	form.IsEdit = true
	form.Set("user_id", idValue(w.UserID))
	form.Set("case_id", idValue(w.CaseID))
	form.Set("date", w.Date.Format(services.DateLayout))
	form.Set("start_time", w.StartTime.Short())
	form.Set("end_time", w.EndTime.Short())
	form.Set("description", w.Description)
	form.Set("billed", boolValue(w.Billed))
	return form
}

func caseWorkInputFromForm(form *pages.FormState) (services.CaseWorkInput, error) {
	var in services.CaseWorkInput
	var err error
	if in.UserID, err = parseOptionalID("user_id", form.Get("user_id")); err != nil {
		return in, err
	}
	if in.CaseID, err = parseOptionalID("case_id", form.Get("case_id")); err != nil {
		return in, err
	}
	if in.Date, err = services.ParseDate(form.Get("date")); err != nil {
		return in, err
	}
	if in.StartTime, err = services.ParseTime("start_time", form.Get("start_time")); err != nil {
		return in, err
	}
	if in.EndTime, err = services.ParseTime("end_time", form.Get("end_time")); err != nil {
		return in, err
	}
	in.Description = form.Get("description")
	in.Billed = form.Checked("billed")
	return in, nil
}

// caseWorkFilter reads the list filter from the query string. Malformed
// values are ignored rather than rejected.
func caseWorkFilter(c echo.Context) (pages.CaseWorkListFilter, services.CaseWorkFilters) {
	view := pages.CaseWorkListFilter{
		Keyword: strings.TrimSpace(c.QueryParam("q")),
		From:    c.QueryParam("from"),
		To:      c.QueryParam("to"),
		Billed:  c.QueryParam("billed"),
	}
	view.CaseID, _ = parseOptionalID("case_id", c.QueryParam("case_id"))
	view.UserID, _ = parseOptionalID("user_id", c.QueryParam("user_id"))

	filters := services.CaseWorkFilters{
		CaseID:  view.CaseID,
		UserID:  view.UserID,
		Keyword: view.Keyword,
	}
	if from, err := services.ParseOptionalDate(view.From); err == nil {
		filters.DateFrom = from
	} else {
		view.From = ""
	}
	if to, err := services.ParseOptionalDate(view.To); err == nil {
		filters.DateTo = to
	} else {
		view.To = ""
	}
	switch view.Billed {
	case "yes":
		billed := true
		filters.Billed = &billed
	case "no":
		billed := false
		filters.Billed = &billed
	default:
		view.Billed = ""
	}
	return view, filters
}

func (h *Handler) caseWorkOptions(c echo.Context) (pages.CaseWorkOptions, error) {
	var opts pages.CaseWorkOptions
	var err error
	if opts.Cases, err = services.ListCases(h.db(c), services.CaseFilters{}); err != nil {
		return opts, err
	}
	if opts.Users, err = services.ListUsers(h.db(c), ""); err != nil {
		return opts, err
	}
	return opts, nil
}

func (h *Handler) renderCaseWorkForm(c echo.Context, status int, titleKey string, form *pages.FormState) error {
	opts, err := h.caseWorkOptions(c)
	if err != nil {
		return httpError(c, err)
	}
	return render(c, status, pages.CaseWorkForm(h.page(c, titleKey), form, opts))
}

// CaseWorkPage lists work entries
func (h *Handler) CaseWorkPage(c echo.Context) error {
	view, filters := caseWorkFilter(c)
	works, err := services.ListCaseWork(h.db(c), filters)
	if err != nil {
		return httpError(c, err)
	}
	if isHTMX(c) {
		return render(c, http.StatusOK, pages.CaseWorkTable(works, middleware.GetCSRFToken(c), true))
	}
	opts, err := h.caseWorkOptions(c)
	if err != nil {
		return httpError(c, err)
	}
	return render(c, http.StatusOK, pages.CaseWorkList(h.page(c, "case_work.title"), works, opts, view))
}

// NewCaseWorkPage shows the empty work entry form, preset to today
func (h *Handler) NewCaseWorkPage(c echo.Context) error {
	form := pages.NewFormState("/case-work")
	form.Set("date", h.now().Format(services.DateLayout))
	form.Set("case_id", c.QueryParam("case_id"))
	if d := c.QueryParam("date"); d != "" {
		if _, err := services.ParseDate(d); err == nil {
			form.Set("date", d)
		}
	}
	return h.renderCaseWorkForm(c, http.StatusOK, "case_work.new", form)
}

// CreateCaseWork records a work entry
func (h *Handler) CreateCaseWork(c echo.Context) error {
	form := readForm(c, "/case-work", caseWorkFormFields)
	in, err := caseWorkInputFromForm(form)
	if err == nil {
		if _, err = services.CreateCaseWork(h.db(c), in); err == nil {
			return h.redirect(c, "/case-work", middleware.FlashSuccess, t(c, "flash.work_saved"))
		}
	}
	if formError(form, err) {
		return h.renderCaseWorkForm(c, http.StatusUnprocessableEntity, "case_work.new", form)
	}
	return httpError(c, err)
}

// EditCaseWorkPage shows the form of an existing work entry
func (h *Handler) EditCaseWorkPage(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	work, err := services.GetCaseWork(h.db(c), id)
	if err != nil {
		return httpError(c, err)
	}
	return h.renderCaseWorkForm(c, http.StatusOK, "case_work.edit", caseWorkFormFromModel("/case-work/"+idValue(id), work))
}

// UpdateCaseWork saves an existing work entry
func (h *Handler) UpdateCaseWork(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	form := readForm(c, "/case-work/"+idValue(id), caseWorkFormFields)
	form.IsEdit = true
	in, err := caseWorkInputFromForm(form)
	if err == nil {
		if _, err = services.UpdateCaseWork(h.db(c), id, in); err == nil {
			return h.redirect(c, "/case-work", middleware.FlashSuccess, t(c, "flash.work_saved"))
		}
	}
	if formError(form, err) {
		return h.renderCaseWorkForm(c, http.StatusUnprocessableEntity, "case_work.edit", form)
	}
	return httpError(c, err)
}

// DeleteCaseWork removes a work entry
func (h *Handler) DeleteCaseWork(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := services.DeleteCaseWork(h.db(c), id); err != nil {
		return httpError(c, err)
	}
	return h.redirect(c, "/case-work", middleware.FlashSuccess, t(c, "flash.deleted"))
}

// CaseWorkPDF exports the filtered work entries as a landscape PDF
func (h *Handler) CaseWorkPDF(c echo.Context) error {
	view, filters := caseWorkFilter(c)
	works, err := services.ListCaseWork(h.db(c), filters)
	if err != nil {
		return httpError(c, err)
	}

	title := t(c, "case_work.title")
	meta := strings.TrimSpace(view.From + " - " + view.To)
	if meta == "-" {
		meta = ""
	}
	body := pages.PDFBody(title, meta, pages.CaseWorkTable(works, "", false))
	name := "case-work-" + h.now().Format(services.DateLayout) + ".pdf"
	return h.sendPDF(c, title, body, name, services.LandscapePDFOptions())
}
