package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"

	"lexium/services"
	"lexium/templates/pages"

	"github.com/labstack/echo/v4"
)

func reportFilter(c echo.Context) services.ReportFilter {
	return services.ReportFilter{ActiveOnly: checkbox(c.QueryParam("active_only"))}
}

// reportName reads and checks the :report path parameter
func reportName(c echo.Context) (services.ReportName, error) {
	name := services.ReportName(c.Param("report"))
	if !name.IsValid() {
		return "", echo.NewHTTPError(http.StatusNotFound, "Unknown report")
	}
	return name, nil
}

// ReportsPage shows the three reports
func (h *Handler) ReportsPage(c echo.Context) error {
	reports, err := services.BuildReports(h.db(c), reportFilter(c))
	if err != nil {
		return httpError(c, err)
	}
	return render(c, http.StatusOK, pages.Reports(h.page(c, "reports.title"), reports))
}

// ReportsXLSX exports all reports as one workbook
func (h *Handler) ReportsXLSX(c echo.Context) error {
	reports, err := services.BuildReports(h.db(c), reportFilter(c))
	if err != nil {
		return httpError(c, err)
	}
	data, err := services.ExportReportsWorkbook(c.Request().Context(), reports)
	if err != nil {
		return httpError(c, err)
	}
	return h.sendExport(c, "reports-"+h.now().Format(services.DateLayout)+".xlsx", services.XLSXContentType, data)
}

// ReportPDF exports one report as PDF
func (h *Handler) ReportPDF(c echo.Context) error {
	name, err := reportName(c)
	if err != nil {
		return err
	}
	filter := reportFilter(c)
	reports, err := services.BuildReports(h.db(c), filter)
	if err != nil {
		return httpError(c, err)
	}

	title := t(c, "reports.titles."+string(name))
	meta := h.now().Format(services.DateLayout)
	if filter.ActiveOnly {
		meta += " · " + t(c, "reports.active_only")
	}
	body := pages.PDFBody(title, meta, pages.ReportTable(name, reports))
	file := string(name) + "-" + h.now().Format(services.DateLayout) + ".pdf"
	return h.sendPDF(c, title, body, file, services.DefaultPDFOptions())
}

// ReportCSV exports one report as CSV
func (h *Handler) ReportCSV(c echo.Context) error {
	name, err := reportName(c)
	if err != nil {
		return err
	}
	reports, err := services.BuildReports(h.db(c), reportFilter(c))
	if err != nil {
		return httpError(c, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	col := func(key string) string { return t(c, "reports.columns."+key) }

	switch name {
	case services.ReportHoursPerCase:
		w.Write([]string{col("number"), col("case"), col("client"), col("total_hours")})
		for _, r := range reports.HoursPerCase {
			w.Write([]string{r.Number, r.Name, r.ClientName, r.TotalHours.StringFixed(2)})
		}
	case services.ReportHoursPerUser:
		w.Write([]string{col("username"), col("name"), col("total_hours")})
		for _, r := range reports.HoursPerUser {
			w.Write([]string{r.Username, r.FullName(), r.TotalHours().StringFixed(2)})
		}
	case services.ReportUnbilledPerCase:
		w.Write([]string{col("number"), col("case"), col("client"), col("billing_type"), col("rate"), col("unbilled_hours"), col("estimated_amount")})
		for _, r := range reports.UnbilledPerCase {
			w.Write([]string{
				r.Number, r.Name, r.ClientName, string(r.BillingType), r.RateAmount.StringFixed(2),
				r.UnbilledHours.StringFixed(2), r.EstimatedAmount.StringFixed(2),
			})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return httpError(c, err)
	}
	return h.sendExport(c, string(name)+"-"+h.now().Format(services.DateLayout)+".csv", "text/csv; charset=utf-8", buf.Bytes())
}

// APIReport returns one report as JSON. The unbilled report also carries
// its total amount.
func (h *Handler) APIReport(c echo.Context) error {
	name, err := reportName(c)
	if err != nil {
		return err
	}
	filter := reportFilter(c)
	db := h.db(c)
	resp := map[string]interface{}{
		"report":      name,
		"active_only": filter.ActiveOnly,
	}

	switch name {
	case services.ReportHoursPerCase:
		var rows []services.CaseHoursRow
		if rows, err = services.HoursPerCase(db, filter); err == nil {
			resp["rows"] = emptyIfNil(rows)
		}
	case services.ReportHoursPerUser:
		var rows []services.UserHoursRow
		if rows, err = services.HoursPerUser(db, filter); err == nil {
			resp["rows"] = emptyIfNil(rows)
		}
	case services.ReportUnbilledPerCase:
		var rows []services.UnbilledRow
		if rows, err = services.UnbilledPerCase(db, filter); err == nil {
			resp["rows"] = emptyIfNil(rows)
			resp["total"] = services.TotalUnbilled(rows)
		}
	}
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// emptyIfNil keeps JSON arrays from encoding as null
func emptyIfNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
