package handlers

import (
	"lexium/metrics"
	"lexium/middleware"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts every route of the application on e
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	exports := middleware.ExportRateLimiter(h.Cfg.ExportRateLimit).Middleware()

	e.GET("/", h.HomePage)

	e.GET("/clients", h.ClientsPage)
	e.GET("/clients/new", h.NewClientPage)
	e.POST("/clients", h.CreateClient)
	e.GET("/clients/:id/edit", h.EditClientPage)
	e.POST("/clients/:id", h.UpdateClient)
	e.POST("/clients/:id/delete", h.DeleteClient)

	e.GET("/cases", h.CasesPage)
	e.GET("/cases/new", h.NewCasePage)
	e.POST("/cases", h.CreateCase)
	e.GET("/cases/:id/edit", h.EditCasePage)
	e.POST("/cases/:id", h.UpdateCase)
	e.POST("/cases/:id/delete", h.DeleteCase)
	e.POST("/cases/:id/billed", h.MarkCaseBilled)

	e.GET("/case-work", h.CaseWorkPage)
	e.GET("/case-work/new", h.NewCaseWorkPage)
	e.GET("/case-work/pdf", h.CaseWorkPDF, exports)
	e.POST("/case-work", h.CreateCaseWork)
	e.GET("/case-work/:id/edit", h.EditCaseWorkPage)
	e.POST("/case-work/:id", h.UpdateCaseWork)
	e.POST("/case-work/:id/delete", h.DeleteCaseWork)

	e.GET("/outsource-companies", h.OutsourceCompaniesPage)
	e.GET("/outsource-companies/new", h.NewOutsourceCompanyPage)
	e.POST("/outsource-companies", h.CreateOutsourceCompany)
	e.GET("/outsource-companies/:id/edit", h.EditOutsourceCompanyPage)
	e.POST("/outsource-companies/:id", h.UpdateOutsourceCompany)
	e.POST("/outsource-companies/:id/delete", h.DeleteOutsourceCompany)

	e.GET("/users", h.UsersPage)
	e.GET("/users/new", h.NewUserPage)
	e.POST("/users", h.CreateUser)
	e.GET("/users/:id/edit", h.EditUserPage)
	e.POST("/users/:id", h.UpdateUser)
	e.POST("/users/:id/delete", h.DeleteUser)

	e.GET("/case-types", h.CaseTypesPage)
	e.POST("/case-types/:id/toggle", h.ToggleCaseType)

	e.GET("/calendar", h.CalendarPage)

	e.GET("/reports", h.ReportsPage)
	e.GET("/reports/export.xlsx", h.ReportsXLSX, exports)
	e.GET("/reports/:report/pdf", h.ReportPDF, exports)
	e.GET("/reports/:report/csv", h.ReportCSV, exports)

	api := e.Group("/api")
	api.GET("/users", h.APIUsers)
	api.GET("/cases", h.APICases)
	api.GET("/reports/:report", h.APIReport)
}
