package handlers

import (
	"net/http"

	"lexium/models"
	"lexium/services"
	"lexium/templates/pages"

	"github.com/labstack/echo/v4"
)

const recentWorkLimit = 10

// HomePage shows the office figures and the latest work entries
func (h *Handler) HomePage(c echo.Context) error {
	db := h.db(c)
	var stats pages.HomeStats

	if err := db.Model(&models.Client{}).Count(&stats.Clients).Error; err != nil {
		return httpError(c, err)
	}
	if err := db.Model(&models.Case{}).Where("is_active = ?", true).Count(&stats.ActiveCases).Error; err != nil {
		return httpError(c, err)
	}
	if err := db.Model(&models.User{}).Count(&stats.Users).Error; err != nil {
		return httpError(c, err)
	}

	unbilled, err := services.UnbilledPerCase(db, services.ReportFilter{ActiveOnly: true})
	if err != nil {
		return httpError(c, err)
	}
	stats.UnbilledTotal = services.TotalUnbilled(unbilled)

	stats.RecentWork, err = services.ListCaseWork(db, services.CaseWorkFilters{Limit: recentWorkLimit})
	if err != nil {
		return httpError(c, err)
	}
	return render(c, http.StatusOK, pages.Home(h.page(c, "home.title"), stats))
}

// Health reports whether the database answers
func (h *Handler) Health(c echo.Context) error {
	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
