package handlers

import (
	"net/http"

	"lexium/services"
	"lexium/templates/pages"

	"github.com/labstack/echo/v4"
)

// CalendarPage shows the work entries of ?month=YYYY-MM on a month grid. An
// unparsable month shows the current one.
func (h *Handler) CalendarPage(c echo.Context) error {
	now := h.now()
	month := services.ParseMonth(c.QueryParam("month"), now)
	from, to := services.MonthBounds(month)

	byDate, err := services.ListCaseWorkByDate(h.db(c), from, to)
	if err != nil {
		return httpError(c, err)
	}
	grid := services.BuildMonthGrid(month, byDate, now)
	return render(c, http.StatusOK, pages.Calendar(h.page(c, "calendar.title"), grid))
}
