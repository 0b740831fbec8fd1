package services

import (
	"time"

	"lexium/models"
)

// CalendarDay is one cell of the month grid. Padding cells outside the month
// have a zero Date and no work.
type CalendarDay struct {
	Date         time.Time
	DateString   string
	Day          int
	InMonth      bool
	IsToday      bool
	Works        []models.CaseWork
	TotalSeconds int64
}

// CalendarMonth is a month laid out as Monday-first weeks of seven days
type CalendarMonth struct {
	Month        time.Time
	Weeks        [][]CalendarDay
	TotalSeconds int64
}

// Prev returns the first day of the previous month
func (m CalendarMonth) Prev() time.Time { return m.Month.AddDate(0, -1, 0) }

// Next returns the first day of the next month
func (m CalendarMonth) Next() time.Time { return m.Month.AddDate(0, 1, 0) }

// MonthBounds returns the first and last day of the month containing t
func MonthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// BuildMonthGrid places the work entries of a month on its days. worksByDate
// is keyed by YYYY-MM-DD as returned by ListCaseWorkByDate.
func BuildMonthGrid(month time.Time, worksByDate map[string][]models.CaseWork, now time.Time) CalendarMonth {
	first, last := MonthBounds(month)
	today := now.Format(DateLayout)

	grid := CalendarMonth{Month: first}
	week := make([]CalendarDay, 0, 7)

	// Monday = 0 ... Sunday = 6
	lead := (int(first.Weekday()) + 6) % 7
	for i := 0; i < lead; i++ {
		week = append(week, CalendarDay{})
	}

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		key := day.Format(DateLayout)
		cell := CalendarDay{
			Date:       day,
			DateString: key,
			Day:        day.Day(),
			InMonth:    true,
			IsToday:    key == today,
			Works:      worksByDate[key],
		}
		for _, w := range cell.Works {
			cell.TotalSeconds += w.DurationSeconds
		}
		grid.TotalSeconds += cell.TotalSeconds

		week = append(week, cell)
		if len(week) == 7 {
			grid.Weeks = append(grid.Weeks, week)
			week = make([]CalendarDay, 0, 7)
		}
	}

	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, CalendarDay{})
		}
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid
}
