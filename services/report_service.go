package services

import (
	"lexium/metrics"
	"lexium/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportName identifies one of the aggregate reports
type ReportName string

const (
	ReportHoursPerCase    ReportName = "hours-per-case"
	ReportHoursPerUser    ReportName = "hours-per-user"
	ReportUnbilledPerCase ReportName = "unbilled-per-case"
)

// ReportNames lists the reports in display order
var ReportNames = []ReportName{ReportHoursPerCase, ReportHoursPerUser, ReportUnbilledPerCase}

// IsValid checks if the report name is known
func (r ReportName) IsValid() bool {
	switch r {
	case ReportHoursPerCase, ReportHoursPerUser, ReportUnbilledPerCase:
		return true
	}
	return false
}

// ReportFilter restricts the rows a report aggregates
type ReportFilter struct {
	// ActiveOnly keeps only work on cases flagged active
	ActiveOnly bool
}

var secondsPerHour = decimal.NewFromInt(3600)

// SecondsToHours converts a summed duration to hours
func SecondsToHours(seconds int64) decimal.Decimal {
	return decimal.NewFromInt(seconds).Div(secondsPerHour)
}

// CaseHoursRow is one row of the hours per case report
type CaseHoursRow struct {
	CaseID       uint            `json:"case_id"`
	Number       string          `json:"number"`
	Name         string          `json:"name"`
	ClientName   string          `json:"client_name"`
	TotalSeconds int64           `json:"total_seconds"`
	TotalHours   decimal.Decimal `gorm:"-" json:"total_hours"`
}

// UserHoursRow is one row of the hours per user report
type UserHoursRow struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	TotalSeconds int64  `json:"total_seconds"`
}

// FullName returns the display name of the user
func (r UserHoursRow) FullName() string {
	u := models.User{FirstName: r.FirstName, LastName: r.LastName}
	return u.FullName()
}

// TotalHours converts the summed seconds for display
func (r UserHoursRow) TotalHours() decimal.Decimal {
	return SecondsToHours(r.TotalSeconds)
}

// UnbilledRow is one row of the unbilled amount per case report
type UnbilledRow struct {
	CaseID          uint               `json:"case_id"`
	Number          string             `json:"number"`
	Name            string             `json:"name"`
	ClientName      string             `json:"client_name"`
	BillingType     models.BillingType `json:"billing_type"`
	RateAmount      decimal.Decimal    `json:"rate_amount"`
	UnbilledSeconds int64              `json:"unbilled_seconds"`
	UnbilledHours   decimal.Decimal    `gorm:"-" json:"unbilled_hours"`
	EstimatedAmount decimal.Decimal    `gorm:"-" json:"estimated_amount"`
}

// Reports bundles all three reports for one filter
type Reports struct {
	Filter          ReportFilter   `json:"filter"`
	HoursPerCase    []CaseHoursRow `json:"hours_per_case"`
	HoursPerUser    []UserHoursRow `json:"hours_per_user"`
	UnbilledPerCase []UnbilledRow  `json:"unbilled_per_case"`
}

// workJoin starts an aggregation over work entries joined to their case and
// client. The inner joins mean cases without work produce no row.
func workJoin(db *gorm.DB, filter ReportFilter) *gorm.DB {
	query := db.Table("case_works").
		Joins("JOIN cases ON cases.id = case_works.case_id").
		Joins("JOIN clients ON clients.id = cases.client_id")
	if filter.ActiveOnly {
		query = query.Where("cases.is_active = ?", true)
	}
	return query
}

// HoursPerCase sums the stored durations per case, ordered by case number
func HoursPerCase(db *gorm.DB, filter ReportFilter) ([]CaseHoursRow, error) {
	metrics.ReportQueries.WithLabelValues(string(ReportHoursPerCase)).Inc()

	var rows []CaseHoursRow
	err := workJoin(db, filter).
		Select("cases.id AS case_id, cases.number AS number, cases.name AS name, " +
			"clients.name AS client_name, CAST(SUM(case_works.duration_seconds) AS BIGINT) AS total_seconds").
		Group("cases.id, cases.number, cases.name, clients.name").
		Order("cases.number ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, storageErr("hours per case", err)
	}

	for i := range rows {
		rows[i].TotalHours = SecondsToHours(rows[i].TotalSeconds)
	}
	return rows, nil
}

// HoursPerUser sums the stored durations per user in seconds, largest first.
// The sort key is the same sum, so value and order cannot disagree.
func HoursPerUser(db *gorm.DB, filter ReportFilter) ([]UserHoursRow, error) {
	metrics.ReportQueries.WithLabelValues(string(ReportHoursPerUser)).Inc()

	var rows []UserHoursRow
	err := workJoin(db, filter).
		Joins("JOIN users ON users.id = case_works.user_id").
		Select("users.id AS user_id, users.username AS username, users.first_name AS first_name, " +
			"users.last_name AS last_name, CAST(SUM(case_works.duration_seconds) AS BIGINT) AS total_seconds").
		Group("users.id, users.username, users.first_name, users.last_name").
		Order("total_seconds DESC").
		Order("users.username ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, storageErr("hours per user", err)
	}
	return rows, nil
}

// UnbilledPerCase sums the unbilled durations per case and applies the
// billing terms: hours times rate for HOURLY, the flat rate for FIXED
func UnbilledPerCase(db *gorm.DB, filter ReportFilter) ([]UnbilledRow, error) {
	metrics.ReportQueries.WithLabelValues(string(ReportUnbilledPerCase)).Inc()

	var rows []UnbilledRow
	err := workJoin(db, filter).
		Where("case_works.billed = ?", false).
		Select("cases.id AS case_id, cases.number AS number, cases.name AS name, " +
			"clients.name AS client_name, cases.billing_type AS billing_type, " +
			"cases.rate_amount AS rate_amount, CAST(SUM(case_works.duration_seconds) AS BIGINT) AS unbilled_seconds").
		Group("cases.id, cases.number, cases.name, clients.name, cases.billing_type, cases.rate_amount").
		Order("cases.number ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, storageErr("unbilled per case", err)
	}

	for i := range rows {
		rows[i].UnbilledHours = SecondsToHours(rows[i].UnbilledSeconds)
		rows[i].EstimatedAmount = models.EstimateAmount(rows[i].BillingType, rows[i].RateAmount, rows[i].UnbilledHours)
	}
	return rows, nil
}

// BuildReports runs all three reports
func BuildReports(db *gorm.DB, filter ReportFilter) (*Reports, error) {
	perCase, err := HoursPerCase(db, filter)
	if err != nil {
		return nil, err
	}
	perUser, err := HoursPerUser(db, filter)
	if err != nil {
		return nil, err
	}
	unbilled, err := UnbilledPerCase(db, filter)
	if err != nil {
		return nil, err
	}
	return &Reports{
		Filter:          filter,
		HoursPerCase:    perCase,
		HoursPerUser:    perUser,
		UnbilledPerCase: unbilled,
	}, nil
}

// TotalUnbilled sums the estimated amounts of an unbilled report
func TotalUnbilled(rows []UnbilledRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.EstimatedAmount)
	}
	return total
}
