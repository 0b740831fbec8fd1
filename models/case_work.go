package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrInvalidWorkInterval is returned when a work entry does not end after it starts
var ErrInvalidWorkInterval = errors.New("end time must be after start time")

// CaseWork is one billable work entry of a user on a case
type CaseWork struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`

	CaseID uint `gorm:"not null;index" json:"case_id"`
	Case   Case `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"case,omitempty"`

	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	StartTime   TimeOfDay `gorm:"type:varchar(8);not null" json:"start_time"`
	EndTime     TimeOfDay `gorm:"type:varchar(8);not null" json:"end_time"`
	Description string    `gorm:"size:255" json:"description"`
	Billed      bool      `gorm:"not null;index" json:"billed"`

	// DurationSeconds is kept equal to WorkDuration(Date, StartTime, EndTime)
	// so that reports can sum it in SQL.
	DurationSeconds int64 `gorm:"not null" json:"duration_seconds"`
}

// TableName specifies the table name for CaseWork model
func (CaseWork) TableName() string {
	return "case_works"
}

// BeforeSave recomputes the stored duration on every insert and full save
func (w *CaseWork) BeforeSave(tx *gorm.DB) error {
	if w.Date.IsZero() {
		return nil
	}
	w.Date = DateOnly(w.Date)
	d := WorkDuration(w.Date, w.StartTime, w.EndTime)
	if d <= 0 {
		return ErrInvalidWorkInterval
	}
	w.DurationSeconds = d
	return nil
}

// Hours returns the duration in hours
func (w *CaseWork) Hours() float64 {
	return float64(w.DurationSeconds) / 3600
}

// WorkDuration is the number of seconds between start and end on the given day.
// Both instants are placed on the same calendar date; overnight work is not
// representable, so end <= start yields zero or a negative value.
func WorkDuration(date time.Time, start, end TimeOfDay) int64 {
	from := start.On(date)
	to := end.On(date)
	return int64(to.Sub(from) / time.Second)
}

// DateOnly truncates t to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
