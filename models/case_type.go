package models

import "time"

// CaseType is a seed-loaded classification tag for cases
type CaseType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	IsActive bool   `gorm:"not null" json:"is_active"`
}

// TableName specifies the table name for CaseType model
func (CaseType) TableName() string {
	return "case_types"
}
