package models

import "time"

// OutsourceCompany performs the work of outsourced cases. Its ShortName prefixes
// the numbers of those cases.
type OutsourceCompany struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name      string  `gorm:"size:100;not null" json:"name"`
	ShortName string  `gorm:"size:20;not null;uniqueIndex" json:"short_name"`
	TaxNumber *string `gorm:"size:11" json:"tax_number,omitempty"`
}

// TableName specifies the table name for OutsourceCompany model
func (OutsourceCompany) TableName() string {
	return "outsource_companies"
}
