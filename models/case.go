package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BillingType decides how the amount of a case is computed
type BillingType string

const (
	BillingTypeHourly BillingType = "HOURLY" // amount = hours * rate
	BillingTypeFixed  BillingType = "FIXED"  // amount = rate, regardless of hours
)

// IsValid checks if the billing type is valid
func (b BillingType) IsValid() bool {
	return b == BillingTypeHourly || b == BillingTypeFixed
}

// CaseNumberDigits is the zero-padded width of a case number
const CaseNumberDigits = 5

// Case represents a legal case of a client
type Case struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Case identification, derived from ID at creation
	Number      string `gorm:"size:64;not null;uniqueIndex" json:"number"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	ClientID uint   `gorm:"not null;index" json:"client_id"`
	Client   Client `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT" json:"client,omitempty"`

	// Billing terms
	BillingType BillingType     `gorm:"size:10;not null" json:"billing_type"`
	RateAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"rate_amount"`

	// Outsourcing
	IsOutsourced       bool              `gorm:"not null" json:"is_outsourced"`
	OutsourceCompanyID *uint             `gorm:"index" json:"outsource_company_id,omitempty"`
	OutsourceCompany   *OutsourceCompany `gorm:"foreignKey:OutsourceCompanyID;constraint:OnDelete:RESTRICT" json:"outsource_company,omitempty"`

	CaseTypeID *uint     `gorm:"index" json:"case_type_id,omitempty"`
	CaseType   *CaseType `gorm:"foreignKey:CaseTypeID;constraint:OnDelete:SET NULL" json:"case_type,omitempty"`

	IsActive bool `gorm:"not null;index" json:"is_active"`
}

// TableName specifies the table name for Case model
func (Case) TableName() string {
	return "cases"
}

// FormatCaseNumber derives the number of a case from its identifier: the
// zero-padded identifier, prefixed with the outsource company's short name
// for outsourced cases.
func FormatCaseNumber(id uint, prefix string) string {
	return fmt.Sprintf("%s%0*d", prefix, CaseNumberDigits, id)
}

// OutsourcePrefix returns the case-number prefix, empty for in-house cases
func (c *Case) OutsourcePrefix() string {
	if c.IsOutsourced && c.OutsourceCompany != nil {
		return c.OutsourceCompany.ShortName
	}
	return ""
}

// IsHourly checks if the case is billed by the hour
func (c *Case) IsHourly() bool {
	return c.BillingType == BillingTypeHourly
}

// EstimateAmount applies the billing terms to a number of hours
func (c *Case) EstimateAmount(hours decimal.Decimal) decimal.Decimal {
	return EstimateAmount(c.BillingType, c.RateAmount, hours)
}

// EstimateAmount returns hours*rate for hourly billing and the flat rate otherwise
func EstimateAmount(billingType BillingType, rate, hours decimal.Decimal) decimal.Decimal {
	if billingType == BillingTypeHourly {
		return hours.Mul(rate).Round(2)
	}
	return rate.Round(2)
}
