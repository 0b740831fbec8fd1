package services

import (
	"strconv"

	"lexium/metrics"
	"lexium/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pendingNumberPrefix marks a row whose number is assigned later in the same transaction
const pendingNumberPrefix = "PENDING-"

// CaseInput holds the editable fields of a case
type CaseInput struct {
	Name               string
	Description        string
	ClientID           uint
	BillingType        models.BillingType
	RateAmount         decimal.Decimal
	IsOutsourced       bool
	OutsourceCompanyID *uint
	CaseTypeID         *uint
	IsActive           bool
}

// CaseFilters holds filter options for listing cases
type CaseFilters struct {
	Keyword    string
	ClientID   uint
	ActiveOnly bool
}

// Validate checks the input before anything is written
func (in *CaseInput) Validate() error {
	if err := firstError(
		required("name", in.Name),
		maxLength("name", in.Name, 100),
		maxLength("description", in.Description, 255),
	); err != nil {
		return err
	}
	if in.ClientID == 0 {
		return invalid("client_id", "is required")
	}
	if !in.BillingType.IsValid() {
		return invalid("billing_type", "must be HOURLY or FIXED")
	}
	if in.RateAmount.IsNegative() {
		return invalid("rate_amount", "must not be negative")
	}
	if in.IsOutsourced && in.OutsourceCompanyID == nil {
		return invalid("outsource_company_id", "an outsourced case needs an outsource company")
	}
	return nil
}

func (in *CaseInput) apply(c *models.Case) {
	c.Name = SanitizeText(in.Name)
	c.Description = SanitizeText(in.Description)
	c.ClientID = in.ClientID
	c.BillingType = in.BillingType
	c.RateAmount = in.RateAmount.Round(2)
	c.IsOutsourced = in.IsOutsourced
	c.OutsourceCompanyID = nil
	if in.IsOutsourced {
		c.OutsourceCompanyID = in.OutsourceCompanyID
	}
	c.CaseTypeID = in.CaseTypeID
	c.IsActive = in.IsActive
}

// FormatCaseNumber returns the number of the case with the given identifier.
// company is nil for cases done in-house.
func FormatCaseNumber(id uint, company *models.OutsourceCompany) string {
	prefix := ""
	if company != nil {
		prefix = company.ShortName
	}
	return models.FormatCaseNumber(id, prefix)
}

// checkCaseReferences makes sure the client, company and type exist and
// returns the outsource company, if any
func checkCaseReferences(tx *gorm.DB, c *models.Case) (*models.OutsourceCompany, error) {
	var client models.Client
	if err := tx.Select("id").First(&client, c.ClientID).Error; err != nil {
		return nil, findErr("client", c.ClientID, err)
	}

	var company *models.OutsourceCompany
	if c.OutsourceCompanyID != nil {
		company = &models.OutsourceCompany{}
		if err := tx.First(company, *c.OutsourceCompanyID).Error; err != nil {
			return nil, findErr("outsource company", *c.OutsourceCompanyID, err)
		}
	}

	if c.CaseTypeID != nil {
		var ct models.CaseType
		if err := tx.Select("id").First(&ct, *c.CaseTypeID).Error; err != nil {
			return nil, findErr("case type", *c.CaseTypeID, err)
		}
	}
	return company, nil
}

// CreateCase stores a new case and assigns its number. The row is inserted
// with a unique placeholder, the generated identifier is read back and the
// final number written, all in one transaction: readers never see a
// placeholder and any failure leaves nothing behind.
func CreateCase(db *gorm.DB, in CaseInput) (*models.Case, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var c models.Case
	in.apply(&c)

	err := db.Transaction(func(tx *gorm.DB) error {
		company, err := checkCaseReferences(tx, &c)
		if err != nil {
			return err
		}

		c.Number = pendingNumberPrefix + uuid.New().String()
		if err := tx.Omit(clause.Associations).Create(&c).Error; err != nil {
			return storageErr("case", err)
		}

		c.Number = FormatCaseNumber(c.ID, company)
		if err := tx.Model(&c).Update("number", c.Number).Error; err != nil {
			return storageErr("case number", err)
		}
		c.OutsourceCompany = company
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CasesCreated.WithLabelValues(strconv.FormatBool(c.IsOutsourced)).Inc()
	return &c, nil
}

// UpdateCase changes a case. The number only changes when the outsourcing
// status or company does, and then keeps its numeric part; renaming a
// company leaves the numbers of its existing cases alone.
func UpdateCase(db *gorm.DB, id uint, in CaseInput) (*models.Case, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var c models.Case
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			return findErr("case", id, err)
		}
		wasOutsourced, oldCompanyID := c.IsOutsourced, c.OutsourceCompanyID
		in.apply(&c)

		company, err := checkCaseReferences(tx, &c)
		if err != nil {
			return err
		}
		if wasOutsourced != c.IsOutsourced || !sameID(oldCompanyID, c.OutsourceCompanyID) {
			c.Number = FormatCaseNumber(c.ID, company)
		}
		c.OutsourceCompany = nil
		c.Client = models.Client{}
		c.CaseType = nil

		if err := tx.Omit(clause.Associations).Save(&c).Error; err != nil {
			return storageErr("case", err)
		}
		c.OutsourceCompany = company
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func sameID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// GetCase retrieves a case with its client, company and type
func GetCase(db *gorm.DB, id uint) (*models.Case, error) {
	var c models.Case
	err := db.Preload("Client").
		Preload("OutsourceCompany").
		Preload("CaseType").
		First(&c, id).Error
	if err != nil {
		return nil, findErr("case", id, err)
	}
	return &c, nil
}

// ListCases returns cases ordered by number
func ListCases(db *gorm.DB, filters CaseFilters) ([]models.Case, error) {
	var cases []models.Case
	query := db.Model(&models.Case{})

	if filters.ClientID != 0 {
		query = query.Where("cases.client_id = ?", filters.ClientID)
	}
	if filters.ActiveOnly {
		query = query.Where("cases.is_active = ?", true)
	}
	if filters.Keyword != "" {
		kw := "%" + filters.Keyword + "%"
		query = query.Joins("JOIN clients ON clients.id = cases.client_id").
			Where(db.Where("cases.number LIKE ?", kw).
				Or("cases.name LIKE ?", kw).
				Or("cases.description LIKE ?", kw).
				Or("clients.name LIKE ?", kw))
	}

	err := query.
		Preload("Client").
		Preload("OutsourceCompany").
		Preload("CaseType").
		Order("cases.number ASC").
		Find(&cases).Error
	if err != nil {
		return nil, storageErr("list cases", err)
	}
	return cases, nil
}

// DeleteCase removes a case together with all of its work entries
func DeleteCase(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var c models.Case
		if err := tx.First(&c, id).Error; err != nil {
			return findErr("case", id, err)
		}
		if err := tx.Where("case_id = ?", id).Delete(&models.CaseWork{}).Error; err != nil {
			return storageErr("delete case work", err)
		}
		if err := tx.Delete(&c).Error; err != nil {
			return storageErr("delete case", err)
		}
		return nil
	})
}
