package services

import (
	"strings"

	"lexium/models"

	"gorm.io/gorm"
)

// OutsourceCompanyInput holds the editable fields of an outsource company
type OutsourceCompanyInput struct {
	Name      string
	ShortName string
	TaxNumber *string
}

// Validate checks the input before anything is written
func (in *OutsourceCompanyInput) Validate() error {
	return firstError(
		required("name", in.Name),
		maxLength("name", in.Name, 100),
		required("short_name", in.ShortName),
		maxLength("short_name", in.ShortName, 20),
		ValidateTaxNumber(in.TaxNumber),
	)
}

func (in *OutsourceCompanyInput) apply(c *models.OutsourceCompany) {
	c.Name = SanitizeText(in.Name)
	c.ShortName = strings.ToUpper(SanitizeText(in.ShortName))
	c.TaxNumber = in.TaxNumber
}

// CreateOutsourceCompany stores a new outsource company
func CreateOutsourceCompany(db *gorm.DB, in OutsourceCompanyInput) (*models.OutsourceCompany, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var company models.OutsourceCompany
	in.apply(&company)
	if err := db.Create(&company).Error; err != nil {
		return nil, storageErr("outsource company", err)
	}
	return &company, nil
}

// UpdateOutsourceCompany changes an outsource company. Numbers of existing
// cases keep the prefix they were created with.
func UpdateOutsourceCompany(db *gorm.DB, id uint, in OutsourceCompanyInput) (*models.OutsourceCompany, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	company, err := GetOutsourceCompany(db, id)
	if err != nil {
		return nil, err
	}
	in.apply(company)
	if err := db.Save(company).Error; err != nil {
		return nil, storageErr("outsource company", err)
	}
	return company, nil
}

// GetOutsourceCompany retrieves an outsource company by ID
func GetOutsourceCompany(db *gorm.DB, id uint) (*models.OutsourceCompany, error) {
	var company models.OutsourceCompany
	if err := db.First(&company, id).Error; err != nil {
		return nil, findErr("outsource company", id, err)
	}
	return &company, nil
}

// ListOutsourceCompanies returns all outsource companies ordered by name
func ListOutsourceCompanies(db *gorm.DB, keyword string) ([]models.OutsourceCompany, error) {
	var companies []models.OutsourceCompany
	query := db
	if keyword != "" {
		kw := "%" + keyword + "%"
		query = query.Where(db.Where("name LIKE ?", kw).Or("short_name LIKE ?", kw))
	}
	if err := query.Order("name ASC").Find(&companies).Error; err != nil {
		return nil, storageErr("list outsource companies", err)
	}
	return companies, nil
}

// DeleteOutsourceCompany removes a company no case refers to
func DeleteOutsourceCompany(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var company models.OutsourceCompany
		if err := tx.First(&company, id).Error; err != nil {
			return findErr("outsource company", id, err)
		}
		var cases int64
		if err := tx.Model(&models.Case{}).Where("outsource_company_id = ?", id).Count(&cases).Error; err != nil {
			return storageErr("count cases", err)
		}
		if cases > 0 {
			return conflict("outsource company", "company is assigned to cases")
		}
		if err := tx.Delete(&company).Error; err != nil {
			return storageErr("delete outsource company", err)
		}
		return nil
	})
}
