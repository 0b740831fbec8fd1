package services

import (
	"lexium/logger"
	"lexium/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultCaseTypes is the classification list loaded on first start
var DefaultCaseTypes = []string{
	"Polgári jog",
	"Büntetőjog",
	"Munkajog",
	"Családjog",
	"Ingatlanjog",
	"Társasági jog",
	"Közigazgatási jog",
	"Végrehajtás",
}

// SeedCaseTypes inserts missing default case types as active. Existing rows,
// including ones switched off by the office, are left as they are.
func SeedCaseTypes(db *gorm.DB) error {
	created := 0
	for _, name := range DefaultCaseTypes {
		var count int64
		if err := db.Model(&models.CaseType{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return storageErr("seed case types", err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&models.CaseType{Name: name, IsActive: true}).Error; err != nil {
			return storageErr("seed case types", err)
		}
		created++
	}
	if created > 0 {
		logger.GetLogger().Info("Seeded case types", zap.Int("created", created))
	}
	return nil
}

// ListCaseTypes returns case types ordered by name
func ListCaseTypes(db *gorm.DB, activeOnly bool) ([]models.CaseType, error) {
	var types []models.CaseType
	query := db
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("name ASC").Find(&types).Error; err != nil {
		return nil, storageErr("list case types", err)
	}
	return types, nil
}

// GetCaseType retrieves a case type by ID
func GetCaseType(db *gorm.DB, id uint) (*models.CaseType, error) {
	var ct models.CaseType
	if err := db.First(&ct, id).Error; err != nil {
		return nil, findErr("case type", id, err)
	}
	return &ct, nil
}

// SetCaseTypeActive switches a case type on or off. Cases keep their type either way.
func SetCaseTypeActive(db *gorm.DB, id uint, active bool) (*models.CaseType, error) {
	ct, err := GetCaseType(db, id)
	if err != nil {
		return nil, err
	}
	if err := db.Model(ct).Update("is_active", active).Error; err != nil {
		return nil, storageErr("case type", err)
	}
	ct.IsActive = active
	return ct, nil
}
