package services

import (
	"time"

	"lexium/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClientInput holds the editable fields of a client and its variant payload
type ClientInput struct {
	ClientType models.ClientType
	ClientCode string
	Name       string
	TaxNumber  *string

	// PERSON payload
	BirthDate *time.Time
	Address   string

	// COMPANY payload
	Headquarters string
}

// Validate checks the input before anything is written
func (in *ClientInput) Validate() error {
	if !in.ClientType.IsValid() {
		return invalid("client_type", "must be PERSON or COMPANY")
	}
	return firstError(
		required("client_code", in.ClientCode),
		maxLength("client_code", in.ClientCode, 45),
		required("name", in.Name),
		maxLength("name", in.Name, 100),
		ValidateTaxNumber(in.TaxNumber),
		maxLength("address", in.Address, 255),
		maxLength("headquarters", in.Headquarters, 255),
	)
}

func (in *ClientInput) apply(c *models.Client) {
	c.ClientType = in.ClientType
	c.ClientCode = SanitizeText(in.ClientCode)
	c.Name = SanitizeText(in.Name)
	c.TaxNumber = in.TaxNumber
	c.Person = nil
	c.Company = nil
	switch in.ClientType {
	case models.ClientTypePerson:
		var birth *time.Time
		if in.BirthDate != nil {
			d := models.DateOnly(*in.BirthDate)
			birth = &d
		}
		c.Person = &models.ClientPerson{ClientID: c.ID, BirthDate: birth, Address: SanitizeText(in.Address)}
	case models.ClientTypeCompany:
		c.Company = &models.ClientCompany{ClientID: c.ID, Headquarters: SanitizeText(in.Headquarters)}
	}
}

// CreateClient stores a client together with the payload matching its type
func CreateClient(db *gorm.DB, in ClientInput) (*models.Client, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var client models.Client
	in.apply(&client)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&client).Error; err != nil {
			return storageErr("client", err)
		}
		return savePayload(tx, &client)
	})
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// UpdateClient replaces the editable fields. A change of client type swaps
// the payload row in the same transaction.
func UpdateClient(db *gorm.DB, id uint, in ClientInput) (*models.Client, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var client models.Client
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&client, id).Error; err != nil {
			return findErr("client", id, err)
		}
		in.apply(&client)
		if err := tx.Omit(clause.Associations).Save(&client).Error; err != nil {
			return storageErr("client", err)
		}
		if err := deletePayloads(tx, client.ID); err != nil {
			return err
		}
		return savePayload(tx, &client)
	})
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func savePayload(tx *gorm.DB, client *models.Client) error {
	switch {
	case client.Person != nil:
		client.Person.ClientID = client.ID
		if err := tx.Create(client.Person).Error; err != nil {
			return storageErr("client person", err)
		}
	case client.Company != nil:
		client.Company.ClientID = client.ID
		if err := tx.Create(client.Company).Error; err != nil {
			return storageErr("client company", err)
		}
	}
	return nil
}

func deletePayloads(tx *gorm.DB, clientID uint) error {
	if err := tx.Where("client_id = ?", clientID).Delete(&models.ClientPerson{}).Error; err != nil {
		return storageErr("client person", err)
	}
	if err := tx.Where("client_id = ?", clientID).Delete(&models.ClientCompany{}).Error; err != nil {
		return storageErr("client company", err)
	}
	return nil
}

// GetClient retrieves a client with its payload
func GetClient(db *gorm.DB, id uint) (*models.Client, error) {
	var client models.Client
	err := db.Preload("Person").Preload("Company").First(&client, id).Error
	if err != nil {
		return nil, findErr("client", id, err)
	}
	return &client, nil
}

// ListClients returns clients ordered by name, optionally filtered by a keyword
// matched against name, code and tax number
func ListClients(db *gorm.DB, keyword string) ([]models.Client, error) {
	var clients []models.Client
	query := db.Preload("Person").Preload("Company")
	if keyword != "" {
		kw := "%" + keyword + "%"
		query = query.Where(
			db.Where("name LIKE ?", kw).
				Or("client_code LIKE ?", kw).
				Or("tax_number LIKE ?", kw),
		)
	}
	if err := query.Order("name ASC").Order("id ASC").Find(&clients).Error; err != nil {
		return nil, storageErr("list clients", err)
	}
	return clients, nil
}

// DeleteClient removes a client and its payload. A client that still owns
// cases is rejected with ConflictError; cases are never orphaned.
func DeleteClient(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.First(&client, id).Error; err != nil {
			return findErr("client", id, err)
		}

		var cases int64
		if err := tx.Model(&models.Case{}).Where("client_id = ?", id).Count(&cases).Error; err != nil {
			return storageErr("count cases", err)
		}
		if cases > 0 {
			return conflict("client", "client still has cases")
		}

		if err := deletePayloads(tx, id); err != nil {
			return err
		}
		if err := tx.Delete(&client).Error; err != nil {
			return storageErr("delete client", err)
		}
		return nil
	})
}
