package models

import (
	"time"
)

// ClientType is the discriminant of the Client variant
type ClientType string

const (
	ClientTypePerson  ClientType = "PERSON"
	ClientTypeCompany ClientType = "COMPANY"
)

// IsValid checks if the client type is one of the known variants
func (t ClientType) IsValid() bool {
	return t == ClientTypePerson || t == ClientTypeCompany
}

// TaxNumberLength is the exact length of a tax number when one is given
const TaxNumberLength = 11

// Client is either a natural person or a company. ClientType selects which
// payload (Person or Company) is present.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientType ClientType `gorm:"size:10;not null;index" json:"client_type"`
	ClientCode string     `gorm:"size:45;not null;uniqueIndex" json:"client_code"`
	Name       string     `gorm:"size:100;not null" json:"name"`
	TaxNumber  *string    `gorm:"size:11" json:"tax_number,omitempty"`

	// Variant payloads
	Person  *ClientPerson  `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"person,omitempty"`
	Company *ClientCompany `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"company,omitempty"`
}

// TableName specifies the table name for Client model
func (Client) TableName() string {
	return "clients"
}

// IsPerson checks if the client is a natural person
func (c *Client) IsPerson() bool {
	return c.ClientType == ClientTypePerson
}

// IsCompany checks if the client is a company
func (c *Client) IsCompany() bool {
	return c.ClientType == ClientTypeCompany
}

// ClientPerson is the PERSON payload
type ClientPerson struct {
	ClientID  uint       `gorm:"primaryKey;autoIncrement:false" json:"-"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Address   string     `gorm:"size:255" json:"address"`
}

func (ClientPerson) TableName() string {
	return "client_persons"
}

// ClientCompany is the COMPANY payload
type ClientCompany struct {
	ClientID     uint   `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Headquarters string `gorm:"size:255" json:"headquarters"`
}

func (ClientCompany) TableName() string {
	return "client_companies"
}
