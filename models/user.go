package models

import (
	"strings"
	"time"
)

// User is a member of the office who records work
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username  string `gorm:"size:45;not null;uniqueIndex" json:"username"`
	FirstName string `gorm:"size:45;not null" json:"first_name"`
	LastName  string `gorm:"size:45;not null" json:"last_name"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// FullName returns the display name, family name first as used in the office
func (u *User) FullName() string {
	return strings.TrimSpace(u.LastName + " " + u.FirstName)
}
