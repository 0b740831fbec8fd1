package services

import (
	"strings"

	"lexium/models"

	"gorm.io/gorm"
)

// UserInput holds the editable fields of a user
type UserInput struct {
	Username  string
	FirstName string
	LastName  string
}

// Validate checks the input before anything is written
func (in *UserInput) Validate() error {
	return firstError(
		required("username", in.Username),
		maxLength("username", in.Username, 45),
		required("first_name", in.FirstName),
		maxLength("first_name", in.FirstName, 45),
		required("last_name", in.LastName),
		maxLength("last_name", in.LastName, 45),
	)
}

func (in *UserInput) apply(u *models.User) {
	u.Username = strings.ToLower(SanitizeText(in.Username))
	u.FirstName = SanitizeText(in.FirstName)
	u.LastName = SanitizeText(in.LastName)
}

// CreateUser stores a new user. A taken username yields ConflictError.
func CreateUser(db *gorm.DB, in UserInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var user models.User
	in.apply(&user)
	if err := db.Create(&user).Error; err != nil {
		return nil, storageErr("user", err)
	}
	return &user, nil
}

// UpdateUser changes a user's name or username
func UpdateUser(db *gorm.DB, id uint, in UserInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	user, err := GetUser(db, id)
	if err != nil {
		return nil, err
	}
	in.apply(user)
	if err := db.Save(user).Error; err != nil {
		return nil, storageErr("user", err)
	}
	return user, nil
}

// GetUser retrieves a user by ID
func GetUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, findErr("user", id, err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func GetUserByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	err := db.Where("username = ?", strings.ToLower(strings.TrimSpace(username))).First(&user).Error
	if err != nil {
		return nil, findErr("user", 0, err)
	}
	return &user, nil
}

// ListUsers returns users ordered by family name
func ListUsers(db *gorm.DB, keyword string) ([]models.User, error) {
	var users []models.User
	query := db
	if keyword != "" {
		kw := "%" + keyword + "%"
		query = query.Where(
			db.Where("username LIKE ?", kw).
				Or("first_name LIKE ?", kw).
				Or("last_name LIKE ?", kw),
		)
	}
	if err := query.Order("last_name ASC").Order("first_name ASC").Find(&users).Error; err != nil {
		return nil, storageErr("list users", err)
	}
	return users, nil
}

// DeleteUser removes a user who has not recorded any work
func DeleteUser(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return findErr("user", id, err)
		}
		var works int64
		if err := tx.Model(&models.CaseWork{}).Where("user_id = ?", id).Count(&works).Error; err != nil {
			return storageErr("count case work", err)
		}
		if works > 0 {
			return conflict("user", "user has recorded work")
		}
		if err := tx.Delete(&user).Error; err != nil {
			return storageErr("delete user", err)
		}
		return nil
	})
}
