package services

import (
	"testing"

	"lexium/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLifecycle(t *testing.T) {
	db := setupTestDB(t)

	u, err := CreateUser(db, UserInput{Username: " Anna ", FirstName: "Anna", LastName: "Kovács"})
	require.NoError(t, err)
	assert.Equal(t, "anna", u.Username)
	assert.Equal(t, "Kovács Anna", u.FullName())

	_, err = CreateUser(db, UserInput{Username: "anna", FirstName: "Other", LastName: "Anna"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = CreateUser(db, UserInput{Username: "nobody"})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := UpdateUser(db, u.ID, UserInput{Username: "anna", FirstName: "Anna", LastName: "Nagy"})
	require.NoError(t, err)
	assert.Equal(t, "Nagy", updated.LastName)

	found, err := GetUserByUsername(db, "ANNA")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	list, err := ListUsers(db, "nag")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, DeleteUser(db, u.ID))
	_, err = GetUser(db, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserWithWorkIsRejected(t *testing.T) {
	db := setupTestDB(t)
	user := mustUser(t, db, "anna")
	client := mustClient(t, db, "C-1", "Acme Zrt.")
	c := mustCase(t, db, client.ID, "Case", models.BillingTypeHourly, 100)
	mustWork(t, db, user.ID, c.ID, "2026-02-10", "09:00", "10:00", false)

	assert.ErrorIs(t, DeleteUser(db, user.ID), ErrConflict)
	_, err := GetUser(db, user.ID)
	assert.NoError(t, err)
}

func TestOutsourceCompanyLifecycle(t *testing.T) {
	db := setupTestDB(t)

	_, err := CreateOutsourceCompany(db, OutsourceCompanyInput{Name: "Bad", ShortName: "BAD", TaxNumber: strPtr("123")})
	assert.ErrorIs(t, err, ErrValidation)

	company, err := CreateOutsourceCompany(db, OutsourceCompanyInput{Name: "Partner Kft.", ShortName: "ptr", TaxNumber: strPtr("12345678901")})
	require.NoError(t, err)
	assert.Equal(t, "PTR", company.ShortName)

	_, err = CreateOutsourceCompany(db, OutsourceCompanyInput{Name: "Other", ShortName: "PTR"})
	assert.ErrorIs(t, err, ErrConflict)

	client := mustClient(t, db, "C-1", "Acme Zrt.")
	c, err := CreateCase(db, CaseInput{
		Name: "Outsourced", ClientID: client.ID, BillingType: models.BillingTypeHourly,
		RateAmount: decimal.NewFromInt(100), IsOutsourced: true, OutsourceCompanyID: &company.ID,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, DeleteOutsourceCompany(db, company.ID), ErrConflict)

	// renaming keeps existing case numbers
	_, err = UpdateOutsourceCompany(db, company.ID, OutsourceCompanyInput{Name: "Partner Kft.", ShortName: "NEW"})
	require.NoError(t, err)
	stored, err := GetCase(db, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Number, stored.Number)

	require.NoError(t, DeleteCase(db, c.ID))
	require.NoError(t, DeleteOutsourceCompany(db, company.ID))

	list, err := ListOutsourceCompanies(db, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSeedCaseTypes(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SeedCaseTypes(db))
	types, err := ListCaseTypes(db, false)
	require.NoError(t, err)
	assert.Len(t, types, len(DefaultCaseTypes))

	// switched-off types stay off after another seed run
	_, err = SetCaseTypeActive(db, types[0].ID, false)
	require.NoError(t, err)
	require.NoError(t, SeedCaseTypes(db))

	all, err := ListCaseTypes(db, false)
	require.NoError(t, err)
	assert.Len(t, all, len(DefaultCaseTypes))

	active, err := ListCaseTypes(db, true)
	require.NoError(t, err)
	assert.Len(t, active, len(DefaultCaseTypes)-1)

	_, err = SetCaseTypeActive(db, 999, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestErrorKinds(t *testing.T) {
	assert.ErrorIs(t, invalid("name", "is required"), ErrValidation)
	assert.NotErrorIs(t, invalid("name", "is required"), ErrNotFound)
	assert.ErrorIs(t, notFound("case", 1), ErrNotFound)
	assert.ErrorIs(t, conflict("client", "x"), ErrConflict)
	assert.ErrorIs(t, storageErr("op", assert.AnError), ErrStorage)
	assert.ErrorIs(t, storageErr("op", assert.AnError), assert.AnError)
	assert.Equal(t, "name: is required", invalid("name", "is required").Error())
	assert.Nil(t, storageErr("op", nil))
}
