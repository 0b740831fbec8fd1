package services

import (
	"strings"
	"testing"
	"time"

	"lexium/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateClientTaxNumberLength(t *testing.T) {
	db := setupTestDB(t)

	for n := 0; n <= 15; n++ {
		if n == 0 {
			continue
		}
		tax := strings.Repeat("1", n)
		c, err := CreateClient(db, ClientInput{
			ClientType: models.ClientTypeCompany,
			ClientCode: "CODE-" + tax,
			Name:       "Company",
			TaxNumber:  &tax,
		})
		if n == models.TaxNumberLength {
			require.NoError(t, err)
			assert.Equal(t, tax, *c.TaxNumber)
		} else {
			assert.ErrorIs(t, err, ErrValidation, "length %d", n)
		}
	}

	// absent tax number is fine
	_, err := CreateClient(db, ClientInput{ClientType: models.ClientTypePerson, ClientCode: "P-1", Name: "Person"})
	assert.NoError(t, err)

	var count int64
	db.Model(&models.Client{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestNormalizeTaxNumber(t *testing.T) {
	assert.Nil(t, NormalizeTaxNumber("   "))
	assert.Equal(t, "12345678901", *NormalizeTaxNumber(" 12345678901 "))
}

func TestCreateClientVariants(t *testing.T) {
	db := setupTestDB(t)
	birth := time.Date(1980, 5, 4, 0, 0, 0, 0, time.UTC)

	person, err := CreateClient(db, ClientInput{
		ClientType: models.ClientTypePerson,
		ClientCode: "P-1",
		Name:       "Kiss Péter",
		BirthDate:  &birth,
		Address:    "Szeged, Fő tér 1.",
	})
	require.NoError(t, err)

	stored, err := GetClient(db, person.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPerson())
	require.NotNil(t, stored.Person)
	assert.Nil(t, stored.Company)
	assert.Equal(t, "Szeged, Fő tér 1.", stored.Person.Address)
	assert.Equal(t, "1980-05-04", stored.Person.BirthDate.Format(DateLayout))

	_, err = CreateClient(db, ClientInput{ClientType: "ROBOT", ClientCode: "R-1", Name: "Robot"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = CreateClient(db, ClientInput{ClientType: models.ClientTypeCompany, ClientCode: "P-1", Name: "Dup"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdateClientSwitchesVariant(t *testing.T) {
	db := setupTestDB(t)
	c := mustClient(t, db, "C-1", "Acme")

	updated, err := UpdateClient(db, c.ID, ClientInput{
		ClientType: models.ClientTypePerson,
		ClientCode: "C-1",
		Name:       "Acme Person",
		Address:    "Pécs",
	})
	require.NoError(t, err)
	assert.True(t, updated.IsPerson())

	stored, err := GetClient(db, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Person", stored.Name)
	require.NotNil(t, stored.Person)
	assert.Nil(t, stored.Company)

	var companies int64
	db.Model(&models.ClientCompany{}).Count(&companies)
	assert.Equal(t, int64(0), companies)

	_, err = UpdateClient(db, 999, ClientInput{ClientType: models.ClientTypePerson, ClientCode: "X", Name: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListClients(t *testing.T) {
	db := setupTestDB(t)
	mustClient(t, db, "C-2", "Zeta Kft.")
	mustClient(t, db, "C-1", "Alfa Zrt.")

	all, err := ListClients(db, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alfa Zrt.", all[0].Name)
	assert.NotNil(t, all[0].Company)

	found, err := ListClients(db, "Zeta")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "C-2", found[0].ClientCode)
}

func TestDeleteClientWithCasesIsRejected(t *testing.T) {
	db := setupTestDB(t)
	client := mustClient(t, db, "C-1", "Acme Zrt.")
	c := mustCase(t, db, client.ID, "Case", models.BillingTypeHourly, 100)

	err := DeleteClient(db, client.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// client, payload and case are all still there
	stored, err := GetClient(db, client.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.Company)
	_, err = GetCase(db, c.ID)
	assert.NoError(t, err)

	// once the case is gone the client can be deleted
	require.NoError(t, DeleteCase(db, c.ID))
	require.NoError(t, DeleteClient(db, client.ID))

	var orphans int64
	db.Model(&models.Case{}).
		Joins("LEFT JOIN clients ON clients.id = cases.client_id").
		Where("clients.id IS NULL").
		Count(&orphans)
	assert.Equal(t, int64(0), orphans)

	var payloads int64
	db.Model(&models.ClientCompany{}).Count(&payloads)
	assert.Equal(t, int64(0), payloads)

	assert.ErrorIs(t, DeleteClient(db, client.ID), ErrNotFound)
}
