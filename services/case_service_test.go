package services

import (
	"fmt"
	"strings"
	"testing"

	"lexium/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCaseNumber(t *testing.T) {
	assert.Equal(t, "00042", FormatCaseNumber(42, nil))
	assert.Equal(t, "00007", FormatCaseNumber(7, nil))
	assert.Equal(t, "KPMG00042", FormatCaseNumber(42, &models.OutsourceCompany{ShortName: "KPMG"}))
	assert.Equal(t, "123456", FormatCaseNumber(123456, nil))
}

func TestCreateCaseNumbering(t *testing.T) {
	db := setupTestDB(t)
	client := mustClient(t, db, "C-1", "Acme Zrt.")
	company := mustCompany(t, db, "OUT")

	var created []*models.Case
	for i := 0; i < 3; i++ {
		created = append(created, mustCase(t, db, client.ID, fmt.Sprintf("Case %d", i), models.BillingTypeHourly, 100))
	}
	outsourced, err := CreateCase(db, CaseInput{
		Name:               "Outsourced",
		ClientID:           client.ID,
		BillingType:        models.BillingTypeFixed,
		RateAmount:         decimal.NewFromInt(500),
		IsOutsourced:       true,
		OutsourceCompanyID: &company.ID,
		IsActive:           true,
	})
	require.NoError(t, err)
	created = append(created, outsourced)

	seen := map[string]bool{}
	for _, c := range created {
		var stored models.Case
		require.NoError(t, db.First(&stored, c.ID).Error)

		want := fmt.Sprintf("%05d", stored.ID)
		if stored.IsOutsourced {
			want = "OUT" + want
		}
		assert.Equal(t, want, stored.Number)
		assert.Equal(t, c.Number, stored.Number)
		assert.False(t, strings.HasPrefix(stored.Number, pendingNumberPrefix))
		assert.False(t, seen[stored.Number], "duplicate number %s", stored.Number)
		seen[stored.Number] = true
	}
	assert.Equal(t, "OUT", outsourced.OutsourceCompany.ShortName)
}

func TestCreateCaseOutsourcedWithoutCompany(t *testing.T) {
	db := setupTestDB(t)
	client := mustClient(t, db, "C-1", "Acme Zrt.")

	c, err := CreateCase(db, CaseInput{
		Name:         "Outsourced",
		ClientID:     client.ID,
		BillingType:  models.BillingTypeHourly,
		RateAmount:   decimal.NewFromInt(100),
		IsOutsourced: true,
	})
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrValidation)

	var count int64
	db.Model(&models.Case{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateCaseValidation(t *testing.T) {
	db := setupTestDB(t)
	client := mustClient(t, db, "C-1", "Acme Zrt.")

	tests := []struct {
		name  string
		input CaseInput
	}{
		{"missing name", CaseInput{ClientID: client.ID, BillingType: models.BillingTypeHourly}},
		{"missing client", CaseInput{Name: "x", BillingType: models.BillingTypeHourly}},
		{"bad billing type", CaseInput{Name: "x", ClientID: client.ID, BillingType: "MONTHLY"}},
		{"negative rate", CaseInput{Name: "x", ClientID: client.ID, BillingType: models.BillingTypeFixed, RateAmount: decimal.NewFromInt(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateCase(db, tt.input)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateCaseUnknownReferences(t *testing.T) {
	db := setupTestDB(t)
	client := mustClient(t, db, "C-1", "Acme Zrt.")

	_, err := CreateCase(db, CaseInput{Name: "x", ClientID: 999, BillingType: models.BillingTypeHourly})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = CreateCase(db, CaseInput{
		Name: "x", ClientID: client.ID, BillingType: models.BillingTypeHourly,
		IsOutsourced: true, OutsourceCompanyID: uintPtr(999),
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = CreateCase(db, CaseInput{
		Name: "x", ClientID: client.ID, BillingType: models.BillingTypeHourly, CaseTypeID: uintPtr(999),
	})
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	db.Model(&models.Case{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUpdateCase(t *testing.T) {
	db := setupTestDB(t)
	client := mustClient(t, db, "C-1", "Acme Zrt.")
	company := mustCompany(t, db, "EXT")
	c := mustCase(t, db, client.ID, "Original", models.BillingTypeHourly, 100)
	plain := FormatCaseNumber(c.ID, nil)

	updated, err := UpdateCase(db, c.ID, CaseInput{
		Name:               "Renamed",
		ClientID:           client.ID,
		BillingType:        models.BillingTypeFixed,
		RateAmount:         decimal.NewFromFloat(250.5),
		IsOutsourced:       true,
		OutsourceCompanyID: &company.ID,
		IsActive:           false,
	})
	require.NoError(t, err)
	assert.Equal(t, "EXT"+plain, updated.Number)
	assert.Equal(t, "Renamed", updated.Name)

	stored, err := GetCase(db, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "EXT"+plain, stored.Number)
	assert.False(t, stored.IsActive)
	assert.True(t, decimal.NewFromFloat(250.5).Equal(stored.RateAmount))
	assert.Equal(t, "Acme Zrt.", stored.Client.Name)

	// back in-house drops the prefix but keeps the digits
	back, err := UpdateCase(db, c.ID, CaseInput{
		Name: "Renamed", ClientID: client.ID, BillingType: models.BillingTypeFixed,
		RateAmount: decimal.NewFromInt(250), OutsourceCompanyID: &company.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, plain, back.Number)
	assert.Nil(t, back.OutsourceCompanyID)

	_, err = UpdateCase(db, 999, CaseInput{Name: "x", ClientID: client.ID, BillingType: models.BillingTypeHourly})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateCaseKeepsNumberAfterCompanyRename(t *testing.T) {
	db := setupTestDB(t)
	client := mustClient(t, db, "C-1", "Acme Zrt.")
	company := mustCompany(t, db, "ABC")
	input := CaseInput{
		Name: "Original", ClientID: client.ID, BillingType: models.BillingTypeHourly,
		RateAmount: decimal.NewFromInt(100), IsOutsourced: true, OutsourceCompanyID: &company.ID, IsActive: true,
	}
	c, err := CreateCase(db, input)
	require.NoError(t, err)
	assert.Equal(t, "ABC00001", c.Number)

	_, err = UpdateOutsourceCompany(db, company.ID, OutsourceCompanyInput{Name: company.Name, ShortName: "XYZ"})
	require.NoError(t, err)

	input.Name = "Renamed"
	updated, err := UpdateCase(db, c.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "ABC00001", updated.Number)
	assert.Equal(t, "XYZ", updated.OutsourceCompany.ShortName)

	stored, err := GetCase(db, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "ABC00001", stored.Number)
	assert.Equal(t, "Renamed", stored.Name)

	// moving to another company does re-derive the prefix
	other := mustCompany(t, db, "OTH")
	input.OutsourceCompanyID = &other.ID
	moved, err := UpdateCase(db, c.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "OTH00001", moved.Number)
}

func TestCreateCaseRollsBackOnNumberConflict(t *testing.T) {
	db := setupTestDB(t)
	client := mustClient(t, db, "C-1", "Acme Zrt.")
	first := mustCase(t, db, client.ID, "First", models.BillingTypeHourly, 100)

	// take the number the next case would be given
	taken := FormatCaseNumber(first.ID+1, nil)
	require.NoError(t, db.Model(first).Update("number", taken).Error)

	c, err := CreateCase(db, CaseInput{
		Name: "Second", ClientID: client.ID, BillingType: models.BillingTypeHourly,
		RateAmount: decimal.NewFromInt(100), IsActive: true,
	})
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrConflict)

	var count int64
	db.Model(&models.Case{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var pending int64
	db.Model(&models.Case{}).Where("number LIKE ?", pendingNumberPrefix+"%").Count(&pending)
	assert.Zero(t, pending)

	var stored models.Case
	require.NoError(t, db.First(&stored, first.ID).Error)
	assert.Equal(t, taken, stored.Number)
}

func TestListCases(t *testing.T) {
	db := setupTestDB(t)
	acme := mustClient(t, db, "C-1", "Acme Zrt.")
	other := mustClient(t, db, "C-2", "Globex Kft.")
	first := mustCase(t, db, acme.ID, "Contract review", models.BillingTypeHourly, 100)
	second := mustCase(t, db, other.ID, "Lease dispute", models.BillingTypeFixed, 300)
	require.NoError(t, db.Model(second).Update("is_active", false).Error)

	all, err := ListCases(db, CaseFilters{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.Number, all[0].Number)
	assert.Equal(t, "Acme Zrt.", all[0].Client.Name)

	active, err := ListCases(db, CaseFilters{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, first.ID, active[0].ID)

	byClient, err := ListCases(db, CaseFilters{Keyword: "Globex"})
	require.NoError(t, err)
	require.Len(t, byClient, 1)
	assert.Equal(t, second.ID, byClient[0].ID)

	byID, err := ListCases(db, CaseFilters{ClientID: acme.ID})
	require.NoError(t, err)
	assert.Len(t, byID, 1)
}

func TestDeleteCaseCascadesWork(t *testing.T) {
	db := setupTestDB(t)
	user := mustUser(t, db, "anna")
	client := mustClient(t, db, "C-1", "Acme Zrt.")
	doomed := mustCase(t, db, client.ID, "Doomed", models.BillingTypeHourly, 100)
	kept := mustCase(t, db, client.ID, "Kept", models.BillingTypeHourly, 100)
	mustWork(t, db, user.ID, doomed.ID, "2026-01-05", "09:00", "10:00", false)
	mustWork(t, db, user.ID, doomed.ID, "2026-01-06", "09:00", "10:00", true)
	mustWork(t, db, user.ID, kept.ID, "2026-01-06", "11:00", "12:00", false)

	require.NoError(t, DeleteCase(db, doomed.ID))

	var cases, works int64
	db.Model(&models.Case{}).Count(&cases)
	db.Model(&models.CaseWork{}).Count(&works)
	assert.Equal(t, int64(1), cases)
	assert.Equal(t, int64(1), works)

	assert.ErrorIs(t, DeleteCase(db, doomed.ID), ErrNotFound)
}
