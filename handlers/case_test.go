package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"lexium/models"
	"lexium/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCase(t *testing.T) {
	h, e := setupServer(t)
	client := seedClient(t, h.DB, "C-1", "Acme Zrt.")

	rec := doPost(e, "/cases", url.Values{
		"name":         {"Lease dispute"},
		"client_id":    {idValue(client.ID)},
		"billing_type": {"hourly"},
		"rate_amount":  {"120,50"},
		"is_active":    {"1"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var stored models.Case
	require.NoError(t, h.DB.First(&stored).Error)
	assert.Equal(t, "00001", stored.Number)
	assert.Equal(t, models.BillingTypeHourly, stored.BillingType)
	assert.Equal(t, "120.5", stored.RateAmount.String())
	assert.True(t, stored.IsActive)

	page := doGetWithCookie(e, "/cases", flashCookie(t, rec))
	assert.Contains(t, page.Body.String(), "Case 00001 created.")
	assert.Contains(t, page.Body.String(), "Lease dispute")
}

func TestCreateOutsourcedCase(t *testing.T) {
	h, e := setupServer(t)
	client := seedClient(t, h.DB, "C-1", "Acme Zrt.")
	company, err := services.CreateOutsourceCompany(h.DB, services.OutsourceCompanyInput{Name: "Partner Kft.", ShortName: "prt"})
	require.NoError(t, err)

	t.Run("Company required", func(t *testing.T) {
		rec := doPost(e, "/cases", url.Values{
			"name":          {"Outsourced"},
			"client_id":     {idValue(client.ID)},
			"billing_type":  {"FIXED"},
			"rate_amount":   {"500"},
			"is_outsourced": {"1"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "needs an outsource company")
	})

	t.Run("Prefixed number", func(t *testing.T) {
		rec := doPost(e, "/cases", url.Values{
			"name":                 {"Outsourced"},
			"client_id":            {idValue(client.ID)},
			"billing_type":         {"FIXED"},
			"rate_amount":          {"500"},
			"is_outsourced":        {"1"},
			"outsource_company_id": {idValue(company.ID)},
		})
		require.Equal(t, http.StatusSeeOther, rec.Code)

		var stored models.Case
		require.NoError(t, h.DB.Where("name = ?", "Outsourced").First(&stored).Error)
		assert.Equal(t, "PRT"+padded(stored.ID), stored.Number)
	})
}

func TestCreateCaseBadRate(t *testing.T) {
	h, e := setupServer(t)
	client := seedClient(t, h.DB, "C-1", "Acme Zrt.")

	rec := doPost(e, "/cases", url.Values{
		"name":         {"Lease"},
		"client_id":    {idValue(client.ID)},
		"billing_type": {"HOURLY"},
		"rate_amount":  {"lots"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be a number")

	var count int64
	h.DB.Model(&models.Case{}).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateCaseKeepsNumber(t *testing.T) {
	h, e := setupServer(t)
	client := seedClient(t, h.DB, "C-1", "Acme Zrt.")
	kase := seedCase(t, h.DB, client.ID, "Lease", 100)

	rec := doGet(e, "/cases/"+idValue(kase.ID)+"/edit")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), kase.Number)

	rec = doPost(e, "/cases/"+idValue(kase.ID), url.Values{
		"name":         {"Lease renamed"},
		"client_id":    {idValue(client.ID)},
		"billing_type": {"FIXED"},
		"rate_amount":  {"900"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var stored models.Case
	require.NoError(t, h.DB.First(&stored, kase.ID).Error)
	assert.Equal(t, kase.Number, stored.Number)
	assert.Equal(t, "Lease renamed", stored.Name)
	assert.Equal(t, models.BillingTypeFixed, stored.BillingType)
	assert.False(t, stored.IsActive)
}

func TestDeleteCaseRemovesWork(t *testing.T) {
	h, e := setupServer(t)
	client := seedClient(t, h.DB, "C-1", "Acme Zrt.")
	kase := seedCase(t, h.DB, client.ID, "Lease", 100)
	user := seedUser(t, h.DB, "anna")
	seedWork(t, h.DB, user.ID, kase.ID, "2026-03-02", "09:00", "10:00")

	rec := doPost(e, "/cases/"+idValue(kase.ID)+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var cases, works int64
	h.DB.Model(&models.Case{}).Count(&cases)
	h.DB.Model(&models.CaseWork{}).Count(&works)
	assert.Zero(t, cases)
	assert.Zero(t, works)

	rec = doPost(e, "/cases/"+idValue(kase.ID)+"/delete", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMarkCaseBilled(t *testing.T) {
	h, e := setupServer(t)
	client := seedClient(t, h.DB, "C-1", "Acme Zrt.")
	kase := seedCase(t, h.DB, client.ID, "Lease", 100)
	user := seedUser(t, h.DB, "anna")
	seedWork(t, h.DB, user.ID, kase.ID, "2026-03-02", "09:00", "10:00")
	seedWork(t, h.DB, user.ID, kase.ID, "2026-03-03", "09:00", "11:30")

	rec := doPost(e, "/cases/"+idValue(kase.ID)+"/billed", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	page := doGetWithCookie(e, "/cases", flashCookie(t, rec))
	assert.Contains(t, page.Body.String(), "2 entries marked as billed.")

	var unbilled int64
	h.DB.Model(&models.CaseWork{}).Where("billed = ?", false).Count(&unbilled)
	assert.Zero(t, unbilled)

	var durations []int64
	h.DB.Model(&models.CaseWork{}).Order("date").Pluck("duration_seconds", &durations)
	assert.Equal(t, []int64{3600, 9000}, durations)
}

func TestCasesPageFilters(t *testing.T) {
	h, e := setupServer(t)
	acme := seedClient(t, h.DB, "C-1", "Acme Zrt.")
	globex := seedClient(t, h.DB, "C-2", "Globex Kft.")
	seedCase(t, h.DB, acme.ID, "Acme lease", 100)
	seedCase(t, h.DB, globex.ID, "Globex merger", 100)

	rec := doGet(e, "/cases?client_id="+idValue(globex.ID), "HX-Request", "true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Globex merger")
	assert.NotContains(t, rec.Body.String(), "Acme lease")
}

func padded(id uint) string {
	return models.FormatCaseNumber(id, "")
}
