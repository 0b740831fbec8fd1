package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"lexium/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateClient(t *testing.T) {
	h, e := setupServer(t)

	rec := doPost(e, "/clients", url.Values{
		"client_type":  {"company"},
		"client_code":  {"C-1"},
		"name":         {"Acme Zrt."},
		"tax_number":   {"12345678212"},
		"headquarters": {"Budapest"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/clients", rec.Header().Get("Location"))

	var stored models.Client
	require.NoError(t, h.DB.Preload("Company").Where("client_code = ?", "C-1").First(&stored).Error)
	assert.Equal(t, models.ClientTypeCompany, stored.ClientType)
	require.NotNil(t, stored.Company)
	assert.Equal(t, "Budapest", stored.Company.Headquarters)

	// the flash survives the redirect
	req := doGetWithCookie(e, "/clients", flashCookie(t, rec))
	assert.Equal(t, http.StatusOK, req.Code)
	assert.Contains(t, req.Body.String(), "Client Acme Zrt. saved.")
	assert.Contains(t, req.Body.String(), "12345678212")
}

func TestCreateClientValidation(t *testing.T) {
	h, e := setupServer(t)

	t.Run("Missing name", func(t *testing.T) {
		rec := doPost(e, "/clients", url.Values{
			"client_type": {"PERSON"},
			"client_code": {"C-2"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "is required")
		assert.Contains(t, rec.Body.String(), `value="C-2"`)
	})

	t.Run("Bad birth date", func(t *testing.T) {
		rec := doPost(e, "/clients", url.Values{
			"client_type": {"PERSON"},
			"client_code": {"C-3"},
			"name":        {"Kiss Béla"},
			"birth_date":  {"1990.01.01"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid date format")
	})

	t.Run("Duplicate code", func(t *testing.T) {
		seedClient(t, h.DB, "C-9", "First")
		rec := doPost(e, "/clients", url.Values{
			"client_type":  {"COMPANY"},
			"client_code":  {"C-9"},
			"name":         {"Second"},
			"headquarters": {"Szeged"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	var count int64
	h.DB.Model(&models.Client{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateClient(t *testing.T) {
	h, e := setupServer(t)
	client := seedClient(t, h.DB, "C-1", "Acme Zrt.")

	rec := doGet(e, "/clients/"+idValue(client.ID)+"/edit")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Acme Zrt."`)

	rec = doPost(e, "/clients/"+idValue(client.ID), url.Values{
		"client_type": {"PERSON"},
		"client_code": {"C-1"},
		"name":        {"Acme Person"},
		"birth_date":  {"1980-05-01"},
		"address":     {"Debrecen"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var stored models.Client
	require.NoError(t, h.DB.Preload("Person").Preload("Company").First(&stored, client.ID).Error)
	assert.Equal(t, "Acme Person", stored.Name)
	assert.Equal(t, models.ClientTypePerson, stored.ClientType)
	require.NotNil(t, stored.Person)
	assert.Equal(t, "Debrecen", stored.Person.Address)
	assert.Nil(t, stored.Company)

	rec = doGet(e, "/clients/999/edit")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteClient(t *testing.T) {
	h, e := setupServer(t)
	withCases := seedClient(t, h.DB, "C-1", "Busy")
	seedCase(t, h.DB, withCases.ID, "Lease", 100)
	idle := seedClient(t, h.DB, "C-2", "Idle")

	t.Run("Client with cases is kept", func(t *testing.T) {
		rec := doPost(e, "/clients/"+idValue(withCases.ID)+"/delete", nil)
		require.Equal(t, http.StatusSeeOther, rec.Code)

		page := doGetWithCookie(e, "/clients", flashCookie(t, rec))
		assert.Contains(t, page.Body.String(), "cannot be deleted")

		var count int64
		h.DB.Model(&models.Client{}).Where("id = ?", withCases.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("htmx delete redirects with header", func(t *testing.T) {
		rec := doPost(e, "/clients/"+idValue(idle.ID)+"/delete", nil, "HX-Request", "true")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/clients", rec.Header().Get("HX-Redirect"))

		var count int64
		h.DB.Model(&models.Client{}).Where("id = ?", idle.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

func TestClientsPageHTMX(t *testing.T) {
	h, e := setupServer(t)
	seedClient(t, h.DB, "C-1", "Acme Zrt.")
	seedClient(t, h.DB, "C-2", "Globex Kft.")

	rec := doGet(e, "/clients?q=Globex", "HX-Request", "true")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="results"`)
	assert.Contains(t, body, "Globex Kft.")
	assert.NotContains(t, body, "Acme Zrt.")
	assert.NotContains(t, body, "<html")

	rec = doGet(e, "/clients")
	assert.Contains(t, rec.Body.String(), "<html")
	assert.Contains(t, rec.Body.String(), "Acme Zrt.")
}
