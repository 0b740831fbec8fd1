package handlers

import (
	"net/http"
	"strings"

	"lexium/services"

	"github.com/labstack/echo/v4"
)

// APIUsers returns the users as JSON, filtered by ?q=
func (h *Handler) APIUsers(c echo.Context) error {
	users, err := services.ListUsers(h.db(c), strings.TrimSpace(c.QueryParam("q")))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, emptyIfNil(users))
}

// APICases returns the cases as JSON with the same filters as the case list
func (h *Handler) APICases(c echo.Context) error {
	clientID, err := parseOptionalID("client_id", c.QueryParam("client_id"))
	if err != nil {
		return httpError(c, err)
	}
	cases, err := services.ListCases(h.db(c), services.CaseFilters{
		Keyword:    strings.TrimSpace(c.QueryParam("q")),
		ClientID:   clientID,
		ActiveOnly: checkbox(c.QueryParam("active_only")),
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, emptyIfNil(cases))
}
