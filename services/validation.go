package services

import (
	"html"
	"strings"
	"unicode/utf8"

	"lexium/models"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// SanitizeText strips markup from free text and trims it. The result is plain
// text: entities the policy escapes are decoded again, so "B&K" stays "B&K".
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// ValidateTaxNumber checks an optional tax number. Empty means absent;
// anything else must be exactly models.TaxNumberLength characters.
func ValidateTaxNumber(taxNumber *string) error {
	if taxNumber == nil {
		return nil
	}
	if utf8.RuneCountInString(*taxNumber) != models.TaxNumberLength {
		return invalid("tax_number", "tax number must be exactly 11 characters")
	}
	return nil
}

// NormalizeTaxNumber trims the value and turns an empty string into nil
func NormalizeTaxNumber(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// required and maxLength check the value as it will be stored
func required(field, value string) error {
	if SanitizeText(value) == "" {
		return invalid(field, "is required")
	}
	return nil
}

func maxLength(field, value string, n int) error {
	if utf8.RuneCountInString(SanitizeText(value)) > n {
		return invalid(field, "is too long")
	}
	return nil
}

// firstError returns the first non-nil error
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
