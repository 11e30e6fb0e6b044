package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("value"))
	assert.False(t, IsEmpty("  value  "))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.co",
		"user+tag@example.io",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@example",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("01912f4c-8c5a-7abc-89de-123456789abc"))
	// Version 4 is rejected, only v7 ids are issued here.
	assert.False(t, IsValidUUID("9b2db1d2-2f18-4d2a-9a7c-0a8f3b1a6d11"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestIsValidEmployeeCode(t *testing.T) {
	assert.True(t, IsValidEmployeeCode("000123"))
	assert.True(t, IsValidEmployeeCode("999999"))
	assert.False(t, IsValidEmployeeCode("12345"))
	assert.False(t, IsValidEmployeeCode("1234567"))
	assert.False(t, IsValidEmployeeCode("12a456"))
	assert.False(t, IsValidEmployeeCode(""))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-03-10")
	assert.True(t, ok)
	assert.Equal(t, 2025, date.Year())

	_, ok = IsValidDate("10-03-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)
}

func TestIsValidYearMonth(t *testing.T) {
	ym, ok := IsValidYearMonth("2025-03")
	assert.True(t, ok)
	assert.Equal(t, 2025, ym.Year())

	_, ok = IsValidYearMonth("2025-3")
	assert.False(t, ok)

	_, ok = IsValidYearMonth("2025-03-10")
	assert.False(t, ok)
}

func TestIsInSlice(t *testing.T) {
	roles := []string{"staff", "manager", "owner"}
	assert.True(t, IsInSlice("manager", roles))
	assert.False(t, IsInSlice("admin", roles))
	assert.False(t, IsInSlice("", roles))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "employee_id", Message: "employee_id is required"},
		{Field: "date", Message: "date must be in YYYY-MM-DD format"},
	}

	assert.Contains(t, errs.Error(), "employee_id is required")
	assert.Contains(t, errs.Error(), "date must be in YYYY-MM-DD format")

	m := errs.ToMap()
	assert.Len(t, m, 2)
	assert.Equal(t, "employee_id is required", m["employee_id"])
}
