package company

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTaxID_FloatArtifact(t *testing.T) {
	assert.Equal(t, "7707083893", CleanTaxID("7707083893.0"))
}

func TestCleanTaxID_Whitespace(t *testing.T) {
	assert.Equal(t, "7707083893", CleanTaxID("  7707 083 893 "))
}

func TestCleanTaxID_NonDigits(t *testing.T) {
	assert.Equal(t, "123456789012", CleanTaxID("ИНН 1234-5678-9012"))
}

func TestCleanTaxID_Empty(t *testing.T) {
	assert.Equal(t, "", CleanTaxID("   "))
}

func TestCleanTaxID_KeepsInvalidLength(t *testing.T) {
	// Cleaning never validates: odd lengths pass through for the merge
	// stage and get dropped at export.
	assert.Equal(t, "12345", CleanTaxID("12345"))
}

func TestValidTaxID(t *testing.T) {
	assert.True(t, ValidTaxID("7707083893"))
	assert.True(t, ValidTaxID("770708389312"))
	assert.False(t, ValidTaxID("77070838"))
	assert.False(t, ValidTaxID("77070838931"))
	assert.False(t, ValidTaxID("77070838ab"))
	assert.False(t, ValidTaxID(""))
}

func TestNormalizeName_LegalForm(t *testing.T) {
	assert.Equal(t, "ромашка", NormalizeName(`ООО "Ромашка"`))
}

func TestNormalizeName_GuillemetsAndCase(t *testing.T) {
	assert.Equal(t, "первый бит", NormalizeName("ЗАО «Первый БИТ»"))
}

func TestNormalizeName_English(t *testing.T) {
	assert.Equal(t, "acme", NormalizeName("Acme LLC"))
}

func TestNormalizeName_Empty(t *testing.T) {
	assert.Equal(t, "", NormalizeName("  "))
}
