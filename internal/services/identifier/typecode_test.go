package identifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveTypeCode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"three words take one initial each", "Smart Phone Case", "SPC"},
		{"four words still take three initials", "Universal Serial Bus Hub", "USB"},
		{"two words take two plus one", "Office Chair", "OFC"},
		{"two words with single-letter first take one plus two", "A Pen", "APE"},
		{"single word takes first three letters", "Laptop", "LAP"},
		{"lowercase input is uppercased", "mouse pad", "MOP"},
		{"short name pads by repeating last letter", "Ox", "OXX"},
		{"single letter pads twice", "A", "AAA"},
		{"empty name falls back", "", "UNK"},
		{"whitespace only falls back", "   ", "UNK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveTypeCode(tt.input))
		})
	}
}

func TestFormatProductID(t *testing.T) {
	assert.Equal(t, "SPC000001", FormatProductID("SPC", 1))
	assert.Equal(t, "LAP000042", FormatProductID("LAP", 42))
	assert.Equal(t, "UNK123456", FormatProductID("UNK", 123456))
}

func TestRequisitionKey(t *testing.T) {
	dhaka, err := time.LoadLocation("Asia/Dhaka")
	require.NoError(t, err)

	aug := time.Date(2025, time.August, 15, 12, 0, 0, 0, dhaka)
	assert.Equal(t, "REQ0825", RequisitionKey(aug, dhaka))

	// 23:30 UTC on Aug 31 is already September in Dhaka (UTC+6).
	endOfMonth := time.Date(2025, time.August, 31, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "REQ0925", RequisitionKey(endOfMonth, dhaka))
	assert.Equal(t, "REQ0825", RequisitionKey(endOfMonth, time.UTC))
}

func TestFormatRequisitionID(t *testing.T) {
	assert.Equal(t, "REQ0825000001", FormatRequisitionID("REQ0825", 1))
	assert.Equal(t, "REQ1225000317", FormatRequisitionID("REQ1225", 317))
}
