package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestByCode verifies directory lookups by carrier code.
func TestByCode(t *testing.T) {
	c, ok := ByCode("04")

	require.True(t, ok)
	assert.Equal(t, "CJ대한통운", c.Name)
	assert.Equal(t, "1588-1255", c.Contact)

	_, ok = ByCode("99")
	assert.False(t, ok)
}

// TestByName verifies alias lookups are case-insensitive and space-stripped.
func TestByName(t *testing.T) {
	c, ok := ByName("CJ 대한통운")
	require.True(t, ok)
	assert.Equal(t, "04", c.Code)

	c, ok = ByName("롯데")
	require.True(t, ok)
	assert.Equal(t, "08", c.Code)

	_, ok = ByName("없는택배사")
	assert.False(t, ok)
}

// TestAll verifies the directory lists every carrier in fixed order.
func TestAll(t *testing.T) {
	all := All()

	require.Len(t, all, 10)
	assert.Equal(t, "04", all[0].Code)
	assert.Equal(t, "22", all[len(all)-1].Code)
}

// TestDetectFromNumber_CJ verifies 12-13 digit numbers starting with 6 map to CJ.
func TestDetectFromNumber_CJ(t *testing.T) {
	code, ok := DetectFromNumber("640123456789")
	require.True(t, ok)
	assert.Equal(t, "04", code)

	code, ok = DetectFromNumber("6401234567890")
	require.True(t, ok)
	assert.Equal(t, "04", code)
}

// TestDetectFromNumber_KoreaPost verifies 13 digit numbers map to Korea Post.
func TestDetectFromNumber_KoreaPost(t *testing.T) {
	code, ok := DetectFromNumber("1234567890123")

	require.True(t, ok)
	assert.Equal(t, "01", code)
}

// TestDetectFromNumber_Logen verifies 11 digit numbers map to Logen.
func TestDetectFromNumber_Logen(t *testing.T) {
	code, ok := DetectFromNumber("12345678901")

	require.True(t, ok)
	assert.Equal(t, "06", code)
}

// TestDetectFromNumber_Ambiguous12Digits verifies 12 digit numbers not
// starting with 6 stay undetected: several carriers share that length.
func TestDetectFromNumber_Ambiguous12Digits(t *testing.T) {
	_, ok := DetectFromNumber("123456789012")

	assert.False(t, ok)
}

// TestDetectFromNumber_RuleOrder verifies the CJ rule wins over the
// Korea Post rule for 13 digit numbers starting with 6.
func TestDetectFromNumber_RuleOrder(t *testing.T) {
	code, ok := DetectFromNumber("6123456789012")

	require.True(t, ok)
	assert.Equal(t, "04", code)
}

// TestDetectFromNumber_NonDigits verifies non-numeric input is rejected.
func TestDetectFromNumber_NonDigits(t *testing.T) {
	_, ok := DetectFromNumber("64012345678X")
	assert.False(t, ok)

	_, ok = DetectFromNumber("")
	assert.False(t, ok)
}

// TestValidNumber verifies the plausibility check.
func TestValidNumber(t *testing.T) {
	assert.True(t, ValidNumber("1234567890"))
	assert.True(t, ValidNumber("12345678901234"))
	assert.False(t, ValidNumber("123456789"))
	assert.False(t, ValidNumber("123456789012345"))
	assert.False(t, ValidNumber("12345abc90"))
	assert.False(t, ValidNumber(""))
}
