package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	// Capitol switchboard
	result, err := Validate("(202) 224-3121", "US")
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Equal(t, "+12022243121", result.E164Format)
	assert.Equal(t, "(202) 224-3121", result.NationalFormat)
	assert.Equal(t, "US", result.Region)
}

func TestValidateDefaultsToUS(t *testing.T) {
	result, err := Validate("2022243121", "")
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Equal(t, "+12022243121", result.E164Format)
}

func TestValidateEmpty(t *testing.T) {
	_, err := Validate("", "US")
	require.Error(t, err)
}

func TestNormalize(t *testing.T) {
	e164, err := Normalize("202-224-3121", "US")
	require.NoError(t, err)
	assert.Equal(t, "+12022243121", e164)
}

func TestNormalizeRejectsInvalid(t *testing.T) {
	// 555-01xx numbers are reserved and never valid
	_, err := Normalize("(555) 010-1234", "US")
	require.Error(t, err)
}
