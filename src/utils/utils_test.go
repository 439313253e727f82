package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundFloat(t *testing.T) {
	require.Equal(t, 572.38, RoundFloat(572.3781234, 2))
	require.Equal(t, -572.38, RoundFloat(-572.3781234, 2))
	require.Equal(t, 0.0, RoundFloat(0.0049, 2))
}

func TestIsValidISIN(t *testing.T) {
	require.True(t, IsValidISIN("US0378331005"))
	require.True(t, IsValidISIN("NL0010273215"))
	require.False(t, IsValidISIN("US037833100"))  // too short
	require.False(t, IsValidISIN("us0378331005")) // lowercase prefix
	require.False(t, IsValidISIN(""))
}

func TestCountryCodeFromISIN(t *testing.T) {
	require.Equal(t, "US", CountryCodeFromISIN("US0378331005"))
	require.Equal(t, "", CountryCodeFromISIN("X"))
}
