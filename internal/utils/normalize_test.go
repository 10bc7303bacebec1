package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePlate(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"abc1d23", "ABC1D23"},
		{" ABC-1D23 ", "ABC1D23"},
		{"abc 1d23", "ABC1D23"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePlate(tc.raw), "raw=%q", tc.raw)
	}
}

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "7", NormalizeID("7"))
	assert.Equal(t, "7", NormalizeID(float64(7)))
	assert.Equal(t, "7.5", NormalizeID(7.5))
	assert.Equal(t, "7", NormalizeID(7))
	assert.Equal(t, "7", NormalizeID(int64(7)))
	assert.Equal(t, "emp-1", NormalizeID("  emp-1  "))
	assert.Equal(t, "", NormalizeID(nil))
	assert.Equal(t, "", NormalizeID(true))
}

func TestSameID(t *testing.T) {
	assert.True(t, SameID("7", "7"))
	assert.True(t, SameID(" emp-1", "emp-1 "))
	assert.False(t, SameID("7", "8"))
	// Vazio nunca casa, nem com vazio.
	assert.False(t, SameID("", ""))
	assert.False(t, SameID("  ", "  "))
	assert.False(t, SameID("emp-1", ""))
}
