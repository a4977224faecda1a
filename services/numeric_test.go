package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinite(t *testing.T) {
	assert.Equal(t, 0.0, finite(math.NaN()))
	assert.Equal(t, 0.0, finite(math.Inf(1)))
	assert.Equal(t, 0.0, finite(math.Inf(-1)))
	assert.Equal(t, 2.5, finite(2.5))
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, mean(10, 0))
	assert.Equal(t, 5.0, mean(10, 2))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		present bool
		wantErr bool
	}{
		{"", 0, false, false},
		{"  ", 0, false, false},
		{"370", 370, true, false},
		{"3.7", 3.7, true, false},
		{" 50.25 ", 50.25, true, false},
		{"1e3", 1000, true, false},
		{"-12", -12, true, false},
		{"abc", 0, true, true},
		{"NaN", 0, true, true},
	}

	for _, tt := range tests {
		got, present, err := parseNumber(tt.raw)
		assert.Equal(t, tt.want, got, "parseNumber(%q)", tt.raw)
		assert.Equal(t, tt.present, present, "present(%q)", tt.raw)
		assert.Equal(t, tt.wantErr, err != nil, "err(%q) = %v", tt.raw, err)
	}
}
