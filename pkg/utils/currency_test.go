package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCurrencySymbol(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"USD", "$"},
		{"EUR", "€"},
		{"GBP", "£"},
		{"JPY", "¥"},
		{"HKD", "¥"},
		{"NZD", "NZ$"},
		{"SEK", "SEK"}, // unmapped codes pass through
		{"", "$"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetCurrencySymbol(tt.code), "code %q", tt.code)
	}
}
