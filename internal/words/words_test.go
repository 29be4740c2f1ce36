package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToWords(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{"zero", 0, "Zero Rupees Only"},
		{"single digit", 5, "Five Rupees Only"},
		{"teen", 14, "Fourteen Rupees Only"},
		{"tens", 40, "Forty Rupees Only"},
		{"hundred", 100, "One Hundred Rupees Only"},
		{"hundred with teen remainder", 115, "One Hundred Fifteen Rupees Only"},
		{"hundred with and", 165, "One Hundred and Sixty Five Rupees Only"},
		{"thousand", 2065, "Two Thousand Sixty Five Rupees Only"},
		{"lakh", 150000, "One Lakh Fifty Thousand Rupees Only"},
		{"crore", 10000000, "One Crore Rupees Only"},
		{"teen thousand", 15000, "Fifteen Thousand Rupees Only"},
		{"mixed", 12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred and Seventy Eight Rupees Only"},
		{"max supported", 999999999, "Ninety Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred and Ninety Nine Rupees Only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToWords(tt.amount))
		})
	}
}

func TestToWordsOverflow(t *testing.T) {
	// Ten digits exceed the supported positions; no quantity words render.
	assert.Equal(t, "Rupees Only", ToWords(1000000000))
}
