package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"with country code and plus", "+966501234567", "501234567"},
		{"with leading zero", "0501234567", "501234567"},
		{"bare subscriber number", "501234567", "501234567"},
		{"with spaces and dashes", "+966 50-123-4567", "501234567"},
		{"with parentheses", "(050) 123 4567", "501234567"},
		{"short number kept as-is", "12345", "12345"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePhone(tt.raw))
		})
	}
}

func TestNormalizePhoneEquivalence(t *testing.T) {
	// The same subscriber number in three common entry formats must share
	// one canonical key.
	withCode := NormalizePhone("+966501234567")
	withZero := NormalizePhone("0501234567")
	bare := NormalizePhone("501234567")

	assert.Equal(t, withCode, withZero)
	assert.Equal(t, withZero, bare)
}

func TestFormatForWhatsApp(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		expected string
	}{
		{"already international", "+966501234567", "whatsapp:+966501234567"},
		{"leading zero", "0501234567", "whatsapp:+966501234567"},
		{"country code without plus", "966501234567", "whatsapp:+966501234567"},
		{"bare subscriber number", "501234567", "whatsapp:+966501234567"},
		{"strips formatting characters", "+966 50-123-4567", "whatsapp:+966501234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatForWhatsApp(tt.phone))
		})
	}
}
